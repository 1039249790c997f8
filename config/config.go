// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config parses the command-line options of the clause-exchange
// runtime into a Config value, using github.com/spf13/pflag for
// GNU-style long flags.
package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// LocalStrategy selects one of the local sharing strategies via
// shr-strat.
type LocalStrategy int

const (
	HordeSat LocalStrategy = iota + 1
	HordeSatAlt
	Simple
	Strengthening
)

// GlobalStrategy selects one of the three inter-node topologies via
// gshr-strat.
type GlobalStrategy int

const (
	GlobalNone GlobalStrategy = iota
	GlobalAllGather
	GlobalTree
	GlobalRing
)

// Config holds every option the runtime recognizes.
type Config struct {
	SolverCount         int           // -c
	TimeoutSeconds      int           // -t, -1 = none
	LocalStrategy       LocalStrategy // -shr-strat
	SharerSleepMicros   int           // -shr-sleep
	LiteralsPerRound    int           // -shr-lit
	InitialLbdLimit     int           // -shr-initial-lbd
	HordeInitRounds     int           // -shr-horde-init-round
	GlobalStrategy      GlobalStrategy
	GlobalLiteralBudget int  // -gshr-lit
	DuplicateDetection  bool // -dup
	MaxClauseSize       int  // -max-cls-size
	OneSharer           bool // -one-sharer
}

// Default returns the stock option defaults.
func Default() Config {
	return Config{
		SolverCount:       1,
		TimeoutSeconds:    -1,
		LocalStrategy:     HordeSat,
		SharerSleepMicros: 500000,
		LiteralsPerRound:  1500,
		InitialLbdLimit:   2,
		HordeInitRounds:   1,
		GlobalStrategy:    GlobalNone,
		MaxClauseSize:     50,
	}
}

// Parse parses args (typically os.Args[1:]) into a Config, starting from
// Default(). Bad input — a malformed value or an unknown flag — returns
// a non-nil error for the caller to report and exit non-zero.
func Parse(args []string) (Config, error) {
	cfg := Default()

	fs := pflag.NewFlagSet("painlessd", pflag.ContinueOnError)
	fs.IntVarP(&cfg.SolverCount, "c", "c", cfg.SolverCount, "number of solver threads")
	fs.IntVarP(&cfg.TimeoutSeconds, "t", "t", cfg.TimeoutSeconds, "timeout in seconds (-1 = none)")
	shrStrat := fs.Int("shr-strat", int(cfg.LocalStrategy), "local strategy selector (1..4)")
	fs.IntVar(&cfg.SharerSleepMicros, "shr-sleep", cfg.SharerSleepMicros, "sharer sleep in microseconds")
	fs.IntVar(&cfg.LiteralsPerRound, "shr-lit", cfg.LiteralsPerRound, "per-round literal budget per producer")
	fs.IntVar(&cfg.InitialLbdLimit, "shr-initial-lbd", cfg.InitialLbdLimit, "initial producer lbd limit")
	fs.IntVar(&cfg.HordeInitRounds, "shr-horde-init-round", cfg.HordeInitRounds, "rounds before adaptive production kicks in")
	gshrStrat := fs.Int("gshr-strat", int(cfg.GlobalStrategy), "global strategy selector (1=all-gather, 2=tree, 3=ring)")
	fs.IntVar(&cfg.GlobalLiteralBudget, "gshr-lit", cfg.GlobalLiteralBudget, "global per-round literal budget")
	fs.BoolVar(&cfg.DuplicateDetection, "dup", cfg.DuplicateDetection, "enable Bloom-based duplicate detection and lbd promotion")
	fs.IntVar(&cfg.MaxClauseSize, "max-cls-size", cfg.MaxClauseSize, "maximum clause size admitted to a limited database")
	fs.BoolVar(&cfg.OneSharer, "one-sharer", cfg.OneSharer, "run all strategies on a single sharer thread")

	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	ls := LocalStrategy(*shrStrat)
	if ls < HordeSat || ls > Strengthening {
		return Config{}, fmt.Errorf("config: shr-strat must be 1..4, got %d", *shrStrat)
	}
	cfg.LocalStrategy = ls

	gs := GlobalStrategy(*gshrStrat)
	if gs < GlobalNone || gs > GlobalRing {
		return Config{}, fmt.Errorf("config: gshr-strat must be 0..3, got %d", *gshrStrat)
	}
	cfg.GlobalStrategy = gs

	if cfg.SolverCount < 1 {
		return Config{}, fmt.Errorf("config: -c must be >= 1, got %d", cfg.SolverCount)
	}

	return cfg, nil
}
