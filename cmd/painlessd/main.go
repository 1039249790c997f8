// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command painlessd wires the clause-exchange core together into a
// running process: it parses the option table, builds the
// requested local and global sharing strategies over a portfolio of
// solver entities, runs them on the sharer runtime until a result is
// declared or the timeout elapses, and reports the outcome.
//
// The CDCL solvers themselves, DIMACS parsing, and portfolio cube
// scheduling live outside this module; stubsolver.go stands in for a
// real solver plugin so every other component here is exercised.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/painless-sat/painlessgo/bloom"
	"github.com/painless-sat/painlessgo/config"
	"github.com/painless-sat/painlessgo/database"
	"github.com/painless-sat/painlessgo/gateway"
	"github.com/painless-sat/painlessgo/global"
	"github.com/painless-sat/painlessgo/sharer"
	"github.com/painless-sat/painlessgo/sharing"
	"github.com/painless-sat/painlessgo/solverapi"
	"github.com/painless-sat/painlessgo/term"
)

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		// Bad input: malformed flags are reported and the process
		// exits non-zero.
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	ctx := term.New()

	solvers := make([]*sharing.SolverEntity, cfg.SolverCount)
	entities := make([]sharing.Entity, cfg.SolverCount)
	for i := range solvers {
		se := sharing.NewSolverEntity(int32(i), newStubSolver())
		se.SetLbdLimit(uint32(cfg.InitialLbdLimit))
		solvers[i] = se
		entities[i] = se
	}

	var filter *bloom.Filter
	if cfg.DuplicateDetection {
		filter = bloom.New(bloom.DefaultNumBits)
	}

	// Ids past the solver range, reserved regardless of which of the
	// two optional entities below actually get constructed, so a
	// Strengthening + global run never collides the reducer and the
	// gateway on the same id.
	gatewayID := int32(cfg.SolverCount)
	reducerID := int32(cfg.SolverCount) + 1

	var gw *gateway.Gateway
	producers := entities
	consumers := entities
	if cfg.GlobalStrategy != config.GlobalNone {
		gw = gateway.New(gatewayID, cfg.MaxClauseSize, database.DefaultAdmissionCap, 0)
		both := make([]sharing.Entity, 0, len(entities)+1)
		both = append(both, entities...)
		both = append(both, gw)
		producers, consumers = both, both
	}

	sleepMillis := cfg.SharerSleepMicros / 1000
	if sleepMillis < 1 {
		sleepMillis = 1
	}

	var localStrategy sharer.Strategy
	switch cfg.LocalStrategy {
	case config.HordeSat:
		h := sharing.NewHordeSat(producers, consumers, filter, ctx)
		h.LiteralsPerRound = cfg.LiteralsPerRound
		h.MaxClauseSize = cfg.MaxClauseSize
		h.SleepMillis = sleepMillis
		localStrategy = h
	case config.HordeSatAlt:
		h := sharing.NewHordeSatAlt(producers, consumers, filter, ctx)
		h.LiteralsPerProducer = cfg.LiteralsPerRound
		h.RoundBeforeIncrease = cfg.HordeInitRounds
		h.SleepMillis = sleepMillis
		localStrategy = h
	case config.Simple:
		s := sharing.NewSimple(producers, consumers, filter, ctx, cfg.MaxClauseSize, database.DefaultAdmissionCap)
		s.SleepMillis = sleepMillis
		localStrategy = s
	case config.Strengthening:
		reducer := sharing.NewSolverEntity(reducerID, newStubSolver())
		s := sharing.NewStrengthening(producers, consumers, reducer, ctx)
		s.SleepMillis = sleepMillis
		localStrategy = s
	}

	strategies := []sharer.Strategy{localStrategy}

	if cfg.GlobalStrategy != config.GlobalNone {
		// A real multi-host deployment substitutes a network-backed
		// Transport here; this single-rank LocalNetwork exercises the
		// wiring without a peer to actually talk to.
		net := global.NewLocalNetwork(1)
		transport := net.Transport(0)
		tm := global.NewTerminator(transport, ctx, 0)

		var g sharer.Strategy
		switch cfg.GlobalStrategy {
		case config.GlobalRing:
			r := global.NewRing(transport, gw, tm, cfg.GlobalLiteralBudget, log)
			r.SleepMillis = sleepMillis
			g = r
		case config.GlobalAllGather:
			a := global.NewAllGather(transport, gw, tm, cfg.GlobalLiteralBudget, log)
			a.SleepMillis = sleepMillis
			g = a
		case config.GlobalTree:
			t := global.NewTree(transport, gw, tm, cfg.GlobalLiteralBudget, cfg.MaxClauseSize, log)
			t.SleepMillis = sleepMillis
			g = t
		}
		strategies = append(strategies, g)
	}

	var eg errgroup.Group

	if cfg.TimeoutSeconds >= 0 {
		eg.Go(func() error {
			ctx.Wait(time.Duration(cfg.TimeoutSeconds) * time.Second)
			if !ctx.Ended() {
				ctx.Declare(term.Timeout, -1, nil)
			}
			return nil
		})
	}

	for _, se := range solvers {
		se := se
		eg.Go(func() error {
			runSolver(ctx, se)
			return nil
		})
	}

	if cfg.OneSharer {
		sh := sharer.New(0, strategies, ctx, log)
		eg.Go(func() error { sh.Run(); return nil })
	} else {
		for i, strat := range strategies {
			i, strat := i, strat
			sh := sharer.New(i, []sharer.Strategy{strat}, ctx, log)
			eg.Go(func() error { sh.Run(); return nil })
		}
	}

	eg.Wait()

	result, winner, declared := ctx.Outcome()
	if !declared {
		result = term.Unknown
	}
	log.Info().Str("result", resultString(result)).Int32("winner", winner).Msg("painlessd exiting")
	fmt.Println(resultString(result))

	// Exit code mirrors the SAT-competition convention the result codes
	// already carry (10=SAT, 20=UNSAT): solverapi.Result's wire values.
	os.Exit(int(result))
}

// runSolver drives one portfolio member: it blocks in Solve until either
// the solver itself concludes (declaring the process-wide result on
// SAT/UNSAT) or the termination context ends for some other reason, in
// which case the solver is interrupted so Solve can return. Meanwhile it
// periodically drains imported clauses so SolverEntity's pending queue
// never grows unbounded while no solver is around to drain it.
func runSolver(ctx *term.Context, se *sharing.SolverEntity) {
	interruptedByUs := make(chan struct{})
	go func() {
		ctx.Wait(24 * time.Hour)
		se.Interrupt()
		close(interruptedByUs)
	}()

	drainDone := make(chan struct{})
	go func() {
		for !ctx.Ended() {
			se.DrainImports()
			ctx.Wait(100 * time.Millisecond)
		}
		se.DrainImports()
		close(drainDone)
	}()

	result, err := se.Solve(nil)
	if err == nil && (result == solverapi.SAT || result == solverapi.UNSAT) {
		ctx.Declare(term.Result(result), se.ID(), se.Model())
	}

	<-interruptedByUs
	<-drainDone
}

func resultString(r term.Result) string {
	switch r {
	case term.SAT:
		return "SAT"
	case term.UNSAT:
		return "UNSAT"
	case term.Timeout:
		return "TIMEOUT"
	default:
		return "UNKNOWN"
	}
}
