// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package jenkins implements Bob Jenkins' lookup3 final mix, used to
// fingerprint clause literal sets for duplicate detection.
//
// https://burtleburtle.net/bob/c/lookup3.c
package jenkins

// Lookup3 mixes a single 64-bit key through the lookup3 final-mixing
// rounds. It is a pure function of key: same input, same output, no
// hidden state.
func Lookup3(key uint64) uint64 {
	var s1, s2 uint64 = 0xdeadbeef, 0xdeadbeef
	s2 ^= s1
	s2 -= rot(s1, 14)
	key ^= s2
	key -= rot(s2, 11)
	s1 ^= key
	s1 -= rot(key, 25)
	s2 ^= s1
	s2 -= rot(s1, 16)
	key ^= s2
	key -= rot(s2, 4)
	s1 ^= key
	s1 -= rot(key, 14)
	s2 ^= s1
	s2 -= rot(s1, 24)
	return s2
}

func rot(x uint64, k uint) uint64 {
	return (x << k) | (x >> (64 - k))
}

// HashLiterals computes a commutative fingerprint over a clause's literal
// set: the XOR of each literal's Lookup3 hash. Because XOR is commutative,
// any permutation of the same literal set produces the same value — this
// is what lets Record.Checksum ignore literal order.
func HashLiterals(literals []int32) uint64 {
	if len(literals) == 0 {
		return 0
	}
	var h uint64
	for _, lit := range literals {
		h ^= Lookup3(uint64(int64(lit)))
	}
	return h
}

// HashBit maps a checksum to a bit index within a Bloom filter of the
// given size (a power of two number of bits).
func HashBit(checksum uint64, numBits uint64) uint64 {
	return checksum % numBits
}
