package main

import (
	crand "crypto/rand"
	"math/big"
	"math/rand/v2"
	"sync"
	"time"
)

// RandSource yields uniformly distributed indexes in [0, n).
type RandSource interface {
	Intn(n int) int
}

const (
	RandCrypto = "crypto"
	RandMath   = "math"
)

// NewRandSource picks the randomness provider once at startup. A crypto
// source is used when the host can read from crypto/rand, otherwise math.
// The returned name is the provider actually in use.
func NewRandSource(kind string) (RandSource, string) {
	fallback := newMathRand(uint64(time.Now().UnixNano()))
	if kind == RandMath {
		return fallback, RandMath
	}
	var probe [1]byte
	if _, err := crand.Read(probe[:]); err != nil {
		return fallback, RandMath
	}
	return &cryptoRand{fallback: fallback}, RandCrypto
}

type cryptoRand struct {
	fallback *mathRand
}

func (r *cryptoRand) Intn(n int) int {
	if n <= 1 {
		return 0
	}
	v, err := crand.Int(crand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return r.fallback.Intn(n)
	}
	return int(v.Int64())
}

type mathRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func newMathRand(seed uint64) *mathRand {
	return &mathRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *mathRand) Intn(n int) int {
	if n <= 1 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.r.IntN(n)
}
