package main

import "testing"

func TestRandSourceRange(t *testing.T) {
	sources := map[string]RandSource{
		"math":   newMathRand(3),
		"crypto": &cryptoRand{fallback: newMathRand(3)},
	}
	for name, r := range sources {
		t.Run(name, func(t *testing.T) {
			for _, n := range []int{-1, 0, 1} {
				if got := r.Intn(n); got != 0 {
					t.Errorf("Intn(%d) = %d, want 0", n, got)
				}
			}
			hits := make([]int, 5)
			for range 1000 {
				v := r.Intn(5)
				if v < 0 || v >= 5 {
					t.Fatalf("Intn(5) = %d, out of range", v)
				}
				hits[v]++
			}
			for i, h := range hits {
				if h == 0 {
					t.Errorf("value %d never drawn in 1000 tries", i)
				}
			}
		})
	}
}

func TestNewRandSource(t *testing.T) {
	if _, kind := NewRandSource(RandMath); kind != RandMath {
		t.Errorf("NewRandSource(math) kind = %q", kind)
	}
	if _, kind := NewRandSource(RandCrypto); kind != RandCrypto {
		t.Errorf("NewRandSource(crypto) kind = %q, want crypto on a host with crypto/rand", kind)
	}
}
