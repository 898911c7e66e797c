package modarith

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/pkg/errors"
)

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// IsProbablePrime runs k rounds of Miller-Rabin with bases drawn from
// crypto/rand. A composite n passes with probability at most 4^-k.
func IsProbablePrime(n *big.Int, k int) bool {
	return IsProbablePrimeRand(n, k, rand.Reader)
}

// IsProbablePrimeRand is IsProbablePrime with a caller-supplied source of
// randomness for the witnesses. A failing reader makes the test report
// false, so a read error can never certify a composite.
func IsProbablePrimeRand(n *big.Int, k int, r io.Reader) bool {
	if n.Cmp(two) < 0 {
		return false
	}
	if n.Cmp(big.NewInt(3)) <= 0 {
		return true
	}
	if n.Bit(0) == 0 {
		return false
	}

	// n-1 = 2^s * d with d odd
	nMinus1 := new(big.Int).Sub(n, one)
	d := new(big.Int).Set(nMinus1)
	s := 0
	for d.Bit(0) == 0 {
		d.Rsh(d, 1)
		s++
	}

	nMinus2 := new(big.Int).Sub(n, two)
	for i := 0; i < k; i++ {
		a, err := RandInt(r, two, nMinus2)
		if err != nil {
			return false
		}
		if !millerRabinRound(n, nMinus1, d, s, a) {
			return false
		}
	}
	return true
}

// millerRabinRound reports whether base a fails to witness the
// compositeness of n.
func millerRabinRound(n, nMinus1, d *big.Int, s int, a *big.Int) bool {
	x := new(big.Int).Exp(a, d, n)
	if x.Cmp(one) == 0 || x.Cmp(nMinus1) == 0 {
		return true
	}
	for j := 0; j < s-1; j++ {
		x.Mul(x, x).Mod(x, n)
		if x.Cmp(nMinus1) == 0 {
			return true
		}
	}
	return false
}

// RandInt returns a uniform integer in [lo, hi].
func RandInt(r io.Reader, lo, hi *big.Int) (*big.Int, error) {
	span := new(big.Int).Sub(hi, lo)
	if span.Sign() < 0 {
		return nil, errors.Errorf("empty range [%s, %s]", lo, hi)
	}
	span.Add(span, one)
	v, err := rand.Int(r, span)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read random integer")
	}
	return v.Add(v, lo), nil
}
