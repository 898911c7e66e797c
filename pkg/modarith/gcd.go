package modarith

import (
	"math/big"

	"github.com/pkg/errors"
)

// ErrNoInverse is returned when a value has no inverse for a modulus,
// i.e. gcd(a, m) != 1.
var ErrNoInverse = errors.New("no modular inverse")

// ExtendedGCD returns g = gcd(a, b) together with Bézout coefficients x, y
// such that a*x + b*y = g.
//
// The loop keeps the invariants oldR = a*oldS + b*oldT and r = a*s + b*t.
func ExtendedGCD(a, b *big.Int) (g, x, y *big.Int) {
	oldR, r := new(big.Int).Set(a), new(big.Int).Set(b)
	oldS, s := big.NewInt(1), big.NewInt(0)
	oldT, t := big.NewInt(0), big.NewInt(1)

	quotient := new(big.Int)
	tmp := new(big.Int)
	for r.Sign() != 0 {
		quotient.Quo(oldR, r)

		tmp.Mul(quotient, r)
		oldR, r = r, new(big.Int).Sub(oldR, tmp)

		tmp.Mul(quotient, s)
		oldS, s = s, new(big.Int).Sub(oldS, tmp)

		tmp.Mul(quotient, t)
		oldT, t = t, new(big.Int).Sub(oldT, tmp)
	}

	// Normalize so the gcd is non-negative.
	if oldR.Sign() < 0 {
		oldR.Neg(oldR)
		oldS.Neg(oldS)
		oldT.Neg(oldT)
	}
	return oldR, oldS, oldT
}

// GCD returns the non-negative greatest common divisor of a and b.
func GCD(a, b *big.Int) *big.Int {
	g, _, _ := ExtendedGCD(a, b)
	return g
}

// ModInverse returns the inverse of a modulo m in [0, m).
//
// It returns ErrNoInverse when gcd(a, m) != 1 or m <= 1.
func ModInverse(a, m *big.Int) (*big.Int, error) {
	if m.Cmp(big.NewInt(1)) <= 0 {
		return nil, errors.Wrapf(ErrNoInverse, "modulus %s", m)
	}

	reduced := Mod(a, m)
	g, x, _ := ExtendedGCD(reduced, m)
	if g.Cmp(big.NewInt(1)) != 0 {
		return nil, errors.Wrapf(ErrNoInverse, "gcd(%s, %s) = %s", a, m, g)
	}
	return Mod(x, m), nil
}

// Mod returns a mod m in [0, m) for a positive modulus m.
func Mod(a, m *big.Int) *big.Int {
	return new(big.Int).Mod(a, m)
}
