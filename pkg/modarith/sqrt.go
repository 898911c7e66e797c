package modarith

import "math/big"

// ISqrt returns floor(sqrt(n)) for n >= 0.
func ISqrt(n *big.Int) *big.Int {
	if n.Sign() <= 0 {
		return new(big.Int)
	}
	return new(big.Int).Sqrt(n)
}

// CeilSqrt returns ceil(sqrt(n)) for n >= 0.
func CeilSqrt(n *big.Int) *big.Int {
	r := ISqrt(n)
	if new(big.Int).Mul(r, r).Cmp(n) < 0 {
		r.Add(r, big.NewInt(1))
	}
	return r
}

// IsSquare reports whether n is a perfect square and, if so, returns its root.
func IsSquare(n *big.Int) (*big.Int, bool) {
	if n.Sign() < 0 {
		return nil, false
	}
	r := ISqrt(n)
	if new(big.Int).Mul(r, r).Cmp(n) != 0 {
		return nil, false
	}
	return r, true
}
