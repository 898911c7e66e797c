package ecdlp

import (
	"math/big"

	"github.com/mahdiidarabi/attacksim/pkg/ec"
)

// state is a walk position R together with a, b such that R = aP + bQ.
type state struct {
	r    ec.Point
	a, b *big.Int
}

// walk holds the fixed parameters of one rho walk.
type walk struct {
	p, q ec.Point
	n    *big.Int
}

// partition maps R to a branch by R.x mod 3; the identity is branch 0.
func partition(r ec.Point) int {
	if r.IsIdentity() {
		return 0
	}
	return int(new(big.Int).Mod(r.X(), big.NewInt(3)).Int64())
}

// step applies the iteration function:
//
//	branch 0: R' = 2R,  a' = 2a,   b' = 2b
//	branch 1: R' = R+P, a' = a+1,  b' = b
//	branch 2: R' = R+Q, a' = a,    b' = b+1
func (w *walk) step(s state) (state, error) {
	var (
		next ec.Point
		err  error
		a    = new(big.Int).Set(s.a)
		b    = new(big.Int).Set(s.b)
	)

	switch partition(s.r) {
	case 0:
		next, err = ec.Double(s.r)
		a.Lsh(a, 1)
		b.Lsh(b, 1)
	case 1:
		next, err = ec.Add(s.r, w.p)
		a.Add(a, big.NewInt(1))
	default:
		next, err = ec.Add(s.r, w.q)
		b.Add(b, big.NewInt(1))
	}
	if err != nil {
		return state{}, err
	}
	return state{r: next, a: a.Mod(a, w.n), b: b.Mod(b, w.n)}, nil
}

// start returns R₀ = x₀P + y₀Q.
func (w *walk) start(x0, y0 *big.Int) (state, error) {
	xp, err := ec.ScalarMult(x0, w.p)
	if err != nil {
		return state{}, err
	}
	yq, err := ec.ScalarMult(y0, w.q)
	if err != nil {
		return state{}, err
	}
	r, err := ec.Add(xp, yq)
	if err != nil {
		return state{}, err
	}
	return state{r: r, a: new(big.Int).Set(x0), b: new(big.Int).Set(y0)}, nil
}

// verify reports whether k·P = Q.
func (w *walk) verify(k *big.Int) (bool, error) {
	kp, err := ec.ScalarMult(k, w.p)
	if err != nil {
		return false, err
	}
	return kp.Equal(w.q), nil
}
