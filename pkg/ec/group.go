package ec

import (
	"math/big"

	"github.com/pkg/errors"
)

// Add returns p + q.
//
// The only possible errors are ErrCurveMismatch, an uninitialized point, or
// a wrapped modarith.ErrNoInverse; the last cannot happen on a curve built by
// NewCurve and is surfaced rather than hidden.
func Add(p, q Point) (Point, error) {
	if err := compatible(p, q); err != nil {
		return Point{}, err
	}
	c := p.curve

	if p.inf {
		return q, nil
	}
	if q.inf {
		return p, nil
	}

	// q = -p, including the doubling of a point with y = 0.
	if p.x.Cmp(q.x) == 0 && p.y.Cmp(c.neg(q.y)) == 0 {
		return c.Identity(), nil
	}

	var lambda *big.Int
	var err error
	if p.x.Cmp(q.x) == 0 {
		// Tangent: λ = (3x² + a) / 2y
		num := c.add(c.mul(big.NewInt(3), c.mul(p.x, p.x)), c.a)
		lambda, err = c.div(num, c.mul(big.NewInt(2), p.y))
	} else {
		// Secant: λ = (y₂ - y₁) / (x₂ - x₁)
		lambda, err = c.div(c.sub(q.y, p.y), c.sub(q.x, p.x))
	}
	if err != nil {
		return Point{}, errors.Wrapf(err, "slope through %s and %s", p, q)
	}

	x3 := c.sub(c.sub(c.mul(lambda, lambda), p.x), q.x)
	y3 := c.sub(c.mul(lambda, c.sub(p.x, x3)), p.y)
	return Point{x: x3, y: y3, curve: c}, nil
}

// Double returns 2p.
func Double(p Point) (Point, error) {
	return Add(p, p)
}

// Negate returns -p.
func Negate(p Point) Point {
	if p.inf || p.x == nil {
		return p
	}
	return Point{x: new(big.Int).Set(p.x), y: p.curve.neg(p.y), curve: p.curve}
}

// ScalarMult returns k·p by double-and-add over the bits of k, least
// significant first. k = 0 yields the identity.
func ScalarMult(k *big.Int, p Point) (Point, error) {
	if !p.valid() {
		return Point{}, errors.Wrap(ErrPointNotOnCurve, "uninitialized point")
	}
	if k.Sign() < 0 {
		return Point{}, errors.Wrapf(ErrNegativeScalar, "k=%s", k)
	}

	result := p.curve.Identity()
	addend := p
	var err error
	for i := 0; i < k.BitLen(); i++ {
		if k.Bit(i) == 1 {
			if result, err = Add(result, addend); err != nil {
				return Point{}, err
			}
		}
		if addend, err = Double(addend); err != nil {
			return Point{}, err
		}
	}
	return result, nil
}
