package ec

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"
)

// Point is the identity or an affine point (x, y) of a specific curve.
//
// The zero Point is not valid; build points with NewPoint, Curve.Identity or
// the group operations.
type Point struct {
	x, y  *big.Int
	inf   bool
	curve *Curve
}

// NewPoint returns (x, y) on curve after reducing the coordinates mod p.
func NewPoint(x, y *big.Int, curve *Curve) (Point, error) {
	if curve == nil {
		return Point{}, errors.Wrap(ErrPointNotOnCurve, "nil curve")
	}
	xr, yr := curve.mod(x), curve.mod(y)
	if !curve.IsOnCurve(xr, yr) {
		return Point{}, errors.Wrapf(ErrPointNotOnCurve, "(%s, %s) on %s", x, y, curve)
	}
	return Point{x: xr, y: yr, curve: curve}, nil
}

// X returns a copy of the x coordinate, or nil for the identity.
func (p Point) X() *big.Int {
	if p.inf || p.x == nil {
		return nil
	}
	return new(big.Int).Set(p.x)
}

// Y returns a copy of the y coordinate, or nil for the identity.
func (p Point) Y() *big.Int {
	if p.inf || p.y == nil {
		return nil
	}
	return new(big.Int).Set(p.y)
}

// IsIdentity reports whether p is the point at infinity.
func (p Point) IsIdentity() bool { return p.inf }

// Curve returns the curve p belongs to.
func (p Point) Curve() *Curve { return p.curve }

// Equal reports whether p and q are the same point of the same curve.
func (p Point) Equal(q Point) bool {
	if !p.valid() || !q.valid() || !p.curve.Equal(q.curve) {
		return false
	}
	if p.inf || q.inf {
		return p.inf == q.inf
	}
	return p.x.Cmp(q.x) == 0 && p.y.Cmp(q.y) == 0
}

func (p Point) String() string {
	if p.inf {
		return "O"
	}
	if p.x == nil {
		return "<invalid>"
	}
	return fmt.Sprintf("(%s, %s)", p.x, p.y)
}

func (p Point) valid() bool {
	return p.curve != nil && (p.inf || p.x != nil)
}

func compatible(p, q Point) error {
	if !p.valid() || !q.valid() {
		return errors.Wrap(ErrPointNotOnCurve, "uninitialized point")
	}
	if !p.curve.Equal(q.curve) {
		return errors.Wrapf(ErrCurveMismatch, "%s vs %s", p.curve, q.curve)
	}
	return nil
}
