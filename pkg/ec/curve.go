package ec

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"

	"github.com/mahdiidarabi/attacksim/pkg/modarith"
)

var (
	// ErrInvalidCurve is returned for a singular curve or a non-prime modulus.
	ErrInvalidCurve = errors.New("invalid curve")

	// ErrPointNotOnCurve is returned when (x, y) does not satisfy the curve equation.
	ErrPointNotOnCurve = errors.New("point not on curve")

	// ErrCurveMismatch is returned when combining points of different curves.
	ErrCurveMismatch = errors.New("points belong to different curves")

	// ErrNegativeScalar is returned by ScalarMult for k < 0.
	ErrNegativeScalar = errors.New("negative scalar")
)

// primalityRounds is the Miller-Rabin round count used to validate p.
const primalityRounds = 20

// Curve is y² = x³ + ax + b over F_p.
type Curve struct {
	a, b, p *big.Int
	name    string
}

// NewCurve validates and returns a curve. a and b are reduced mod p.
//
// It fails with ErrInvalidCurve when p <= 3, p is composite, or the
// discriminant 4a³ + 27b² vanishes mod p.
func NewCurve(a, b, p *big.Int, name string) (*Curve, error) {
	if p == nil || p.Cmp(big.NewInt(3)) <= 0 {
		return nil, errors.Wrapf(ErrInvalidCurve, "modulus %v must be a prime > 3", p)
	}
	if !modarith.IsProbablePrime(p, primalityRounds) {
		return nil, errors.Wrapf(ErrInvalidCurve, "modulus %s is not prime", p)
	}

	c := &Curve{
		a:    modarith.Mod(a, p),
		b:    modarith.Mod(b, p),
		p:    new(big.Int).Set(p),
		name: name,
	}
	if c.Discriminant().Sign() == 0 {
		return nil, errors.Wrapf(ErrInvalidCurve, "singular curve: 4a³+27b² ≡ 0 mod %s", p)
	}
	return c, nil
}

// A returns the linear coefficient.
func (c *Curve) A() *big.Int { return new(big.Int).Set(c.a) }

// B returns the constant coefficient.
func (c *Curve) B() *big.Int { return new(big.Int).Set(c.b) }

// P returns the field modulus.
func (c *Curve) P() *big.Int { return new(big.Int).Set(c.p) }

// Name returns the label given at construction.
func (c *Curve) Name() string { return c.name }

// Discriminant returns 4a³ + 27b² mod p.
func (c *Curve) Discriminant() *big.Int {
	a3 := c.mul(c.mul(c.a, c.a), c.a)
	b2 := c.mul(c.b, c.b)
	return c.add(c.mul(big.NewInt(4), a3), c.mul(big.NewInt(27), b2))
}

// Equal reports whether both curves have the same a, b and p.
func (c *Curve) Equal(o *Curve) bool {
	if c == o {
		return true
	}
	if c == nil || o == nil {
		return false
	}
	return c.a.Cmp(o.a) == 0 && c.b.Cmp(o.b) == 0 && c.p.Cmp(o.p) == 0
}

// IsOnCurve reports whether y² ≡ x³ + ax + b (mod p).
func (c *Curve) IsOnCurve(x, y *big.Int) bool {
	lhs := c.mul(y, y)
	return lhs.Cmp(c.rhs(x)) == 0
}

// Identity returns the point at infinity of this curve.
func (c *Curve) Identity() Point {
	return Point{inf: true, curve: c}
}

func (c *Curve) String() string {
	label := c.name
	if label == "" {
		label = "curve"
	}
	return fmt.Sprintf("%s: y² = x³ + %sx + %s (mod %s)", label, c.a, c.b, c.p)
}

// rhs returns x³ + ax + b mod p.
func (c *Curve) rhs(x *big.Int) *big.Int {
	x3 := c.mul(c.mul(x, x), x)
	return c.add(c.add(x3, c.mul(c.a, x)), c.b)
}

// ---------- field helpers ----------

func (c *Curve) mod(v *big.Int) *big.Int { return modarith.Mod(v, c.p) }

func (c *Curve) add(u, v *big.Int) *big.Int { return c.mod(new(big.Int).Add(u, v)) }

func (c *Curve) sub(u, v *big.Int) *big.Int { return c.mod(new(big.Int).Sub(u, v)) }

func (c *Curve) mul(u, v *big.Int) *big.Int { return c.mod(new(big.Int).Mul(u, v)) }

func (c *Curve) neg(v *big.Int) *big.Int { return c.sub(new(big.Int), v) }

// div returns u / v mod p. A zero or non-invertible v yields a wrapped
// modarith.ErrNoInverse.
func (c *Curve) div(u, v *big.Int) (*big.Int, error) {
	inv, err := modarith.ModInverse(v, c.p)
	if err != nil {
		return nil, err
	}
	return c.mul(u, inv), nil
}
