package ec

import (
	"math/big"

	"github.com/pkg/errors"
)

// MaxEnumerablePrime is the largest modulus for which the exhaustive group
// helpers (Points, Order, FindGenerator) will run.
const MaxEnumerablePrime = 1 << 20

// ErrTooLarge is returned by the exhaustive helpers for p > MaxEnumerablePrime.
var ErrTooLarge = errors.New("curve too large to enumerate")

// legendre returns the Legendre symbol (v|p) as -1, 0 or 1.
func (c *Curve) legendre(v *big.Int) int {
	r := c.mod(v)
	if r.Sign() == 0 {
		return 0
	}
	e := new(big.Int).Rsh(new(big.Int).Sub(c.p, big.NewInt(1)), 1)
	if new(big.Int).Exp(r, e, c.p).Cmp(big.NewInt(1)) == 0 {
		return 1
	}
	return -1
}

// sqrt returns a square root of v mod p by Tonelli-Shanks, or false when v
// is a non-residue.
func (c *Curve) sqrt(v *big.Int) (*big.Int, bool) {
	p := c.p
	n := c.mod(v)
	if n.Sign() == 0 {
		return new(big.Int), true
	}
	if c.legendre(n) != 1 {
		return nil, false
	}

	one := big.NewInt(1)
	// p ≡ 3 mod 4: r = n^((p+1)/4)
	if p.Bit(0) == 1 && p.Bit(1) == 1 {
		e := new(big.Int).Rsh(new(big.Int).Add(p, one), 2)
		return new(big.Int).Exp(n, e, p), true
	}

	// p - 1 = q * 2^s with q odd
	q := new(big.Int).Sub(p, one)
	s := 0
	for q.Bit(0) == 0 {
		q.Rsh(q, 1)
		s++
	}

	z := big.NewInt(2)
	for c.legendre(z) != -1 {
		z.Add(z, one)
	}

	m := s
	cc := new(big.Int).Exp(z, q, p)
	t := new(big.Int).Exp(n, q, p)
	r := new(big.Int).Exp(n, new(big.Int).Rsh(new(big.Int).Add(q, one), 1), p)

	for t.Cmp(one) != 0 {
		// least i with t^(2^i) = 1
		i := 0
		t2 := new(big.Int).Set(t)
		for t2.Cmp(one) != 0 {
			t2.Mul(t2, t2).Mod(t2, p)
			i++
			if i == m {
				return nil, false
			}
		}

		b := new(big.Int).Set(cc)
		for j := 0; j < m-i-1; j++ {
			b.Mul(b, b).Mod(b, p)
		}
		m = i
		cc = c.mul(b, b)
		t = c.mul(t, cc)
		r = c.mul(r, b)
	}
	return r, true
}

// LiftX returns the points with abscissa x: none, one (y = 0) or two,
// with the smaller y first.
func (c *Curve) LiftX(x *big.Int) []Point {
	xr := c.mod(x)
	y, ok := c.sqrt(c.rhs(xr))
	if !ok {
		return nil
	}
	if y.Sign() == 0 {
		return []Point{{x: xr, y: y, curve: c}}
	}
	ny := c.neg(y)
	if ny.Cmp(y) < 0 {
		y, ny = ny, y
	}
	return []Point{
		{x: xr, y: y, curve: c},
		{x: new(big.Int).Set(xr), y: ny, curve: c},
	}
}

func (c *Curve) enumerable() error {
	if c.p.Cmp(big.NewInt(MaxEnumerablePrime)) > 0 {
		return errors.Wrapf(ErrTooLarge, "p=%s exceeds %d", c.p, MaxEnumerablePrime)
	}
	return nil
}

// Points returns every affine point ordered by (x, y), without the identity.
func (c *Curve) Points() ([]Point, error) {
	if err := c.enumerable(); err != nil {
		return nil, err
	}
	var pts []Point
	for x := new(big.Int); x.Cmp(c.p) < 0; x.Add(x, big.NewInt(1)) {
		pts = append(pts, c.LiftX(x)...)
	}
	return pts, nil
}

// Order returns #E(F_p), identity included, by summing 1 + (rhs(x)|p) over x.
func (c *Curve) Order() (*big.Int, error) {
	if err := c.enumerable(); err != nil {
		return nil, err
	}
	count := int64(1)
	for x := new(big.Int); x.Cmp(c.p) < 0; x.Add(x, big.NewInt(1)) {
		count += int64(1 + c.legendre(c.rhs(x)))
	}
	return big.NewInt(count), nil
}

// PointOrder returns the order of p given a multiple n of it (normally the
// group order): the least divisor d of n with d·p = O.
func PointOrder(p Point, n *big.Int) (*big.Int, error) {
	if n.Sign() <= 0 {
		return nil, errors.Errorf("group order must be positive, got %s", n)
	}
	if p.IsIdentity() {
		return big.NewInt(1), nil
	}

	order := new(big.Int).Set(n)
	// Strip each prime factor while the multiple still annihilates p.
	for _, f := range primeFactors(n) {
		for new(big.Int).Mod(order, f).Sign() == 0 {
			candidate := new(big.Int).Quo(order, f)
			r, err := ScalarMult(candidate, p)
			if err != nil {
				return nil, err
			}
			if !r.IsIdentity() {
				break
			}
			order = candidate
		}
	}

	check, err := ScalarMult(order, p)
	if err != nil {
		return nil, err
	}
	if !check.IsIdentity() {
		return nil, errors.Errorf("%s is not a multiple of the order of %s", n, p)
	}
	return order, nil
}

// primeFactors returns the distinct prime factors of a small n.
func primeFactors(n *big.Int) []*big.Int {
	var fs []*big.Int
	m := new(big.Int).Set(n)
	d := big.NewInt(2)
	rem := new(big.Int)
	for new(big.Int).Mul(d, d).Cmp(m) <= 0 {
		if rem.Mod(m, d).Sign() == 0 {
			fs = append(fs, new(big.Int).Set(d))
			for rem.Mod(m, d).Sign() == 0 {
				m.Quo(m, d)
			}
		}
		d.Add(d, big.NewInt(1))
	}
	if m.Cmp(big.NewInt(1)) > 0 {
		fs = append(fs, m)
	}
	return fs
}

// FindGenerator returns a point of maximal order together with that order.
// For a cyclic group the order equals Order().
func (c *Curve) FindGenerator() (Point, *big.Int, error) {
	n, err := c.Order()
	if err != nil {
		return Point{}, nil, err
	}
	pts, err := c.Points()
	if err != nil {
		return Point{}, nil, err
	}

	best := c.Identity()
	bestOrder := big.NewInt(1)
	for _, pt := range pts {
		ord, err := PointOrder(pt, n)
		if err != nil {
			return Point{}, nil, err
		}
		if ord.Cmp(bestOrder) > 0 {
			best, bestOrder = pt, ord
			if ord.Cmp(n) == 0 {
				break
			}
		}
	}
	return best, bestOrder, nil
}
