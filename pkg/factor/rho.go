package factor

import (
	"crypto/rand"
	"io"
	"math/big"
	"time"

	"github.com/mahdiidarabi/attacksim/pkg/modarith"
)

// PollardRhoStrategy runs Floyd cycle detection on f(v) = v² + c mod n.
//
// When gcd(|x-y|, n) reaches n the walk is re-seeded with fresh x₀ and c;
// MaxIterations bounds the total number of steps across all walks.
type PollardRhoStrategy struct {
	MaxIterations int
	Rand          io.Reader
}

// NewPollardRhoStrategy creates a rho strategy seeded from crypto/rand.
func NewPollardRhoStrategy(maxIterations int) *PollardRhoStrategy {
	return &PollardRhoStrategy{MaxIterations: maxIterations, Rand: rand.Reader}
}

// Name returns the name of this strategy.
func (s *PollardRhoStrategy) Name() string {
	return string(PollardRho)
}

// Factor implements the Strategy interface.
func (s *PollardRhoStrategy) Factor(n *big.Int) *Result {
	start := time.Now()
	if n.Cmp(big.NewInt(4)) < 0 {
		return nil
	}
	if n.Bit(0) == 0 {
		return halve(n, PollardRho, start)
	}

	r := s.Rand
	if r == nil {
		r = rand.Reader
	}

	one := big.NewInt(1)
	maxIter := budget(s.MaxIterations)
	steps := 0
	for steps < maxIter {
		x, c, err := seed(r, n)
		if err != nil {
			return nil
		}
		y := new(big.Int).Set(x)
		diff := new(big.Int)
		d := new(big.Int)

		for steps < maxIter {
			steps++
			step(x, c, n)
			step(y, c, n)
			step(y, c, n)

			diff.Sub(x, y).Abs(diff)
			d.GCD(nil, nil, diff, n)
			if d.Cmp(one) == 0 {
				continue
			}
			if d.Cmp(n) == 0 {
				// The cycle closed without splitting n, restart with a new map.
				break
			}
			return newResult(d, new(big.Int).Quo(n, d), PollardRho, steps, start)
		}
	}
	return nil
}

// seed draws x₀ in [2, n-2] and c in [1, n-3], avoiding c = n-2 which
// collapses the map.
func seed(r io.Reader, n *big.Int) (x, c *big.Int, err error) {
	hi := new(big.Int).Sub(n, big.NewInt(2))
	x, err = modarith.RandInt(r, big.NewInt(2), hi)
	if err != nil {
		return nil, nil, err
	}
	c, err = modarith.RandInt(r, big.NewInt(1), hi.Sub(hi, big.NewInt(1)))
	if err != nil {
		return nil, nil, err
	}
	return x, c, nil
}

// step sets v = v² + c mod n in place.
func step(v, c, n *big.Int) {
	v.Mul(v, v).Add(v, c).Mod(v, n)
}
