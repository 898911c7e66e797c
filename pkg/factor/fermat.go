package factor

import (
	"math/big"
	"time"

	"github.com/mahdiidarabi/attacksim/pkg/modarith"
)

// FermatStrategy searches for n = a² - b² starting at a = ceil(sqrt(n)).
//
// It needs roughly ((p+q)/2 - sqrt(n)) iterations and is only practical
// when p and q are close.
type FermatStrategy struct {
	MaxIterations int
}

// Name returns the name of this strategy.
func (s *FermatStrategy) Name() string {
	return string(Fermat)
}

// Factor implements the Strategy interface.
func (s *FermatStrategy) Factor(n *big.Int) *Result {
	start := time.Now()
	if n.Cmp(big.NewInt(4)) < 0 {
		return nil
	}
	// Odd n only; even n is split directly.
	if n.Bit(0) == 0 {
		return halve(n, Fermat, start)
	}

	one := big.NewInt(1)
	a := modarith.CeilSqrt(n)
	b2 := new(big.Int).Mul(a, a)
	b2.Sub(b2, n)

	// (a+1)² - a² = 2a + 1
	step := new(big.Int)
	for i := 0; i < budget(s.MaxIterations); i++ {
		if b, ok := modarith.IsSquare(b2); ok {
			p := new(big.Int).Sub(a, b)
			if p.Cmp(one) <= 0 {
				// a-b = 1 means n = 1 * n: n is prime.
				return nil
			}
			return newResult(p, new(big.Int).Add(a, b), Fermat, i+1, start)
		}
		step.Lsh(a, 1).Add(step, one)
		b2.Add(b2, step)
		a.Add(a, one)
	}
	return nil
}
