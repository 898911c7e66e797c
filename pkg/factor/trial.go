package factor

import (
	"math/big"
	"time"

	"github.com/mahdiidarabi/attacksim/pkg/modarith"
)

// TrialDivisionStrategy tests divisors 2..min(floor(sqrt(n)), Limit).
//
// A composite n whose smallest factor exceeds Limit is reported as not found.
type TrialDivisionStrategy struct {
	Limit int
}

// Name returns the name of this strategy.
func (s *TrialDivisionStrategy) Name() string {
	return string(TrialDivision)
}

// Factor implements the Strategy interface.
func (s *TrialDivisionStrategy) Factor(n *big.Int) *Result {
	start := time.Now()
	if n.Cmp(big.NewInt(4)) < 0 {
		return nil
	}

	limit := s.Limit
	if limit <= 0 || limit > DefaultTrialLimit {
		limit = DefaultTrialLimit
	}
	bound := modarith.ISqrt(n)
	if bound.IsInt64() && bound.Int64() < int64(limit) {
		limit = int(bound.Int64())
	}

	d := new(big.Int)
	rem := new(big.Int)
	for i := 2; i <= limit; i++ {
		d.SetInt64(int64(i))
		if rem.Mod(n, d).Sign() == 0 {
			return newResult(d, new(big.Int).Quo(n, d), TrialDivision, i-1, start)
		}
	}
	return nil
}
