package factor

import (
	"math/big"

	"github.com/pkg/errors"
)

// Strategy is a factoring attack with its own budget.
type Strategy interface {
	// Factor returns a nontrivial factorization of n, or nil if none was
	// found within the strategy's budget.
	Factor(n *big.Int) *Result

	// Name returns a human-readable name for this strategy.
	Name() string
}

const (
	// DefaultTrialLimit is the largest divisor trial division tests.
	DefaultTrialLimit = 1000000

	// DefaultMaxIterations is the default budget for Fermat and Pollard's rho.
	DefaultMaxIterations = 1000000
)

// Factor runs one method on n. maxIterations <= 0 selects the method's
// default budget; for trial division it is the divisor cap, clamped to
// DefaultTrialLimit.
//
// A nil result with a nil error means "not found within budget".
func Factor(n *big.Int, method Method, maxIterations int) (*Result, error) {
	if n == nil || n.Cmp(big.NewInt(2)) < 0 {
		return nil, errors.Wrapf(ErrInvalidModulus, "n=%v", n)
	}

	strategy, err := NewStrategy(method, maxIterations)
	if err != nil {
		return nil, err
	}
	return strategy.Factor(n), nil
}

// NewStrategy returns the strategy for a method with the given budget.
func NewStrategy(method Method, maxIterations int) (Strategy, error) {
	switch method {
	case TrialDivision:
		limit := DefaultTrialLimit
		if maxIterations > 0 && maxIterations < limit {
			limit = maxIterations
		}
		return &TrialDivisionStrategy{Limit: limit}, nil
	case Fermat:
		return &FermatStrategy{MaxIterations: budget(maxIterations)}, nil
	case PollardRho:
		return NewPollardRhoStrategy(budget(maxIterations)), nil
	case Smart:
		s := NewSmartStrategy()
		if maxIterations > 0 {
			s.Config.FermatIterations = maxIterations
			s.Config.RhoIterations = maxIterations
		}
		return s, nil
	default:
		return nil, errors.Wrapf(ErrUnknownMethod, "%q", string(method))
	}
}

func budget(maxIterations int) int {
	if maxIterations <= 0 {
		return DefaultMaxIterations
	}
	return maxIterations
}
