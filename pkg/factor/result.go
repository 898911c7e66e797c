package factor

import (
	"math/big"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Method identifies a factoring algorithm.
type Method string

const (
	TrialDivision Method = "trial_division"
	Fermat        Method = "fermat"
	PollardRho    Method = "pollard_rho"
	Smart         Method = "smart"
)

var (
	// ErrUnknownMethod is returned for a method name Factor does not know.
	ErrUnknownMethod = errors.New("unknown factoring method")

	// ErrInvalidModulus is returned for n < 2.
	ErrInvalidModulus = errors.New("modulus must be at least 2")
)

// ParseMethod maps user input to a Method.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trial", "trial_division", "trial-division":
		return TrialDivision, nil
	case "fermat":
		return Fermat, nil
	case "rho", "pollard", "pollard_rho", "pollard-rho":
		return PollardRho, nil
	case "", "smart", "auto":
		return Smart, nil
	default:
		return "", errors.Wrapf(ErrUnknownMethod, "%q", s)
	}
}

// Result is a nontrivial factorization n = P * Q with P <= Q.
type Result struct {
	P          *big.Int      // Smaller factor
	Q          *big.Int      // Larger factor
	Method     Method        // Algorithm that found the factors
	Iterations int           // Steps spent by that algorithm
	Elapsed    time.Duration // Wall-clock time, informational only
}

// N returns P * Q.
func (r *Result) N() *big.Int {
	return new(big.Int).Mul(r.P, r.Q)
}

// Verify reports whether the result is a nontrivial factorization of n.
func (r *Result) Verify(n *big.Int) bool {
	if r == nil || r.P == nil || r.Q == nil {
		return false
	}
	one := big.NewInt(1)
	if r.P.Cmp(one) <= 0 || r.P.Cmp(r.Q) > 0 || r.Q.Cmp(n) >= 0 {
		return false
	}
	return r.N().Cmp(n) == 0
}

// newResult normalizes the pair so that P <= Q.
func newResult(p, q *big.Int, method Method, iterations int, start time.Time) *Result {
	if p.Cmp(q) > 0 {
		p, q = q, p
	}
	return &Result{
		P:          new(big.Int).Set(p),
		Q:          new(big.Int).Set(q),
		Method:     method,
		Iterations: iterations,
		Elapsed:    time.Since(start),
	}
}

// halve answers even n directly.
func halve(n *big.Int, method Method, start time.Time) *Result {
	return newResult(big.NewInt(2), new(big.Int).Rsh(n, 1), method, 0, start)
}
