package ecdlp

import (
	"crypto/rand"
	"io"
	"math/big"
	"time"

	"github.com/pkg/errors"
)

const (
	// MethodPollardRho marks a result found by the rho walk.
	MethodPollardRho = "pollard_rho"

	// MethodExhaustive marks a result found by the fallback search.
	MethodExhaustive = "exhaustive"

	// MethodTrivial marks Q = O or Q = P.
	MethodTrivial = "trivial"
)

var (
	// ErrInvalidOrder is returned for an order < 2 or one that does not
	// annihilate P.
	ErrInvalidOrder = errors.New("invalid group order")

	// ErrIdentityBase is returned when P is the identity.
	ErrIdentityBase = errors.New("base point is the identity")
)

const (
	minBudget = 1000
	maxBudget = 1<<31 - 1
)

// Options configures a Solver.
type Options struct {
	// MaxIterations bounds each walk (0 = max(4·√n, 1000)).
	MaxIterations int

	// MaxAttempts is the number of walks with fresh random starts (0 = 3).
	MaxAttempts int

	// ExhaustiveBound limits the fallback to k ∈ [1, min(n, bound))
	// (0 = 100, negative = no fallback).
	ExhaustiveBound int64

	// MaxDivisorCandidates limits how many solutions are tried when the
	// collision coefficient shares a factor g with n (0 = 1024).
	MaxDivisorCandidates int

	// Rand seeds each walk (nil = crypto/rand).
	Rand io.Reader
}

// DefaultOptions returns the options used by Solve.
func DefaultOptions() Options {
	return Options{
		MaxAttempts:          3,
		ExhaustiveBound:      100,
		MaxDivisorCandidates: 1024,
		Rand:                 rand.Reader,
	}
}

// withDefaults fills zero fields from DefaultOptions.
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = def.MaxAttempts
	}
	if o.ExhaustiveBound == 0 {
		o.ExhaustiveBound = def.ExhaustiveBound
	}
	if o.MaxDivisorCandidates <= 0 {
		o.MaxDivisorCandidates = def.MaxDivisorCandidates
	}
	if o.Rand == nil {
		o.Rand = def.Rand
	}
	return o
}

// iterations returns the per-walk budget for group order n.
func (o Options) iterations(n *big.Int) int {
	if o.MaxIterations > 0 {
		return o.MaxIterations
	}
	root := new(big.Int).Sqrt(n)
	root.Lsh(root, 2)
	switch {
	case !root.IsInt64() || root.Int64() > maxBudget:
		return maxBudget
	case root.Int64() < minBudget:
		return minBudget
	default:
		return int(root.Int64())
	}
}

// Result is a verified discrete logarithm.
type Result struct {
	K          *big.Int      // k in [0, n) with k·P = Q
	Method     string        // MethodPollardRho, MethodExhaustive or MethodTrivial
	Attempts   int           // Walks started
	Iterations int           // Walk steps (or candidates for exhaustive) spent in total
	Elapsed    time.Duration // Wall-clock time, informational only
}
