// Package ecdlp recovers discrete logarithms on small elliptic curves with
// Pollard's rho.
//
// Given P and Q = kP on a curve whose relevant group order n is known, Solve
// walks the group with a three-way partition, detects a collision with
// Floyd's tortoise and hare, and derives k from the linear coefficients of
// the colliding states. Every candidate is verified (k·P == Q) before it is
// returned.
//
// A walk may fail: the collision can be uninformative, the walk can be
// absorbed by the identity, or the budget can run out. Solve retries with a
// fresh random start a fixed number of times and, for small k, falls back to
// exhaustive search. Giving up is reported as a nil *Result, not an error.
//
// # Quick Start
//
//	res, err := ecdlp.Solve(g, q, n, 0, 3)
//	if err != nil {
//	    log.Fatal(err) // bad input or an arithmetic fault
//	}
//	if res != nil {
//	    fmt.Printf("k = %s (%s, %d iterations)\n", res.K, res.Method, res.Iterations)
//	}
//
// # Customization
//
//	solver := ecdlp.NewSolver(ecdlp.Options{
//	    MaxIterations:   100000,
//	    MaxAttempts:     10,
//	    ExhaustiveBound: -1, // disable the fallback
//	}).WithLogger(logger)
//
//	res, err := solver.Solve(g, q, n)
package ecdlp
