// Package ec implements the group law of short Weierstrass curves
// y² = x³ + ax + b over a prime field F_p.
//
// Curves and points are immutable values validated at construction: a
// singular curve or an off-curve point cannot be built. Group operations
// return new points and never modify their inputs.
//
// # Quick Start
//
//	curve, err := ec.NewCurve(big.NewInt(2), big.NewInt(3), big.NewInt(97), "toy97")
//	if err != nil {
//	    log.Fatal(err) // ec.ErrInvalidCurve
//	}
//	p, err := ec.NewPoint(big.NewInt(3), big.NewInt(6), curve)
//	if err != nil {
//	    log.Fatal(err) // ec.ErrPointNotOnCurve
//	}
//	q, _ := ec.Add(p, p)                      // (80, 10)
//	r, _ := ec.ScalarMult(big.NewInt(5), p)   // identity
//
// # Small curves
//
// For toy moduli the package can enumerate the whole group, count its order
// and pick a generator:
//
//	n := curve.Order()
//	g, _ := curve.FindGenerator()
//
// Arithmetic is variable-time and meant for cryptanalysis demonstrations.
package ec
