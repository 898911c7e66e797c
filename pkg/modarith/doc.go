// Package modarith provides the number-theoretic primitives shared by the
// rest of attacksim: the extended Euclidean algorithm, modular inverses,
// integer square roots and the Miller-Rabin probable-prime test.
//
// All functions take *big.Int arguments, never modify them, and return
// freshly allocated results.
//
// # Quick Start
//
//	g, x, y := modarith.ExtendedGCD(big.NewInt(240), big.NewInt(46))
//	// g = 2, 240*x + 46*y = 2
//
//	inv, err := modarith.ModInverse(big.NewInt(3), big.NewInt(11))
//	if errors.Is(err, modarith.ErrNoInverse) {
//	    // 3 and 11 share a factor
//	}
//
//	if modarith.IsProbablePrime(big.NewInt(97), 20) {
//	    // 97 is prime with error probability at most 4^-20
//	}
package modarith
