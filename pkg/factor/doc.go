// Package factor implements integer-factorization attacks against small RSA
// moduli: trial division, Fermat's method and Pollard's rho.
//
// Every attack is bounded by an iteration budget. Running out of budget is a
// normal outcome and is reported as a nil *Result, never as an error.
//
// # Quick Start
//
//	res, err := factor.Factor(big.NewInt(8051), factor.PollardRho, 10000)
//	if err != nil {
//	    log.Fatal(err) // invalid input only
//	}
//	if res == nil {
//	    fmt.Println("not found within budget")
//	} else {
//	    fmt.Printf("%s = %s * %s (%s)\n", res.N(), res.P, res.Q, res.Elapsed)
//	}
//
// # Strategies
//
// Each method is also available as a Strategy, and SmartStrategy chains them:
// trial division with a small cap, then Fermat, then Pollard's rho.
//
//	strategy := factor.NewSmartStrategy().
//	    WithConfig(factor.SmartConfig{
//	        TrialLimit:      10000,
//	        FermatIterations: 100000,
//	        RhoIterations:   1000000,
//	    }).
//	    WithLogger(logger)
//
//	res := strategy.Factor(n)
package factor
