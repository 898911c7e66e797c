// Package rsakey generates deliberately small RSA key pairs for the
// factoring demonstrations in package factor.
//
// # Quick Start
//
//	kp, err := rsakey.GenerateKeyPair(16)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	c, _ := kp.Encrypt(big.NewInt(42))
//	m, _ := kp.Decrypt(c) // 42
//
// Keys are textbook RSA without padding and are never suitable for real use.
//
// # Customization
//
//	gen := rsakey.NewGenerator(rsakey.Options{
//	    Rounds:           32,
//	    MaxPrimeAttempts: 5000,
//	    Rand:             myReader,
//	})
//	kp, err := gen.GenerateKeyPair(24)
package rsakey
