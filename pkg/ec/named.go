package ec

import (
	"math/big"
	"sync"
)

var (
	secp256k1Once  sync.Once
	secp256k1Curve *Curve
	secp256k1Gen   Point

	// Secp256k1Order is the order of the secp256k1 base point.
	Secp256k1Order, _ = new(big.Int).SetString("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141", 16)
)

func initSecp256k1() {
	p, _ := new(big.Int).SetString("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F", 16)
	gx, _ := new(big.Int).SetString("79BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798", 16)
	gy, _ := new(big.Int).SetString("483ADA7726A3C4655DA4FBFC0E1108A8FD17B448A68554199C47D08FFB10D4B8", 16)

	c, err := NewCurve(big.NewInt(0), big.NewInt(7), p, "secp256k1")
	if err != nil {
		panic(err)
	}
	g, err := NewPoint(gx, gy, c)
	if err != nil {
		panic(err)
	}
	secp256k1Curve, secp256k1Gen = c, g
}

// Secp256k1 returns the secp256k1 curve y² = x³ + 7.
func Secp256k1() *Curve {
	secp256k1Once.Do(initSecp256k1)
	return secp256k1Curve
}

// Secp256k1G returns the standard secp256k1 base point.
func Secp256k1G() Point {
	secp256k1Once.Do(initSecp256k1)
	return secp256k1Gen
}
