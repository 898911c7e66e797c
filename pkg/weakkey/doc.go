// Package weakkey recovers undersized private scalars on production curves.
//
// A key pair whose private scalar is drawn from a tiny range is as weak on
// secp256k1 or Ed25519 as it would be on a toy curve: walking G, 2G, 3G, ...
// finds it in k steps. SearchSecp256k1 and SearchEd25519 perform that walk up
// to a caller-supplied bound, sequentially.
//
// # Example
//
//	pub, _ := hex.DecodeString("02...")
//	res, err := weakkey.SearchSecp256k1(pub, 1<<24)
//	if err != nil {
//	    return err
//	}
//	if res != nil {
//	    fmt.Printf("private scalar %d found after %d steps\n", res.Scalar, res.Steps)
//	}
//
// The package also cross-checks the generic pkg/ec implementation against
// the decred secp256k1 library with CrossCheckSecp256k1.
package weakkey
