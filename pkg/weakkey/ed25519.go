package weakkey

import (
	"math/big"

	"filippo.io/edwards25519"
	"github.com/pkg/errors"
)

// Ed25519Order is the prime order l of the edwards25519 base point.
var Ed25519Order, _ = new(big.Int).SetString("7237005577332262213973186563042994240857116359379907606001950938285454250989", 10)

// SearchEd25519 looks for k in [1, bound] with k·B = pub, where pub is a
// 32-byte encoded point. The scalar is the raw group scalar, not an RFC 8032
// seed.
func SearchEd25519(pub []byte, bound uint64) (*Result, error) {
	want, err := edwards25519.NewIdentityPoint().SetBytes(pub)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidPublicKey, "ed25519: %v", err)
	}

	b := edwards25519.NewGeneratorPoint()
	acc := edwards25519.NewGeneratorPoint()
	for k := uint64(1); k <= bound; k++ {
		if acc.Equal(want) == 1 {
			return &Result{Scalar: k, Curve: CurveEd25519, Steps: k - 1}, nil
		}
		acc.Add(acc, b)
	}
	return nil, nil
}

// VerifyEd25519 reports whether k·B equals pub.
func VerifyEd25519(k *big.Int, pub []byte) (bool, error) {
	if !inRange(k, Ed25519Order) {
		return false, errors.Wrapf(ErrScalarRange, "k=%v", k)
	}
	want, err := edwards25519.NewIdentityPoint().SetBytes(pub)
	if err != nil {
		return false, errors.Wrapf(ErrInvalidPublicKey, "ed25519: %v", err)
	}

	s, err := ed25519Scalar(k)
	if err != nil {
		return false, err
	}
	got := edwards25519.NewIdentityPoint().ScalarBaseMult(s)
	return got.Equal(want) == 1, nil
}

// Ed25519PublicKey returns the encoding of k·B.
func Ed25519PublicKey(k *big.Int) ([]byte, error) {
	if !inRange(k, Ed25519Order) {
		return nil, errors.Wrapf(ErrScalarRange, "k=%v", k)
	}
	s, err := ed25519Scalar(k)
	if err != nil {
		return nil, err
	}
	return edwards25519.NewIdentityPoint().ScalarBaseMult(s).Bytes(), nil
}

// ed25519Scalar converts k < l to a canonical little-endian scalar.
func ed25519Scalar(k *big.Int) (*edwards25519.Scalar, error) {
	le := scalarBytes(k, 32)
	for i, j := 0, len(le)-1; i < j; i, j = i+1, j-1 {
		le[i], le[j] = le[j], le[i]
	}
	s, err := edwards25519.NewScalar().SetCanonicalBytes(le)
	if err != nil {
		return nil, errors.Wrap(err, "ed25519 scalar")
	}
	return s, nil
}
