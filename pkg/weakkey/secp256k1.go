package weakkey

import (
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"

	"github.com/mahdiidarabi/attacksim/pkg/ec"
)

// SearchSecp256k1 looks for k in [1, bound] with k·G = pub. pub is a 33-byte
// compressed or 65-byte uncompressed SEC1 key. A nil result means the
// scalar is larger than bound.
func SearchSecp256k1(pub []byte, bound uint64) (*Result, error) {
	target, err := secp256k1.ParsePubKey(pub)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidPublicKey, "secp256k1: %v", err)
	}
	var want secp256k1.JacobianPoint
	target.AsJacobian(&want)

	var g, acc, next secp256k1.JacobianPoint
	var one secp256k1.ModNScalar
	one.SetInt(1)
	secp256k1.ScalarBaseMultNonConst(&one, &g)
	g.ToAffine()
	acc = g

	for k := uint64(1); k <= bound; k++ {
		if acc.X.Equals(&want.X) && acc.Y.Equals(&want.Y) {
			return &Result{Scalar: k, Curve: CurveSecp256k1, Steps: k - 1}, nil
		}
		secp256k1.AddNonConst(&acc, &g, &next)
		next.ToAffine()
		acc = next
	}
	return nil, nil
}

// VerifySecp256k1 reports whether k is the private scalar of pub.
func VerifySecp256k1(k *big.Int, pub []byte) (bool, error) {
	if !inRange(k, ec.Secp256k1Order) {
		return false, errors.Wrapf(ErrScalarRange, "k=%v", k)
	}
	target, err := secp256k1.ParsePubKey(pub)
	if err != nil {
		return false, errors.Wrapf(ErrInvalidPublicKey, "secp256k1: %v", err)
	}

	derived := secp256k1.PrivKeyFromBytes(scalarBytes(k, 32)).PubKey()
	return derived.IsEqual(target), nil
}

// CrossCheckSecp256k1 computes k·G with pkg/ec on the secp256k1 parameters
// and with the decred implementation, and reports ErrCrossCheckMismatch if
// they differ.
func CrossCheckSecp256k1(k *big.Int) error {
	if !inRange(k, ec.Secp256k1Order) {
		return errors.Wrapf(ErrScalarRange, "k=%v", k)
	}

	generic, err := ec.ScalarMult(k, ec.Secp256k1G())
	if err != nil {
		return errors.Wrap(err, "generic scalar multiplication")
	}

	var s secp256k1.ModNScalar
	s.SetByteSlice(scalarBytes(k, 32))
	var ref secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&s, &ref)
	ref.ToAffine()

	rx := new(big.Int).SetBytes(ref.X.Bytes()[:])
	ry := new(big.Int).SetBytes(ref.Y.Bytes()[:])
	if generic.IsIdentity() || generic.X().Cmp(rx) != 0 || generic.Y().Cmp(ry) != 0 {
		return errors.Wrapf(ErrCrossCheckMismatch, "k=%s: pkg/ec %s, decred (%x, %x)", k, generic, rx, ry)
	}
	return nil
}
