package weakkey

import (
	"math/big"

	"github.com/pkg/errors"
)

const (
	// CurveSecp256k1 names results found on secp256k1.
	CurveSecp256k1 = "secp256k1"

	// CurveEd25519 names results found on edwards25519.
	CurveEd25519 = "ed25519"
)

var (
	// ErrInvalidPublicKey is returned for keys that do not decode to a
	// curve point.
	ErrInvalidPublicKey = errors.New("invalid public key")

	// ErrScalarRange is returned for scalars outside [1, n).
	ErrScalarRange = errors.New("scalar out of range")

	// ErrCrossCheckMismatch is returned when two implementations disagree
	// on k·G.
	ErrCrossCheckMismatch = errors.New("scalar multiplication mismatch")
)

// Result is a recovered private scalar.
type Result struct {
	Scalar uint64 // The private scalar
	Curve  string // CurveSecp256k1 or CurveEd25519
	Steps  uint64 // Group additions performed
}

// scalarBytes returns k as a fixed-width big-endian slice.
func scalarBytes(k *big.Int, size int) []byte {
	out := make([]byte, size)
	k.FillBytes(out)
	return out
}

// inRange reports 0 < k < n.
func inRange(k, n *big.Int) bool {
	return k != nil && k.Sign() > 0 && k.Cmp(n) < 0
}
