package rsakey

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/mahdiidarabi/attacksim/pkg/modarith"
)

var (
	// ErrInvalidBits is returned for prime sizes below two bits.
	ErrInvalidBits = errors.New("invalid bit size")

	// ErrPrimeSearchExhausted is returned when no acceptable prime was drawn
	// within the configured attempt cap.
	ErrPrimeSearchExhausted = errors.New("prime search exhausted")

	// ErrMessageRange is returned when a message or ciphertext is outside [0, n).
	ErrMessageRange = errors.New("value out of range for modulus")

	// ErrInvalidKeyPair is returned by Validate and FromPrimes.
	ErrInvalidKeyPair = errors.New("invalid key pair")
)

// PublicKey is the public half of a KeyPair.
type PublicKey struct {
	N *big.Int // Modulus p*q
	E *big.Int // Public exponent
}

// KeyPair is an RSA key pair. Treat all fields as read-only.
type KeyPair struct {
	P   *big.Int // First prime factor
	Q   *big.Int // Second prime factor, distinct from P
	N   *big.Int // Modulus p*q
	Phi *big.Int // Euler totient (p-1)(q-1)
	E   *big.Int // Public exponent, gcd(e, phi) = 1
	D   *big.Int // Private exponent, e*d ≡ 1 (mod phi)
}

// Public returns a copy of the public key.
func (kp *KeyPair) Public() PublicKey {
	return PublicKey{N: new(big.Int).Set(kp.N), E: new(big.Int).Set(kp.E)}
}

// Encrypt computes m^e mod n.
func (kp *KeyPair) Encrypt(m *big.Int) (*big.Int, error) {
	return kp.Public().Encrypt(m)
}

// Encrypt computes m^e mod n.
func (pk PublicKey) Encrypt(m *big.Int) (*big.Int, error) {
	if m.Sign() < 0 || m.Cmp(pk.N) >= 0 {
		return nil, errors.Wrapf(ErrMessageRange, "message %s, modulus %s", m, pk.N)
	}
	return new(big.Int).Exp(m, pk.E, pk.N), nil
}

// Decrypt computes c^d mod n.
func (kp *KeyPair) Decrypt(c *big.Int) (*big.Int, error) {
	if c.Sign() < 0 || c.Cmp(kp.N) >= 0 {
		return nil, errors.Wrapf(ErrMessageRange, "ciphertext %s, modulus %s", c, kp.N)
	}
	return new(big.Int).Exp(c, kp.D, kp.N), nil
}

// Validate re-checks the key pair invariants: p != q, n = p*q,
// phi = (p-1)(q-1), 1 < e < phi, gcd(e, phi) = 1, 0 <= d < phi and
// e*d ≡ 1 (mod phi).
func (kp *KeyPair) Validate() error {
	if kp.P.Cmp(kp.Q) == 0 {
		return errors.Wrap(ErrInvalidKeyPair, "p equals q")
	}
	if new(big.Int).Mul(kp.P, kp.Q).Cmp(kp.N) != 0 {
		return errors.Wrap(ErrInvalidKeyPair, "n != p*q")
	}
	if totient(kp.P, kp.Q).Cmp(kp.Phi) != 0 {
		return errors.Wrap(ErrInvalidKeyPair, "phi != (p-1)(q-1)")
	}
	if kp.E.Cmp(big.NewInt(1)) <= 0 || kp.E.Cmp(kp.Phi) >= 0 {
		return errors.Wrapf(ErrInvalidKeyPair, "e=%s outside (1, phi)", kp.E)
	}
	if modarith.GCD(kp.E, kp.Phi).Cmp(big.NewInt(1)) != 0 {
		return errors.Wrap(ErrInvalidKeyPair, "gcd(e, phi) != 1")
	}
	if kp.D.Sign() < 0 || kp.D.Cmp(kp.Phi) >= 0 {
		return errors.Wrapf(ErrInvalidKeyPair, "d=%s outside [0, phi)", kp.D)
	}
	ed := new(big.Int).Mul(kp.E, kp.D)
	if ed.Mod(ed, kp.Phi).Cmp(big.NewInt(1)) != 0 {
		return errors.Wrap(ErrInvalidKeyPair, "e*d mod phi != 1")
	}
	return nil
}

// FromPrimes builds a key pair from chosen primes. A nil e selects the
// smallest valid exponent the same way GenerateKeyPair does.
//
// Primality of p and q is the caller's responsibility; FromPrimes only
// enforces p != q and the exponent invariants.
func FromPrimes(p, q, e *big.Int) (*KeyPair, error) {
	if p.Cmp(big.NewInt(2)) < 0 || q.Cmp(big.NewInt(2)) < 0 {
		return nil, errors.Wrap(ErrInvalidKeyPair, "factors must be at least 2")
	}
	if p.Cmp(q) == 0 {
		return nil, errors.Wrap(ErrInvalidKeyPair, "p equals q")
	}

	phi := totient(p, q)
	if e == nil {
		e = chooseExponent(phi)
	} else if modarith.GCD(e, phi).Cmp(big.NewInt(1)) != 0 {
		return nil, errors.Wrapf(ErrInvalidKeyPair, "gcd(%s, phi) != 1", e)
	}
	if e.Cmp(big.NewInt(1)) <= 0 || e.Cmp(phi) >= 0 {
		return nil, errors.Wrapf(ErrInvalidKeyPair, "e=%s outside (1, phi=%s)", e, phi)
	}

	d, err := modarith.ModInverse(e, phi)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compute private exponent")
	}

	return &KeyPair{
		P:   new(big.Int).Set(p),
		Q:   new(big.Int).Set(q),
		N:   new(big.Int).Mul(p, q),
		Phi: phi,
		E:   new(big.Int).Set(e),
		D:   d,
	}, nil
}

func totient(p, q *big.Int) *big.Int {
	p1 := new(big.Int).Sub(p, big.NewInt(1))
	q1 := new(big.Int).Sub(q, big.NewInt(1))
	return p1.Mul(p1, q1)
}

// chooseExponent returns the smallest odd e, starting at 65537 when
// phi > 65537 and at 3 otherwise, with gcd(e, phi) = 1.
func chooseExponent(phi *big.Int) *big.Int {
	e := big.NewInt(3)
	if phi.Cmp(big.NewInt(65537)) > 0 {
		e.SetInt64(65537)
	}
	one := big.NewInt(1)
	for modarith.GCD(e, phi).Cmp(one) != 0 {
		e.Add(e, big.NewInt(2))
	}
	return e
}
