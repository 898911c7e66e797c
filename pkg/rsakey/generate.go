package rsakey

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/mahdiidarabi/attacksim/pkg/modarith"
)

// Options configures a Generator.
type Options struct {
	// Rounds is the number of Miller-Rabin rounds per candidate.
	Rounds int

	// MaxPrimeAttempts caps the number of candidates drawn per prime.
	MaxPrimeAttempts int

	// Rand is the source of candidates and witnesses (nil = crypto/rand).
	Rand io.Reader
}

// DefaultOptions returns the options used by the package-level functions.
func DefaultOptions() Options {
	return Options{
		Rounds:           20,
		MaxPrimeAttempts: 100000,
		Rand:             rand.Reader,
	}
}

// Generator draws primes and key pairs.
type Generator struct {
	opts   Options
	logger *zap.Logger
}

// NewGenerator creates a generator. Zero-valued option fields fall back to
// DefaultOptions.
func NewGenerator(opts Options) *Generator {
	def := DefaultOptions()
	if opts.Rounds <= 0 {
		opts.Rounds = def.Rounds
	}
	if opts.MaxPrimeAttempts <= 0 {
		opts.MaxPrimeAttempts = def.MaxPrimeAttempts
	}
	if opts.Rand == nil {
		opts.Rand = def.Rand
	}
	return &Generator{opts: opts, logger: zap.NewNop()}
}

// WithLogger sets the logger used for debug output.
func (g *Generator) WithLogger(logger *zap.Logger) *Generator {
	g.logger = logger
	return g
}

// GeneratePrime draws random odd integers of exactly bits bits until one
// passes Miller-Rabin.
func (g *Generator) GeneratePrime(bits int) (*big.Int, error) {
	if bits < 2 {
		return nil, errors.Wrapf(ErrInvalidBits, "%d bits", bits)
	}
	return g.generatePrime(bits, nil)
}

// generatePrime draws a prime different from exclude (if non-nil).
func (g *Generator) generatePrime(bits int, exclude *big.Int) (*big.Int, error) {
	buf := make([]byte, (bits+7)/8)
	for attempt := 1; attempt <= g.opts.MaxPrimeAttempts; attempt++ {
		candidate, err := g.candidate(bits, buf)
		if err != nil {
			return nil, err
		}
		if exclude != nil && candidate.Cmp(exclude) == 0 {
			continue
		}
		if modarith.IsProbablePrimeRand(candidate, g.opts.Rounds, g.opts.Rand) {
			g.logger.Debug("prime found",
				zap.Int("bits", bits),
				zap.Int("attempts", attempt),
				zap.String("prime", candidate.String()))
			return candidate, nil
		}
	}
	return nil, errors.Wrapf(ErrPrimeSearchExhausted, "%d attempts at %d bits", g.opts.MaxPrimeAttempts, bits)
}

// candidate fills buf from the reader and shapes it into an odd integer with
// the top bit set.
func (g *Generator) candidate(bits int, buf []byte) (*big.Int, error) {
	if _, err := io.ReadFull(g.opts.Rand, buf); err != nil {
		return nil, errors.Wrap(err, "failed to read random bytes")
	}
	// Drop excess high bits of the leading byte.
	if extra := len(buf)*8 - bits; extra > 0 {
		buf[0] &= byte(0xFF >> extra)
	}
	c := new(big.Int).SetBytes(buf)
	c.SetBit(c, bits-1, 1)
	c.SetBit(c, 0, 1)
	return c, nil
}

// GenerateKeyPair draws two distinct bits-bit primes and derives the key
// pair from them.
func (g *Generator) GenerateKeyPair(bits int) (*KeyPair, error) {
	if bits < 2 {
		return nil, errors.Wrapf(ErrInvalidBits, "%d bits", bits)
	}

	p, err := g.generatePrime(bits, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate p")
	}
	q, err := g.generatePrime(bits, p)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate q")
	}

	kp, err := FromPrimes(p, q, nil)
	if err != nil {
		return nil, err
	}
	g.logger.Debug("key pair generated",
		zap.Int("bits", bits),
		zap.String("n", kp.N.String()),
		zap.String("e", kp.E.String()))
	return kp, nil
}

var defaultGenerator = NewGenerator(DefaultOptions())

// GeneratePrime draws a bits-bit probable prime with the default options.
func GeneratePrime(bits int) (*big.Int, error) {
	return defaultGenerator.GeneratePrime(bits)
}

// GenerateKeyPair builds an RSA key pair from two distinct bits-bit primes
// with the default options.
func GenerateKeyPair(bits int) (*KeyPair, error) {
	return defaultGenerator.GenerateKeyPair(bits)
}
