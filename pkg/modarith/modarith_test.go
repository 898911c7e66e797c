package modarith

import (
	"errors"
	"math/big"
	mrand "math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bi(v int64) *big.Int { return big.NewInt(v) }

func TestExtendedGCD(t *testing.T) {
	cases := []struct {
		a, b, g int64
	}{
		{240, 46, 2},
		{46, 240, 2},
		{17, 5, 1},
		{0, 9, 9},
		{9, 0, 9},
		{-12, 18, 6},
		{1, 1, 1},
	}

	for _, tc := range cases {
		g, x, y := ExtendedGCD(bi(tc.a), bi(tc.b))
		assert.Equal(t, tc.g, g.Int64(), "gcd(%d, %d)", tc.a, tc.b)

		// a*x + b*y == g
		lhs := new(big.Int).Mul(bi(tc.a), x)
		lhs.Add(lhs, new(big.Int).Mul(bi(tc.b), y))
		assert.Equal(t, 0, lhs.Cmp(g), "Bézout identity for (%d, %d)", tc.a, tc.b)
	}
}

func TestExtendedGCD_DoesNotMutateInputs(t *testing.T) {
	a, b := bi(99), bi(78)
	ExtendedGCD(a, b)
	assert.Equal(t, int64(99), a.Int64())
	assert.Equal(t, int64(78), b.Int64())
}

func TestExtendedGCD_LargeOperands(t *testing.T) {
	a, _ := new(big.Int).SetString("170141183460469231731687303715884105727", 10) // 2^127 - 1
	b, _ := new(big.Int).SetString("618970019642690137449562111", 10)             // 2^89 - 1

	g, x, y := ExtendedGCD(a, b)
	require.Equal(t, int64(1), g.Int64())

	lhs := new(big.Int).Mul(a, x)
	lhs.Add(lhs, new(big.Int).Mul(b, y))
	assert.Equal(t, 0, lhs.Cmp(g))
}

func TestModInverse(t *testing.T) {
	for m := int64(2); m < 60; m++ {
		for a := int64(-m); a < 2*m; a++ {
			inv, err := ModInverse(bi(a), bi(m))
			if GCD(bi(a), bi(m)).Int64() != 1 {
				assert.True(t, errors.Is(err, ErrNoInverse), "a=%d m=%d", a, m)
				continue
			}
			require.NoError(t, err, "a=%d m=%d", a, m)
			assert.True(t, inv.Sign() >= 0 && inv.Cmp(bi(m)) < 0, "inverse out of range")

			check := new(big.Int).Mul(inv, bi(a))
			check.Mod(check, bi(m))
			assert.Equal(t, int64(1), check.Int64(), "a=%d m=%d inv=%s", a, m, inv)
		}
	}
}

func TestModInverse_NoInverse(t *testing.T) {
	_, err := ModInverse(bi(6), bi(9))
	assert.ErrorIs(t, err, ErrNoInverse)

	_, err = ModInverse(bi(0), bi(7))
	assert.ErrorIs(t, err, ErrNoInverse)

	_, err = ModInverse(bi(3), bi(1))
	assert.ErrorIs(t, err, ErrNoInverse)
}

func TestIsProbablePrime_SmallValues(t *testing.T) {
	primes := map[int64]bool{}
	for _, p := range []int64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59, 61, 67, 71, 73, 79, 83, 89, 97} {
		primes[p] = true
	}

	for n := int64(-5); n < 100; n++ {
		assert.Equal(t, primes[n], IsProbablePrime(bi(n), 20), "n=%d", n)
	}
}

func TestIsProbablePrime_Carmichael(t *testing.T) {
	for _, n := range []int64{561, 1105, 1729, 2465, 2821, 6601, 8911, 41041} {
		assert.False(t, IsProbablePrime(bi(n), 20), "Carmichael number %d reported prime", n)
	}
}

func TestIsProbablePrime_Large(t *testing.T) {
	mersenne127, _ := new(big.Int).SetString("170141183460469231731687303715884105727", 10)
	assert.True(t, IsProbablePrime(mersenne127, 20))

	composite := new(big.Int).Mul(mersenne127, big.NewInt(1000003))
	assert.False(t, IsProbablePrime(composite, 20))
}

func TestIsProbablePrimeRand_Deterministic(t *testing.T) {
	r := mrand.New(mrand.NewSource(7))
	assert.True(t, IsProbablePrimeRand(bi(7919), 10, r))
	assert.False(t, IsProbablePrimeRand(bi(7917), 10, r))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy unavailable") }

func TestIsProbablePrimeRand_ReaderFailure(t *testing.T) {
	assert.False(t, IsProbablePrimeRand(bi(7919), 5, failingReader{}))
	// Trivial cases never touch the reader.
	assert.True(t, IsProbablePrimeRand(bi(3), 5, failingReader{}))
}

func TestSquareRoots(t *testing.T) {
	assert.Equal(t, int64(0), ISqrt(bi(0)).Int64())
	assert.Equal(t, int64(3), ISqrt(bi(15)).Int64())
	assert.Equal(t, int64(4), ISqrt(bi(16)).Int64())

	assert.Equal(t, int64(4), CeilSqrt(bi(15)).Int64())
	assert.Equal(t, int64(4), CeilSqrt(bi(16)).Int64())
	assert.Equal(t, int64(5), CeilSqrt(bi(17)).Int64())

	root, ok := IsSquare(bi(144))
	require.True(t, ok)
	assert.Equal(t, int64(12), root.Int64())

	_, ok = IsSquare(bi(145))
	assert.False(t, ok)
	_, ok = IsSquare(bi(-4))
	assert.False(t, ok)
}

func TestRandInt(t *testing.T) {
	r := mrand.New(mrand.NewSource(1))
	for i := 0; i < 200; i++ {
		v, err := RandInt(r, bi(5), bi(9))
		require.NoError(t, err)
		assert.True(t, v.Cmp(bi(5)) >= 0 && v.Cmp(bi(9)) <= 0, "value %s out of range", v)
	}

	_, err := RandInt(r, bi(10), bi(9))
	assert.Error(t, err)
}
