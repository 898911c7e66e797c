package ecdlp

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mahdiidarabi/attacksim/pkg/ec"
)

// toyCurve is y² = x³ + 2x + 3 over F₉₇: 100 points, not cyclic.
func toyCurve(t *testing.T) *ec.Curve {
	t.Helper()
	c, err := ec.NewCurve(big.NewInt(2), big.NewInt(3), big.NewInt(97), "toy97")
	require.NoError(t, err)
	return c
}

// primeCurve is y² = x³ + 3x + 5 over F₁₀₁₃ with prime order 1033.
func primeCurve(t *testing.T) (*ec.Curve, ec.Point, *big.Int) {
	t.Helper()
	c, err := ec.NewCurve(big.NewInt(3), big.NewInt(5), big.NewInt(1013), "prime1013")
	require.NoError(t, err)
	g, err := ec.NewPoint(big.NewInt(1), big.NewInt(3), c)
	require.NoError(t, err)
	n, err := c.Order()
	require.NoError(t, err)
	require.Equal(t, int64(1033), n.Int64())
	return c, g, n
}

func mult(t *testing.T, k int64, p ec.Point) ec.Point {
	t.Helper()
	q, err := ec.ScalarMult(big.NewInt(k), p)
	require.NoError(t, err)
	return q
}

func seeded(seed int64) Options {
	opts := DefaultOptions()
	opts.Rand = rand.New(rand.NewSource(seed))
	return opts
}

func TestSolveToyCurve(t *testing.T) {
	c := toyCurve(t)
	g, _, err := c.FindGenerator()
	require.NoError(t, err)
	n, err := c.Order()
	require.NoError(t, err)
	require.Equal(t, int64(100), n.Int64())

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		k := 2 + rng.Int63n(n.Int64()-2)
		q := mult(t, k, g)

		solver := NewSolver(seeded(int64(i)))
		res, err := solver.Solve(g, q, n)
		require.NoError(t, err)
		require.NotNil(t, res, "k=%d", k)

		got, err := ec.ScalarMult(res.K, g)
		require.NoError(t, err)
		assert.True(t, got.Equal(q), "k=%d recovered %s", k, res.K)
		assert.Contains(t, []string{MethodPollardRho, MethodExhaustive, MethodTrivial}, res.Method)
	}
}

func TestSolvePackageLevel(t *testing.T) {
	c := toyCurve(t)
	g, _, err := c.FindGenerator()
	require.NoError(t, err)
	q := mult(t, 23, g)

	res, err := Solve(g, q, big.NewInt(100), 0, 3)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, mult(t, res.K.Int64(), g).Equal(q))
}

func TestSolveRhoOnlyPrimeOrder(t *testing.T) {
	_, g, n := primeCurve(t)

	rng := rand.New(rand.NewSource(11))
	solved := 0
	const trials = 30
	for i := 0; i < trials; i++ {
		k := 2 + rng.Int63n(n.Int64()-2)
		q := mult(t, k, g)

		opts := seeded(int64(100 + i))
		opts.ExhaustiveBound = -1
		opts.MaxAttempts = 10
		res, err := NewSolver(opts).Solve(g, q, n)
		require.NoError(t, err)
		if res == nil {
			continue
		}
		solved++
		assert.Equal(t, MethodPollardRho, res.Method)
		assert.Equal(t, k, res.K.Int64())
		assert.GreaterOrEqual(t, res.Attempts, 1)
		assert.Positive(t, res.Iterations)
	}
	assert.GreaterOrEqual(t, solved, trials*9/10)
}

func TestSolveTrivialTargets(t *testing.T) {
	c, g, n := primeCurve(t)

	res, err := NewSolver(seeded(1)).Solve(g, c.Identity(), n)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, int64(0), res.K.Int64())
	assert.Equal(t, MethodTrivial, res.Method)

	res, err = NewSolver(seeded(1)).Solve(g, g, n)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, int64(1), res.K.Int64())
}

func TestSolveRejectsBadInput(t *testing.T) {
	c, g, n := primeCurve(t)
	q := mult(t, 5, g)
	solver := NewSolver(seeded(1))

	_, err := solver.Solve(g, q, big.NewInt(1))
	assert.ErrorIs(t, err, ErrInvalidOrder)

	_, err = solver.Solve(g, q, nil)
	assert.ErrorIs(t, err, ErrInvalidOrder)

	// 1032 does not annihilate a point of prime order 1033.
	_, err = solver.Solve(g, q, new(big.Int).Sub(n, big.NewInt(1)))
	assert.ErrorIs(t, err, ErrInvalidOrder)

	_, err = solver.Solve(c.Identity(), q, n)
	assert.ErrorIs(t, err, ErrIdentityBase)

	other := toyCurve(t)
	og, _, err := other.FindGenerator()
	require.NoError(t, err)
	_, err = solver.Solve(g, og, n)
	assert.ErrorIs(t, err, ec.ErrCurveMismatch)

	_, err = solver.Solve(ec.Point{}, q, n)
	assert.ErrorIs(t, err, ec.ErrPointNotOnCurve)
}

func TestSolveGivesUpWithoutError(t *testing.T) {
	_, g, n := primeCurve(t)
	q := mult(t, 777, g)

	opts := seeded(3)
	opts.MaxIterations = 1
	opts.MaxAttempts = 1
	opts.ExhaustiveBound = -1
	res, err := NewSolver(opts).Solve(g, q, n)
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestExhaustiveFallback(t *testing.T) {
	_, g, n := primeCurve(t)
	q := mult(t, 42, g)

	opts := seeded(5)
	opts.MaxIterations = 1
	opts.MaxAttempts = 1
	res, err := NewSolver(opts).Solve(g, q, n)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, MethodExhaustive, res.Method)
	assert.Equal(t, int64(42), res.K.Int64())

	// k beyond the bound stays unsolved.
	q = mult(t, 420, g)
	res, err = NewSolver(opts).Solve(g, q, n)
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestResolveDivisorCandidates(t *testing.T) {
	c := toyCurve(t)
	g, order, err := c.FindGenerator()
	require.NoError(t, err)
	require.Equal(t, int64(50), order.Int64())

	q := mult(t, 7, g)
	w := &walk{p: g, q: q, n: big.NewInt(100)}
	st := func(a, b int64) state { return state{a: big.NewInt(a), b: big.NewInt(b)} }

	s := NewSolver(seeded(1))

	// 2k ≡ 14 (mod 100) has the solutions 7 and 57; 7 verifies.
	k, err := s.resolve(w, st(14, 0), st(0, 2))
	require.NoError(t, err)
	require.NotNil(t, k)
	assert.Equal(t, int64(7), k.Int64())

	// 2 does not divide 15, so there is no solution.
	k, err = s.resolve(w, st(15, 0), st(0, 2))
	require.NoError(t, err)
	assert.Nil(t, k)

	// db = 0 carries no information.
	k, err = s.resolve(w, st(14, 3), st(0, 3))
	require.NoError(t, err)
	assert.Nil(t, k)

	limited := seeded(1)
	limited.MaxDivisorCandidates = 1
	k, err = NewSolver(limited).resolve(w, st(14, 0), st(0, 2))
	require.NoError(t, err)
	assert.Nil(t, k)
}

func TestResolveRejectsUnverifiedCandidate(t *testing.T) {
	_, g, n := primeCurve(t)
	q := mult(t, 9, g)
	w := &walk{p: g, q: q, n: n}

	// Claims k = 3, which does not satisfy 3·P = Q.
	k, err := NewSolver(seeded(1)).resolve(w,
		state{a: big.NewInt(3), b: big.NewInt(0)},
		state{a: big.NewInt(0), b: big.NewInt(1)})
	require.NoError(t, err)
	assert.Nil(t, k)
}

func TestPartition(t *testing.T) {
	c, g, _ := primeCurve(t)
	assert.Equal(t, 0, partition(c.Identity()))
	assert.Equal(t, 1, partition(g)) // x = 1
}

func TestWalkStepKeepsRepresentation(t *testing.T) {
	_, g, n := primeCurve(t)
	const k = 321
	q := mult(t, k, g)
	w := &walk{p: g, q: q, n: n}

	s, err := w.start(big.NewInt(17), big.NewInt(29))
	require.NoError(t, err)
	for i := 0; i < 200; i++ {
		s, err = w.step(s)
		require.NoError(t, err)

		// R = aP + bQ = (a + b·k)P
		e := new(big.Int).Mul(s.b, big.NewInt(k))
		e.Add(e, s.a).Mod(e, n)
		want, err := ec.ScalarMult(e, g)
		require.NoError(t, err)
		require.True(t, want.Equal(s.r), "step %d", i)
	}
}

func TestIterationBudget(t *testing.T) {
	var o Options
	assert.Equal(t, minBudget, o.iterations(big.NewInt(100)))
	assert.Equal(t, 4000, o.iterations(big.NewInt(1000000)))
	o.MaxIterations = 12
	assert.Equal(t, 12, o.iterations(big.NewInt(1000000)))
	huge := new(big.Int).Lsh(big.NewInt(1), 200)
	assert.Equal(t, maxBudget, Options{}.iterations(huge))
}

func TestSolverLogsOutcome(t *testing.T) {
	_, g, n := primeCurve(t)
	q := mult(t, 500, g)

	core, logs := observer.New(zap.InfoLevel)
	opts := seeded(9)
	opts.MaxAttempts = 20
	res, err := NewSolver(opts).WithLogger(zap.New(core)).Solve(g, q, n)
	require.NoError(t, err)
	require.NotNil(t, res)

	found := logs.FilterMessage("discrete logarithm found").All()
	require.Len(t, found, 1)
	assert.Equal(t, "500", found[0].ContextMap()["k"])
}
