package ecdlp

import (
	"math/big"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/mahdiidarabi/attacksim/pkg/ec"
	"github.com/mahdiidarabi/attacksim/pkg/modarith"
)

// walkOutcome tags how a single walk ended.
type walkOutcome int

const (
	walkSolved walkOutcome = iota
	walkBudget
	walkAbsorbed
	walkNoInverse
)

func (o walkOutcome) String() string {
	switch o {
	case walkSolved:
		return "solved"
	case walkBudget:
		return "budget exhausted"
	case walkAbsorbed:
		return "absorbed by identity"
	case walkNoInverse:
		return "non-invertible denominator"
	default:
		return "unknown"
	}
}

// Solver runs Pollard's rho for the ECDLP.
type Solver struct {
	opts   Options
	logger *zap.Logger
}

// NewSolver creates a solver. Zero-valued option fields fall back to
// DefaultOptions.
func NewSolver(opts Options) *Solver {
	return &Solver{opts: opts.withDefaults(), logger: zap.NewNop()}
}

// WithLogger sets the logger used for attempt-level progress.
func (s *Solver) WithLogger(logger *zap.Logger) *Solver {
	s.logger = logger
	return s
}

// Solve finds k with k·P = Q using n as the group order.
func Solve(p, q ec.Point, order *big.Int, maxIterations, maxAttempts int) (*Result, error) {
	opts := DefaultOptions()
	opts.MaxIterations = maxIterations
	opts.MaxAttempts = maxAttempts
	return NewSolver(opts).Solve(p, q, order)
}

// Solve finds k with k·P = Q. n must be a multiple of the order of P
// (normally the curve order or the order of P itself).
//
// A nil result with a nil error means no logarithm was found within the
// budget. Errors report invalid input or a point-arithmetic fault other
// than a non-invertible denominator.
func (s *Solver) Solve(p, q ec.Point, n *big.Int) (*Result, error) {
	start := time.Now()
	if err := validate(p, q, n); err != nil {
		return nil, err
	}

	w := &walk{p: p, q: q, n: new(big.Int).Set(n)}
	log := s.logger.With(zap.String("order", n.String()))

	if q.IsIdentity() {
		return &Result{K: new(big.Int), Method: MethodTrivial, Elapsed: time.Since(start)}, nil
	}
	if q.Equal(p) {
		return &Result{K: big.NewInt(1), Method: MethodTrivial, Elapsed: time.Since(start)}, nil
	}

	maxIter := s.opts.iterations(n)
	total := 0
	for attempt := 1; attempt <= s.opts.MaxAttempts; attempt++ {
		k, steps, outcome, err := s.attempt(w, maxIter)
		total += steps
		if err != nil {
			return nil, err
		}
		log.Debug("rho walk finished",
			zap.Int("attempt", attempt),
			zap.Int("steps", steps),
			zap.Stringer("outcome", outcome))
		if outcome == walkSolved {
			log.Info("discrete logarithm found",
				zap.String("k", k.String()),
				zap.Int("attempts", attempt),
				zap.Int("iterations", total))
			return &Result{
				K:          k,
				Method:     MethodPollardRho,
				Attempts:   attempt,
				Iterations: total,
				Elapsed:    time.Since(start),
			}, nil
		}
	}

	if s.opts.ExhaustiveBound > 0 {
		k, tried, err := s.exhaustive(w)
		total += tried
		if err != nil {
			return nil, err
		}
		if k != nil {
			log.Info("discrete logarithm found by exhaustive search", zap.String("k", k.String()))
			return &Result{
				K:          k,
				Method:     MethodExhaustive,
				Attempts:   s.opts.MaxAttempts,
				Iterations: total,
				Elapsed:    time.Since(start),
			}, nil
		}
	}

	log.Info("discrete logarithm not found",
		zap.Int("attempts", s.opts.MaxAttempts),
		zap.Int("iterations", total))
	return nil, nil
}

func validate(p, q ec.Point, n *big.Int) error {
	if n == nil || n.Cmp(big.NewInt(2)) < 0 {
		return errors.Wrapf(ErrInvalidOrder, "n=%v", n)
	}
	if p.Curve() == nil || q.Curve() == nil {
		return errors.Wrap(ec.ErrPointNotOnCurve, "uninitialized point")
	}
	if !p.Curve().Equal(q.Curve()) {
		return errors.Wrapf(ec.ErrCurveMismatch, "%s vs %s", p.Curve(), q.Curve())
	}
	if p.IsIdentity() {
		return ErrIdentityBase
	}
	np, err := ec.ScalarMult(n, p)
	if err != nil {
		return err
	}
	if !np.IsIdentity() {
		return errors.Wrapf(ErrInvalidOrder, "%s·P != O", n)
	}
	return nil
}

// attempt runs one Floyd walk from a random start.
func (s *Solver) attempt(w *walk, maxIter int) (*big.Int, int, walkOutcome, error) {
	hi := new(big.Int).Sub(w.n, big.NewInt(1))
	x0, err := modarith.RandInt(s.opts.Rand, new(big.Int), hi)
	if err != nil {
		return nil, 0, 0, err
	}
	y0, err := modarith.RandInt(s.opts.Rand, new(big.Int), hi)
	if err != nil {
		return nil, 0, 0, err
	}

	abandon := func(steps int, err error) (*big.Int, int, walkOutcome, error) {
		outcome, err := s.classify(err)
		return nil, steps, outcome, err
	}

	tortoise, err := w.start(x0, y0)
	if err != nil {
		return abandon(0, err)
	}
	hare := tortoise

	for i := 1; i <= maxIter; i++ {
		if tortoise, err = w.step(tortoise); err != nil {
			return abandon(i, err)
		}
		if hare, err = w.step(hare); err != nil {
			return abandon(i, err)
		}
		if hare, err = w.step(hare); err != nil {
			return abandon(i, err)
		}

		if !tortoise.r.Equal(hare.r) {
			continue
		}
		if tortoise.r.IsIdentity() {
			// Both walkers sit on O, which doubles to itself forever.
			return nil, i, walkAbsorbed, nil
		}

		k, err := s.resolve(w, tortoise, hare)
		if err != nil {
			return nil, i, 0, err
		}
		if k != nil {
			return k, i, walkSolved, nil
		}
		// Uninformative collision: keep walking, the hare laps again.
	}
	return nil, maxIter, walkBudget, nil
}

// classify separates an expected non-invertible denominator, which only
// ends the current walk, from any other arithmetic fault.
func (s *Solver) classify(err error) (walkOutcome, error) {
	if errors.Is(err, modarith.ErrNoInverse) {
		s.logger.Debug("walk abandoned", zap.Error(err))
		return walkNoInverse, nil
	}
	return 0, errors.Wrap(err, "rho walk")
}

// resolve turns a collision a_t P + b_t Q = a_h P + b_h Q into k, or returns
// nil when the collision does not determine a verifiable k.
func (s *Solver) resolve(w *walk, t, h state) (*big.Int, error) {
	n := w.n
	da := new(big.Int).Sub(t.a, h.a)
	da.Mod(da, n)
	db := new(big.Int).Sub(h.b, t.b)
	db.Mod(db, n)
	if db.Sign() == 0 {
		return nil, nil
	}

	g := modarith.GCD(db, n)
	if g.Cmp(big.NewInt(1)) == 0 {
		inv, err := modarith.ModInverse(db, n)
		if err != nil {
			return nil, nil
		}
		k := inv.Mul(inv, da)
		k.Mod(k, n)
		return s.verified(w, k)
	}

	// db·k ≡ da (mod n) has g solutions when g | da.
	if new(big.Int).Mod(da, g).Sign() != 0 {
		return nil, nil
	}
	if !g.IsInt64() || g.Int64() > int64(s.opts.MaxDivisorCandidates) {
		return nil, nil
	}
	reduced := new(big.Int).Quo(n, g)
	inv, err := modarith.ModInverse(new(big.Int).Quo(db, g), reduced)
	if err != nil {
		return nil, nil
	}
	k0 := inv.Mul(inv, new(big.Int).Quo(da, g))
	k0.Mod(k0, reduced)

	for i := int64(0); i < g.Int64(); i++ {
		k := new(big.Int).Mul(big.NewInt(i), reduced)
		k.Add(k, k0)
		if found, err := s.verified(w, k); found != nil || err != nil {
			return found, err
		}
	}
	return nil, nil
}

func (s *Solver) verified(w *walk, k *big.Int) (*big.Int, error) {
	ok, err := w.verify(k)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return k, nil
}

// exhaustive tries k = 1, 2, ... below min(n, ExhaustiveBound).
func (s *Solver) exhaustive(w *walk) (*big.Int, int, error) {
	limit := big.NewInt(s.opts.ExhaustiveBound)
	if w.n.Cmp(limit) < 0 {
		limit.Set(w.n)
	}

	acc := w.p
	tried := 0
	var err error
	for k := int64(1); k < limit.Int64(); k++ {
		tried++
		if acc.Equal(w.q) {
			return big.NewInt(k), tried, nil
		}
		if acc, err = ec.Add(acc, w.p); err != nil {
			return nil, tried, errors.Wrap(err, "exhaustive search")
		}
	}
	return nil, tried, nil
}
