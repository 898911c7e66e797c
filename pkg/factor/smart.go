package factor

import (
	"math/big"
	"time"

	"go.uber.org/zap"

	"github.com/mahdiidarabi/attacksim/pkg/modarith"
)

// SmartConfig sets the per-phase budgets of a SmartStrategy.
type SmartConfig struct {
	// TrialLimit caps the trial division phase (catches small factors).
	TrialLimit int

	// FermatIterations bounds the Fermat phase (catches close factors).
	FermatIterations int

	// RhoIterations bounds the Pollard's rho phase.
	RhoIterations int

	// PrimalityRounds is used to skip all phases when n is prime (0 = never skip).
	PrimalityRounds int
}

// DefaultSmartConfig returns a sensible default configuration.
func DefaultSmartConfig() SmartConfig {
	return SmartConfig{
		TrialLimit:       10000,
		FermatIterations: 100000,
		RhoIterations:    DefaultMaxIterations,
		PrimalityRounds:  20,
	}
}

// SmartStrategy runs the cheap attacks first and falls through to
// Pollard's rho.
type SmartStrategy struct {
	Config SmartConfig
	logger *zap.Logger
}

// NewSmartStrategy creates a new smart strategy with default settings.
func NewSmartStrategy() *SmartStrategy {
	return &SmartStrategy{
		Config: DefaultSmartConfig(),
		logger: zap.NewNop(),
	}
}

// WithConfig sets the phase budgets.
func (s *SmartStrategy) WithConfig(config SmartConfig) *SmartStrategy {
	s.Config = config
	return s
}

// WithLogger sets the logger used to report phase progress.
func (s *SmartStrategy) WithLogger(logger *zap.Logger) *SmartStrategy {
	s.logger = logger
	return s
}

// Name returns the name of this strategy.
func (s *SmartStrategy) Name() string {
	return string(Smart)
}

// Factor implements the Strategy interface.
func (s *SmartStrategy) Factor(n *big.Int) *Result {
	start := time.Now()
	log := s.logger.With(zap.String("n", n.String()))

	if s.Config.PrimalityRounds > 0 && modarith.IsProbablePrime(n, s.Config.PrimalityRounds) {
		log.Info("modulus is prime, nothing to factor")
		return nil
	}

	phases := []Strategy{
		&TrialDivisionStrategy{Limit: s.Config.TrialLimit},
		&FermatStrategy{MaxIterations: s.Config.FermatIterations},
		NewPollardRhoStrategy(s.Config.RhoIterations),
	}

	for i, phase := range phases {
		log.Info("starting phase", zap.Int("phase", i+1), zap.String("method", phase.Name()))
		if res := phase.Factor(n); res != nil {
			log.Info("factor found",
				zap.String("method", phase.Name()),
				zap.String("p", res.P.String()),
				zap.String("q", res.Q.String()),
				zap.Int("iterations", res.Iterations))
			res.Elapsed = time.Since(start)
			return res
		}
		log.Info("phase exhausted its budget", zap.String("method", phase.Name()))
	}

	log.Info("all phases completed, no factor found")
	return nil
}
