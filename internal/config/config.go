// Package config resolves attacksim settings from defaults, an optional
// config file, ATTACKSIM_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g.
// ATTACKSIM_FACTOR_MAX_ITERATIONS.
const EnvPrefix = "ATTACKSIM"

// Configuration keys.
const (
	KeyLogLevel             = "log.level"
	KeyLogFormat            = "log.format"
	KeyRSABits              = "rsa.bits"
	KeyRSARounds            = "rsa.rounds"
	KeyRSAMaxPrimeAttempts  = "rsa.max_prime_attempts"
	KeyFactorMethod         = "factor.method"
	KeyFactorMaxIterations  = "factor.max_iterations"
	KeyECDLPMaxIterations   = "ecdlp.max_iterations"
	KeyECDLPMaxAttempts     = "ecdlp.max_attempts"
	KeyECDLPExhaustiveBound = "ecdlp.exhaustive_bound"
	KeyWeakKeyBound         = "weakkey.bound"
)

// Config is the resolved configuration.
type Config struct {
	Log     LogConfig
	RSA     RSAConfig
	Factor  FactorConfig
	ECDLP   ECDLPConfig
	WeakKey WeakKeyConfig
}

type LogConfig struct {
	Level  string
	Format string
}

type RSAConfig struct {
	Bits             int
	Rounds           int
	MaxPrimeAttempts int
}

type FactorConfig struct {
	Method        string
	MaxIterations int
}

type ECDLPConfig struct {
	MaxIterations   int
	MaxAttempts     int
	ExhaustiveBound int64
}

type WeakKeyConfig struct {
	Bound uint64
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Log:     LogConfig{Level: "info", Format: "console"},
		RSA:     RSAConfig{Bits: 32, Rounds: 20, MaxPrimeAttempts: 100000},
		Factor:  FactorConfig{Method: "smart", MaxIterations: 1000000},
		ECDLP:   ECDLPConfig{MaxIterations: 0, MaxAttempts: 3, ExhaustiveBound: 100},
		WeakKey: WeakKeyConfig{Bound: 1 << 20},
	}
}

// New returns a viper instance carrying the defaults and environment
// bindings.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault(KeyLogLevel, d.Log.Level)
	v.SetDefault(KeyLogFormat, d.Log.Format)
	v.SetDefault(KeyRSABits, d.RSA.Bits)
	v.SetDefault(KeyRSARounds, d.RSA.Rounds)
	v.SetDefault(KeyRSAMaxPrimeAttempts, d.RSA.MaxPrimeAttempts)
	v.SetDefault(KeyFactorMethod, d.Factor.Method)
	v.SetDefault(KeyFactorMaxIterations, d.Factor.MaxIterations)
	v.SetDefault(KeyECDLPMaxIterations, d.ECDLP.MaxIterations)
	v.SetDefault(KeyECDLPMaxAttempts, d.ECDLP.MaxAttempts)
	v.SetDefault(KeyECDLPExhaustiveBound, d.ECDLP.ExhaustiveBound)
	v.SetDefault(KeyWeakKeyBound, d.WeakKey.Bound)
	return v
}

// BindFlags binds each config key to the named flag of fs. Flags missing
// from fs are skipped.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet, bindings map[string]string) error {
	for key, name := range bindings {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return errors.Wrapf(err, "binding flag --%s", name)
		}
	}
	return nil
}

// Load reads the optional config file at path into v and resolves the
// result.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "reading config file %s", path)
		}
	}
	return Resolve(v), nil
}

// Resolve reads the current values out of v.
func Resolve(v *viper.Viper) Config {
	return Config{
		Log: LogConfig{
			Level:  v.GetString(KeyLogLevel),
			Format: v.GetString(KeyLogFormat),
		},
		RSA: RSAConfig{
			Bits:             v.GetInt(KeyRSABits),
			Rounds:           v.GetInt(KeyRSARounds),
			MaxPrimeAttempts: v.GetInt(KeyRSAMaxPrimeAttempts),
		},
		Factor: FactorConfig{
			Method:        v.GetString(KeyFactorMethod),
			MaxIterations: v.GetInt(KeyFactorMaxIterations),
		},
		ECDLP: ECDLPConfig{
			MaxIterations:   v.GetInt(KeyECDLPMaxIterations),
			MaxAttempts:     v.GetInt(KeyECDLPMaxAttempts),
			ExhaustiveBound: v.GetInt64(KeyECDLPExhaustiveBound),
		},
		WeakKey: WeakKeyConfig{
			Bound: v.GetUint64(KeyWeakKeyBound),
		},
	}
}
