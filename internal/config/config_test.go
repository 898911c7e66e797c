package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attacksim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
factor:
  method: rho
  max_iterations: 500
ecdlp:
  exhaustive_bound: -1
`), 0o600))

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "rho", cfg.Factor.Method)
	assert.Equal(t, 500, cfg.Factor.MaxIterations)
	assert.Equal(t, int64(-1), cfg.ECDLP.ExhaustiveBound)
	assert.Equal(t, 3, cfg.ECDLP.MaxAttempts)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("ATTACKSIM_FACTOR_MAX_ITERATIONS", "1234")
	t.Setenv("ATTACKSIM_WEAKKEY_BOUND", "99")

	cfg := Resolve(New())
	assert.Equal(t, 1234, cfg.Factor.MaxIterations)
	assert.Equal(t, uint64(99), cfg.WeakKey.Bound)
}

func TestFlagsTakePrecedence(t *testing.T) {
	t.Setenv("ATTACKSIM_ECDLP_MAX_ATTEMPTS", "7")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("max-attempts", 3, "")
	fs.Int("unused", 0, "")

	v := New()
	require.NoError(t, BindFlags(v, fs, map[string]string{
		KeyECDLPMaxAttempts: "max-attempts",
		KeyRSABits:          "missing-flag",
	}))

	// Unset flag: the environment wins over the flag default.
	assert.Equal(t, 7, Resolve(v).ECDLP.MaxAttempts)

	require.NoError(t, fs.Parse([]string{"--max-attempts", "11"}))
	assert.Equal(t, 11, Resolve(v).ECDLP.MaxAttempts)
}
