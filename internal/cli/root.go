// Package cli implements the attacksim command tree.
package cli

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mahdiidarabi/attacksim/internal/config"
	"github.com/mahdiidarabi/attacksim/internal/logging"
)

// app carries state shared by all subcommands once flags are parsed.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	logger  *zap.Logger
}

// NewRootCommand returns the attacksim command with all subcommands
// attached. Output goes to cmd.OutOrStdout, logs to cmd.ErrOrStderr.
func NewRootCommand() *cobra.Command {
	a := &app{v: config.New(), logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "attacksim",
		Short:         "Cryptanalytic attacks on deliberately small RSA and elliptic-curve parameters",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "YAML config file")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.String("log-format", "", "Log format (console or json)")
	a.bind(flags, map[string]string{
		config.KeyLogLevel:  "log-level",
		config.KeyLogFormat: "log-format",
	})

	root.AddCommand(
		keygenCmd(a),
		factorCmd(a),
		curveCmd(a),
		ecdlpCmd(a),
		weakkeyCmd(a),
	)
	return root
}

func (a *app) init(logOut io.Writer) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New("attacksim", logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Writer: logOut,
	})
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

// bind ties config keys to flags. The flag names are static, so a failure
// is a programming error.
func (a *app) bind(fs *pflag.FlagSet, bindings map[string]string) {
	if err := config.BindFlags(a.v, fs, bindings); err != nil {
		panic(err)
	}
}
