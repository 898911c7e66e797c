package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/attacksim/internal/config"
	"github.com/mahdiidarabi/attacksim/internal/report"
	"github.com/mahdiidarabi/attacksim/pkg/factor"
	"github.com/mahdiidarabi/attacksim/pkg/rsakey"
)

func keygenCmd(a *app) *cobra.Command {
	var attack bool
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a small RSA key pair, optionally breaking it by factoring n",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			gen := rsakey.NewGenerator(rsakey.Options{
				Rounds:           a.cfg.RSA.Rounds,
				MaxPrimeAttempts: a.cfg.RSA.MaxPrimeAttempts,
			}).WithLogger(a.logger.Named("rsakey"))

			start := time.Now()
			kp, err := gen.GenerateKeyPair(a.cfg.RSA.Bits)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "p   = %s\nq   = %s\nn   = %s\nphi = %s\ne   = %s\nd   = %s\n",
				kp.P, kp.Q, kp.N, kp.Phi, kp.E, kp.D)
			fmt.Fprintf(out, "generated in %s\n", report.FormatDuration(time.Since(start)))

			if !attack {
				return nil
			}
			return breakKey(a, cmd, kp)
		},
	}
	cmd.Flags().Int("bits", config.Defaults().RSA.Bits, "Bit length of each prime")
	cmd.Flags().BoolVar(&attack, "attack", false, "Factor n and recover d from the public key alone")
	a.bind(cmd.Flags(), map[string]string{config.KeyRSABits: "bits"})
	return cmd
}

// breakKey recovers the private exponent of kp from (n, e) by factoring.
func breakKey(a *app, cmd *cobra.Command, kp *rsakey.KeyPair) error {
	out := cmd.OutOrStdout()
	pub := kp.Public()

	strategy := factor.NewSmartStrategy().WithLogger(a.logger.Named("factor"))
	res := strategy.Factor(pub.N)
	if res == nil {
		fmt.Fprintln(out, "attack failed: n was not factored within budget")
		return nil
	}

	recovered, err := rsakey.FromPrimes(res.P, res.Q, pub.E)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "factored n with %s in %s (%s iterations)\n",
		res.Method, report.FormatDuration(res.Elapsed), report.FormatCount(int64(res.Iterations)))
	fmt.Fprintf(out, "recovered d = %s (match: %t)\n", recovered.D, recovered.D.Cmp(kp.D) == 0)
	return nil
}
