package cli

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/attacksim/internal/config"
	"github.com/mahdiidarabi/attacksim/internal/params"
	"github.com/mahdiidarabi/attacksim/internal/report"
	"github.com/mahdiidarabi/attacksim/pkg/factor"
)

func factorCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "factor N",
		Short: "Factor a composite modulus",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			n, err := params.ParseBigInt(args[0])
			if err != nil {
				return err
			}
			if n.Cmp(bigTwo) < 0 {
				return errors.Wrapf(factor.ErrInvalidModulus, "n=%s", n)
			}
			method, err := factor.ParseMethod(a.cfg.Factor.Method)
			if err != nil {
				return err
			}

			strategy, err := factor.NewStrategy(method, a.cfg.Factor.MaxIterations)
			if err != nil {
				return err
			}
			if s, ok := strategy.(*factor.SmartStrategy); ok {
				s.WithLogger(a.logger.Named("factor"))
			}

			res := strategy.Factor(n)
			if res == nil {
				fmt.Fprintf(out, "no factor of %s found with %s\n", n, strategy.Name())
				return nil
			}
			fmt.Fprintf(out, "%s = %s × %s\n", n, res.P, res.Q)
			fmt.Fprintf(out, "method %s, %s iterations, %s\n",
				res.Method, report.FormatCount(int64(res.Iterations)), report.FormatDuration(res.Elapsed))
			return nil
		},
	}
	cmd.Flags().String("method", config.Defaults().Factor.Method, "trial, fermat, rho or smart")
	cmd.Flags().Int("max-iterations", config.Defaults().Factor.MaxIterations, "Iteration budget (trial division: divisor cap)")
	a.bind(cmd.Flags(), map[string]string{
		config.KeyFactorMethod:        "method",
		config.KeyFactorMaxIterations: "max-iterations",
	})
	return cmd
}
