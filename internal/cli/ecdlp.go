package cli

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/attacksim/internal/config"
	"github.com/mahdiidarabi/attacksim/internal/params"
	"github.com/mahdiidarabi/attacksim/internal/report"
	"github.com/mahdiidarabi/attacksim/pkg/ec"
	"github.com/mahdiidarabi/attacksim/pkg/ecdlp"
)

type ecdlpFlags struct {
	curve          curveFlags
	gx, gy, order  string
	secret, qx, qy string
}

func ecdlpCmd(a *app) *cobra.Command {
	var flags ecdlpFlags
	cmd := &cobra.Command{
		Use:   "ecdlp",
		Short: "Recover k from Q = kG with Pollard's rho",
		Long: `Recover k from Q = kG with Pollard's rho.

The target is either generated from --secret or given as --qx/--qy. Without
--gx/--gy the generator comes from the parameter file or, for small fields,
from enumerating the group.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			g, n, err := flags.generator()
			if err != nil {
				return err
			}

			var secret *big.Int
			var q ec.Point
			switch {
			case flags.secret != "":
				if secret, err = params.ParseBigInt(flags.secret); err != nil {
					return err
				}
				if q, err = ec.ScalarMult(new(big.Int).Mod(secret, n), g); err != nil {
					return err
				}
			case flags.qx != "" && flags.qy != "":
				if q, err = parsePoint(flags.qx, flags.qy, g.Curve()); err != nil {
					return errors.Wrap(err, "target")
				}
			default:
				return errors.New("need --secret or both --qx and --qy")
			}

			if err := report.WriteHeader(out, "ECDLP", map[string]string{
				"curve": g.Curve().String(),
				"G":     g.String(),
				"n":     n.String(),
				"Q":     q.String(),
			}); err != nil {
				return err
			}

			solver := ecdlp.NewSolver(ecdlp.Options{
				MaxIterations:   a.cfg.ECDLP.MaxIterations,
				MaxAttempts:     a.cfg.ECDLP.MaxAttempts,
				ExhaustiveBound: a.cfg.ECDLP.ExhaustiveBound,
			}).WithLogger(a.logger.Named("ecdlp"))

			res, err := solver.Solve(g, q, n)
			if err != nil {
				return err
			}
			if res == nil {
				fmt.Fprintln(out, "discrete logarithm not found within budget")
				return nil
			}
			fmt.Fprintf(out, "k = %s (%s, %d attempts, %s iterations, %s)\n",
				res.K, res.Method, res.Attempts, report.FormatCount(int64(res.Iterations)),
				report.FormatDuration(res.Elapsed))
			if secret != nil {
				match := new(big.Int).Sub(res.K, secret)
				fmt.Fprintf(out, "matches secret mod n: %t\n", match.Mod(match, n).Sign() == 0)
			}
			return nil
		},
	}

	fs := cmd.Flags()
	flags.curve.register(fs)
	fs.StringVar(&flags.gx, "gx", "", "Generator x")
	fs.StringVar(&flags.gy, "gy", "", "Generator y")
	fs.StringVar(&flags.order, "order", "", "Order of the generator (default: computed)")
	fs.StringVar(&flags.secret, "secret", "", "Secret k used to build Q = kG")
	fs.StringVar(&flags.qx, "qx", "", "Target x")
	fs.StringVar(&flags.qy, "qy", "", "Target y")

	d := config.Defaults().ECDLP
	fs.Int("max-iterations", d.MaxIterations, "Steps per walk (0 = max(4·√n, 1000))")
	fs.Int("max-attempts", d.MaxAttempts, "Walks with fresh random starts")
	fs.Int64("exhaustive-bound", d.ExhaustiveBound, "Exhaustive fallback limit (negative disables)")
	a.bind(fs, map[string]string{
		config.KeyECDLPMaxIterations:   "max-iterations",
		config.KeyECDLPMaxAttempts:     "max-attempts",
		config.KeyECDLPExhaustiveBound: "exhaustive-bound",
	})
	return cmd
}

// generator resolves G and a multiple n of its order.
func (f *ecdlpFlags) generator() (ec.Point, *big.Int, error) {
	spec, err := f.curve.spec()
	if err != nil {
		return ec.Point{}, nil, err
	}
	if f.gx != "" || f.gy != "" {
		if f.gx == "" || f.gy == "" {
			return ec.Point{}, nil, errors.Wrap(params.ErrMissingField, "need both --gx and --gy")
		}
		if spec.Gx, err = params.ParseBigInt(f.gx); err != nil {
			return ec.Point{}, nil, err
		}
		if spec.Gy, err = params.ParseBigInt(f.gy); err != nil {
			return ec.Point{}, nil, err
		}
		spec.Order = nil
	}
	if f.order != "" {
		if spec.Order, err = params.ParseBigInt(f.order); err != nil {
			return ec.Point{}, nil, err
		}
	}

	p, err := spec.Build()
	if err != nil {
		return ec.Point{}, nil, err
	}
	c := p.Curve

	if p.Generator == nil {
		g, order, err := c.FindGenerator()
		if err != nil {
			return ec.Point{}, nil, errors.Wrap(err, "no generator given")
		}
		return g, order, nil
	}

	g := *p.Generator
	if p.Order != nil {
		return g, p.Order, nil
	}
	total, err := c.Order()
	if err != nil {
		return ec.Point{}, nil, errors.Wrap(err, "no order given")
	}
	order, err := ec.PointOrder(g, total)
	if err != nil {
		return ec.Point{}, nil, err
	}
	return g, order, nil
}

func parsePoint(xs, ys string, c *ec.Curve) (ec.Point, error) {
	x, err := params.ParseBigInt(xs)
	if err != nil {
		return ec.Point{}, err
	}
	y, err := params.ParseBigInt(ys)
	if err != nil {
		return ec.Point{}, err
	}
	return ec.NewPoint(x, y, c)
}
