package cli

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/mahdiidarabi/attacksim/internal/params"
	"github.com/mahdiidarabi/attacksim/pkg/ec"
)

var bigTwo = big.NewInt(2)

// curveFlags selects a curve either inline or from a parameter file.
type curveFlags struct {
	a, b, p string
	name    string
	file    string
	entry   string
}

func (f *curveFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.a, "a", "", "Coefficient a")
	fs.StringVar(&f.b, "b", "", "Coefficient b")
	fs.StringVar(&f.p, "p", "", "Field prime p")
	fs.StringVar(&f.name, "name", "", "Curve name")
	fs.StringVar(&f.file, "curve-file", "", "JSON or CSV file of curve parameters")
	fs.StringVar(&f.entry, "curve", "", "Curve name within --curve-file")
}

// spec returns the selected parameter set.
func (f *curveFlags) spec() (params.CurveSpec, error) {
	if f.file != "" {
		var parser params.CurveParser = &params.JSONParser{}
		if hasSuffixFold(f.file, ".csv") {
			parser = &params.CSVParser{}
		}
		specs, err := parser.ParseCurves(f.file)
		if err != nil {
			return params.CurveSpec{}, err
		}
		if f.entry == "" {
			if len(specs) != 1 {
				return params.CurveSpec{}, errors.Errorf("%s holds %d curves, select one with --curve", f.file, len(specs))
			}
			return specs[0], nil
		}
		return params.Find(specs, f.entry)
	}

	if f.a == "" || f.b == "" || f.p == "" {
		return params.CurveSpec{}, errors.Wrap(params.ErrMissingField, "need --a, --b and --p, or --curve-file")
	}
	spec := params.CurveSpec{Name: f.name}
	for _, field := range []struct {
		raw string
		dst **big.Int
	}{{f.a, &spec.A}, {f.b, &spec.B}, {f.p, &spec.P}} {
		v, err := params.ParseBigInt(field.raw)
		if err != nil {
			return params.CurveSpec{}, err
		}
		*field.dst = v
	}
	return spec, nil
}

func hasSuffixFold(s, suffix string) bool {
	return strings.HasSuffix(strings.ToLower(s), suffix)
}

func curveCmd(a *app) *cobra.Command {
	var flags curveFlags
	cmd := &cobra.Command{
		Use:   "curve",
		Short: "Validate a curve and report its group order and a generator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			spec, err := flags.spec()
			if err != nil {
				return err
			}
			p, err := spec.Build()
			if err != nil {
				return err
			}
			c := p.Curve
			fmt.Fprintf(out, "%s\n", c)
			fmt.Fprintf(out, "discriminant = %s\n", c.Discriminant())

			n, err := c.Order()
			if errors.Is(err, ec.ErrTooLarge) {
				fmt.Fprintln(out, "field too large to enumerate points")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "#E = %s\n", n)

			g, order, err := c.FindGenerator()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "G = %s of order %s", g, order)
			if order.Cmp(n) == 0 {
				fmt.Fprint(out, " (cyclic group)")
			}
			fmt.Fprintln(out)
			a.logger.Debug("curve inspected", zap.Stringer("curve", c), zap.String("order", n.String()))
			return nil
		},
	}
	flags.register(cmd.Flags())
	return cmd
}
