package cli

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mahdiidarabi/attacksim/internal/config"
	"github.com/mahdiidarabi/attacksim/internal/params"
	"github.com/mahdiidarabi/attacksim/internal/report"
	"github.com/mahdiidarabi/attacksim/pkg/weakkey"
)

func weakkeyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weakkey",
		Short: "Search production curves for undersized private scalars",
	}

	search := func(curve string, fn func([]byte, uint64) (*weakkey.Result, error)) *cobra.Command {
		return &cobra.Command{
			Use:   curve + " PUBHEX",
			Short: "Walk G, 2G, ... on " + curve + " up to --bound",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				out := cmd.OutOrStdout()
				pub, err := hex.DecodeString(strings.TrimPrefix(args[0], "0x"))
				if err != nil {
					return errors.Wrapf(weakkey.ErrInvalidPublicKey, "hex: %v", err)
				}

				bound := a.cfg.WeakKey.Bound
				a.logger.Info("starting weak scalar search",
					zap.String("curve", curve), zap.Uint64("bound", bound))
				start := time.Now()
				res, err := fn(pub, bound)
				if err != nil {
					return err
				}
				elapsed := report.FormatDuration(time.Since(start))
				if res == nil {
					fmt.Fprintf(out, "no scalar in [1, %s] (%s)\n", report.FormatCount(int64(bound)), elapsed)
					return nil
				}
				fmt.Fprintf(out, "private scalar = %d on %s (%s steps, %s)\n",
					res.Scalar, res.Curve, report.FormatCount(int64(res.Steps)), elapsed)
				return nil
			},
		}
	}

	cmd.PersistentFlags().Uint64("bound", config.Defaults().WeakKey.Bound, "Largest scalar to try")
	a.bind(cmd.PersistentFlags(), map[string]string{config.KeyWeakKeyBound: "bound"})

	cmd.AddCommand(
		search(weakkey.CurveSecp256k1, weakkey.SearchSecp256k1),
		search(weakkey.CurveEd25519, weakkey.SearchEd25519),
		&cobra.Command{
			Use:   "crosscheck K",
			Short: "Compare k·G from pkg/ec with the decred secp256k1 implementation",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				k, err := params.ParseBigInt(args[0])
				if err != nil {
					return err
				}
				if err := weakkey.CrossCheckSecp256k1(k); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "k·G agrees for k = %s\n", k)
				return nil
			},
		},
	)
	return cmd
}
