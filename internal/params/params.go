// Package params loads curve parameter sets from JSON and CSV files.
package params

import (
	"math/big"
	"strings"

	"github.com/pkg/errors"

	"github.com/mahdiidarabi/attacksim/pkg/ec"
)

var (
	// ErrMissingField is returned when a required parameter is absent.
	ErrMissingField = errors.New("missing field")

	// ErrUnknownCurve is returned by Find for a name not in the set.
	ErrUnknownCurve = errors.New("unknown curve")

	// ErrOrderMismatch is returned when order·G is not the identity.
	ErrOrderMismatch = errors.New("order does not annihilate generator")
)

// CurveParser reads curve parameter sets from a source.
type CurveParser interface {
	ParseCurves(source string) ([]CurveSpec, error)
}

// CurveSpec is an unvalidated curve parameter set. Gx, Gy and Order are
// optional.
type CurveSpec struct {
	Name    string
	A, B, P *big.Int
	Gx, Gy  *big.Int
	Order   *big.Int
}

// Params is a validated CurveSpec.
type Params struct {
	Curve     *ec.Curve
	Generator *ec.Point // nil when the parameter set has no generator
	Order     *big.Int  // nil when the parameter set has no order
}

// Build validates the parameter set and constructs its curve and generator.
func (s CurveSpec) Build() (*Params, error) {
	if s.A == nil || s.B == nil || s.P == nil {
		return nil, errors.Wrapf(ErrMissingField, "curve %q needs a, b and p", s.Name)
	}
	c, err := ec.NewCurve(s.A, s.B, s.P, s.Name)
	if err != nil {
		return nil, errors.Wrapf(err, "curve %q", s.Name)
	}
	out := &Params{Curve: c}
	if s.Order != nil {
		out.Order = new(big.Int).Set(s.Order)
	}

	if (s.Gx == nil) != (s.Gy == nil) {
		return nil, errors.Wrapf(ErrMissingField, "curve %q needs both gx and gy", s.Name)
	}
	if s.Gx == nil {
		return out, nil
	}
	g, err := ec.NewPoint(s.Gx, s.Gy, c)
	if err != nil {
		return nil, errors.Wrapf(err, "generator of %q", s.Name)
	}
	out.Generator = &g

	if out.Order != nil {
		ng, err := ec.ScalarMult(out.Order, g)
		if err != nil {
			return nil, errors.Wrapf(err, "order check of %q", s.Name)
		}
		if !ng.IsIdentity() {
			return nil, errors.Wrapf(ErrOrderMismatch, "curve %q, order %s", s.Name, out.Order)
		}
	}
	return out, nil
}

// Find returns the parameter set named name, compared case-insensitively.
func Find(specs []CurveSpec, name string) (CurveSpec, error) {
	for _, s := range specs {
		if strings.EqualFold(s.Name, name) {
			return s, nil
		}
	}
	return CurveSpec{}, errors.Wrapf(ErrUnknownCurve, "%q", name)
}
