package params

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdiidarabi/attacksim/pkg/ec"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseBigInt(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"97", 97},
		{"0x61", 97},
		{"0X61", 97},
		{"ff", 255},
		{"-5", -5},
		{" 12 ", 12},
	}
	for _, tt := range tests {
		got, err := ParseBigInt(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got.Int64(), tt.in)
	}

	for _, bad := range []string{"", "0x", "12z", "--1"} {
		_, err := ParseBigInt(bad)
		assert.Error(t, err, bad)
	}
}

func TestJSONParserParseCurves(t *testing.T) {
	path := writeFile(t, "curves.json", `[
		{"name": "toy97", "a": 2, "b": "3", "p": "0x61", "gx": 3, "gy": 6, "order": 5},
		{"name": "secp256k1", "a": 0, "b": 7,
		 "p": "0xFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F"}
	]`)

	specs, err := (&JSONParser{}).ParseCurves(path)
	require.NoError(t, err)
	require.Len(t, specs, 2)

	toy := specs[0]
	assert.Equal(t, "toy97", toy.Name)
	assert.Equal(t, int64(97), toy.P.Int64())
	assert.Equal(t, int64(5), toy.Order.Int64())

	assert.Nil(t, specs[1].Gx)
	assert.Equal(t, 0, specs[1].P.Cmp(ec.Secp256k1().P()))
}

func TestJSONParserErrors(t *testing.T) {
	_, err := (&JSONParser{}).ParseCurves(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = (&JSONParser{}).ParseCurves(writeFile(t, "bad.json", `{not json`))
	assert.Error(t, err)

	_, err = (&JSONParser{}).ParseCurves(writeFile(t, "nop.json", `[{"name": "x", "a": 1, "b": 1}]`))
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = (&JSONParser{}).ParseCurves(writeFile(t, "type.json", `[{"a": [1], "b": 1, "p": 7}]`))
	assert.Error(t, err)
}

func TestCSVParserParseCurves(t *testing.T) {
	path := writeFile(t, "curves.csv", "name,a,b,p,gx,gy,order\n"+
		"toy97, 2, 3, 97, 3, 6, 5\n"+
		"toy23,1,1,23,,,\n")

	specs, err := (&CSVParser{}).ParseCurves(path)
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.Equal(t, int64(6), specs[0].Gy.Int64())
	assert.Equal(t, "toy23", specs[1].Name)
	assert.Nil(t, specs[1].Order)

	_, err = (&CSVParser{}).ParseCurves(writeFile(t, "nocol.csv", "name,a,b\nx,1,2\n"))
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestCurveSpecBuild(t *testing.T) {
	spec := CurveSpec{
		Name: "toy97",
		A:    big.NewInt(2), B: big.NewInt(3), P: big.NewInt(97),
		Gx: big.NewInt(3), Gy: big.NewInt(6), Order: big.NewInt(5),
	}
	p, err := spec.Build()
	require.NoError(t, err)
	require.NotNil(t, p.Generator)
	assert.Equal(t, "toy97", p.Curve.Name())
	assert.Equal(t, int64(3), p.Generator.X().Int64())

	bad := spec
	bad.Order = big.NewInt(4)
	_, err = bad.Build()
	assert.ErrorIs(t, err, ErrOrderMismatch)

	bad = spec
	bad.Gy = big.NewInt(7)
	_, err = bad.Build()
	assert.ErrorIs(t, err, ec.ErrPointNotOnCurve)

	bad = spec
	bad.Gy = nil
	_, err = bad.Build()
	assert.ErrorIs(t, err, ErrMissingField)

	singular := CurveSpec{A: big.NewInt(0), B: big.NewInt(0), P: big.NewInt(97)}
	_, err = singular.Build()
	assert.ErrorIs(t, err, ec.ErrInvalidCurve)

	noGen := CurveSpec{A: big.NewInt(1), B: big.NewInt(1), P: big.NewInt(23)}
	p, err = noGen.Build()
	require.NoError(t, err)
	assert.Nil(t, p.Generator)
	assert.Nil(t, p.Order)
}

func TestFind(t *testing.T) {
	specs := []CurveSpec{{Name: "alpha"}, {Name: "Beta"}}
	s, err := Find(specs, "beta")
	require.NoError(t, err)
	assert.Equal(t, "Beta", s.Name)

	_, err = Find(specs, "gamma")
	assert.ErrorIs(t, err, ErrUnknownCurve)
}
