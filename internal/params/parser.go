package params

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/pkg/errors"
)

var fields = []string{"name", "a", "b", "p", "gx", "gy", "order"}

// JSONParser parses curve parameter sets from JSON files.
//
// Expected format:
//
//	[
//	  {"name": "toy97", "a": 2, "b": 3, "p": 97, "gx": 3, "gy": 6, "order": 5},
//	  {"name": "big", "a": "0x00", "b": "0x07", "p": "0xFFFF...FC2F"}
//	]
type JSONParser struct{}

// ParseCurves parses the curves in jsonFile.
func (p *JSONParser) ParseCurves(jsonFile string) ([]CurveSpec, error) {
	file, err := os.Open(jsonFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read file")
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.UseNumber()

	var items []map[string]interface{}
	if err := decoder.Decode(&items); err != nil {
		return nil, errors.Wrap(err, "failed to parse JSON")
	}

	specs := make([]CurveSpec, 0, len(items))
	for i, item := range items {
		values := make(map[string]string, len(item))
		for k, v := range item {
			s, err := scalarString(v)
			if err != nil {
				return nil, errors.Wrapf(err, "curve %d, field %s", i, k)
			}
			values[strings.ToLower(k)] = s
		}
		spec, err := specFromFields(values)
		if err != nil {
			return nil, errors.Wrapf(err, "curve %d", i)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// CSVParser parses curve parameter sets from CSV files with a header row
// naming the columns name, a, b, p and optionally gx, gy, order.
type CSVParser struct{}

// ParseCurves parses the curves in csvFile.
func (p *CSVParser) ParseCurves(csvFile string) ([]CurveSpec, error) {
	file, err := os.Open(csvFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read header")
	}
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, required := range []string{"a", "b", "p"} {
		if _, ok := index[required]; !ok {
			return nil, errors.Wrapf(ErrMissingField, "column %s", required)
		}
	}

	var specs []CurveSpec
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to read record")
		}

		values := make(map[string]string, len(fields))
		for _, f := range fields {
			if i, ok := index[f]; ok && i < len(record) {
				values[f] = strings.TrimSpace(record[i])
			}
		}
		spec, err := specFromFields(values)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func specFromFields(values map[string]string) (CurveSpec, error) {
	spec := CurveSpec{Name: values["name"]}
	targets := map[string]**big.Int{
		"a": &spec.A, "b": &spec.B, "p": &spec.P,
		"gx": &spec.Gx, "gy": &spec.Gy, "order": &spec.Order,
	}
	for name, dst := range targets {
		raw, ok := values[name]
		if !ok || raw == "" {
			continue
		}
		v, err := ParseBigInt(raw)
		if err != nil {
			return CurveSpec{}, errors.Wrapf(err, "field %s", name)
		}
		*dst = v
	}
	if spec.A == nil || spec.B == nil || spec.P == nil {
		return CurveSpec{}, errors.Wrap(ErrMissingField, "a, b and p are required")
	}
	return spec, nil
}

// scalarString flattens a decoded JSON value into the textual form
// ParseBigInt accepts.
func scalarString(val interface{}) (string, error) {
	switch v := val.(type) {
	case string:
		return v, nil
	case json.Number:
		return string(v), nil
	case float64:
		return fmt.Sprintf("%.0f", v), nil
	case int64:
		return fmt.Sprintf("%d", v), nil
	case int:
		return fmt.Sprintf("%d", v), nil
	case nil:
		return "", nil
	default:
		return "", errors.Errorf("unsupported type: %T", val)
	}
}

// ParseBigInt parses a decimal integer, a 0x-prefixed hex integer, or a bare
// hex integer containing at least one of a-f. A leading minus sign is
// accepted.
func ParseBigInt(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	body := strings.TrimPrefix(s, "-")

	base := 10
	switch {
	case strings.HasPrefix(body, "0x"), strings.HasPrefix(body, "0X"):
		body, base = body[2:], 16
	case strings.ContainsAny(body, "abcdefABCDEF"):
		base = 16
	}

	if body == "" || strings.ContainsAny(body[:1], "+-") {
		return nil, errors.Errorf("invalid number format: %q", s)
	}
	z, ok := new(big.Int).SetString(body, base)
	if !ok {
		return nil, errors.Errorf("invalid number format: %q", s)
	}
	if neg {
		z.Neg(z)
	}
	return z, nil
}
