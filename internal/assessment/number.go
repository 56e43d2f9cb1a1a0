package assessment

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

type numberState uint8

const (
	numberAbsent numberState = iota
	numberNull
	numberValue
	numberInvalid
)

// Number is an optional numeric field as it arrives from the portal API.
// The zero value is an absent field. Absent and null are kept apart because
// they contribute differently to summary totals.
type Number struct {
	state numberState
	value float64
	raw   string
}

// Num returns a present numeric value.
func Num(v float64) Number {
	return Number{state: numberValue, value: v}
}

// Null returns an explicit JSON null.
func Null() Number {
	return Number{state: numberNull}
}

// Invalid returns a present but non-numeric value, rendered as raw.
func Invalid(raw string) Number {
	return Number{state: numberInvalid, raw: raw}
}

// NumPtr maps a nullable column to a Number: nil is absent.
func NumPtr(v *float64) Number {
	if v == nil {
		return Number{}
	}
	return Num(*v)
}

// IsZero reports whether the field was absent. Used by `omitzero`.
func (n Number) IsZero() bool { return n.state == numberAbsent }

// IsNull reports an explicit null.
func (n Number) IsNull() bool { return n.state == numberNull }

// Present reports whether the field holds something other than absent/null.
// Non-numeric values count as present.
func (n Number) Present() bool {
	return n.state == numberValue || n.state == numberInvalid
}

// Float returns the numeric value and whether it is a usable number.
func (n Number) Float() (float64, bool) {
	return n.value, n.state == numberValue
}

// Text renders the value for display.
func (n Number) Text() string {
	switch n.state {
	case numberValue:
		if n.raw != "" {
			return n.raw
		}
		return formatNumber(n.value)
	case numberInvalid:
		return n.raw
	case numberNull:
		return "null"
	default:
		return ""
	}
}

// contribution is the amount this field adds to a running total: null adds
// zero, absent and non-numeric values poison the total.
func (n Number) contribution() float64 {
	switch n.state {
	case numberValue:
		return n.value
	case numberNull:
		return 0
	default:
		return math.NaN()
	}
}

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*n = Null()
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil && !math.IsInf(v, 0) && !math.IsNaN(v) {
			*n = Number{state: numberValue, value: v, raw: s}
			return nil
		}
		*n = Invalid(s)
		return nil
	}

	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		*n = Invalid(string(data))
		return nil
	}
	*n = Num(v)
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	switch n.state {
	case numberValue:
		if n.raw != "" {
			return json.Marshal(n.raw)
		}
		return []byte(strconv.FormatFloat(n.value, 'f', -1, 64)), nil
	case numberInvalid:
		return json.Marshal(n.raw)
	default:
		return []byte("null"), nil
	}
}

// formatNumber renders v the way the portal front end prints numbers:
// shortest round-trip text, exponent form outside [1e-6, 1e21).
func formatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}
	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		s = strings.Replace(s, "e-0", "e-", 1)
		return strings.Replace(s, "e+0", "e+", 1)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
