package core

import (
	"math"
	"strconv"
	"strings"
)

// formatSet renders values as "{v0, v1, ...}"; empty renders "{}".
func formatSet(values []float64) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, v := range values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(formatFloat(v))
	}
	b.WriteByte('}')
	return b.String()
}

// formatFloat prints the shortest decimal that round-trips, never in
// exponent form: 0, 1, -0.5.
func formatFloat(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
