package ast

import (
	"encoding/json"
	"strconv"
)

// NumericValue projects the supported runtime number representations
// (int, int64, float64, json.Number) onto float64 for comparisons.
func NumericValue(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		return t, true
	case json.Number:
		f, err := strconv.ParseFloat(t.String(), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
