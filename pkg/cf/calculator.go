// Package cf implements MYCIN certainty-factor arithmetic.
package cf

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/mrhapile/cf-diagnoser/pkg/types"
)

// BaseCF returns mb - md for a symptom.
func BaseCF(s types.Symptom) float64 {
	return s.BaseCF()
}

// Combine merges two certainty factors for the same conclusion.
//
// Zero counts as non-negative, so Combine(0, x) == x for x >= 0. When the
// mixed-sign denominator vanishes (|a| == |b| == 1, opposite signs) the
// evidence cancels and the result is 0.
func Combine(a, b float64) float64 {
	switch {
	case a >= 0 && b >= 0:
		return a + b*(1-a)
	case a <= 0 && b <= 0:
		return a + b*(1+a)
	}
	denom := 1 - math.Min(math.Abs(a), math.Abs(b))
	if denom == 0 {
		return 0.0
	}
	return (a + b) / denom
}

// Seed builds the initial fact store. Known symptoms are scaled by their
// base CF; any other code is asserted at the given confidence unchanged.
func Seed(symptoms map[string]types.Symptom, facts map[string]float64) map[string]float64 {
	seeded := make(map[string]float64, len(facts))
	for code, conf := range facts {
		if s, ok := symptoms[code]; ok {
			seeded[code] = conf * s.BaseCF()
			continue
		}
		seeded[code] = conf
	}
	return seeded
}

// ParseConfidence interprets a user-supplied confidence. Values that are not
// finite numbers fall back to types.DefaultConfidence.
func ParseConfidence(v any) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return types.DefaultConfidence
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return types.DefaultConfidence
		}
		f = parsed
	default:
		return types.DefaultConfidence
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return types.DefaultConfidence
	}
	return f
}

// NormalizeFacts converts raw fact values into confidences.
func NormalizeFacts(raw map[string]any) map[string]float64 {
	facts := make(map[string]float64, len(raw))
	for code, v := range raw {
		facts[code] = ParseConfidence(v)
	}
	return facts
}
