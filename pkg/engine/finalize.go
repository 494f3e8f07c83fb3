package engine

import (
	"math"
	"sort"

	"github.com/mrhapile/cf-diagnoser/pkg/types"
)

// Finalize clamps every fact to [-1, 1] and rounds it to RoundDecimals places.
func Finalize(facts map[string]float64) map[string]float64 {
	scale := math.Pow(10, types.RoundDecimals)
	out := make(map[string]float64, len(facts))
	for code, v := range facts {
		v = math.Max(types.MinCF, math.Min(types.MaxCF, v))
		out[code] = math.Round(v*scale) / scale
	}
	return out
}

// Relabel renames fact codes for presentation. Values are unchanged and codes
// missing from labels keep their name. When two codes end up with the same
// name, a code that was already that name wins; otherwise the code that sorts
// last wins.
func Relabel(facts map[string]float64, labels map[string]string) map[string]float64 {
	codes := make([]string, 0, len(facts))
	for code := range facts {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	out := make(map[string]float64, len(facts))
	verbatim := make(map[string]bool, len(facts))
	for _, code := range codes {
		name, ok := labels[code]
		if !ok {
			out[code] = facts[code]
			verbatim[code] = true
			continue
		}
		if verbatim[name] {
			continue
		}
		out[name] = facts[code]
	}
	return out
}

// Conclusions returns the facts that are not symptoms of the knowledge base.
func Conclusions(kb *types.KnowledgeBase, facts map[string]float64) map[string]float64 {
	symptoms := kb.SymptomIndex()
	out := make(map[string]float64)
	for code, v := range facts {
		if _, ok := symptoms[code]; ok {
			continue
		}
		out[code] = v
	}
	return out
}
