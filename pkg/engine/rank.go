package engine

import (
	"fmt"
	"sort"

	"github.com/mrhapile/cf-diagnoser/pkg/types"
)

// Rank turns the conclusions of a run into hypotheses ordered by confidence.
// Evidence lists the firings that contributed to each conclusion.
func Rank(kb *types.KnowledgeBase, res *Result) []types.Hypothesis {
	evidence := make(map[string][]string)
	for _, t := range res.Trace {
		line := fmt.Sprintf("%s: %v -> %.4f", t.RuleID, t.Antecedents, t.NewCF)
		if t.Note != "" {
			line += " (" + t.Note + ")"
		}
		evidence[t.Conclusion] = append(evidence[t.Conclusion], line)
	}

	hypotheses := make([]types.Hypothesis, 0)
	for code, v := range Conclusions(kb, res.Facts) {
		hypotheses = append(hypotheses, types.Hypothesis{
			Conclusion: code,
			Label:      kb.Labels[code],
			Confidence: v,
			Evidence:   evidence[code],
		})
	}

	// Sort by confidence (descending) for deterministic ordering
	sort.SliceStable(hypotheses, func(i, j int) bool {
		if hypotheses[i].Confidence != hypotheses[j].Confidence {
			return hypotheses[i].Confidence > hypotheses[j].Confidence
		}
		return hypotheses[i].Conclusion < hypotheses[j].Conclusion
	})

	for i := range hypotheses {
		hypotheses[i].Rank = i + 1
	}
	return hypotheses
}
