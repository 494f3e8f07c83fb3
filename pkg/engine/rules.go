package engine

import (
	"math"
	"slices"

	"github.com/mrhapile/cf-diagnoser/pkg/types"
)

// activation is a rule whose antecedents are all currently known.
type activation struct {
	rule          types.Rule
	antecedentCFs []float64
	antecedentCF  float64
}

// activate looks up a rule's antecedents in the fact store. It reports false
// when any antecedent is missing or the rule has none.
func activate(rule types.Rule, facts map[string]float64) (activation, bool) {
	if len(rule.If) == 0 {
		return activation{}, false
	}
	cfs := make([]float64, 0, len(rule.If))
	for _, code := range rule.If {
		v, ok := facts[code]
		if !ok {
			return activation{}, false
		}
		cfs = append(cfs, v)
	}
	return activation{
		rule:          rule,
		antecedentCFs: cfs,
		antecedentCF:  slices.Min(cfs),
	}, true
}

// unchanged reports whether the rule already fired with this antecedent CF.
func unchanged(memo map[string]float64, a activation) bool {
	prev, ok := memo[a.rule.ID]
	return ok && math.Abs(prev-a.antecedentCF) < types.MemoEpsilon
}
