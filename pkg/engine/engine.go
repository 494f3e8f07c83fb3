package engine

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/mrhapile/cf-diagnoser/pkg/cf"
	"github.com/mrhapile/cf-diagnoser/pkg/rules"
	"github.com/mrhapile/cf-diagnoser/pkg/types"
)

// ErrPassLimit is returned when a run exceeds the configured pass ceiling.
var ErrPassLimit = errors.New("inference did not reach a fixed point within the pass limit")

// Result is the outcome of one inference run.
type Result struct {
	// Facts holds every known fact, clamped to [-1, 1] and rounded.
	Facts map[string]float64
	// Trace lists committed firings in the order they happened.
	Trace []types.TraceEntry

	// Passes counts rule passes including the final one that changed nothing.
	Passes int
}

// Engine runs forward-chaining inference over a knowledge base. It holds only
// options, so a single Engine may serve concurrent callers.
type Engine struct {
	logger    *zap.Logger
	maxPasses int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger enables debug logging of passes and firings.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMaxPasses bounds the number of passes. Zero means no bound.
func WithMaxPasses(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxPasses = n
		}
	}
}

// New returns an Engine with a no-op logger and no pass limit.
func New(opts ...Option) *Engine {
	e := &Engine{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Infer runs a default Engine. It is a pure function of its inputs:
//   - Never mutates the knowledge base or the facts
//   - Never performs I/O
//   - Produces deterministic, repeatable output
func Infer(kb *types.KnowledgeBase, facts map[string]float64) (*Result, error) {
	return New().Infer(kb, facts)
}

// Infer seeds a fresh fact store from facts and fires the knowledge base
// rules, in declaration order, until a full pass commits no change.
func (e *Engine) Infer(kb *types.KnowledgeBase, facts map[string]float64) (*Result, error) {
	if err := rules.CheckStructure(kb); err != nil {
		return nil, err
	}

	cfFacts := cf.Seed(kb.SymptomIndex(), facts)
	memo := make(map[string]float64, len(kb.Rules))
	trace := make([]types.TraceEntry, 0)

	if ce := e.logger.Check(zap.DebugLevel, "seeded facts"); ce != nil {
		ce.Write(zap.Any("facts", cfFacts))
	}

	passes := 0
	for changed := true; changed; {
		if e.maxPasses > 0 && passes >= e.maxPasses {
			return nil, fmt.Errorf("%w (%d passes)", ErrPassLimit, passes)
		}
		passes++
		changed = false
		e.logger.Debug("pass started", zap.Int("pass", passes), zap.Int("facts", len(cfFacts)))

		for _, rule := range kb.Rules {
			act, ok := activate(rule, cfFacts)
			if !ok {
				continue
			}
			if unchanged(memo, act) {
				e.logger.Debug("rule skipped, antecedent unchanged",
					zap.String("rule", rule.ID), zap.Float64("antecedent_cf", act.antecedentCF))
				continue
			}

			contribution := rule.Strength() * act.antecedentCF
			old, present := cfFacts[rule.Then]
			updated := contribution
			if present {
				updated = cf.Combine(old, contribution)
			}
			// Written as a positive test so NaN never commits.
			if !(math.Abs(updated-old) > types.ChangeEpsilon) {
				continue
			}

			cfFacts[rule.Then] = updated
			memo[rule.ID] = act.antecedentCF
			changed = true
			trace = append(trace, types.TraceEntry{
				Pass:          passes,
				RuleID:        rule.ID,
				Antecedents:   append([]string(nil), rule.If...),
				AntecedentCFs: act.antecedentCFs,
				AntecedentCF:  act.antecedentCF,
				RuleStrength:  rule.Strength(),
				Contribution:  contribution,
				Conclusion:    rule.Then,
				OldCF:         old,
				NewCF:         updated,
				Note:          rule.Note,
			})
			e.logger.Debug("rule fired",
				zap.String("rule", rule.ID),
				zap.String("conclusion", rule.Then),
				zap.Float64("contribution", contribution),
				zap.Float64("old_cf", old),
				zap.Float64("new_cf", updated))
		}
	}

	return &Result{
		Facts:  Finalize(cfFacts),
		Trace:  trace,
		Passes: passes,
	}, nil
}
