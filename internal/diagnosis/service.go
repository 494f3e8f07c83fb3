// Package diagnosis runs inference requests against the current knowledge
// base and assembles the presentation result.
package diagnosis

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mrhapile/cf-diagnoser/internal/metrics"
	"github.com/mrhapile/cf-diagnoser/pkg/cf"
	"github.com/mrhapile/cf-diagnoser/pkg/engine"
	"github.com/mrhapile/cf-diagnoser/pkg/rules"
	"github.com/mrhapile/cf-diagnoser/pkg/types"
)

const engineName = "forward-chaining-cf"

// Service is shared by all requests. It keeps no per-run state.
type Service struct {
	store   *rules.Store
	engine  *engine.Engine
	metrics *metrics.InferenceMetrics
	logger  *zap.Logger
}

// NewService wires a service. m may be nil when metrics are disabled.
func NewService(store *rules.Store, eng *engine.Engine, m *metrics.InferenceMetrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if eng == nil {
		eng = engine.New()
	}
	return &Service{store: store, engine: eng, metrics: m, logger: logger}
}

// KnowledgeBase returns the snapshot new requests will use.
func (s *Service) KnowledgeBase() *types.KnowledgeBase {
	return s.store.Get()
}

// Diagnose runs one inference. The knowledge base snapshot is taken once so
// a concurrent reload does not affect a run in progress.
func (s *Service) Diagnose(req types.DiagnosticContext) (*types.DiagnosisResult, error) {
	kb := s.store.Get()
	runID := uuid.NewString()
	facts := cf.NormalizeFacts(req.Facts)

	start := time.Now()
	res, err := s.engine.Infer(kb, facts)
	elapsed := time.Since(start)
	if err != nil {
		s.metrics.ObserveRun(elapsed.Seconds(), 0, nil, err)
		s.logger.Error("inference failed", zap.String("run_id", runID), zap.Error(err))
		return nil, err
	}

	fired := make([]string, len(res.Trace))
	for i, t := range res.Trace {
		fired[i] = t.RuleID
	}
	s.metrics.ObserveRun(elapsed.Seconds(), res.Passes, fired, nil)

	conclusions := engine.Conclusions(kb, res.Facts)
	finalFacts := res.Facts
	if req.Relabel {
		finalFacts = engine.Relabel(res.Facts, kb.Labels)
		conclusions = engine.Relabel(conclusions, kb.Labels)
	}

	s.logger.Info("inference completed",
		zap.String("run_id", runID),
		zap.Int("inputs", len(facts)),
		zap.Int("firings", len(res.Trace)),
		zap.Int("passes", res.Passes),
		zap.Duration("elapsed", elapsed))

	return &types.DiagnosisResult{
		RunID:       runID,
		Inputs:      inputFacts(facts),
		Facts:       finalFacts,
		Conclusions: conclusions,
		Hypotheses:  engine.Rank(kb, res),
		Trace:       res.Trace,
		Passes:      res.Passes,
		GeneratedAt: time.Now().UTC(),
		Engine:      engineName,
	}, nil
}

func inputFacts(facts map[string]float64) []types.InputFact {
	out := make([]types.InputFact, 0, len(facts))
	for code, v := range facts {
		out = append(out, types.InputFact{
			Code:       code,
			Confidence: v,
			Label:      types.LabelForConfidence(v),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
