package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrhapile/cf-diagnoser/internal/diagnosis"
	"github.com/mrhapile/cf-diagnoser/pkg/engine"
	"github.com/mrhapile/cf-diagnoser/pkg/rules"
	"github.com/mrhapile/cf-diagnoser/pkg/types"
)

// sampleFacts is used when infer is called without facts.
var sampleFacts = []string{"G02", "G03", "G08", "G18", "G19"}

var (
	inferJSON    bool
	inferRelabel bool
	inferTrace   bool
)

// inferCmd runs a single inference from the command line
var inferCmd = &cobra.Command{
	Use:   "infer [CODE[=CONFIDENCE]...]",
	Short: "Run one inference and print facts and trace",
	Long: `Runs forward chaining over the knowledge base with the given facts.

Each argument is a fact code, optionally followed by =CONFIDENCE. A missing or
non-numeric confidence counts as 1.0. Without arguments a sample set of
symptoms is used.

Examples:
  diagnoser infer G02 G03=0.8 G19
  diagnoser infer --json --relabel G01 G02`,
	RunE: runInfer,
}

func init() {
	inferCmd.Flags().BoolVar(&inferJSON, "json", false, "Print the full result as JSON")
	inferCmd.Flags().BoolVar(&inferRelabel, "relabel", false, "Show display labels instead of codes")
	inferCmd.Flags().BoolVar(&inferTrace, "trace", true, "Print fired rules")
}

func runInfer(cmd *cobra.Command, args []string) error {
	kb, source, err := loadKnowledgeBase()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = sampleFacts
	}

	eng := engine.New(engine.WithLogger(logger), engine.WithMaxPasses(cfg.Engine.MaxPasses))
	svc := diagnosis.NewService(rules.NewStore(kb, source), eng, nil, logger)
	res, err := svc.Diagnose(types.DiagnosticContext{
		Facts:   parseFactArgs(args),
		Relabel: inferRelabel,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if inferJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	printResult(out, res, inferTrace)
	return nil
}

// parseFactArgs turns CODE or CODE=CONF arguments into raw facts. The value
// is kept as text so confidence parsing applies its usual fallback.
func parseFactArgs(args []string) map[string]any {
	facts := make(map[string]any, len(args))
	for _, arg := range args {
		code, conf, found := strings.Cut(arg, "=")
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		if !found {
			facts[code] = 1.0
			continue
		}
		facts[code] = conf
	}
	return facts
}

func printResult(w io.Writer, res *types.DiagnosisResult, withTrace bool) {
	fmt.Fprintln(w, "=== Input ===")
	for _, in := range res.Inputs {
		fmt.Fprintf(w, "  %s: %g (%s)\n", in.Code, in.Confidence, in.Label)
	}

	fmt.Fprintln(w, "\n=== Final facts ===")
	codes := make([]string, 0, len(res.Facts))
	for code := range res.Facts {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		fmt.Fprintf(w, "  %s: %.4f\n", code, res.Facts[code])
	}

	fmt.Fprintln(w, "\n=== Diagnoses ===")
	if len(res.Hypotheses) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, h := range res.Hypotheses {
		name := h.Conclusion
		if h.Label != "" {
			name = h.Label
		}
		fmt.Fprintf(w, "  %d. %s: %.1f%%\n", h.Rank, name, h.Confidence*100)
	}

	if !withTrace {
		return
	}
	fmt.Fprintln(w, "\n=== Trace ===")
	for _, t := range res.Trace {
		fmt.Fprintf(w, "  [pass %d] %s: %v cfs=%v min=%.4f x %.2f = %.4f; %s %.4f -> %.4f",
			t.Pass, t.RuleID, t.Antecedents, t.AntecedentCFs, t.AntecedentCF,
			t.RuleStrength, t.Contribution, t.Conclusion, t.OldCF, t.NewCF)
		if t.Note != "" {
			fmt.Fprintf(w, " (%s)", t.Note)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "\n%d rule firings in %d passes\n", len(res.Trace), res.Passes)
}
