package rules

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrhapile/cf-diagnoser/pkg/types"
)

func TestLoadFile_JSON(t *testing.T) {
	kb, err := LoadFile(filepath.Join("testdata", "rules.json"))
	require.NoError(t, err)

	assert.Len(t, kb.Symptoms, 7)
	assert.Len(t, kb.Rules, 7)
	assert.Equal(t, "Anemia due to malaria", kb.Labels["Anemia_due_to_malaria"])
	assert.InDelta(t, 0.7, kb.SymptomIndex()["G01"].BaseCF(), 1e-12)
	assert.InDelta(t, 0.8, kb.Rules[0].Strength(), 1e-12)
}

func TestLoadFile_YAMLDefaultsStrength(t *testing.T) {
	kb, err := LoadFile(filepath.Join("testdata", "rules.yaml"))
	require.NoError(t, err)

	require.Len(t, kb.Rules, 2)
	assert.Equal(t, []string{"G02"}, kb.Rules[0].If)
	assert.InDelta(t, 0.8, kb.Rules[0].Strength(), 1e-12)
	assert.Nil(t, kb.Rules[1].CF)
	assert.Equal(t, types.DefaultRuleStrength, kb.Rules[1].Strength())
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		invalid bool
	}{
		{name: "missing rules section", file: "missing_rules.json", invalid: true},
		{name: "duplicate rule id", file: "duplicate.json", invalid: true},
		{name: "malformed json", file: "broken.json"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadFile(filepath.Join("testdata", tc.file))
			require.Error(t, err)
			assert.Equal(t, tc.invalid, errors.Is(err, ErrInvalidKnowledgeBase), err.Error())
		})
	}
}

func TestLoad_ExplicitPath(t *testing.T) {
	kb, source, err := Load(filepath.Join("testdata", "rules.yaml"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("testdata", "rules.yaml"), source)
	assert.Len(t, kb.Symptoms, 1)
}

func TestLoad_DefaultFileInWorkingDir(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "rules.json"))
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rules.json"), data, 0o644))
	chdir(t, dir)

	kb, source, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "rules.json", filepath.Base(source))
	assert.Len(t, kb.Rules, 7)
}

func TestLoad_NotFound(t *testing.T) {
	chdir(t, t.TempDir())

	_, _, err := Load("nope.json")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "nope.json")
	assert.Contains(t, err.Error(), "rules_combined.json")
}

func TestLoad_BrokenFileIsNotSkipped(t *testing.T) {
	_, source, err := Load(filepath.Join("testdata", "broken.json"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, filepath.Join("testdata", "broken.json"), source)
}

func TestCandidates_Order(t *testing.T) {
	got := Candidates("kb.json")
	require.NotEmpty(t, got)
	assert.Equal(t, "kb.json", got[0])
	assert.Contains(t, got, "rules_combined.json")
	assert.Contains(t, got, "rules.json")

	seen := map[string]bool{}
	for _, p := range got {
		assert.False(t, seen[p], "duplicate candidate %s", p)
		seen[p] = true
	}
}

func TestValidate_MissingFields(t *testing.T) {
	kb := &types.KnowledgeBase{
		Symptoms: []types.Symptom{{Code: ""}},
		Rules:    []types.Rule{{ID: "R1", If: []string{"G01"}}},
	}
	err := Validate(kb)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidKnowledgeBase)
	assert.Contains(t, err.Error(), "Code")
	assert.Contains(t, err.Error(), "Then")
}

func TestValidate_AllowsOutOfRangeBeliefs(t *testing.T) {
	kb := &types.KnowledgeBase{
		Symptoms: []types.Symptom{{Code: "G01", MB: 1.5, MD: -0.3}},
		Rules:    []types.Rule{},
	}
	assert.NoError(t, Validate(kb))
}

func TestCheckStructure(t *testing.T) {
	assert.ErrorIs(t, CheckStructure(nil), ErrInvalidKnowledgeBase)
	assert.ErrorIs(t, CheckStructure(&types.KnowledgeBase{Rules: []types.Rule{}}), ErrInvalidKnowledgeBase)
	assert.ErrorIs(t, CheckStructure(&types.KnowledgeBase{Symptoms: []types.Symptom{}}), ErrInvalidKnowledgeBase)
	assert.NoError(t, CheckStructure(&types.KnowledgeBase{Symptoms: []types.Symptom{}, Rules: []types.Rule{}}))
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
