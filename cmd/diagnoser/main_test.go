package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrhapile/cf-diagnoser/pkg/types"
)

var testKB = filepath.Join("..", "..", "pkg", "rules", "testdata", "rules.json")

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		inferJSON, inferRelabel, inferTrace = false, false, true
		kbPath = ""
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestParseFactArgs(t *testing.T) {
	facts := parseFactArgs([]string{"G01", "G02=0.8", "G03=maybe", "=0.5", " G04 "})

	assert.Equal(t, map[string]any{
		"G01": 1.0,
		"G02": "0.8",
		"G03": "maybe",
		"G04": 1.0,
	}, facts)
}

func TestInferCommand_JSON(t *testing.T) {
	out, err := execute(t, "infer", "--kb", testKB, "--json", "G01", "G02=0.8", "G18")
	require.NoError(t, err)

	var res types.DiagnosisResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Contains(t, res.Conclusions, "Malaria")
	assert.Contains(t, res.Conclusions, "Anemia_due_to_malaria")
}

func TestInferCommand_TextWithSampleFacts(t *testing.T) {
	out, err := execute(t, "infer", "--kb", testKB, "--relabel")
	require.NoError(t, err)

	assert.Contains(t, out, "=== Final facts ===")
	assert.Contains(t, out, "=== Trace ===")
	assert.Contains(t, out, "R_MTE_full")
	assert.Contains(t, out, "Malaria Tertiana")
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "validate", "--kb", testKB)
	require.NoError(t, err)
	assert.Contains(t, out, "7 symptoms, 7 rules")
}

func TestValidateCommand_Invalid(t *testing.T) {
	_, err := execute(t, "validate", "--kb", filepath.Join("..", "..", "pkg", "rules", "testdata", "duplicate.json"))
	assert.ErrorContains(t, err, "duplicate rule id")
}

func TestSymptomsCommand(t *testing.T) {
	out, err := execute(t, "symptoms", "--kb", testKB)
	require.NoError(t, err)
	assert.Contains(t, out, "BASE CF")
	assert.Contains(t, out, "Fever every 48 hours")
}

func TestPrintResult_NoDiagnoses(t *testing.T) {
	var buf bytes.Buffer
	printResult(&buf, &types.DiagnosisResult{Facts: map[string]float64{"G02": 1}}, false)

	assert.Contains(t, buf.String(), "(none)")
	assert.NotContains(t, buf.String(), "=== Trace ===")
}
