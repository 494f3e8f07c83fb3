package rules

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/mrhapile/cf-diagnoser/pkg/types"
)

const reloadedKB = `{
  "symptoms": [{"code": "G02", "mb": 1.0, "md": 0.0}],
  "rules": [
    {"id": "R1", "if": ["G02"], "then": "D1", "cf": 0.8},
    {"id": "R2", "if": ["D1"], "then": "D2", "cf": 0.5}
  ]
}`

func TestWatch_ReloadsOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	path := filepath.Join(dir, "rules.json")
	data, err := os.ReadFile(filepath.Join("testdata", "rules.json"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	kb, err := LoadFile(path)
	require.NoError(t, err)
	store := NewStore(kb, path)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, Watch(ctx, path, store, nil))

	// Broken content must not replace the current knowledge base.
	require.NoError(t, os.WriteFile(path, []byte(`{"symptoms": [`), 0o644))
	time.Sleep(200 * time.Millisecond)
	assert.Len(t, store.Get().Rules, 7)

	require.NoError(t, os.WriteFile(path, []byte(reloadedKB), 0o644))
	assert.Eventually(t, func() bool {
		return len(store.Get().Rules) == 2
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	// give the watcher goroutine time to close before leak verification
	time.Sleep(100 * time.Millisecond)
}

func TestStore_SetReplacesSnapshot(t *testing.T) {
	first := &types.KnowledgeBase{Symptoms: []types.Symptom{}, Rules: []types.Rule{}}
	store := NewStore(first, "a.json")
	snapshot := store.Get()

	second := &types.KnowledgeBase{Symptoms: []types.Symptom{{Code: "G01"}}, Rules: []types.Rule{}}
	store.Set(second, "b.json")

	assert.Same(t, first, snapshot)
	assert.Same(t, second, store.Get())
	assert.Equal(t, "b.json", store.Source())
}

func TestStore_SnapshotPairsSourceWithKnowledgeBase(t *testing.T) {
	first := &types.KnowledgeBase{Symptoms: []types.Symptom{}, Rules: []types.Rule{}}
	store := NewStore(first, "a.json")

	kb, source := store.Snapshot()
	assert.Same(t, first, kb)
	assert.Equal(t, "a.json", source)

	second := &types.KnowledgeBase{Symptoms: []types.Symptom{}, Rules: []types.Rule{}}
	store.Set(second, "b.json")

	kb, source = store.Snapshot()
	assert.Same(t, second, kb)
	assert.Equal(t, "b.json", source)
}
