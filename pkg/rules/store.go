package rules

import (
	"sync/atomic"

	"github.com/mrhapile/cf-diagnoser/pkg/types"
)

type snapshot struct {
	kb     *types.KnowledgeBase
	source string
}

// Store publishes the current knowledge base to concurrent readers. A stored
// knowledge base must not be mutated; reloads replace it wholesale.
type Store struct {
	current atomic.Pointer[snapshot]
}

// NewStore returns a Store holding kb, loaded from source.
func NewStore(kb *types.KnowledgeBase, source string) *Store {
	s := &Store{}
	s.Set(kb, source)
	return s
}

// Get returns the current snapshot.
func (s *Store) Get() *types.KnowledgeBase {
	kb, _ := s.Snapshot()
	return kb
}

// Source returns the path the current snapshot was loaded from.
func (s *Store) Source() string {
	_, source := s.Snapshot()
	return source
}

// Snapshot returns the current knowledge base together with its source path.
func (s *Store) Snapshot() (*types.KnowledgeBase, string) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ""
	}
	return snap.kb, snap.source
}

// Set replaces the knowledge base and its source in one step.
func (s *Store) Set(kb *types.KnowledgeBase, source string) {
	s.current.Store(&snapshot{kb: kb, source: source})
}
