// Package rules loads and validates certainty-factor knowledge bases.
package rules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mrhapile/cf-diagnoser/pkg/types"
)

var (
	// ErrInvalidKnowledgeBase marks a knowledge base the engine cannot run.
	ErrInvalidKnowledgeBase = errors.New("invalid knowledge base")

	// ErrNotFound is returned when no candidate path holds a knowledge base.
	ErrNotFound = errors.New("knowledge base not found")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// CheckStructure verifies the sections the engine depends on are present.
// An empty list is acceptable; a missing one is not.
func CheckStructure(kb *types.KnowledgeBase) error {
	switch {
	case kb == nil:
		return fmt.Errorf("%w: nil", ErrInvalidKnowledgeBase)
	case kb.Symptoms == nil:
		return fmt.Errorf("%w: missing symptoms", ErrInvalidKnowledgeBase)
	case kb.Rules == nil:
		return fmt.Errorf("%w: missing rules", ErrInvalidKnowledgeBase)
	}
	return nil
}

// Validate runs CheckStructure plus field checks: every symptom needs a code,
// every rule an id and a conclusion, and codes and ids must be unique.
// MB and MD ranges are not checked.
func Validate(kb *types.KnowledgeBase) error {
	if err := CheckStructure(kb); err != nil {
		return err
	}
	if err := validate.Struct(kb); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidKnowledgeBase, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidKnowledgeBase, err)
	}

	seen := make(map[string]bool, len(kb.Symptoms))
	for _, s := range kb.Symptoms {
		if seen[s.Code] {
			return fmt.Errorf("%w: duplicate symptom code %q", ErrInvalidKnowledgeBase, s.Code)
		}
		seen[s.Code] = true
	}
	ids := make(map[string]bool, len(kb.Rules))
	for _, r := range kb.Rules {
		if ids[r.ID] {
			return fmt.Errorf("%w: duplicate rule id %q", ErrInvalidKnowledgeBase, r.ID)
		}
		ids[r.ID] = true
	}
	return nil
}
