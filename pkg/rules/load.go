package rules

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mrhapile/cf-diagnoser/pkg/types"
)

// DefaultFiles are the knowledge base names searched when none is given.
var DefaultFiles = []string{"rules_combined.json", "rules.json"}

// Candidates lists the paths Load tries, in order: the explicit path as
// given and next to the executable, then each default file next to the
// executable and in the working directory.
func Candidates(path string) []string {
	var exeDir string
	if exe, err := os.Executable(); err == nil {
		exeDir = filepath.Dir(exe)
	}

	var out []string
	seen := make(map[string]bool)
	add := func(p string) {
		if p == "" || seen[p] {
			return
		}
		seen[p] = true
		out = append(out, p)
	}

	if path != "" {
		add(path)
		if exeDir != "" && !filepath.IsAbs(path) {
			add(filepath.Join(exeDir, path))
		}
	}
	for _, name := range DefaultFiles {
		if exeDir != "" {
			add(filepath.Join(exeDir, name))
		}
		add(name)
	}
	return out
}

// Load reads the first existing candidate for path. A file that exists but
// does not decode or validate is an error; it does not fall through to the
// next candidate.
func Load(path string) (*types.KnowledgeBase, string, error) {
	candidates := Candidates(path)
	for _, p := range candidates {
		kb, err := LoadFile(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, p, err
		}
		return kb, p, nil
	}
	return nil, "", fmt.Errorf("%w; searched:\n  %s", ErrNotFound, strings.Join(candidates, "\n  "))
}

// LoadFile decodes and validates a single knowledge base file.
func LoadFile(path string) (*types.KnowledgeBase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	kb, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := Validate(kb); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return kb, nil
}

// Decode parses a knowledge base. ext selects YAML for ".yaml" and ".yml";
// anything else is read as JSON.
func Decode(data []byte, ext string) (*types.KnowledgeBase, error) {
	var kb types.KnowledgeBase
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &kb); err != nil {
			return nil, fmt.Errorf("failed to parse knowledge base: %w", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&kb); err != nil {
			return nil, fmt.Errorf("failed to parse knowledge base: %w", err)
		}
	}
	return &kb, nil
}
