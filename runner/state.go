// Package runner executes a parsed record stream against a connection pool,
// applying condition filtering, variable substitution, sort/hash modes, and
// the result-comparison pipeline from package compare.
package runner

import (
	"github.com/sqltestbench/slt"
	"github.com/sqltestbench/slt/compare"
	"github.com/sqltestbench/slt/util"
)

// State carries the ambient configuration a Runner threads through record
// execution: the default sort mode, hash threshold, pluggable
// validator/normalizer hooks, active labels and variables, and the
// substitution-relevant __TEST_DIR__/__DATABASE__ values.
type State struct {
	SortMode        *slt.SortMode
	HashThreshold   uint64
	Validator       compare.Validator
	ColumnValidator compare.ColumnValidator
	Normalizer      compare.Normalizer
	Labels          map[string]bool
	Vars            map[string]string
	varOrder        []string
	TestDir         string
	Database        string
	SubstEnvVars    bool
	ActiveConnection slt.ConnectionName
}

// NewState builds a State with engineName implicitly active as a label
// (per spec.md §4.4: "engine_name() is always implicitly a label"), plus
// any additional labels the caller configures the runner with.
func NewState(engineName string, labels ...string) *State {
	active := map[string]bool{engineName: true}
	for _, l := range labels {
		active[l] = true
	}
	return &State{
		Labels: active,
		Vars:   make(map[string]string),
	}
}

// AddLabel activates an additional label for condition evaluation.
func (s *State) AddLabel(label string) {
	s.Labels[label] = true
}

// ActiveLabelNames returns the currently active condition labels in sorted
// order, for deterministic debug logging regardless of map iteration order.
func (s *State) ActiveLabelNames() []string {
	names := make([]string, 0, len(s.Labels))
	for name := range util.CanonicalMapIter(s.Labels) {
		names = append(names, name)
	}
	return names
}

// SetVar binds name to value, recording insertion order for deterministic
// iteration (e.g. when the updater or a debug dump walks Vars).
func (s *State) SetVar(name, value string) {
	if _, exists := s.Vars[name]; !exists {
		s.varOrder = append(s.varOrder, name)
	}
	s.Vars[name] = value
}

// VarNames returns the bound variable names in insertion order.
func (s *State) VarNames() []string {
	return append([]string(nil), s.varOrder...)
}

// shouldSkip reports whether any of conditions says to skip, given the
// currently active label set.
func (s *State) shouldSkip(conditions []slt.Condition) bool {
	for _, c := range conditions {
		if c.ShouldSkip(s.Labels) {
			return true
		}
	}
	return false
}

// effectiveSortMode resolves a query's own mode against the ambient
// default, falling back to NoSort.
func (s *State) effectiveSortMode(queryMode *slt.SortMode) slt.SortMode {
	return compare.EffectiveSortMode(queryMode, s.SortMode)
}

func (s *State) validator() compare.Validator {
	if s.Validator != nil {
		return s.Validator
	}
	return compare.DefaultValidator
}

func (s *State) columnValidator() compare.ColumnValidator {
	if s.ColumnValidator != nil {
		return s.ColumnValidator
	}
	return compare.DefaultColumnValidator
}

func (s *State) normalizer() compare.Normalizer {
	if s.Normalizer != nil {
		return s.Normalizer
	}
	return compare.DefaultNormalizer
}
