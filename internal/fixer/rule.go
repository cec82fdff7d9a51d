// Package fixer runs rewrite rules over PHP source files: it schedules
// the registered rules, applies them to each file's token stream, and
// reports what changed.
package fixer

import (
	"fmt"
	"sort"

	"github.com/olehluchkiv/phpfix/internal/config"
	"github.com/olehluchkiv/phpfix/internal/phptok"
)

// Rule is one rewrite rule. Rules mutate the token stream in place and
// must be conservative: every ambiguous case is a skip, never a rewrite.
type Rule interface {
	// Name is the rule's unique snake_case identifier.
	Name() string

	// Description is a one-line human-readable summary.
	Description() string

	// Example shows a before/after pair for the rules listing.
	Example() string

	// Risky reports whether the rewrite can change observable behavior
	// (such as a public signature). Risky rules only run when the
	// configuration allows them.
	Risky() bool

	// RunBefore names rules this rule must precede. Naming a rule that
	// is not registered is allowed; the constraint is then vacuous.
	RunBefore() []string

	// Supports reports whether the configured target PHP version can
	// accept this rule's rewrite.
	Supports(cfg *config.Config) bool

	// IsCandidate is a cheap precondition checked before Apply.
	IsCandidate(ts *phptok.Tokens) bool

	// Apply rewrites the stream. An error means the stream itself is
	// malformed (for example an unmatched brace) and aborts the file.
	Apply(ts *phptok.Tokens) error
}

// Registry holds the known rules.
type Registry struct {
	rules map[string]Rule
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]Rule)}
}

// Register adds a rule. Registering two rules with the same name is a
// programming error.
func (r *Registry) Register(rule Rule) error {
	if _, dup := r.rules[rule.Name()]; dup {
		return fmt.Errorf("rule %q registered twice", rule.Name())
	}
	r.rules[rule.Name()] = rule
	return nil
}

// All returns every registered rule sorted by name.
func (r *Registry) All() []Rule {
	out := make([]Rule, 0, len(r.rules))
	for _, rule := range r.rules {
		out = append(out, rule)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Schedule returns the rules enabled by cfg in execution order: a
// deterministic topological sort of the RunBefore constraints, ties broken
// by name. A constraint cycle is a configuration error.
func (r *Registry) Schedule(cfg *config.Config) ([]Rule, error) {
	enabled := make(map[string]Rule)
	for name, rule := range r.rules {
		if cfg.RuleEnabled(name) {
			enabled[name] = rule
		}
	}

	// indegree counts how many enabled rules must run before each rule.
	indegree := make(map[string]int, len(enabled))
	after := make(map[string][]string, len(enabled))
	for name := range enabled {
		indegree[name] = 0
	}
	for name, rule := range enabled {
		for _, succ := range rule.RunBefore() {
			if _, ok := enabled[succ]; !ok {
				continue // unregistered or disabled: vacuous constraint
			}
			after[name] = append(after[name], succ)
			indegree[succ]++
		}
	}

	var ready []string
	for name, deg := range indegree {
		if deg == 0 {
			ready = append(ready, name)
		}
	}
	sort.Strings(ready)

	ordered := make([]Rule, 0, len(enabled))
	for len(ready) > 0 {
		name := ready[0]
		ready = ready[1:]
		ordered = append(ordered, enabled[name])

		changed := false
		for _, succ := range after[name] {
			indegree[succ]--
			if indegree[succ] == 0 {
				ready = append(ready, succ)
				changed = true
			}
		}
		if changed {
			sort.Strings(ready)
		}
	}

	if len(ordered) != len(enabled) {
		var stuck []string
		for name, deg := range indegree {
			if deg > 0 {
				stuck = append(stuck, name)
			}
		}
		sort.Strings(stuck)
		return nil, fmt.Errorf("rule ordering cycle involving %v", stuck)
	}
	return ordered, nil
}
