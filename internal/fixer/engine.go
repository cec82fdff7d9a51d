package fixer

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/olehluchkiv/phpfix/internal/config"
	"github.com/olehluchkiv/phpfix/internal/phptok"
)

// FileResult describes what the engine did to one file.
type FileResult struct {
	Path    string   `json:"path"`
	Changed bool     `json:"changed"`
	Applied []string `json:"applied_rules,omitempty"`
	Diff    string   `json:"diff,omitempty"`

	// Output is the rewritten source. Equal to the input when !Changed.
	Output string `json:"-"`
}

// Engine applies a scheduled set of rules to files. Files are independent
// units of work: the engine holds no cross-file state, so callers may run
// one engine per goroutine over disjoint file sets without coordination.
type Engine struct {
	cfg    *config.Config
	rules  []Rule
	logger *slog.Logger
}

// New schedules the registry's enabled rules and returns an engine.
func New(cfg *config.Config, reg *Registry, logger *slog.Logger) (*Engine, error) {
	rules, err := reg.Schedule(cfg)
	if err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg, rules: rules, logger: logger}, nil
}

// Rules returns the scheduled rules in execution order.
func (e *Engine) Rules() []Rule { return e.rules }

// Process runs every eligible rule over src and returns the result. The
// name is only used for logging and the diff header.
func (e *Engine) Process(name string, src []byte) (*FileResult, error) {
	ts := phptok.Tokenize(string(src))
	phptok.TransformTypeColons(ts)

	res := &FileResult{Path: name, Output: string(src)}
	cur := string(src)
	for _, rule := range e.rules {
		if rule.Risky() && !e.cfg.AllowRisky {
			e.logger.Debug("skipping risky rule", "rule", rule.Name(), "file", name)
			continue
		}
		if !rule.Supports(e.cfg) {
			e.logger.Debug("rule unsupported for target version",
				"rule", rule.Name(), "php_version", e.cfg.PHPVersion)
			continue
		}
		if !rule.IsCandidate(ts) {
			continue
		}

		if err := rule.Apply(ts); err != nil {
			return nil, fmt.Errorf("rule %s on %s: %w", rule.Name(), name, err)
		}
		if now := ts.Render(); now != cur {
			res.Applied = append(res.Applied, rule.Name())
			cur = now
		}
	}

	out := cur
	if out != string(src) {
		res.Changed = true
		res.Output = out
		diff, err := unifiedDiff(name, string(src), out)
		if err != nil {
			return nil, fmt.Errorf("diffing %s: %w", name, err)
		}
		res.Diff = diff
	}
	return res, nil
}

// ProcessFile reads path, processes it, and writes the result back when
// write is set and the file changed.
func (e *Engine) ProcessFile(path string, write bool) (*FileResult, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	res, err := e.Process(path, src)
	if err != nil {
		return nil, err
	}

	if res.Changed {
		e.logger.Info("file needs fixes", "file", path, "rules", res.Applied)
		if write {
			info, err := os.Stat(path)
			if err != nil {
				return nil, fmt.Errorf("stat %s: %w", path, err)
			}
			if err := os.WriteFile(path, []byte(res.Output), info.Mode().Perm()); err != nil {
				return nil, fmt.Errorf("writing %s: %w", path, err)
			}
		}
	}
	return res, nil
}

func unifiedDiff(path, before, after string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: path,
		ToFile:   path + " (fixed)",
		Context:  3,
	})
}
