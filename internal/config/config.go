// Package config loads the fixer configuration from a .phpfix.yaml file,
// falling back to defaults when no file is present.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the target directory.
const FileName = ".phpfix.yaml"

// Config controls which rules run and how.
type Config struct {
	// PHPVersion is the minimum PHP version of the target codebase,
	// "major.minor". Rules that need newer syntax do not run.
	PHPVersion string `yaml:"php_version"`

	// AllowRisky enables rules whose rewrite can change observable
	// behavior (for instance a public signature). Off by default.
	AllowRisky bool `yaml:"allow_risky"`

	// Rules enables or disables rules by name. Rules not listed keep
	// their default (enabled).
	Rules map[string]bool `yaml:"rules"`

	// Exclude lists path substrings to skip during file discovery.
	Exclude []string `yaml:"exclude"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		PHPVersion: "8.1",
		Exclude:    []string{"vendor/"},
	}
}

// Load reads dir's .phpfix.yaml. A missing file yields Default().
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, FileName))
}

// LoadFile reads an explicit configuration file path. A missing file
// yields Default(); a present but invalid file is an error.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if _, _, err := parseVersion(cfg.PHPVersion); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// RuleEnabled reports whether the named rule should run.
func (c *Config) RuleEnabled(name string) bool {
	if enabled, ok := c.Rules[name]; ok {
		return enabled
	}
	return true
}

// VersionAtLeast reports whether the configured PHP version is at least
// major.minor. An unparseable version counts as too old, so version-gated
// rules stay off rather than risk an unsupported rewrite.
func (c *Config) VersionAtLeast(major, minor int) bool {
	gotMajor, gotMinor, err := parseVersion(c.PHPVersion)
	if err != nil {
		return false
	}
	if gotMajor != major {
		return gotMajor > major
	}
	return gotMinor >= minor
}

func parseVersion(v string) (major, minor int, err error) {
	parts := strings.SplitN(strings.TrimSpace(v), ".", 3)
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("invalid php_version %q (want major.minor)", v)
	}
	major, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid php_version %q: %w", v, err)
	}
	minor, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid php_version %q: %w", v, err)
	}
	return major, minor, nil
}
