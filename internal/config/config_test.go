package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "8.1", cfg.PHPVersion)
	assert.False(t, cfg.AllowRisky)
	assert.Equal(t, []string{"vendor/"}, cfg.Exclude)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	content := `php_version: "7.0"
allow_risky: true
rules:
  void_return: false
exclude:
  - vendor/
  - generated/
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "7.0", cfg.PHPVersion)
	assert.True(t, cfg.AllowRisky)
	assert.False(t, cfg.RuleEnabled("void_return"))
	assert.True(t, cfg.RuleEnabled("phpdoc_no_void_return"), "unlisted rules stay enabled")
	assert.Equal(t, []string{"vendor/", "generated/"}, cfg.Exclude)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("rules: [broken"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestLoad_InvalidVersion(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`php_version: "eight"`), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestVersionAtLeast(t *testing.T) {
	cases := []struct {
		version      string
		major, minor int
		want         bool
	}{
		{"7.1", 7, 1, true},
		{"7.0", 7, 1, false},
		{"7.4", 7, 1, true},
		{"8.0", 7, 1, true},
		{"8.1", 8, 2, false},
		{"10.0", 8, 1, true},
		{"bogus", 7, 1, false},
	}
	for _, tc := range cases {
		cfg := &Config{PHPVersion: tc.version}
		assert.Equal(t, tc.want, cfg.VersionAtLeast(tc.major, tc.minor), tc.version)
	}
}
