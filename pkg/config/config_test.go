package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/figmagen/pkg/util"
)

const sampleHCL = `
registry        = "kumo/component-registry.json"
theme           = ["kumo/theme-kumo.css", "/abs/brand.css"]
sources         = ["src"]
exclude         = ["**/*.stories.tsx"]
output          = "out"
strict          = true
semantic_prefix = "acme-"

log {
  level  = "debug"
  format = "json"
}

cache {
  parsed_classes = -1
}
`

// --- LoadBytes ---

func TestLoadBytes_ResolvesRelativePaths(t *testing.T) {
	cfg, err := LoadBytes([]byte(sampleHCL), "/project/figmagen.hcl")
	require.NoError(t, err)

	assert.Equal(t, "/project/figmagen.hcl", cfg.Path)
	assert.Equal(t, "/project/kumo/component-registry.json", cfg.Registry)
	assert.Equal(t, []string{"/project/kumo/theme-kumo.css", "/abs/brand.css"}, cfg.Theme)
	assert.Equal(t, []string{"/project/src"}, cfg.Sources)
	assert.Equal(t, []string{"**/*.stories.tsx"}, cfg.Exclude)
	assert.Equal(t, "/project/out", cfg.Output)
	assert.True(t, cfg.Strict)
	assert.Equal(t, "acme-", cfg.SemanticPrefix)
	assert.Equal(t, util.LevelDebug, cfg.LogLevel)
	assert.Equal(t, util.FormatJSON, cfg.LogFormat)
	assert.Equal(t, -1, cfg.ParsedClasses)
}

func TestLoadBytes_EmptyFileUsesDefaults(t *testing.T) {
	cfg, err := LoadBytes([]byte(""), "/project/figmagen.hcl")
	require.NoError(t, err)

	def := Default()
	assert.Empty(t, cfg.Registry)
	assert.Empty(t, cfg.Theme)
	assert.Equal(t, def.Output, cfg.Output)
	assert.Equal(t, def.SemanticPrefix, cfg.SemanticPrefix)
	assert.Equal(t, def.Collection, cfg.Collection)
	assert.Equal(t, def.ParsedClasses, cfg.ParsedClasses)
	assert.False(t, cfg.Strict)
}

func TestLoadBytes_SyntaxError(t *testing.T) {
	_, err := LoadBytes([]byte(`registry = `), "bad.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadBytes_UnknownAttribute(t *testing.T) {
	_, err := LoadBytes([]byte(`colour = "red"`), "bad.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode config file")
}

func TestLoadBytes_InvalidValues(t *testing.T) {
	_, err := LoadBytes([]byte("exclude = [\"[\"]\nlog {\n  level = \"loud\"\n}\n"), "bad.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
	assert.Contains(t, err.Error(), "invalid exclude pattern")
}

// --- Load / Discover ---

func TestDiscover(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Discover(dir)
	require.NoError(t, err)
	assert.Empty(t, cfg.Path)

	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`output = "dist/figma"`), 0644))
	cfg, err = Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "dist/figma"), cfg.Output)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), FileName))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

// --- CheckInputs ---

func TestCheckInputs(t *testing.T) {
	dir := t.TempDir()
	theme := filepath.Join(dir, "theme.css")
	require.NoError(t, os.WriteFile(theme, []byte(":root {}"), 0644))

	cfg := Default()
	cfg.Theme = []string{theme}
	cfg.Sources = []string{dir}
	assert.NoError(t, cfg.CheckInputs())

	cfg.Registry = filepath.Join(dir, "missing.json")
	cfg.Sources = []string{theme}
	err := cfg.CheckInputs()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registry")
	assert.Contains(t, err.Error(), "not a directory")
}

func TestLoggerConfig(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = util.LevelWarn
	lc := cfg.LoggerConfig()
	assert.Equal(t, util.LevelWarn, lc.Level)
	assert.NotNil(t, lc.Output)
}
