// Package config loads the optional figmagen.hcl project file.
//
// Example:
//
//	registry        = "kumo/component-registry.json"
//	theme           = ["kumo/theme-kumo.css", "src/brand.css"]
//	sources         = ["src"]
//	exclude         = ["**/*.stories.tsx"]
//	output          = "figma"
//	strict          = true
//	semantic_prefix = "kumo-"
//
//	log {
//	  level  = "debug"
//	  format = "json"
//	}
//
//	cache {
//	  parsed_classes = 1024
//	}
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/gnana997/figmagen/pkg/figma"
	"github.com/gnana997/figmagen/pkg/tailwind"
	"github.com/gnana997/figmagen/pkg/tokens"
	"github.com/gnana997/figmagen/pkg/util"
)

// FileName is the config file looked up in the working directory.
const FileName = "figmagen.hcl"

// DefaultOutput is the output directory when none is configured.
const DefaultOutput = "figma"

// fileSchema mirrors the HCL body.
type fileSchema struct {
	Registry       string       `hcl:"registry,optional"`
	Theme          []string     `hcl:"theme,optional"`
	Sources        []string     `hcl:"sources,optional"`
	Exclude        []string     `hcl:"exclude,optional"`
	Output         string       `hcl:"output,optional"`
	Strict         *bool        `hcl:"strict,optional"`
	SemanticPrefix string       `hcl:"semantic_prefix,optional"`
	Collection     string       `hcl:"collection,optional"`
	MCPLog         string       `hcl:"mcp_log,optional"`
	Log            *logSchema   `hcl:"log,block"`
	Cache          *cacheSchema `hcl:"cache,block"`
}

type logSchema struct {
	Level  string `hcl:"level,optional"`
	Format string `hcl:"format,optional"`
}

type cacheSchema struct {
	ParsedClasses *int `hcl:"parsed_classes,optional"`
}

// Config is the resolved project configuration. Paths are absolute when
// they came from a file; empty Registry or Theme means the embedded kumo
// defaults.
type Config struct {
	// Path is the file the config was read from, or "" for defaults.
	Path string

	Registry       string
	Theme          []string
	Sources        []string
	Exclude        []string
	Output         string
	Strict         bool
	SemanticPrefix string
	Collection     string
	MCPLog         string

	LogLevel  util.LogLevel
	LogFormat util.LogFormat

	// ParsedClasses is the class parse cache size; negative disables it.
	ParsedClasses int
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	logCfg := util.DefaultLoggerConfig()
	return &Config{
		Output:         DefaultOutput,
		SemanticPrefix: tokens.DefaultSemanticPrefix,
		Collection:     figma.DefaultCollectionName,
		LogLevel:       logCfg.Level,
		LogFormat:      logCfg.Format,
		ParsedClasses:  tailwind.DefaultParserConfig().CacheSize,
	}
}

// Load reads the config file at path.
func Load(path string) (*Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	return LoadBytes(src, abs)
}

// LoadBytes decodes HCL source. Relative paths resolve against the
// directory of filename.
func LoadBytes(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file %s: %w", filename, diags)
	}

	var raw fileSchema
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config file %s: %w", filename, diags)
	}

	cfg := Default()
	cfg.Path = filename
	if err := cfg.apply(raw, filepath.Dir(filename)); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", filename, err)
	}
	return cfg, nil
}

// Discover loads FileName from dir if present, otherwise returns Default.
func Discover(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

func (c *Config) apply(raw fileSchema, base string) error {
	var errs []error

	c.Registry = resolve(base, raw.Registry)
	c.Theme = resolveAll(base, raw.Theme)
	c.Sources = resolveAll(base, raw.Sources)
	c.Exclude = raw.Exclude
	if raw.Output != "" {
		c.Output = resolve(base, raw.Output)
	}
	if raw.Strict != nil {
		c.Strict = *raw.Strict
	}
	if raw.SemanticPrefix != "" {
		c.SemanticPrefix = raw.SemanticPrefix
	}
	if raw.Collection != "" {
		c.Collection = raw.Collection
	}
	c.MCPLog = resolve(base, raw.MCPLog)

	if raw.Log != nil {
		if raw.Log.Level != "" {
			level, err := util.ParseLogLevel(raw.Log.Level)
			if err != nil {
				errs = append(errs, err)
			}
			c.LogLevel = level
		}
		if raw.Log.Format != "" {
			format, err := util.ParseLogFormat(raw.Log.Format)
			if err != nil {
				errs = append(errs, err)
			}
			c.LogFormat = format
		}
	}
	if raw.Cache != nil && raw.Cache.ParsedClasses != nil {
		c.ParsedClasses = *raw.Cache.ParsedClasses
	}

	if err := util.ValidatePatterns("exclude", c.Exclude); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// CheckInputs verifies that every configured input file exists.
func (c *Config) CheckInputs() error {
	var errs []error
	check := func(kind, path string) {
		info, err := os.Stat(path)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("%s %s: %w", kind, path, err))
		case kind == "sources" && !info.IsDir():
			errs = append(errs, fmt.Errorf("sources %s: not a directory", path))
		}
	}
	if c.Registry != "" {
		check("registry", c.Registry)
	}
	for _, path := range c.Theme {
		check("theme", path)
	}
	for _, path := range c.Sources {
		check("sources", path)
	}
	return errors.Join(errs...)
}

// LoggerConfig returns the logger settings, writing to stderr.
func (c *Config) LoggerConfig() util.LoggerConfig {
	cfg := util.DefaultLoggerConfig()
	cfg.Level = c.LogLevel
	cfg.Format = c.LogFormat
	return cfg
}

func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

func resolveAll(base string, paths []string) []string {
	if len(paths) == 0 {
		return nil
	}
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = resolve(base, p)
	}
	return out
}
