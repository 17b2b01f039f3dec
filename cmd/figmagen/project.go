package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gnana997/figmagen/pkg/config"
	"github.com/gnana997/figmagen/pkg/pipeline"
	"github.com/gnana997/figmagen/pkg/util"
)

// globalFlags override values from figmagen.hcl.
type globalFlags struct {
	configPath     string
	registry       string
	theme          []string
	sources        []string
	exclude        []string
	output         string
	strict         bool
	semanticPrefix string
	logLevel       string
	logFormat      string
}

func (f *globalFlags) register(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", "", "config file (default ./"+config.FileName+" when present)")
	pf.StringVar(&f.registry, "registry", "", "component-registry.json (default: embedded kumo registry)")
	pf.StringSliceVar(&f.theme, "theme", nil, "theme CSS files or directories, later files win (default: embedded kumo theme)")
	pf.StringSliceVar(&f.sources, "sources", nil, "source directories to scan for class strings")
	pf.StringSliceVar(&f.exclude, "exclude", nil, "doublestar patterns excluded from scanning")
	pf.StringVarP(&f.output, "output", "o", "", "output directory (default \""+config.DefaultOutput+"\")")
	pf.BoolVar(&f.strict, "strict", false, "fail on unknown options, missing entries and unresolved tokens")
	pf.StringVar(&f.semanticPrefix, "semantic-prefix", "", "prefix of semantic tokens (default \"kumo-\")")
	pf.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&f.logFormat, "log-format", "", "log format: text, json")
}

// loadConfig reads the config file and applies flag overrides.
func (f *globalFlags) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if f.configPath != "" {
		cfg, err = config.Load(f.configPath)
	} else {
		wd, wdErr := os.Getwd()
		if wdErr != nil {
			return nil, wdErr
		}
		cfg, err = config.Discover(wd)
	}
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("registry") {
		cfg.Registry = f.registry
	}
	if changed("theme") {
		cfg.Theme = f.theme
	}
	if changed("sources") {
		cfg.Sources = f.sources
	}
	if changed("exclude") {
		cfg.Exclude = f.exclude
	}
	if changed("output") {
		cfg.Output = f.output
	}
	if changed("strict") {
		cfg.Strict = f.strict
	}
	if changed("semantic-prefix") {
		cfg.SemanticPrefix = f.semanticPrefix
	}
	if changed("log-level") {
		level, err := util.ParseLogLevel(f.logLevel)
		if err != nil {
			return nil, err
		}
		cfg.LogLevel = level
	}
	if changed("log-format") {
		format, err := util.ParseLogFormat(f.logFormat)
		if err != nil {
			return nil, err
		}
		cfg.LogFormat = format
	}
	return cfg, nil
}

// open loads the project. The caller closes the pipeline.
func (f *globalFlags) open(cmd *cobra.Command) (*pipeline.Pipeline, error) {
	cfg, err := f.loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logCfg := cfg.LoggerConfig()
	logCfg.Output = cmd.ErrOrStderr()
	logger := util.NewLogger(logCfg)
	util.SetDefault(logger)

	p, err := pipeline.New(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}
	logger.Debug("project opened", "config", cfg.Path, "output", cfg.Output, "strict", cfg.Strict)
	return p, nil
}

// withProject runs fn with an open pipeline.
func (f *globalFlags) withProject(cmd *cobra.Command, fn func(*pipeline.Pipeline) error) error {
	p, err := f.open(cmd)
	if err != nil {
		return err
	}
	defer p.Close()
	return fn(p)
}
