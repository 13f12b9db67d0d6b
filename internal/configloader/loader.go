// Package configloader resolves the effective pylex configuration.
// It discovers config files in XDG-style locations, merges them in layers,
// applies PYLEX_* environment variables and validates the result.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/pylex/pkg/config"
	"github.com/yaklabco/pylex/pkg/fsutil"
)

// LoadOptions controls configuration loading.
type LoadOptions struct {
	// WorkingDir is where the project config search starts.
	// Empty means the process working directory.
	WorkingDir string

	// ExplicitPath is a config file named on the command line.
	ExplicitPath string

	// IgnoreSystemConfig, IgnoreUserConfig and IgnoreProjectConfig skip a file layer.
	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool

	// IgnoreEnv skips PYLEX_* environment variables.
	IgnoreEnv bool

	// CLIConfig holds values set by command-line flags. It is applied last.
	CLIConfig *config.Config
}

// LoadResult is the resolved configuration and how it was built.
type LoadResult struct {
	// Config is the merged, validated configuration.
	Config *config.Config

	// Paths are the discovered config files, loaded or not.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were merged, lowest precedence first.
	LoadedFrom []string

	// Warnings are non-fatal findings from file validation.
	Warnings []string
}

// layer is one file source in precedence order.
type layer struct {
	name string
	path string
	skip bool
}

// Load resolves the final configuration. Later sources win:
//  1. Defaults
//  2. System config (/etc/pylex/config.yaml)
//  3. User config ($XDG_CONFIG_HOME/pylex/config.yaml)
//  4. Project config (.pylex.yml, searched upward)
//  5. Explicit config file (opts.ExplicitPath)
//  6. Environment variables (PYLEX_*)
//  7. CLI flags (opts.CLIConfig)
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layers := []layer{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
		{"explicit", paths.Explicit, false},
	}

	for _, l := range layers {
		if l.skip || l.path == "" {
			continue
		}

		fileCfg, err := loadConfigFile(ctx, l.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", l.name, err)
		}

		for _, w := range ValidateWithFile(fileCfg, l.path).Warnings {
			result.Warnings = append(result.Warnings, w.Error())
		}

		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, l.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	cfg = merge(cfg, opts.CLIConfig)

	if validation := Validate(cfg); !validation.Valid() {
		return nil, &validation.Errors[0]
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile reads and decodes one config file.
func loadConfigFile(ctx context.Context, path string) (*config.Config, error) {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
