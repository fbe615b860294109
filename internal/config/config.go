// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jsdoc/jsdocrun/internal/issue"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name and environment variable prefix.
	AppName = "jsdocrun"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "jsdocrun"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvConfigPath names the variable holding an explicit config file path.
	EnvConfigPath = "JSDOCRUN_CONFIG"
	// EnvVerbose names the variable that overrides the verbose key.
	EnvVerbose = "JSDOCRUN_VERBOSE"

	// maxConfigFileSize bounds how much of a config file is read.
	maxConfigFileSize = 1 << 20
)

//go:embed config_schema.cue
var configSchema string

// LoadOptions selects where configuration is read from.
type LoadOptions struct {
	// ConfigFilePath is an explicit file. It must exist when set.
	ConfigFilePath string
	// SearchDir is where jsdocrun.cue is looked up when ConfigFilePath is empty.
	SearchDir string
}

// Load reads the configuration. It returns the defaults merged with the
// config file (if any) and JSDOCRUN_ environment overrides, and the path of
// the file that was used ("" when none).
func Load(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("script", defaults.Script)
	v.SetDefault("log_level", string(defaults.LogLevel))
	v.SetDefault("verbose", defaults.Verbose)
	v.SetDefault("launcher.duplicate_script_path", defaults.Launcher.DuplicateScriptPath)

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolvedPath := ""
	switch {
	case opts.ConfigFilePath != "":
		if !fileExists(opts.ConfigFilePath) {
			return nil, "", loadError(opts.ConfigFilePath,
				fmt.Errorf("config file not found: %s", opts.ConfigFilePath),
				"Verify the path in "+EnvConfigPath+" is correct",
				"Unset "+EnvConfigPath+" to use "+ConfigFileName+"."+ConfigFileExt+" next to the executable",
			)
		}
		resolvedPath = opts.ConfigFilePath
	case opts.SearchDir != "":
		candidate := filepath.Join(opts.SearchDir, ConfigFileName+"."+ConfigFileExt)
		if fileExists(candidate) {
			resolvedPath = candidate
		}
	}

	if resolvedPath != "" {
		if err := loadCUEIntoViper(v, resolvedPath); err != nil {
			return nil, "", loadError(resolvedPath, err,
				"Check that the file contains valid CUE syntax",
				"Only script, log_level, verbose and launcher.duplicate_script_path are recognized",
			)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Check JSDOCRUN_* environment variables as well as the config file").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(err).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

// VerboseFromEnv reports whether JSDOCRUN_VERBOSE is set to a true value.
// It is usable before Load, for example to report a config file that failed
// to load with the full error chain.
func VerboseFromEnv() bool {
	verbose, err := strconv.ParseBool(os.Getenv(EnvVerbose))
	return err == nil && verbose
}

// loadError wraps a config file failure with the catalog entry and suggestions.
func loadError(path string, cause error, suggestions ...string) error {
	ctx := issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithIssue(issue.ConfigLoadFailedId).
		Wrap(cause)
	for _, s := range suggestions {
		ctx = ctx.WithSuggestion(s)
	}
	return ctx.BuildError()
}

// loadCUEIntoViper parses a CUE file, validates it against #Config and
// merges the result into v. Fields are optional, so validation does not
// require concrete values.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if len(data) > maxConfigFileSize {
		return fmt.Errorf("config file is %d bytes, limit is %d", len(data), maxConfigFileSize)
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return formatCUEError(userValue.Err())
	}

	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return formatCUEError(err)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return formatCUEError(err)
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

// formatCUEError flattens a CUE error list into one message with positions.
func formatCUEError(err error) error {
	details := strings.TrimSpace(cueerrors.Details(err, nil))
	if details == "" {
		return err
	}
	return errors.New(details)
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
