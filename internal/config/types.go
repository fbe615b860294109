// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jsdoc/jsdocrun/pkg/platform"
)

const (
	// LogLevelDebug enables launcher debug output.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo logs informational launcher messages.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn logs warnings only. This is the default.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError logs errors only.
	LogLevelError LogLevel = "error"

	// DefaultScript is the file name of the sibling script.
	DefaultScript = "main.js"
)

var (
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidScriptName is returned when the script name is empty or contains a path separator.
	ErrInvalidScriptName = errors.New("invalid script name")
)

type (
	// LogLevel is the minimum level for launcher diagnostics.
	LogLevel string

	// Config is the launcher configuration.
	Config struct {
		// Script is the file name of the script that lives next to the executable.
		Script string `json:"script" mapstructure:"script"`
		// LogLevel is the minimum level written to stderr.
		LogLevel LogLevel `json:"log_level" mapstructure:"log_level"`
		// Verbose forces debug logging and full error chains.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
		// Launcher holds hand-off settings.
		Launcher LauncherConfig `json:"launcher" mapstructure:"launcher"`
	}

	// LauncherConfig controls how the argument vector is built.
	LauncherConfig struct {
		// DuplicateScriptPath prepends the script path twice. The embedded
		// shell consumes the first copy; the script sees the second.
		DuplicateScriptPath bool `json:"duplicate_script_path" mapstructure:"duplicate_script_path"`
	}
)

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Script:   DefaultScript,
		LogLevel: LogLevelWarn,
		Launcher: LauncherConfig{
			DuplicateScriptPath: true,
		},
	}
}

// Validate returns an error if the LogLevel is not one of the known levels.
func (l LogLevel) Validate() error {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return nil
	default:
		return fmt.Errorf("%w: %q (expected debug, info, warn or error)", ErrInvalidLogLevel, string(l))
	}
}

// SlogLevel maps the LogLevel to a slog.Level. Unknown values map to warn.
func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// EffectiveLogLevel returns LogLevelDebug when Verbose is set and LogLevel otherwise.
func (c *Config) EffectiveLogLevel() LogLevel {
	if c.Verbose {
		return LogLevelDebug
	}
	return c.LogLevel
}

// Validate checks constraints that hold regardless of where a value came
// from. Environment overrides bypass the CUE schema, so they are checked here.
func (c *Config) Validate() error {
	var errs []error
	if name := strings.TrimSpace(c.Script); name == "" || name == "." || name == ".." || strings.ContainsAny(c.Script, `/\`) {
		errs = append(errs, fmt.Errorf("%w: %q must be a plain file name", ErrInvalidScriptName, c.Script))
	} else if platform.IsWindowsReservedName(c.Script) {
		errs = append(errs, fmt.Errorf("%w: %q is a reserved device name on Windows", ErrInvalidScriptName, c.Script))
	}
	if err := c.LogLevel.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
