// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"
	"log/slog"

	"github.com/jsdoc/jsdocrun/internal/config"

	"github.com/charmbracelet/log"
)

// newLogger returns a slog.Logger backed by a charmbracelet/log handler
// writing to w at the given level. charmbracelet/log levels share slog's
// numeric values.
func newLogger(w io.Writer, level config.LogLevel) *slog.Logger {
	handler := log.NewWithOptions(w, log.Options{
		Prefix: config.AppName,
		Level:  log.Level(level.SlogLevel()),
	})
	return slog.New(handler)
}
