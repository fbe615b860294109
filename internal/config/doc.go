// SPDX-License-Identifier: MPL-2.0

// Package config loads the launcher configuration using Viper with CUE as the
// file format.
//
// The file is optional. It is looked up as jsdocrun.cue in the launcher's own
// directory, or taken from the path in JSDOCRUN_CONFIG. Every key can also be
// set through a JSDOCRUN_ environment variable (dots become underscores, so
// launcher.duplicate_script_path is JSDOCRUN_LAUNCHER_DUPLICATE_SCRIPT_PATH).
// Files are validated against the embedded #Config schema before they are
// merged over the defaults.
package config
