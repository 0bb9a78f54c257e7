// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from $XDG_CONFIG_HOME/coreutils/config.cue on Linux
// (~/.config when unset), ~/Library/Application Support/coreutils/config.cue on
// macOS and %APPDATA%\coreutils\config.cue on Windows. A config.cue in the
// working directory is used when the per-user file is absent.
//
// Every file is validated against the embedded CUE schema (config_schema.cue)
// before it is merged over the defaults.
package config
