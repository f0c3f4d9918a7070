// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/libembed/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/libembed/config.cue on macOS, %APPDATA%\libembed\config.cue
// on Windows), falling back to ./config.cue. Every key can be overridden with a
// LIBEMBED_* environment variable, dots replaced by underscores.
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to ensure
// type safety and provide clear error messages for invalid configurations.
package config
