// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride replaces the directory ConfigDir reports when set.
var configDirOverride string

// SetConfigDirOverride makes ConfigDir return dir, so tests can load and
// create config.cue without touching the user's real config directory.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// Reset restores the platform config directory.
func Reset() {
	configDirOverride = ""
}
