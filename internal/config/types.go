// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/libembed/libembed/pkg/addon"
	"github.com/libembed/libembed/pkg/embedder"
	"github.com/libembed/libembed/pkg/luascan"
	"github.com/libembed/libembed/pkg/submodule"
	"github.com/libembed/libembed/pkg/types"
)

const (
	// DefaultVendorDir is the add-on relative vendor directory.
	DefaultVendorDir = addon.DefaultVendorDir
	// DefaultRuntimeName is the shared runtime's directory and global name.
	DefaultRuntimeName = addon.RuntimeName
	// DefaultRuntimeURL is the repository of the shared runtime.
	DefaultRuntimeURL = embedder.DefaultRuntimeURL
	// DefaultRepositoryRoot is the repository root relative to the add-on.
	DefaultRepositoryRoot types.FilesystemPath = embedder.DefaultRepositoryRoot
	// DefaultScriptPattern selects every Lua script.
	DefaultScriptPattern = addon.DefaultScriptPattern
	// DefaultLibraryVersion is used for libraries without a known version.
	DefaultLibraryVersion = embedder.DefaultLibraryVersion
	// DefaultAcquisitionTemplate renders the acquisition statements of one library.
	DefaultAcquisitionTemplate = luascan.DefaultAcquisitionTemplate
	// DefaultGitCommand runs git from PATH.
	DefaultGitCommand = submodule.DefaultGitCommand
)

var (
	// ErrInvalidVendorDir is returned when the vendor directory is not a single path element.
	ErrInvalidVendorDir = errors.New("invalid vendor dir")
	// ErrInvalidRuntimeConfig is the sentinel error wrapped by InvalidRuntimeConfigError.
	ErrInvalidRuntimeConfig = errors.New("invalid runtime config")
	// ErrInvalidGitCommand is returned when the git command is blank.
	ErrInvalidGitCommand = errors.New("invalid git command")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// Config holds the application configuration.
	Config struct {
		// VendorDir is the add-on relative directory libraries are vendored into.
		VendorDir string `json:"vendor_dir" mapstructure:"vendor_dir"`
		// Runtime describes the shared library runtime.
		Runtime RuntimeConfig `json:"runtime" mapstructure:"runtime"`
		// RepositoryRoot is the directory holding .gitmodules.
		RepositoryRoot types.FilesystemPath `json:"repository_root" mapstructure:"repository_root"`
		// ScriptPatterns select the scripts scanned for library references.
		ScriptPatterns []string `json:"script_patterns" mapstructure:"script_patterns"`
		// DefaultLibraryVersion is used when a library's version is unknown.
		DefaultLibraryVersion types.SemVer `json:"default_library_version" mapstructure:"default_library_version"`
		// AcquisitionTemplate is the Handlebars source of the acquisition block.
		AcquisitionTemplate string `json:"acquisition_template" mapstructure:"acquisition_template"`
		// Git configures the git runner.
		Git GitConfig `json:"git" mapstructure:"git"`
		// UI contains user interface settings.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// RuntimeConfig describes the shared library runtime.
	RuntimeConfig struct {
		Name string `json:"name" mapstructure:"name"`
		URL  string `json:"url" mapstructure:"url"`
	}

	// GitConfig configures how git is run.
	GitConfig struct {
		Command string `json:"command" mapstructure:"command"`
	}

	// UIConfig contains user interface settings.
	UIConfig struct {
		// Verbose enables debug logging.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	// InvalidVendorDirError is returned when VendorDir is blank or nested.
	InvalidVendorDirError struct {
		Value string
	}

	// InvalidRuntimeConfigError is returned when a RuntimeConfig has invalid fields.
	InvalidRuntimeConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		VendorDir: DefaultVendorDir,
		Runtime: RuntimeConfig{
			Name: DefaultRuntimeName,
			URL:  DefaultRuntimeURL,
		},
		RepositoryRoot:        DefaultRepositoryRoot,
		ScriptPatterns:        []string{DefaultScriptPattern},
		DefaultLibraryVersion: DefaultLibraryVersion,
		AcquisitionTemplate:   DefaultAcquisitionTemplate,
		Git:                   GitConfig{Command: DefaultGitCommand},
		UI:                    UIConfig{Verbose: false},
	}
}

// Validate returns an error if any field of the configuration is invalid.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.VendorDir) == "" || strings.ContainsAny(c.VendorDir, `/\`) {
		errs = append(errs, &InvalidVendorDirError{Value: c.VendorDir})
	}
	if err := c.Runtime.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.RepositoryRoot.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.DefaultLibraryVersion.Validate(); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(c.Git.Command) == "" {
		errs = append(errs, fmt.Errorf("%w: must be non-empty", ErrInvalidGitCommand))
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Validate returns an error if the runtime name or URL is blank.
func (c RuntimeConfig) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, errors.New("runtime name must be non-empty"))
	}
	if strings.TrimSpace(c.URL) == "" {
		errs = append(errs, errors.New("runtime url must be non-empty"))
	}
	if len(errs) > 0 {
		return &InvalidRuntimeConfigError{FieldErrors: errs}
	}
	return nil
}

func (e *InvalidVendorDirError) Error() string {
	return fmt.Sprintf("invalid vendor dir %q: must be a single directory name", e.Value)
}

// Unwrap returns ErrInvalidVendorDir for errors.Is() compatibility.
func (e *InvalidVendorDirError) Unwrap() error { return ErrInvalidVendorDir }

func (e *InvalidRuntimeConfigError) Error() string {
	return fmt.Sprintf("invalid runtime config: %v", errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidRuntimeConfig for errors.Is() compatibility.
func (e *InvalidRuntimeConfigError) Unwrap() error { return ErrInvalidRuntimeConfig }

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %v", errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility. Field errors
// are reachable through errors.Is on their own sentinels.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}
