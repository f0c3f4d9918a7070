// SPDX-License-Identifier: MPL-2.0

package embedder

import (
	"github.com/charmbracelet/log"

	"github.com/libembed/libembed/pkg/addon"
	"github.com/libembed/libembed/pkg/luascan"
	"github.com/libembed/libembed/pkg/types"
)

const (
	// DefaultRuntimeURL is the repository of the shared library runtime.
	DefaultRuntimeURL = "https://github.com/SanjoSolutions/Library.git"
	// DefaultRepositoryRoot locates the repository root relative to the add-on.
	DefaultRepositoryRoot = "../.."
	// DefaultLibraryVersion is used for libraries without a known version.
	DefaultLibraryVersion types.SemVer = "1.0.0"
)

type (
	// Options configures a run.
	Options struct {
		Layout addon.Layout
		// RuntimeURL is vendored at <vendor dir>/<runtime name>.
		RuntimeURL string
		// RepositoryRoot holds the .gitmodules registry. Relative roots are
		// resolved against the add-on directory.
		RepositoryRoot types.FilesystemPath
		// ScriptPatterns select the scripts scanned for library references.
		ScriptPatterns        []string
		DefaultLibraryVersion types.SemVer
		Template              *luascan.AcquisitionTemplate
	}

	// Option configures an Embedder.
	Option func(*Embedder)
)

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Layout:                addon.DefaultLayout(),
		RuntimeURL:            DefaultRuntimeURL,
		RepositoryRoot:        DefaultRepositoryRoot,
		ScriptPatterns:        []string{addon.DefaultScriptPattern},
		DefaultLibraryVersion: DefaultLibraryVersion,
		Template:              luascan.DefaultTemplate(),
	}
}

// WithOptions replaces the run options.
func WithOptions(opts Options) Option {
	return func(e *Embedder) {
		e.opts = opts
	}
}

// WithLogger sets the logger state transitions are reported to.
func WithLogger(logger *log.Logger) Option {
	return func(e *Embedder) {
		e.logger = logger
	}
}

// WithVersionResolver sets the resolver consulted for libraries whose
// manifest declares no version.
func WithVersionResolver(r addon.VersionResolver) Option {
	return func(e *Embedder) {
		e.resolver = r
	}
}
