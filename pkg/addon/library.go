// SPDX-License-Identifier: MPL-2.0

package addon

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"

	"github.com/libembed/libembed/pkg/toc"
	"github.com/libembed/libembed/pkg/types"
)

// VersionField is the manifest metadata field holding an add-on's version.
const VersionField = "Version"

type (
	// Library is a dependency embedded in the vendor directory.
	Library struct {
		Name    string
		Version types.SemVer
		Path    types.FilesystemPath
	}

	// VersionResolver determines the version of a library checkout when its
	// manifest does not declare one. The bool is false when no version is known.
	VersionResolver interface {
		ResolveVersion(ctx context.Context, path types.FilesystemPath) (types.SemVer, bool, error)
	}

	// DiscoverOptions configures DiscoverLibraries.
	DiscoverOptions struct {
		Layout Layout
		// Resolver is consulted when a library manifest has no valid
		// "## Version:" field. May be nil.
		Resolver VersionResolver
		// DefaultVersion is used when neither the manifest nor the Resolver
		// knows the version.
		DefaultVersion types.SemVer
	}
)

// DiscoverLibraries lists the libraries embedded in a's vendor directory.
// Every subdirectory except the shared runtime is a library. Libraries are
// returned in directory name order.
func DiscoverLibraries(ctx context.Context, fsys afero.Fs, a AddOn, opts DiscoverOptions) ([]Library, error) {
	vendorPath := a.VendorPath(opts.Layout)
	entries, err := afero.ReadDir(fsys, vendorPath.String())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", vendorPath, err)
	}

	var libs []Library
	for _, entry := range entries {
		if !entry.IsDir() || entry.Name() == opts.Layout.RuntimeName {
			continue
		}
		lib := a.Vendored(opts.Layout, entry.Name())
		version, err := libraryVersion(ctx, fsys, lib, opts)
		if err != nil {
			return nil, err
		}
		libs = append(libs, Library{Name: lib.Name, Version: version, Path: lib.Path})
	}
	return libs, nil
}

func libraryVersion(ctx context.Context, fsys afero.Fs, lib AddOn, opts DiscoverOptions) (types.SemVer, error) {
	manifest := lib.ManifestPath(toc.FlavorFallback)
	if ok, err := fileExists(fsys, manifest); err != nil {
		return "", err
	} else if ok {
		text, err := ReadFile(fsys, manifest)
		if err != nil {
			return "", err
		}
		if field, found := toc.ParseField(text, VersionField); found {
			if v, err := types.ParseSemVer(field); err == nil {
				return v, nil
			}
		}
	}

	if opts.Resolver != nil {
		v, ok, err := opts.Resolver.ResolveVersion(ctx, lib.Path)
		if err != nil {
			return "", fmt.Errorf("resolving version of %s: %w", lib.Name, err)
		}
		if ok {
			return v, nil
		}
	}
	return opts.DefaultVersion, nil
}

// Names returns the library names in order.
func Names(libs []Library) []string {
	names := make([]string, len(libs))
	for i, lib := range libs {
		names[i] = lib.Name
	}
	return names
}

// Versions returns the library versions keyed by name.
func Versions(libs []Library) map[string]types.SemVer {
	versions := make(map[string]types.SemVer, len(libs))
	for _, lib := range libs {
		versions[lib.Name] = lib.Version
	}
	return versions
}
