// SPDX-License-Identifier: MPL-2.0

package addon

import (
	"strings"

	"github.com/spf13/afero"

	"github.com/libembed/libembed/pkg/fspath"
	"github.com/libembed/libembed/pkg/toc"
	"github.com/libembed/libembed/pkg/types"
)

const (
	// SlashSeparator is the portable include path separator.
	SlashSeparator = "/"
	// BackslashSeparator is the separator the game client itself writes.
	BackslashSeparator = `\`
)

// SeparatorFor returns the include separator style a manifest already uses:
// backslash if any include contains one, slash otherwise.
func SeparatorFor(includes []string) string {
	for _, inc := range includes {
		if strings.Contains(inc, BackslashSeparator) {
			return BackslashSeparator
		}
	}
	return SlashSeparator
}

// RelativizeIncludes resolves every include against libraryManifestDir and
// re-relativizes it against parentManifestDir. Includes may use either
// separator; results use sep.
func RelativizeIncludes(includes []string, libraryManifestDir, parentManifestDir types.FilesystemPath, sep string) ([]string, error) {
	out := make([]string, 0, len(includes))
	for _, inc := range includes {
		portable := strings.ReplaceAll(inc, BackslashSeparator, SlashSeparator)
		abs := fspath.Join(libraryManifestDir, fspath.FromSlash(types.FilesystemPath(portable)))
		rel, err := fspath.Rel(parentManifestDir, abs)
		if err != nil {
			return nil, err
		}
		out = append(out, strings.ReplaceAll(fspath.ToSlash(rel), SlashSeparator, sep))
	}
	return out, nil
}

// MergeIncludes returns the embedded include sets, in order, followed by the
// parent's own includes. Only the first occurrence of an include is kept.
func MergeIncludes(parent []string, embedded ...[]string) []string {
	seen := make(map[string]bool)
	var merged []string
	add := func(includes []string) {
		for _, inc := range includes {
			if !seen[inc] {
				seen[inc] = true
				merged = append(merged, inc)
			}
		}
	}
	for _, set := range embedded {
		add(set)
	}
	add(parent)
	return merged
}

// FindLibraryManifest returns the manifest describing library name for a
// parent manifest of the given flavor. Candidates, in order: the vendored
// copy's same-flavor and fallback manifests, then the sibling source
// checkout's same-flavor and fallback manifests.
func FindLibraryManifest(fsys afero.Fs, a AddOn, layout Layout, name string, flavor toc.Flavor) (types.FilesystemPath, bool, error) {
	vendored := a.Vendored(layout, name)
	sibling := a.Sibling(name)
	candidates := []types.FilesystemPath{
		vendored.ManifestPath(flavor),
		vendored.ManifestPath(toc.FlavorFallback),
		sibling.ManifestPath(flavor),
		sibling.ManifestPath(toc.FlavorFallback),
	}
	for _, path := range candidates {
		ok, err := fileExists(fsys, path)
		if err != nil {
			return "", false, err
		}
		if ok {
			return path, true, nil
		}
	}
	return "", false, nil
}

// LibraryIncludes returns the includes of library name as seen from the
// parent manifest m, relativized against m's directory with sep.
func LibraryIncludes(fsys afero.Fs, a AddOn, layout Layout, name string, m Manifest, sep string) ([]string, error) {
	path, ok, err := FindLibraryManifest(fsys, a, layout, name, m.Flavor)
	if err != nil || !ok {
		return nil, err
	}
	text, err := ReadFile(fsys, path)
	if err != nil {
		return nil, err
	}
	return RelativizeIncludes(toc.ExtractIncludes(text), a.VendorPath(layout, name), fspath.Dir(m.Path), sep)
}
