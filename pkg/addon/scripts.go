// SPDX-License-Identifier: MPL-2.0

package addon

import (
	"fmt"
	"path"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"

	"github.com/libembed/libembed/pkg/fspath"
	"github.com/libembed/libembed/pkg/types"
)

// DefaultScriptPattern matches every Lua script of an AddOn.
const DefaultScriptPattern = "**/*.lua"

// ListScripts returns the script files of a matching any of patterns, sorted,
// excluding everything below the vendor directory. Patterns are doublestar
// globs relative to the AddOn directory.
func ListScripts(fsys afero.Fs, a AddOn, layout Layout, patterns []string) ([]types.FilesystemPath, error) {
	root := afero.NewIOFS(afero.NewBasePathFs(fsys, a.Path.String()))
	vendorPattern := path.Join(layout.VendorDir, "**")

	seen := make(map[string]bool)
	var matches []string
	for _, pattern := range patterns {
		found, err := doublestar.Glob(root, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("matching scripts with %q: %w", pattern, err)
		}
		for _, m := range found {
			if seen[m] || doublestar.MatchUnvalidated(vendorPattern, m) {
				continue
			}
			seen[m] = true
			matches = append(matches, m)
		}
	}
	slices.Sort(matches)

	scripts := make([]types.FilesystemPath, len(matches))
	for i, m := range matches {
		scripts[i] = fspath.Join(a.Path, fspath.FromSlash(types.FilesystemPath(m)))
	}
	return scripts, nil
}
