// SPDX-License-Identifier: MPL-2.0

package addon

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"

	"github.com/libembed/libembed/pkg/toc"
	"github.com/libembed/libembed/pkg/types"
)

// Manifest is one existing manifest variant of an AddOn.
type Manifest struct {
	Flavor toc.Flavor
	Path   types.FilesystemPath
}

// ListManifests returns the manifest variants of a that exist on fsys, in
// toc.Flavors order. Missing variants are skipped.
func ListManifests(fsys afero.Fs, a AddOn) ([]Manifest, error) {
	var manifests []Manifest
	for _, flavor := range toc.Flavors() {
		path := a.ManifestPath(flavor)
		ok, err := fileExists(fsys, path)
		if err != nil {
			return nil, err
		}
		if ok {
			manifests = append(manifests, Manifest{Flavor: flavor, Path: path})
		}
	}
	return manifests, nil
}

func fileExists(fsys afero.Fs, path types.FilesystemPath) (bool, error) {
	info, err := fsys.Stat(path.String())
	switch {
	case err == nil:
		return !info.IsDir(), nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("checking %s: %w", path, err)
	}
}
