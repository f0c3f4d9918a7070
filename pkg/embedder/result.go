// SPDX-License-Identifier: MPL-2.0

package embedder

import (
	"slices"

	"github.com/libembed/libembed/pkg/addon"
	"github.com/libembed/libembed/pkg/submodule"
	"github.com/libembed/libembed/pkg/types"
)

// Result reports what a run changed.
type Result struct {
	AddOn addon.AddOn
	// Embedded lists the embedded dependencies in classification order.
	Embedded []string
	// Sources lists where each embedded dependency was vendored from.
	Sources []submodule.Source
	// Manifests lists the rewritten manifest files.
	Manifests []types.FilesystemPath
	// Scripts lists the scripts acquisition statements were injected into.
	Scripts []types.FilesystemPath
}

// IsNoop reports whether the run found nothing to embed.
func (r Result) IsNoop() bool {
	return len(r.Embedded) == 0
}

func (r *Result) addManifest(path types.FilesystemPath) {
	if !slices.Contains(r.Manifests, path) {
		r.Manifests = append(r.Manifests, path)
	}
}
