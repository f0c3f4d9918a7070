// SPDX-License-Identifier: MPL-2.0

package addon

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/libembed/libembed/pkg/toc"
)

type (
	// Classification is the embeddability decision for one AddOn.
	Classification struct {
		// Embeddable is the union of the embeddable dependencies of every
		// manifest variant, in variant order then first-seen order.
		Embeddable []string
		// PerManifest holds one entry per existing manifest variant.
		PerManifest []ManifestDependencies
	}

	// ManifestDependencies is the classification of one manifest variant.
	ManifestDependencies struct {
		Manifest   Manifest
		Declared   []string
		Embeddable []string
	}
)

// IsEmpty reports whether no dependency of any manifest is embeddable.
func (c Classification) IsEmpty() bool {
	return len(c.Embeddable) == 0
}

// IsEmbeddable reports whether the sibling add-on dep has already embedded
// the shared runtime itself, which marks it as a library.
func IsEmbeddable(fsys afero.Fs, a AddOn, layout Layout, dep string) (bool, error) {
	marker := a.Sibling(dep).VendorPath(layout, layout.RuntimeName)
	ok, err := afero.Exists(fsys, marker.String())
	if err != nil {
		return false, fmt.Errorf("checking %s: %w", marker, err)
	}
	return ok, nil
}

// Classify reads every existing manifest variant of a concurrently and
// decides which declared dependencies are embeddable.
func Classify(ctx context.Context, fsys afero.Fs, a AddOn, layout Layout) (Classification, error) {
	manifests, err := ListManifests(fsys, a)
	if err != nil {
		return Classification{}, err
	}

	results := make([]ManifestDependencies, len(manifests))
	g, ctx := errgroup.WithContext(ctx)
	for i, m := range manifests {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			text, err := ReadFile(fsys, m.Path)
			if err != nil {
				return err
			}
			declared := toc.ParseDependencies(text)
			var embeddable []string
			for _, dep := range declared {
				if dep == "" {
					continue
				}
				ok, err := IsEmbeddable(fsys, a, layout, dep)
				if err != nil {
					return err
				}
				if ok {
					embeddable = append(embeddable, dep)
				}
			}
			results[i] = ManifestDependencies{Manifest: m, Declared: declared, Embeddable: embeddable}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Classification{}, err
	}

	c := Classification{PerManifest: results}
	seen := make(map[string]bool)
	for _, r := range results {
		for _, dep := range r.Embeddable {
			if !seen[dep] {
				seen[dep] = true
				c.Embeddable = append(c.Embeddable, dep)
			}
		}
	}
	return c, nil
}
