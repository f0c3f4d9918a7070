// SPDX-License-Identifier: MPL-2.0

package submodule

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/libembed/libembed/pkg/types"
)

// TagVersionResolver derives a library version from the highest semantic
// version tag pointing at the checkout's HEAD commit. Tags may carry a "v"
// prefix; annotated tags are resolved to their commit.
//
// The checkout is opened with git.PlainOpen on the OS filesystem, not
// through the afero.Fs the embedder works on. Callers running on an
// in-memory filesystem should inject their own addon.VersionResolver.
type TagVersionResolver struct{}

// ResolveVersion implements addon.VersionResolver. A path that is not a git
// checkout, or whose HEAD carries no version tag, has no version.
func (TagVersionResolver) ResolveVersion(ctx context.Context, path types.FilesystemPath) (types.SemVer, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	repo, err := git.PlainOpen(path.String())
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("opening repository %s: %w", path, err)
	}

	head, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading HEAD of %s: %w", path, err)
	}

	tags, err := repo.Tags()
	if err != nil {
		return "", false, fmt.Errorf("listing tags of %s: %w", path, err)
	}

	var best types.SemVer
	err = tags.ForEach(func(ref *plumbing.Reference) error {
		target := ref.Hash()
		if tag, err := repo.TagObject(target); err == nil {
			commit, err := tag.Commit()
			if err != nil {
				return nil
			}
			target = commit.Hash
		}
		if target != head.Hash() {
			return nil
		}
		v, err := types.ParseSemVer(ref.Name().Short())
		if err != nil {
			return nil
		}
		if best == "" || v.Compare(best) > 0 {
			best = v
		}
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("reading tags of %s: %w", path, err)
	}
	return best, best != "", nil
}
