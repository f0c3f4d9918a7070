// SPDX-License-Identifier: MPL-2.0

package submodule

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"

	"github.com/go-git/go-git/v5/config"
	"github.com/spf13/afero"

	"github.com/libembed/libembed/pkg/fspath"
	"github.com/libembed/libembed/pkg/types"
)

// ModulesFile is the registry file at the repository root.
const ModulesFile = ".gitmodules"

// ErrRepositoryURLNotFound is returned when a dependency is not registered
// as a submodule of the repository and so has no known source URL.
var ErrRepositoryURLNotFound = errors.New("repository url not found")

type (
	// Registry maps repository-relative submodule paths to their URLs.
	// It is immutable once loaded.
	Registry struct {
		urls map[string]string
	}

	// Source is where an embedded dependency is vendored from.
	Source struct {
		Name string
		// Path is the dependency's slash-separated path relative to the
		// repository root, as written in the registry.
		Path string
		URL  string
	}

	// RepositoryURLNotFoundError is returned when Resolve finds no registry
	// entry for a dependency.
	RepositoryURLNotFoundError struct {
		Name string
		Path string
		// Registered lists the paths the registry does know, sorted.
		Registered []string
	}
)

// ParseRegistry parses .gitmodules content.
func ParseRegistry(data []byte) (*Registry, error) {
	modules := config.NewModules()
	if err := modules.Unmarshal(data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ModulesFile, err)
	}

	r := &Registry{urls: make(map[string]string, len(modules.Submodules))}
	for _, sm := range modules.Submodules {
		if sm.Path == "" || sm.URL == "" {
			continue
		}
		r.urls[path.Clean(sm.Path)] = sm.URL
	}
	return r, nil
}

// LoadRegistry reads the registry at the repository root. A repository
// without a .gitmodules file has an empty registry.
func LoadRegistry(fsys afero.Fs, root types.FilesystemPath) (*Registry, error) {
	file := fspath.JoinStr(root, ModulesFile)
	data, err := afero.ReadFile(fsys, file.String())
	if errors.Is(err, fs.ErrNotExist) {
		return &Registry{urls: map[string]string{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", file, err)
	}
	return ParseRegistry(data)
}

// Lookup returns the URL registered for the slash-separated path.
func (r *Registry) Lookup(p string) (string, bool) {
	url, ok := r.urls[path.Clean(p)]
	return url, ok
}

// Paths returns the registered paths, sorted.
func (r *Registry) Paths() []string {
	paths := make([]string, 0, len(r.urls))
	for p := range r.urls {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

// Resolve returns the source of dependency name checked out at dir.
func (r *Registry) Resolve(root types.FilesystemPath, name string, dir types.FilesystemPath) (Source, error) {
	rel, err := fspath.Rel(root, dir)
	if err != nil {
		return Source{}, err
	}
	p := fspath.ToSlash(rel)
	url, ok := r.Lookup(p)
	if !ok {
		return Source{}, &RepositoryURLNotFoundError{Name: name, Path: p, Registered: r.Paths()}
	}
	return Source{Name: name, Path: p, URL: url}, nil
}

func (e *RepositoryURLNotFoundError) Error() string {
	return fmt.Sprintf("no repository url registered in %s for dependency %q (path %q)", ModulesFile, e.Name, e.Path)
}

// Unwrap returns ErrRepositoryURLNotFound for errors.Is() compatibility.
func (e *RepositoryURLNotFoundError) Unwrap() error { return ErrRepositoryURLNotFound }
