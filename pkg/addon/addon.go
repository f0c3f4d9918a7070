// SPDX-License-Identifier: MPL-2.0

package addon

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"

	"github.com/libembed/libembed/pkg/fspath"
	"github.com/libembed/libembed/pkg/toc"
	"github.com/libembed/libembed/pkg/types"
)

const (
	// DefaultVendorDir is the AddOn-relative directory embedded libraries live in.
	DefaultVendorDir = "libs"
	// RuntimeName is the directory name of the shared library runtime. An
	// add-on is embeddable when its own vendor directory contains it.
	RuntimeName = "Library"
)

// ErrAddOnNotFound is returned when the AddOn directory does not exist.
var ErrAddOnNotFound = errors.New("add-on directory not found")

type (
	// AddOn identifies an add-on checkout by its directory.
	AddOn struct {
		// Path is the absolute AddOn directory.
		Path types.FilesystemPath
		// Name is the directory base name. Manifest file names and the
		// global declaration line of scripts are derived from it.
		Name string
	}

	// Layout names the vendor directory and the shared runtime inside it.
	Layout struct {
		VendorDir   string
		RuntimeName string
	}

	// AddOnNotFoundError is returned by Open when the AddOn directory is missing.
	AddOnNotFoundError struct {
		Path types.FilesystemPath
	}
)

// New returns the AddOn at path, made absolute.
func New(path types.FilesystemPath) (AddOn, error) {
	if err := path.Validate(); err != nil {
		return AddOn{}, err
	}
	abs, err := fspath.Abs(path)
	if err != nil {
		return AddOn{}, err
	}
	return AddOn{Path: abs, Name: fspath.Base(abs)}, nil
}

// Open returns the AddOn at path after checking that it is a directory on fsys.
func Open(fsys afero.Fs, path types.FilesystemPath) (AddOn, error) {
	a, err := New(path)
	if err != nil {
		return AddOn{}, err
	}
	ok, err := afero.DirExists(fsys, a.Path.String())
	if err != nil {
		return AddOn{}, fmt.Errorf("checking add-on directory %s: %w", a.Path, err)
	}
	if !ok {
		return AddOn{}, &AddOnNotFoundError{Path: a.Path}
	}
	return a, nil
}

// DefaultLayout returns the "libs/Library" layout.
func DefaultLayout() Layout {
	return Layout{VendorDir: DefaultVendorDir, RuntimeName: RuntimeName}
}

// ManifestPath returns the path of the AddOn's manifest for flavor.
func (a AddOn) ManifestPath(flavor toc.Flavor) types.FilesystemPath {
	return fspath.JoinStr(a.Path, flavor.FileName(a.Name))
}

// AddOnsDir returns the directory holding the AddOn and its siblings.
func (a AddOn) AddOnsDir() types.FilesystemPath {
	return fspath.Dir(a.Path)
}

// Sibling returns the AddOn checked out next to this one under name.
func (a AddOn) Sibling(name string) AddOn {
	return AddOn{Path: fspath.JoinStr(a.AddOnsDir(), name), Name: name}
}

// VendorPath returns the vendor directory of the AddOn, joined with elem.
func (a AddOn) VendorPath(layout Layout, elem ...string) types.FilesystemPath {
	return fspath.JoinStr(a.Path, append([]string{layout.VendorDir}, elem...)...)
}

// Vendored returns the embedded copy of library name inside this AddOn.
func (a AddOn) Vendored(layout Layout, name string) AddOn {
	return AddOn{Path: a.VendorPath(layout, name), Name: name}
}

func (e *AddOnNotFoundError) Error() string {
	return fmt.Sprintf("add-on directory %s does not exist", e.Path)
}

// Unwrap returns ErrAddOnNotFound for errors.Is() compatibility.
func (e *AddOnNotFoundError) Unwrap() error { return ErrAddOnNotFound }
