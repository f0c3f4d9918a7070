// SPDX-License-Identifier: MPL-2.0

// Package fspath provides typed wrappers around path/filepath functions that
// accept and return types.FilesystemPath, so AddOn, manifest and vendor paths
// stay typed from the CLI boundary down to the filesystem collaborator.
package fspath

import (
	"fmt"
	"path/filepath"

	"github.com/libembed/libembed/pkg/types"
)

// Join wraps filepath.Join, accepting and returning types.FilesystemPath.
func Join(elem ...types.FilesystemPath) types.FilesystemPath {
	strs := make([]string, len(elem))
	for i, e := range elem {
		strs[i] = string(e)
	}
	return types.FilesystemPath(filepath.Join(strs...))
}

// JoinStr wraps filepath.Join, accepting a typed base path and raw string
// segments. Use this when joining a validated path with literal constants
// (e.g., "libs") or OS-provided file names (e.g., from a directory listing).
func JoinStr(base types.FilesystemPath, elem ...string) types.FilesystemPath {
	parts := make([]string, 1, 1+len(elem))
	parts[0] = string(base)
	parts = append(parts, elem...)
	return types.FilesystemPath(filepath.Join(parts...))
}

// Dir wraps filepath.Dir for FilesystemPath.
func Dir(p types.FilesystemPath) types.FilesystemPath {
	return types.FilesystemPath(filepath.Dir(string(p)))
}

// Base wraps filepath.Base for FilesystemPath. The result is a plain name,
// not a path, so it is returned untyped.
func Base(p types.FilesystemPath) string {
	return filepath.Base(string(p))
}

// Abs wraps filepath.Abs for FilesystemPath. Returns an error if the
// underlying OS call fails.
func Abs(p types.FilesystemPath) (types.FilesystemPath, error) {
	abs, err := filepath.Abs(string(p))
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}
	return types.FilesystemPath(abs), nil
}

// Rel wraps filepath.Rel for FilesystemPath.
func Rel(base, target types.FilesystemPath) (types.FilesystemPath, error) {
	rel, err := filepath.Rel(string(base), string(target))
	if err != nil {
		return "", fmt.Errorf("relativizing %s against %s: %w", target, base, err)
	}
	return types.FilesystemPath(rel), nil
}

// Clean wraps filepath.Clean for FilesystemPath.
func Clean(p types.FilesystemPath) types.FilesystemPath {
	return types.FilesystemPath(filepath.Clean(string(p)))
}

// ToSlash wraps filepath.ToSlash. The slash form is what .gitmodules and
// git submodule destinations use.
func ToSlash(p types.FilesystemPath) string {
	return filepath.ToSlash(string(p))
}

// FromSlash wraps filepath.FromSlash for FilesystemPath. Converts forward
// slashes to the OS-specific path separator.
func FromSlash(p types.FilesystemPath) types.FilesystemPath {
	return types.FilesystemPath(filepath.FromSlash(string(p)))
}

// IsAbs wraps filepath.IsAbs for FilesystemPath.
func IsAbs(p types.FilesystemPath) bool {
	return filepath.IsAbs(string(p))
}
