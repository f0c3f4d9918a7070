// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/spf13/afero"
)

// MustWriteFile writes content to path on fsys, creating parent directories.
// The test fails immediately if the write fails.
func MustWriteFile(t testing.TB, fsys afero.Fs, path, content string) {
	t.Helper()
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := afero.WriteFile(fsys, path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// MustReadFile returns the content of path on fsys.
// The test fails immediately if the read fails.
func MustReadFile(t testing.TB, fsys afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// MustMkdirAll creates a directory path on fsys along with any necessary parents.
// The test fails immediately if the directory creation fails.
func MustMkdirAll(t testing.TB, fsys afero.Fs, path string) {
	t.Helper()
	if err := fsys.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("failed to create directory %s: %v", path, err)
	}
}

// WriteTree writes every file of tree below root. Keys are slash-separated
// paths relative to root; a key ending in "/" creates an empty directory.
func WriteTree(t testing.TB, fsys afero.Fs, root string, tree map[string]string) {
	t.Helper()
	keys := make([]string, 0, len(tree))
	for k := range tree {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		path := filepath.Join(root, filepath.FromSlash(k))
		if k[len(k)-1] == '/' {
			MustMkdirAll(t, fsys, path)
			continue
		}
		MustWriteFile(t, fsys, path, tree[k])
	}
}

// MustCopyTree copies the directory src to dst on fsys.
// The test fails immediately if any entry cannot be copied.
func MustCopyTree(t testing.TB, fsys afero.Fs, src, dst string) {
	t.Helper()
	err := afero.Walk(fsys, src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return fsys.MkdirAll(target, 0o755)
		}
		data, err := afero.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		return afero.WriteFile(fsys, target, data, info.Mode())
	})
	if err != nil {
		t.Fatalf("failed to copy %s to %s: %v", src, dst, err)
	}
}
