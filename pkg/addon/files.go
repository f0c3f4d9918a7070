// SPDX-License-Identifier: MPL-2.0

package addon

import (
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/libembed/libembed/pkg/fspath"
	"github.com/libembed/libembed/pkg/types"
)

// ReadFile returns the content of path as text.
func ReadFile(fsys afero.Fs, path types.FilesystemPath) (string, error) {
	data, err := afero.ReadFile(fsys, path.String())
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// WriteFileAtomic writes text to a temporary file next to path and renames it
// over path, so readers never observe a partially written manifest or script.
// The existing file mode is kept.
func WriteFileAtomic(fsys afero.Fs, path types.FilesystemPath, text string) (err error) {
	perm := os.FileMode(0o644)
	if info, statErr := fsys.Stat(path.String()); statErr == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := afero.TempFile(fsys, fspath.Dir(path).String(), "."+fspath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = fsys.Remove(tmpName)
		}
	}()

	if _, err = tmp.WriteString(text); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing temp file for %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file for %s: %w", path, err)
	}
	if err = fsys.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("setting mode of %s: %w", path, err)
	}
	if err = fsys.Rename(tmpName, path.String()); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
