// SPDX-License-Identifier: MPL-2.0

package luascan

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/libembed/libembed/pkg/types"
)

// ErrUnknownVersion is returned when a referenced library has no known version.
var ErrUnknownVersion = errors.New("library version unknown")

// GlobalDeclaration returns the line declaring an add-on's global table.
func GlobalDeclaration(addOnName string) string {
	return addOnName + " = " + addOnName + " or {}"
}

// AnchorIndex returns the index acquisition statements are inserted at: the
// global declaration line, or 0 when the script has none.
func AnchorIndex(lines []string, addOnName string) int {
	decl := GlobalDeclaration(addOnName)
	for i, line := range lines {
		if line == decl {
			return i
		}
	}
	return 0
}

// HasAcquisition reports whether lines already acquire library name from runtime.
func HasAcquisition(lines []string, name, runtime string) bool {
	pattern := regexp.MustCompile(`^\s*local\s+` + regexp.QuoteMeta(name) + `\s*=\s*` + regexp.QuoteMeta(runtime) + `\.retrieve\(`)
	for _, line := range lines {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}

// Inject splices one block of acquisition statements, one per usage in
// order, into lines before the global declaration of addOnName. The block
// is wrapped in a leading and a trailing blank line. Without usages lines
// are returned unchanged.
func Inject(addOnName string, lines []string, usages []Usage, versions map[string]types.SemVer, tmpl *AcquisitionTemplate) ([]string, error) {
	if len(usages) == 0 {
		return lines, nil
	}

	block := []string{""}
	for _, u := range usages {
		version, ok := versions[u.Library]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownVersion, u.Library)
		}
		statements, err := tmpl.Render(u.Library, version)
		if err != nil {
			return nil, err
		}
		block = append(block, statements...)
	}
	block = append(block, "")

	at := AnchorIndex(lines, addOnName)
	out := make([]string, 0, len(lines)+len(block))
	out = append(out, lines[:at]...)
	out = append(out, block...)
	return append(out, lines[at:]...), nil
}
