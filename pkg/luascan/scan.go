// SPDX-License-Identifier: MPL-2.0

package luascan

import (
	"regexp"
	"strings"

	"github.com/libembed/libembed/pkg/textline"
)

// Usage records the first reference to a library in a script.
type Usage struct {
	Library string
	// Line is the zero-based index of the line holding the first reference.
	Line int
}

// Scan returns the libraries of names referenced in content, deduplicated,
// in order of first textual appearance.
func Scan(content string, names []string) []Usage {
	pattern := namesPattern(names)
	if pattern == nil {
		return nil
	}

	var usages []Usage
	seen := make(map[string]bool)
	for _, loc := range pattern.FindAllStringIndex(content, -1) {
		name := content[loc[0]:loc[1]]
		if seen[name] {
			continue
		}
		seen[name] = true
		usages = append(usages, Usage{Library: name, Line: textline.IndexAt(content, loc[0])})
	}
	return usages
}

// Libraries returns the library names of usages in order.
func Libraries(usages []Usage) []string {
	names := make([]string, len(usages))
	for i, u := range usages {
		names[i] = u.Library
	}
	return names
}

// namesPattern builds one alternation matching any of names literally.
// Alternatives are tried in the order given.
func namesPattern(names []string) *regexp.Regexp {
	quoted := make([]string, 0, len(names))
	for _, name := range names {
		if name != "" {
			quoted = append(quoted, regexp.QuoteMeta(name))
		}
	}
	if len(quoted) == 0 {
		return nil
	}
	return regexp.MustCompile(strings.Join(quoted, "|"))
}
