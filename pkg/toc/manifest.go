// SPDX-License-Identifier: MPL-2.0

package toc

import (
	"regexp"
	"strings"

	"github.com/libembed/libembed/pkg/textline"
)

// DependencySeparator separates names on the dependency declaration line.
const DependencySeparator = ", "

// dependenciesPattern matches one "## Dependencies: a, b", "## Deps: ..." or
// "## RequireDeps: ..." line. Group 1 is the label and group 2 the value
// without trailing spaces.
var dependenciesPattern = regexp.MustCompile(`^## (Dep\w*|RequireDeps): *(.+?) *$`)

// ParseDependencies returns the names declared on the first dependency line
// of text. A manifest without a dependency line has no dependencies.
func ParseDependencies(text string) []string {
	for _, line := range SplitLines(text) {
		if m := dependenciesPattern.FindStringSubmatch(line); m != nil {
			return strings.Split(m[2], DependencySeparator)
		}
	}
	return nil
}

// ReplaceDependencies rewrites every dependency line of text to declare
// names, keeping each line's label and terminator. Text without a dependency
// line is returned unchanged. An empty names list removes the dependency
// lines.
func ReplaceDependencies(text string, names []string) string {
	list := strings.Join(names, DependencySeparator)

	var b strings.Builder
	matched := false
	for _, line := range textline.SplitTerminated(text) {
		m := dependenciesPattern.FindStringSubmatch(line.Text)
		if m == nil {
			b.WriteString(line.Text + line.End)
			continue
		}
		matched = true
		if len(names) > 0 {
			b.WriteString("## " + m[1] + ": " + list + line.End)
		}
	}
	if !matched {
		return text
	}
	return b.String()
}

// ParseField returns the value of the first "## <name>: <value>" metadata line.
func ParseField(text, name string) (string, bool) {
	pattern := regexp.MustCompile(`^## ` + regexp.QuoteMeta(name) + `: *(.*?) *$`)
	for _, line := range SplitLines(text) {
		if m := pattern.FindStringSubmatch(line); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// ExtractIncludes returns the load files listed in text, trimmed, in load order.
func ExtractIncludes(text string) []string {
	var includes []string
	for _, line := range SplitLines(text) {
		if IsLoadFileLine(line) {
			includes = append(includes, strings.TrimSpace(line))
		}
	}
	return includes
}

// ReplaceIncludes removes every load-file line from text and appends
// includes after exactly one blank line.
func ReplaceIncludes(text string, includes []string) string {
	var kept []string
	for _, line := range SplitLines(text) {
		if !IsLoadFileLine(line) {
			kept = append(kept, line)
		}
	}

	for len(kept) >= 2 && textline.IsBlank(kept[len(kept)-1]) && textline.IsBlank(kept[len(kept)-2]) {
		kept = kept[:len(kept)-1]
	}
	// A manifest made only of load files has nothing left to separate from.
	if len(kept) > 0 && !textline.IsBlank(kept[len(kept)-1]) {
		kept = append(kept, "")
	}

	return textline.Join(append(kept, includes...))
}
