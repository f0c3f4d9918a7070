// SPDX-License-Identifier: MPL-2.0

// Package textline splits and joins the line-oriented text files libembed
// rewrites. Manifests and scripts may use any of "\n", "\r\n" or "\r" as line
// terminator on input; output always uses "\n".
package textline

import (
	"regexp"
	"strings"
)

// Terminator is the line terminator used when text is serialized again.
const Terminator = "\n"

var breakPattern = regexp.MustCompile(`\r\n|\r|\n`)

// Split splits text into lines on "\n", "\r\n" and "\r". An empty text
// yields a single empty line, and a trailing terminator yields a trailing
// empty line, so Join(Split(s)) == s for "\n"-terminated input.
func Split(text string) []string {
	return breakPattern.Split(text, -1)
}

// Line is one line of text and the terminator that ended it. The last line
// of a text has an empty End.
type Line struct {
	Text string
	End  string
}

// SplitTerminated splits text like Split but keeps each line's terminator,
// so concatenating Text and End of every line reproduces text.
func SplitTerminated(text string) []Line {
	var lines []Line
	start := 0
	for _, loc := range breakPattern.FindAllStringIndex(text, -1) {
		lines = append(lines, Line{Text: text[start:loc[0]], End: text[loc[0]:loc[1]]})
		start = loc[1]
	}
	return append(lines, Line{Text: text[start:]})
}

// Join joins lines with Terminator.
func Join(lines []string) string {
	return strings.Join(lines, Terminator)
}

// IndexAt returns the zero-based index of the line containing the byte
// offset in text.
func IndexAt(text string, offset int) int {
	if offset <= 0 {
		return 0
	}
	if offset > len(text) {
		offset = len(text)
	}
	return len(breakPattern.FindAllStringIndex(text[:offset], -1))
}

// IsBlank reports whether the line contains only whitespace.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
