// SPDX-License-Identifier: MPL-2.0

package toc

import (
	"strings"

	"github.com/libembed/libembed/pkg/textline"
)

// CommentPrefix starts metadata and comment lines.
const CommentPrefix = "##"

// SplitLines splits manifest text on any line terminator.
func SplitLines(text string) []string {
	return textline.Split(text)
}

// IsCommentLine reports whether a trimmed line is a "##" metadata or comment line.
func IsCommentLine(line string) bool {
	return strings.HasPrefix(line, CommentPrefix)
}

// IsLoadFileLine reports whether a line names a file to load.
func IsLoadFileLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed != "" && !IsCommentLine(trimmed)
}
