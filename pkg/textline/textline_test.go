// SPDX-License-Identifier: MPL-2.0

package textline

import (
	"slices"
	"testing"
)

func TestSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", []string{""}},
		{"lf", "a\nb", []string{"a", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b", ""}},
		{"cr", "a\rb", []string{"a", "b"}},
		{"mixed", "a\nb\r\nc\rd", []string{"a", "b", "c", "d"}},
		{"blank lines kept", "a\n\n\nb", []string{"a", "", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Split(tt.text); !slices.Equal(got, tt.want) {
				t.Errorf("Split(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestJoin_NormalizesTerminators(t *testing.T) {
	t.Parallel()

	if got := Join(Split("a\r\nb\rc")); got != "a\nb\nc" {
		t.Errorf("Join(Split()) = %q, want %q", got, "a\nb\nc")
	}
}

func TestSplitTerminated(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []Line
	}{
		{"empty", "", []Line{{}}},
		{"no terminator", "a", []Line{{Text: "a"}}},
		{"mixed", "a\r\nb\rc\n", []Line{{"a", "\r\n"}, {"b", "\r"}, {"c", "\n"}, {}}},
		{"cr then lf", "a\r\rb", []Line{{"a", "\r"}, {"", "\r"}, {Text: "b"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := SplitTerminated(tt.text)
			if !slices.Equal(got, tt.want) {
				t.Fatalf("SplitTerminated(%q) = %q, want %q", tt.text, got, tt.want)
			}
			var joined string
			for _, l := range got {
				joined += l.Text + l.End
			}
			if joined != tt.text {
				t.Errorf("rejoined = %q, want %q", joined, tt.text)
			}
		})
	}
}

func TestIndexAt(t *testing.T) {
	t.Parallel()

	text := "zero\r\none\rtwo\nthree"
	tests := []struct {
		offset int
		want   int
	}{
		{0, 0},
		{3, 0},
		{6, 1},
		{10, 2},
		{14, 3},
		{len(text) + 5, 3},
	}

	for _, tt := range tests {
		if got := IndexAt(text, tt.offset); got != tt.want {
			t.Errorf("IndexAt(%d) = %d, want %d", tt.offset, got, tt.want)
		}
	}
}
