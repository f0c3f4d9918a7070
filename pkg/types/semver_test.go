// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestParseSemVer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    SemVer
		wantErr bool
	}{
		{"plain", "1.2.3", "1.2.3", false},
		{"v prefix stripped", "v2.0.1", "2.0.1", false},
		{"prerelease", "1.0.0-beta.1", "1.0.0-beta.1", false},
		{"surrounding whitespace", "  3.4.5 ", "3.4.5", false},
		{"packager placeholder", "@project-version@", "", true},
		{"empty", "", "", true},
		{"garbage", "one.two", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseSemVer(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseSemVer(%q) = %q, want error", tt.input, got)
				}
				if !errors.Is(err, ErrInvalidSemVer) {
					t.Errorf("error should wrap ErrInvalidSemVer, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSemVer(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseSemVer(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSemVer_CaretAndCompare(t *testing.T) {
	t.Parallel()

	v := SemVer("1.4.0")
	if got := v.Caret(); got != "^1.4.0" {
		t.Errorf("Caret() = %q, want %q", got, "^1.4.0")
	}
	if v.Compare("1.10.0") >= 0 {
		t.Error("1.4.0 should sort before 1.10.0")
	}
	if v.Compare("1.4.0") != 0 {
		t.Error("1.4.0 should equal itself")
	}
}
