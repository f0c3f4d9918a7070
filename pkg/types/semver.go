// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// ErrInvalidSemVer is the sentinel error wrapped by InvalidSemVerError.
var ErrInvalidSemVer = errors.New("invalid semver")

type (
	// SemVer is a library version without the leading "v" (e.g. "1.2.3").
	// It is the form written into caret constraints ("^1.2.3").
	SemVer string

	// InvalidSemVerError is returned when a SemVer value is not a semantic version.
	InvalidSemVerError struct {
		Value SemVer
	}
)

// ParseSemVer accepts "1.2.3" as well as "v1.2.3" and returns the version
// without its "v" prefix.
func ParseSemVer(s string) (SemVer, error) {
	v := SemVer(strings.TrimPrefix(strings.TrimSpace(s), "v"))
	if err := v.Validate(); err != nil {
		return "", err
	}
	return v, nil
}

// Validate returns an error if the value is not a semantic version.
func (v SemVer) Validate() error {
	if v == "" || !semver.IsValid(v.canonical()) {
		return &InvalidSemVerError{Value: v}
	}
	return nil
}

// canonical returns the "v"-prefixed form understood by golang.org/x/mod/semver.
func (v SemVer) canonical() string { return "v" + string(v) }

// Compare orders two versions the way semver.Compare does.
func (v SemVer) Compare(other SemVer) int {
	return semver.Compare(v.canonical(), other.canonical())
}

// Caret returns the caret-compatible constraint for the version, as written
// into acquisition statements.
func (v SemVer) Caret() string { return "^" + string(v) }

// String returns the string representation of the SemVer.
func (v SemVer) String() string { return string(v) }

// Error implements the error interface.
func (e *InvalidSemVerError) Error() string {
	return fmt.Sprintf("invalid semver %q", e.Value)
}

// Unwrap returns ErrInvalidSemVer so callers can use errors.Is for programmatic detection.
func (e *InvalidSemVerError) Unwrap() error { return ErrInvalidSemVer }
