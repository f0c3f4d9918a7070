// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/libembed/libembed/internal/issue"
)

func TestNewServiceError_PanicsOnNilErr(t *testing.T) {
	t.Parallel()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on nil Err, got none")
		}
		if msg, ok := r.(string); !ok || msg != "ServiceError: Err must not be nil" {
			t.Fatalf("unexpected panic: %v", r)
		}
	}()

	newServiceError(nil, 0, "")
}

func TestServiceError_ErrorAndUnwrap(t *testing.T) {
	t.Parallel()

	underlying := errors.New("underlying error")
	svcErr := newServiceError(underlying, issue.AddOnNotFoundId, "styled")

	if svcErr.Error() != "underlying error" {
		t.Errorf("Error() = %q, want %q", svcErr.Error(), "underlying error")
	}
	if !errors.Is(svcErr, underlying) {
		t.Error("errors.Is should find underlying error via Unwrap")
	}
	if svcErr.IssueID != issue.AddOnNotFoundId || svcErr.StyledMessage != "styled" {
		t.Errorf("unexpected fields: %+v", svcErr)
	}
}

func TestRenderServiceError(t *testing.T) {
	t.Parallel()

	logger := log.New(io.Discard)

	tests := []struct {
		name     string
		svcErr   *ServiceError
		contains []string
		nonEmpty bool
		empty    bool
	}{
		{name: "nil", svcErr: nil, empty: true},
		{
			name:     "styled message only",
			svcErr:   newServiceError(errors.New("x"), 0, "styled output\n"),
			contains: []string{"styled output"},
		},
		{
			name:     "catalog entry",
			svcErr:   newServiceError(errors.New("x"), issue.AddOnNotFoundId, ""),
			nonEmpty: true,
		},
		{
			name:   "unknown catalog entry",
			svcErr: newServiceError(errors.New("x"), issue.Id(9999), ""),
			empty:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			renderServiceError(&buf, logger, tt.svcErr)

			if tt.empty {
				if buf.Len() != 0 {
					t.Errorf("expected no output, got %q", buf.String())
				}
				return
			}
			if tt.nonEmpty && buf.Len() == 0 {
				t.Error("expected catalog output, got none")
			}
			for _, s := range tt.contains {
				if !strings.Contains(buf.String(), s) {
					t.Errorf("output missing %q:\n%s", s, buf.String())
				}
			}
		})
	}
}
