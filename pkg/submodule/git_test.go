// SPDX-License-Identifier: MPL-2.0

package submodule

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/libembed/libembed/pkg/types"
)

type (
	// commandRecorder captures the commands GitCLI runs. It uses the
	// TestHelperProcess pattern to simulate command execution.
	commandRecorder struct {
		mu          sync.Mutex
		invocations []invocation
		exitCode    int
		output      string
	}

	invocation struct {
		Name string
		Args []string
	}
)

func (m *commandRecorder) commandFunc(ctx context.Context, name string, args ...string) *exec.Cmd {
	cs := []string{"-test.run=TestHelperProcess", "--", name}
	cs = append(cs, args...)
	//nolint:gosec // TestHelperProcess is a test-only pattern
	cmd := exec.CommandContext(ctx, os.Args[0], cs...)
	cmd.Env = []string{
		"GO_WANT_HELPER_PROCESS=1",
		fmt.Sprintf("GO_HELPER_EXIT_CODE=%d", m.exitCode),
		"GO_HELPER_OUTPUT=" + m.output,
	}

	m.mu.Lock()
	m.invocations = append(m.invocations, invocation{Name: name, Args: args})
	m.mu.Unlock()
	return cmd
}

// TestHelperProcess is invoked by commandRecorder; it is not a real test.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	if out := os.Getenv("GO_HELPER_OUTPUT"); out != "" {
		fmt.Fprint(os.Stderr, out)
	}
	exitCode := 0
	if code := os.Getenv("GO_HELPER_EXIT_CODE"); code != "" {
		fmt.Sscanf(code, "%d", &exitCode)
	}
	os.Exit(exitCode)
}

func TestGitCLI_Commands(t *testing.T) {
	t.Parallel()

	rec := &commandRecorder{}
	g, err := NewGitCLI(`git -c "protocol.file.allow=always"`, WithExecCommand(rec.commandFunc))
	if err != nil {
		t.Fatalf("NewGitCLI() error = %v", err)
	}

	ctx := context.Background()
	dir := types.FilesystemPath(t.TempDir())
	if err := g.AddSubmodule(ctx, dir, "https://example.com/Bar.git", "libs/Bar"); err != nil {
		t.Fatalf("AddSubmodule() error = %v", err)
	}
	if err := g.UpdateSubmodules(ctx, dir); err != nil {
		t.Fatalf("UpdateSubmodules() error = %v", err)
	}

	want := [][]string{
		{"-c", "protocol.file.allow=always", "submodule", "add", "https://example.com/Bar.git", "libs/Bar"},
		{"-c", "protocol.file.allow=always", "submodule", "update", "--init", "--recursive"},
	}
	if len(rec.invocations) != len(want) {
		t.Fatalf("got %d invocations, want %d", len(rec.invocations), len(want))
	}
	for i, inv := range rec.invocations {
		if inv.Name != "git" {
			t.Errorf("invocation %d name = %q, want git", i, inv.Name)
		}
		if !slices.Equal(inv.Args, want[i]) {
			t.Errorf("invocation %d args = %q, want %q", i, inv.Args, want[i])
		}
	}
}

func TestGitCLI_CommandError(t *testing.T) {
	t.Parallel()

	rec := &commandRecorder{exitCode: 128, output: "fatal: 'libs/Bar' already exists in the index"}
	g, err := NewGitCLI(DefaultGitCommand, WithExecCommand(rec.commandFunc))
	if err != nil {
		t.Fatalf("NewGitCLI() error = %v", err)
	}

	err = g.AddSubmodule(context.Background(), types.FilesystemPath(t.TempDir()), "https://example.com/Bar.git", "libs/Bar")
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("AddSubmodule() error = %v, want *CommandError", err)
	}
	if !strings.Contains(cmdErr.Output, "already exists") {
		t.Errorf("Output = %q", cmdErr.Output)
	}
	if cmdErr.Args[0] != "git" || cmdErr.Args[1] != "submodule" {
		t.Errorf("Args = %q", cmdErr.Args)
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 128 {
		t.Errorf("unwrapped error = %v, want exit status 128", err)
	}
}

func TestNewGitCLI_Invalid(t *testing.T) {
	t.Parallel()

	if _, err := NewGitCLI("   "); !errors.Is(err, ErrEmptyGitCommand) {
		t.Errorf("NewGitCLI(blank) error = %v, want ErrEmptyGitCommand", err)
	}
	if _, err := NewGitCLI(`git "unterminated`); err == nil {
		t.Error("NewGitCLI(unterminated quote) error = nil")
	}
}
