// SPDX-License-Identifier: MPL-2.0

package submodule

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"mvdan.cc/sh/v3/shell"

	"github.com/libembed/libembed/pkg/types"
)

// DefaultGitCommand is the command GitCLI runs unless configured otherwise.
const DefaultGitCommand = "git"

// ErrEmptyGitCommand is returned when the configured git command has no words.
var ErrEmptyGitCommand = errors.New("git command is empty")

type (
	// SourceControl vendors dependencies into a working tree.
	SourceControl interface {
		// AddSubmodule registers url as a submodule checked out at dest,
		// relative to dir.
		AddSubmodule(ctx context.Context, dir types.FilesystemPath, url, dest string) error
		// UpdateSubmodules initializes and updates all submodules of dir recursively.
		UpdateSubmodules(ctx context.Context, dir types.FilesystemPath) error
	}

	// ExecCommandFunc is the function signature for creating exec.Cmd.
	// This allows injection of mock implementations for testing.
	ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

	// GitCLIOption configures a GitCLI.
	GitCLIOption func(*GitCLI)

	// GitCLI implements SourceControl by running the git executable.
	GitCLI struct {
		command     []string
		execCommand ExecCommandFunc
	}

	// CommandError is returned when a git command exits unsuccessfully.
	CommandError struct {
		Args   []string
		Output string
		Err    error
	}
)

// NewGitCLI returns a GitCLI running command, which is split into words with
// shell quoting rules (e.g. "git -c protocol.file.allow=always").
func NewGitCLI(command string, opts ...GitCLIOption) (*GitCLI, error) {
	words, err := shell.Fields(command, os.Getenv)
	if err != nil {
		return nil, fmt.Errorf("parsing git command %q: %w", command, err)
	}
	if len(words) == 0 {
		return nil, ErrEmptyGitCommand
	}

	g := &GitCLI{command: words, execCommand: exec.CommandContext}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// WithExecCommand sets a custom exec command function for testing.
func WithExecCommand(fn ExecCommandFunc) GitCLIOption {
	return func(g *GitCLI) {
		g.execCommand = fn
	}
}

// AddSubmodule runs "git submodule add <url> <dest>" in dir.
func (g *GitCLI) AddSubmodule(ctx context.Context, dir types.FilesystemPath, url, dest string) error {
	return g.run(ctx, dir, "submodule", "add", url, dest)
}

// UpdateSubmodules runs "git submodule update --init --recursive" in dir.
func (g *GitCLI) UpdateSubmodules(ctx context.Context, dir types.FilesystemPath) error {
	return g.run(ctx, dir, "submodule", "update", "--init", "--recursive")
}

func (g *GitCLI) run(ctx context.Context, dir types.FilesystemPath, args ...string) error {
	argv := make([]string, 0, len(g.command)-1+len(args))
	argv = append(argv, g.command[1:]...)
	argv = append(argv, args...)

	cmd := g.execCommand(ctx, g.command[0], argv...)
	cmd.Dir = dir.String()
	out, err := cmd.CombinedOutput()
	if err != nil {
		return &CommandError{
			Args:   append([]string{g.command[0]}, argv...),
			Output: strings.TrimSpace(string(out)),
			Err:    err,
		}
	}
	return nil
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s: %v", strings.Join(e.Args, " "), e.Err)
	if e.Output != "" {
		msg += "\n" + e.Output
	}
	return msg
}

// Unwrap returns the underlying process error.
func (e *CommandError) Unwrap() error { return e.Err }
