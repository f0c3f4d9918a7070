// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/libembed/libembed/internal/issue"
	"github.com/libembed/libembed/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand creates the libembed command tree backed by app.
func NewRootCommand(app *App) *cobra.Command {
	var (
		verbose bool
		cfgFile string
	)

	rootCmd := &cobra.Command{
		Use:   "libembed <addon-path>",
		Short: "Embed the libraries a WoW AddOn depends on",
		Long: TitleStyle.Render("libembed") + SubtitleStyle.Render(" - Embed the libraries a WoW AddOn depends on") + `

libembed turns the library AddOns listed in a manifest's ## Dependencies
into embedded copies: it vendors each library as a git submodule below
the AddOn's libs directory, loads the library files from every manifest
variant, acquires the libraries in the AddOn's Lua scripts and removes
them from ## Dependencies.

Running it again on an AddOn that is already embedded changes nothing.

` + SubtitleStyle.Render("Examples:") + `
  libembed Interface/AddOns/Foo        Embed Foo's libraries
  libembed -v Interface/AddOns/Foo     Same, logging every step
  libembed config show                 Show current configuration`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEmbed(cmd, app, EmbedRequest{
				AddOnPath:  types.FilesystemPath(args[0]),
				ConfigPath: types.FilesystemPath(cfgFile),
				Verbose:    verbose,
			})
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/libembed/config.cue)")

	rootCmd.AddCommand(newConfigCommand(app, &cfgFile))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	rootCmd := NewRootCommand(NewApp(Dependencies{}))

	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(int(types.ExitFailure))
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
