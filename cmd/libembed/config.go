// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/libembed/libembed/internal/config"
	"github.com/libembed/libembed/internal/issue"
	"github.com/libembed/libembed/pkg/types"
)

// newConfigCommand creates the `libembed config` command tree. cfgFile
// points at the root --config flag value.
func newConfigCommand(app *App, cfgFile *string) *cobra.Command {
	loadOptions := func() config.LoadOptions {
		return config.LoadOptions{ConfigFilePath: types.FilesystemPath(*cfgFile)}
	}

	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage libembed configuration",
		Long: `Manage libembed configuration.

Configuration is stored in:
  - Linux: ~/.config/libembed/config.cue
  - macOS: ~/Library/Application Support/libembed/config.cue
  - Windows: %APPDATA%\libembed\config.cue

Every key can be overridden with a LIBEMBED_* environment variable,
e.g. LIBEMBED_GIT_COMMAND for git.command.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd, app, loadOptions())
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the current configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfigForDisplay(cmd, app, loadOptions())
			if err != nil {
				return err
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, err := config.CreateDefaultConfig()
			if err != nil {
				return err
			}
			fmt.Fprintf(app.stdout, "%s %s\n", SuccessStyle.Render("Configuration file:"), cfgPath)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, err := config.ResolveConfigPath(loadOptions())
			if err != nil {
				return err
			}
			if cfgPath == "" {
				cfgDir, dirErr := config.ConfigDir()
				if dirErr != nil {
					return dirErr
				}
				fmt.Fprintf(app.stdout, "%s/%s.%s %s\n", cfgDir, config.ConfigFileName, config.ConfigFileExt, SubtitleStyle.Render("(not created)"))
				return nil
			}
			fmt.Fprintln(app.stdout, cfgPath)
			return nil
		},
	})

	return cfgCmd
}

// loadConfigForDisplay loads the configuration, rendering the catalog entry
// and the actionable error on failure.
func loadConfigForDisplay(cmd *cobra.Command, app *App, opts config.LoadOptions) (*config.Config, error) {
	cfg, err := app.Config.Load(cmd.Context(), opts)
	if err != nil {
		cmd.SilenceUsage = true
		renderServiceError(app.stderr, app.newLogger(false), newServiceError(err, issue.ConfigLoadFailedId, ""))
		fmt.Fprintln(app.stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, false))
		return nil, &ExitError{Code: types.ExitFailure, Err: err}
	}
	return cfg, nil
}

func showConfig(cmd *cobra.Command, app *App, opts config.LoadOptions) error {
	cfg, err := loadConfigForDisplay(cmd, app, opts)
	if err != nil {
		return err
	}

	w := app.stdout
	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	cfgPath, _ := config.ResolveConfigPath(opts)
	if cfgPath == "" {
		fmt.Fprintf(w, "%s: %s\n", CmdStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	} else {
		fmt.Fprintf(w, "%s: %s\n", CmdStyle.Render("Config file"), cfgPath)
	}
	fmt.Fprintln(w)

	writeConfigValue(w, "vendor_dir", cfg.VendorDir)
	writeConfigValue(w, "repository_root", cfg.RepositoryRoot.String())
	writeConfigValue(w, "script_patterns", strings.Join(cfg.ScriptPatterns, ", "))
	writeConfigValue(w, "default_library_version", cfg.DefaultLibraryVersion.String())
	writeConfigValue(w, "runtime.name", cfg.Runtime.Name)
	writeConfigValue(w, "runtime.url", cfg.Runtime.URL)
	writeConfigValue(w, "git.command", cfg.Git.Command)
	writeConfigValue(w, "ui.verbose", fmt.Sprintf("%v", cfg.UI.Verbose))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", CmdStyle.Render("acquisition_template"))
	for line := range strings.SplitSeq(cfg.AcquisitionTemplate, "\n") {
		fmt.Fprintf(w, "  %s\n", SuccessStyle.Render(line))
	}

	return nil
}

func writeConfigValue(w io.Writer, key, value string) {
	fmt.Fprintf(w, "%s: %s\n", CmdStyle.Render(key), SuccessStyle.Render(value))
}
