// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/libembed/libembed/pkg/embedder"
	"github.com/libembed/libembed/pkg/fspath"
	"github.com/libembed/libembed/pkg/types"
)

// runEmbed embeds the libraries of one AddOn and prints what changed.
func runEmbed(cmd *cobra.Command, app *App, req EmbedRequest) error {
	result, err := app.Embed(cmd.Context(), req)
	if err != nil {
		cmd.SilenceUsage = true
		var svcErr *ServiceError
		if errors.As(err, &svcErr) {
			renderServiceError(app.stderr, app.newLogger(req.Verbose), svcErr)
		}
		fmt.Fprintln(app.stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, req.Verbose))
		return &ExitError{Code: types.ExitFailure, Err: err}
	}

	renderResult(app.stdout, result)
	return nil
}

// renderResult prints a summary of an embedding run.
func renderResult(w io.Writer, result embedder.Result) {
	if result.IsNoop() {
		fmt.Fprintf(w, "%s %s\n", SubtitleStyle.Render("Nothing to embed in"), CmdStyle.Render(result.AddOn.Name))
		return
	}

	fmt.Fprintln(w, TitleStyle.Render(fmt.Sprintf("Embedded %d %s into %s",
		len(result.Embedded), plural(len(result.Embedded), "library", "libraries"), result.AddOn.Name)))

	fmt.Fprintln(w, resultLabelStyle.Render("Libraries:"))
	for _, src := range result.Sources {
		fmt.Fprintf(w, "  %s %s %s\n", SuccessStyle.Render("✓"), src.Name, VerboseStyle.Render(src.URL))
	}

	renderPaths(w, "Manifests:", result.AddOn.Path, result.Manifests)
	renderPaths(w, "Scripts:", result.AddOn.Path, result.Scripts)
}

func renderPaths(w io.Writer, label string, base types.FilesystemPath, paths []types.FilesystemPath) {
	if len(paths) == 0 {
		return
	}
	fmt.Fprintln(w, resultLabelStyle.Render(label))
	for _, p := range paths {
		display := p.String()
		if rel, err := fspath.Rel(base, p); err == nil {
			display = fspath.ToSlash(rel)
		}
		fmt.Fprintf(w, "  - %s\n", CmdStyle.Render(display))
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
