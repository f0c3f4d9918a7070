// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/libembed/libembed/internal/issue"
	"github.com/libembed/libembed/pkg/addon"
	"github.com/libembed/libembed/pkg/luascan"
	"github.com/libembed/libembed/pkg/submodule"
)

// classifyEmbedError maps an embedding failure to the catalog entry that
// helps the user recover from it. Zero means no entry applies.
func classifyEmbedError(err error) issue.Id {
	var cmdErr *submodule.CommandError
	switch {
	case err == nil:
		return 0
	case errors.Is(err, addon.ErrAddOnNotFound):
		return issue.AddOnNotFoundId
	case errors.Is(err, submodule.ErrRepositoryURLNotFound):
		return issue.RepositoryURLNotFoundId
	case errors.As(err, &cmdErr), errors.Is(err, submodule.ErrEmptyGitCommand):
		return issue.SourceControlFailedId
	case errors.Is(err, luascan.ErrInvalidTemplate):
		return issue.InvalidTemplateId
	case errors.Is(err, fs.ErrPermission):
		return issue.PermissionDeniedId
	default:
		return 0
	}
}

// embedSuggestions returns the recovery hints attached to an embedding
// failure shown to the user.
func embedSuggestions(err error) []string {
	var (
		notFound *submodule.RepositoryURLNotFoundError
		cmdErr   *submodule.CommandError
	)
	switch {
	case errors.As(err, &notFound):
		hints := []string{fmt.Sprintf("Add a [submodule] entry with path = %q to %s", notFound.Path, submodule.ModulesFile)}
		if len(notFound.Registered) == 0 {
			return append(hints, "No submodules are registered in "+submodule.ModulesFile)
		}
		return append(hints, "Registered submodule paths: "+strings.Join(notFound.Registered, ", "))
	case errors.As(err, &cmdErr), errors.Is(err, submodule.ErrEmptyGitCommand):
		return []string{"Check git.command with 'libembed config show'"}
	case errors.Is(err, addon.ErrAddOnNotFound):
		return []string{"Pass the directory of an AddOn, e.g. Interface/AddOns/<Name>"}
	default:
		return nil
	}
}
