// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/libembed/libembed/internal/config"
	"github.com/libembed/libembed/internal/issue"
	"github.com/libembed/libembed/pkg/addon"
	"github.com/libembed/libembed/pkg/embedder"
	"github.com/libembed/libembed/pkg/submodule"
	"github.com/libembed/libembed/pkg/types"
)

type (
	// App wires CLI services and shared dependencies. Cobra handlers receive
	// an App reference and delegate to it.
	App struct {
		Config        ConfigProvider
		FS            afero.Fs
		SourceControl SourceControlFactory
		Resolver      addon.VersionResolver
		stdout        io.Writer
		stderr        io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config        ConfigProvider
		FS            afero.Fs
		SourceControl SourceControlFactory
		Resolver      addon.VersionResolver
		Stdout        io.Writer
		Stderr        io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// SourceControlFactory builds the source control used to vendor
	// libraries from the loaded configuration.
	SourceControlFactory func(cfg *config.Config) (submodule.SourceControl, error)

	// EmbedRequest captures the inputs of one embedding run.
	EmbedRequest struct {
		// AddOnPath is the AddOn directory to embed libraries into.
		AddOnPath types.FilesystemPath
		// ConfigPath is the explicit --config flag value.
		ConfigPath types.FilesystemPath
		// Verbose enables debug logging. ui.verbose also enables it.
		Verbose bool
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.FS == nil {
		deps.FS = afero.NewOsFs()
	}
	if deps.SourceControl == nil {
		deps.SourceControl = newGitSourceControl
	}
	if deps.Resolver == nil {
		deps.Resolver = submodule.TagVersionResolver{}
	}

	return &App{
		Config:        deps.Config,
		FS:            deps.FS,
		SourceControl: deps.SourceControl,
		Resolver:      deps.Resolver,
		stdout:        deps.Stdout,
		stderr:        deps.Stderr,
	}
}

// Embed loads the configuration and embeds the libraries of req.AddOnPath.
// Failures are returned as *ServiceError carrying the matching catalog entry.
func (a *App) Embed(ctx context.Context, req EmbedRequest) (embedder.Result, error) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: req.ConfigPath})
	if err != nil {
		return embedder.Result{}, newServiceError(err, issue.ConfigLoadFailedId, "")
	}

	opts, err := cfg.EmbedderOptions()
	if err != nil {
		return embedder.Result{}, newServiceError(err, issue.InvalidTemplateId, "")
	}

	scm, err := a.SourceControl(cfg)
	if err != nil {
		return embedder.Result{}, newServiceError(err, classifyEmbedError(err), "")
	}

	logger := a.newLogger(req.Verbose || cfg.UI.Verbose)
	e := embedder.New(a.FS, scm,
		embedder.WithOptions(opts),
		embedder.WithLogger(logger),
		embedder.WithVersionResolver(a.Resolver),
	)

	result, err := e.Run(ctx, req.AddOnPath)
	if err != nil {
		wrapped := issue.NewErrorContext().
			WithOperation("embed libraries").
			WithResource(req.AddOnPath.String()).
			WithSuggestions(embedSuggestions(err)...).
			Wrap(err).
			BuildError()
		return result, newServiceError(wrapped, classifyEmbedError(err), "")
	}
	return result, nil
}

// newLogger returns the logger the embedder reports progress to.
func (a *App) newLogger(verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(a.stderr, log.Options{
		Prefix: config.AppName,
		Level:  level,
	})
}

func newGitSourceControl(cfg *config.Config) (submodule.SourceControl, error) {
	git, err := submodule.NewGitCLI(cfg.Git.Command)
	if err != nil {
		return nil, err
	}
	return git, nil
}
