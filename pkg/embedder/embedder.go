// SPDX-License-Identifier: MPL-2.0

package embedder

import (
	"context"
	"fmt"
	"io"
	"path"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/libembed/libembed/pkg/addon"
	"github.com/libembed/libembed/pkg/fspath"
	"github.com/libembed/libembed/pkg/luascan"
	"github.com/libembed/libembed/pkg/submodule"
	"github.com/libembed/libembed/pkg/textline"
	"github.com/libembed/libembed/pkg/toc"
	"github.com/libembed/libembed/pkg/types"
)

// States of a run, in order.
const (
	StateIdle              State = "idle"
	StateClassify          State = "classify"
	StateResolveSources    State = "resolve-sources"
	StateVendor            State = "vendor"
	StateRewriteManifests  State = "rewrite-manifests"
	StateRewriteScripts    State = "rewrite-scripts"
	StateStripDependencies State = "strip-dependencies"
	StateDone              State = "done"
)

type (
	// State is a step of a run.
	State string

	// Embedder embeds the libraries an add-on depends on.
	Embedder struct {
		fs       afero.Fs
		scm      submodule.SourceControl
		opts     Options
		logger   *log.Logger
		resolver addon.VersionResolver
	}

	// StateError wraps the failure of one state.
	StateError struct {
		State State
		Err   error
	}

	// run carries the data passed between the states of one Run call.
	run struct {
		addOn          addon.AddOn
		classification addon.Classification
		result         Result
	}
)

// New returns an Embedder working on fsys and vendoring through scm.
func New(fsys afero.Fs, scm submodule.SourceControl, opts ...Option) *Embedder {
	e := &Embedder{
		fs:     fsys,
		scm:    scm,
		opts:   DefaultOptions(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.opts.Template == nil {
		e.opts.Template = luascan.DefaultTemplate()
	}
	return e
}

// Run embeds the embeddable dependencies of the add-on at addOnPath. A
// missing source URL for any dependency fails the run before anything is
// changed. Other failures leave earlier changes in place.
func (e *Embedder) Run(ctx context.Context, addOnPath types.FilesystemPath) (Result, error) {
	a, err := addon.Open(e.fs, addOnPath)
	if err != nil {
		return Result{}, err
	}
	r := &run{addOn: a, result: Result{AddOn: a}}

	steps := []struct {
		state State
		fn    func(context.Context, *run) error
	}{
		{StateClassify, e.classify},
		{StateResolveSources, e.resolveSources},
		{StateVendor, e.vendor},
		{StateRewriteManifests, e.rewriteManifests},
		{StateRewriteScripts, e.rewriteScripts},
		{StateStripDependencies, e.stripDependencies},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return r.result, err
		}
		e.logger.Debug("entering state", "state", step.state, "addon", a.Name)
		if err := step.fn(ctx, r); err != nil {
			return r.result, &StateError{State: step.state, Err: err}
		}
		if step.state == StateClassify && r.classification.IsEmpty() {
			e.logger.Info("nothing to embed", "addon", a.Name)
			break
		}
	}
	e.logger.Debug("entering state", "state", StateDone, "addon", a.Name)
	return r.result, nil
}

func (e *Embedder) classify(ctx context.Context, r *run) error {
	c, err := addon.Classify(ctx, e.fs, r.addOn, e.opts.Layout)
	if err != nil {
		return err
	}
	r.classification = c
	r.result.Embedded = c.Embeddable
	if !c.IsEmpty() {
		e.logger.Info("embeddable dependencies", "addon", r.addOn.Name, "dependencies", c.Embeddable)
	}
	return nil
}

func (e *Embedder) resolveSources(_ context.Context, r *run) error {
	root := e.repositoryRoot(r.addOn)
	registry, err := submodule.LoadRegistry(e.fs, root)
	if err != nil {
		return err
	}
	for _, dep := range r.classification.Embeddable {
		src, err := registry.Resolve(root, dep, r.addOn.Sibling(dep).Path)
		if err != nil {
			return err
		}
		e.logger.Debug("resolved source", "dependency", dep, "url", src.URL)
		r.result.Sources = append(r.result.Sources, src)
	}
	return nil
}

func (e *Embedder) vendor(ctx context.Context, r *run) error {
	layout := e.opts.Layout
	if err := e.fs.MkdirAll(r.addOn.VendorPath(layout).String(), 0o755); err != nil {
		return fmt.Errorf("creating vendor directory: %w", err)
	}

	runtimePath := r.addOn.VendorPath(layout, layout.RuntimeName)
	exists, err := afero.Exists(e.fs, runtimePath.String())
	if err != nil {
		return fmt.Errorf("checking %s: %w", runtimePath, err)
	}
	if !exists {
		e.logger.Info("adding runtime", "url", e.opts.RuntimeURL)
		if err := e.scm.AddSubmodule(ctx, r.addOn.Path, e.opts.RuntimeURL, path.Join(layout.VendorDir, layout.RuntimeName)); err != nil {
			return err
		}
	}

	for _, src := range r.result.Sources {
		e.logger.Info("adding library", "library", src.Name, "url", src.URL)
		if err := e.scm.AddSubmodule(ctx, r.addOn.Path, src.URL, path.Join(layout.VendorDir, src.Name)); err != nil {
			return err
		}
	}
	return e.scm.UpdateSubmodules(ctx, r.addOn.Path)
}

func (e *Embedder) rewriteManifests(_ context.Context, r *run) error {
	for _, md := range r.classification.PerManifest {
		if len(md.Embeddable) == 0 {
			continue
		}
		text, err := addon.ReadFile(e.fs, md.Manifest.Path)
		if err != nil {
			return err
		}
		parent := toc.ExtractIncludes(text)
		sep := addon.SeparatorFor(parent)

		var sets [][]string
		for _, dep := range r.classification.Embeddable {
			if !slices.Contains(md.Embeddable, dep) {
				continue
			}
			includes, err := addon.LibraryIncludes(e.fs, r.addOn, e.opts.Layout, dep, md.Manifest, sep)
			if err != nil {
				return err
			}
			sets = append(sets, includes)
		}

		if err := e.writeManifest(r, md.Manifest.Path, text, toc.ReplaceIncludes(text, addon.MergeIncludes(parent, sets...))); err != nil {
			return err
		}
	}
	return nil
}

func (e *Embedder) rewriteScripts(ctx context.Context, r *run) error {
	libs, err := addon.DiscoverLibraries(ctx, e.fs, r.addOn, addon.DiscoverOptions{
		Layout:         e.opts.Layout,
		Resolver:       e.resolver,
		DefaultVersion: e.opts.DefaultLibraryVersion,
	})
	if err != nil {
		return err
	}
	names := addon.Names(libs)
	versions := addon.Versions(libs)

	scripts, err := addon.ListScripts(e.fs, r.addOn, e.opts.Layout, e.opts.ScriptPatterns)
	if err != nil {
		return err
	}

	tmpl := e.opts.Template
	for _, script := range scripts {
		content, err := addon.ReadFile(e.fs, script)
		if err != nil {
			return err
		}
		lines := textline.Split(content)

		var usages []luascan.Usage
		for _, u := range luascan.Scan(content, names) {
			if !luascan.HasAcquisition(lines, u.Library, tmpl.Runtime()) {
				usages = append(usages, u)
			}
		}
		if len(usages) == 0 {
			continue
		}

		injected, err := luascan.Inject(r.addOn.Name, lines, usages, versions, tmpl)
		if err != nil {
			return fmt.Errorf("injecting into %s: %w", script, err)
		}
		if err := addon.WriteFileAtomic(e.fs, script, textline.Join(injected)); err != nil {
			return err
		}
		e.logger.Info("injected acquisitions", "script", e.display(r, script), "libraries", luascan.Libraries(usages))
		r.result.Scripts = append(r.result.Scripts, script)
	}
	return nil
}

func (e *Embedder) stripDependencies(_ context.Context, r *run) error {
	for _, md := range r.classification.PerManifest {
		if len(md.Embeddable) == 0 {
			continue
		}
		text, err := addon.ReadFile(e.fs, md.Manifest.Path)
		if err != nil {
			return err
		}
		var remaining []string
		for _, dep := range toc.ParseDependencies(text) {
			if !slices.Contains(r.classification.Embeddable, dep) {
				remaining = append(remaining, dep)
			}
		}
		if err := e.writeManifest(r, md.Manifest.Path, text, toc.ReplaceDependencies(text, remaining)); err != nil {
			return err
		}
	}
	return nil
}

func (e *Embedder) writeManifest(r *run, manifest types.FilesystemPath, before, after string) error {
	if after == before {
		return nil
	}
	if err := addon.WriteFileAtomic(e.fs, manifest, after); err != nil {
		return err
	}
	e.logger.Debug("rewrote manifest", "manifest", e.display(r, manifest))
	r.result.addManifest(manifest)
	return nil
}

func (e *Embedder) repositoryRoot(a addon.AddOn) types.FilesystemPath {
	if fspath.IsAbs(e.opts.RepositoryRoot) {
		return fspath.Clean(e.opts.RepositoryRoot)
	}
	return fspath.Join(a.Path, e.opts.RepositoryRoot)
}

// display returns path relative to the add-on for log output.
func (e *Embedder) display(r *run, p types.FilesystemPath) string {
	if rel, err := fspath.Rel(r.addOn.Path, p); err == nil {
		return fspath.ToSlash(rel)
	}
	return p.String()
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: %v", e.State, e.Err)
}

// Unwrap returns the error of the failed state.
func (e *StateError) Unwrap() error { return e.Err }
