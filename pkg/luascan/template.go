// SPDX-License-Identifier: MPL-2.0

package luascan

import (
	"errors"
	"fmt"

	"github.com/aymerick/raymond"

	"github.com/libembed/libembed/pkg/textline"
	"github.com/libembed/libembed/pkg/types"
)

const (
	// DefaultRuntime is the global the shared library runtime is exposed as.
	DefaultRuntime = "Library"

	// DefaultAcquisitionTemplate renders the two-line acquisition block:
	// a type annotation for editors and the caret-pinned retrieve call.
	DefaultAcquisitionTemplate = "--- @type {{{name}}}\n" +
		"local {{{name}}} = {{{runtime}}}.retrieve('{{{name}}}', '{{{constraint}}}')"
)

// ErrInvalidTemplate is returned when an acquisition template does not parse.
var ErrInvalidTemplate = errors.New("invalid acquisition template")

type (
	// AcquisitionTemplate renders the statements acquiring one library.
	// Templates are Handlebars sources with the fields "name", "version",
	// "constraint" (the caret form of version) and "runtime"; use triple
	// braces to avoid HTML escaping.
	AcquisitionTemplate struct {
		source  string
		tpl     *raymond.Template
		runtime string
	}

	// InvalidTemplateError wraps a template parse or render failure.
	InvalidTemplateError struct {
		Source string
		Err    error
	}
)

// ParseAcquisitionTemplate parses source for the runtime global runtime.
func ParseAcquisitionTemplate(source, runtime string) (*AcquisitionTemplate, error) {
	tpl, err := raymond.Parse(source)
	if err != nil {
		return nil, &InvalidTemplateError{Source: source, Err: err}
	}
	return &AcquisitionTemplate{source: source, tpl: tpl, runtime: runtime}, nil
}

// DefaultTemplate returns the built-in template for DefaultRuntime.
func DefaultTemplate() *AcquisitionTemplate {
	t, err := ParseAcquisitionTemplate(DefaultAcquisitionTemplate, DefaultRuntime)
	if err != nil {
		panic(err)
	}
	return t
}

// Runtime returns the runtime global the template retrieves libraries from.
func (t *AcquisitionTemplate) Runtime() string { return t.runtime }

// Render returns the acquisition lines for library name at version.
func (t *AcquisitionTemplate) Render(name string, version types.SemVer) ([]string, error) {
	out, err := t.tpl.Exec(map[string]string{
		"name":       name,
		"version":    version.String(),
		"constraint": version.Caret(),
		"runtime":    t.runtime,
	})
	if err != nil {
		return nil, &InvalidTemplateError{Source: t.source, Err: err}
	}
	return textline.Split(out), nil
}

func (e *InvalidTemplateError) Error() string {
	return fmt.Sprintf("acquisition template %q: %v", e.Source, e.Err)
}

// Unwrap returns ErrInvalidTemplate for errors.Is() compatibility.
func (e *InvalidTemplateError) Unwrap() error { return ErrInvalidTemplate }
