// SPDX-License-Identifier: MPL-2.0

package luascan

import (
	"errors"
	"slices"
	"testing"

	"github.com/libembed/libembed/pkg/types"
)

func TestInject_BeforeGlobalDeclaration(t *testing.T) {
	t.Parallel()

	lines := []string{
		"-- MyAddOn",
		"local _, ns = ...",
		"",
		"local x = LibStub('A')",
		"",
		"MyAddOn = MyAddOn or {}",
		"CallbackHandler:New(MyAddOn)",
	}
	usages := Scan("-- MyAddOn\nlocal _, ns = ...\n\nlocal x = LibStub('A')\n\nMyAddOn = MyAddOn or {}\nCallbackHandler:New(MyAddOn)",
		[]string{"CallbackHandler", "LibStub"})
	versions := map[string]types.SemVer{"LibStub": "1.0.0", "CallbackHandler": "7.2.1"}

	got, err := Inject("MyAddOn", lines, usages, versions, DefaultTemplate())
	if err != nil {
		t.Fatalf("Inject() error = %v", err)
	}

	want := []string{
		"-- MyAddOn",
		"local _, ns = ...",
		"",
		"local x = LibStub('A')",
		"",
		"",
		"--- @type LibStub",
		"local LibStub = Library.retrieve('LibStub', '^1.0.0')",
		"--- @type CallbackHandler",
		"local CallbackHandler = Library.retrieve('CallbackHandler', '^7.2.1')",
		"",
		"MyAddOn = MyAddOn or {}",
		"CallbackHandler:New(MyAddOn)",
	}
	if !slices.Equal(got, want) {
		t.Errorf("Inject() =\n%q\nwant\n%q", got, want)
	}
}

func TestInject_NoAnchor(t *testing.T) {
	t.Parallel()

	lines := []string{"Bar.run()"}
	got, err := Inject("Foo", lines, []Usage{{"Bar", 0}}, map[string]types.SemVer{"Bar": "2.0.0"}, DefaultTemplate())
	if err != nil {
		t.Fatalf("Inject() error = %v", err)
	}

	want := []string{
		"",
		"--- @type Bar",
		"local Bar = Library.retrieve('Bar', '^2.0.0')",
		"",
		"Bar.run()",
	}
	if !slices.Equal(got, want) {
		t.Errorf("Inject() = %q, want %q", got, want)
	}
}

func TestInject_NoUsages(t *testing.T) {
	t.Parallel()

	lines := []string{"Foo = Foo or {}"}
	got, err := Inject("Foo", lines, nil, nil, DefaultTemplate())
	if err != nil {
		t.Fatalf("Inject() error = %v", err)
	}
	if !slices.Equal(got, lines) {
		t.Errorf("Inject() = %q, want unchanged", got)
	}
}

func TestInject_UnknownVersion(t *testing.T) {
	t.Parallel()

	_, err := Inject("Foo", []string{""}, []Usage{{"Bar", 0}}, nil, DefaultTemplate())
	if !errors.Is(err, ErrUnknownVersion) {
		t.Errorf("Inject() error = %v, want ErrUnknownVersion", err)
	}
}

func TestAnchorIndex(t *testing.T) {
	t.Parallel()

	lines := []string{"a", "b", "c", "d", "X = X or {}", "f"}
	if got := AnchorIndex(lines, "X"); got != 4 {
		t.Errorf("AnchorIndex() = %d, want 4", got)
	}
	if got := AnchorIndex(lines, "Y"); got != 0 {
		t.Errorf("AnchorIndex(missing) = %d, want 0", got)
	}
	if got := AnchorIndex([]string{"  X = X or {}"}, "X"); got != 0 {
		t.Errorf("AnchorIndex(indented) = %d, want 0", got)
	}
}

func TestHasAcquisition(t *testing.T) {
	t.Parallel()

	lines := []string{
		"--- @type Bar",
		"local Bar = Library.retrieve('Bar', '^1.0.0')",
		"local Qux = LibStub('Qux')",
	}
	if !HasAcquisition(lines, "Bar", DefaultRuntime) {
		t.Error("HasAcquisition(Bar) = false, want true")
	}
	if HasAcquisition(lines, "Qux", DefaultRuntime) {
		t.Error("HasAcquisition(Qux) = true, want false")
	}
	if HasAcquisition(lines, "Bar", "Runtime") {
		t.Error("HasAcquisition(Bar, Runtime) = true, want false")
	}
}
