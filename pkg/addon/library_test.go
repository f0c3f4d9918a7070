// SPDX-License-Identifier: MPL-2.0

package addon

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/libembed/libembed/pkg/types"
)

type stubResolver map[string]types.SemVer

func (r stubResolver) ResolveVersion(_ context.Context, path types.FilesystemPath) (types.SemVer, bool, error) {
	if path.String() == addOnsDir+"/Foo/libs/Broken" {
		return "", false, errors.New("broken checkout")
	}
	v, ok := r[path.String()]
	return v, ok, nil
}

func TestDiscoverLibraries(t *testing.T) {
	t.Parallel()

	fsys, a := newFixture(t, map[string]string{
		"Foo/libs/Library/Library.toc": "## Version: 9.9.9\n",
		"Foo/libs/Bar/Bar.toc":         "## Version: 2.1.0\n",
		"Foo/libs/Baz/Baz.toc":         "## Version: not-a-version\n",
		"Foo/libs/Qux/":                "",
		"Foo/libs/README.md":           "",
	})
	opts := DiscoverOptions{
		Layout:         DefaultLayout(),
		Resolver:       stubResolver{addOnsDir + "/Foo/libs/Baz": "3.0.0"},
		DefaultVersion: "1.0.0",
	}

	libs, err := DiscoverLibraries(context.Background(), fsys, a, opts)
	if err != nil {
		t.Fatalf("DiscoverLibraries() error = %v", err)
	}

	if got, want := Names(libs), []string{"Bar", "Baz", "Qux"}; !slices.Equal(got, want) {
		t.Errorf("Names() = %q, want %q", got, want)
	}
	versions := Versions(libs)
	for name, want := range map[string]types.SemVer{"Bar": "2.1.0", "Baz": "3.0.0", "Qux": "1.0.0"} {
		if versions[name] != want {
			t.Errorf("version of %s = %q, want %q", name, versions[name], want)
		}
	}
}

func TestDiscoverLibraries_NoVendorDir(t *testing.T) {
	t.Parallel()

	fsys, a := newFixture(t, map[string]string{"Foo/Foo.toc": ""})

	libs, err := DiscoverLibraries(context.Background(), fsys, a, DiscoverOptions{Layout: DefaultLayout()})
	if err != nil {
		t.Fatalf("DiscoverLibraries() error = %v", err)
	}
	if libs != nil {
		t.Errorf("DiscoverLibraries() = %v, want none", libs)
	}
}

func TestDiscoverLibraries_ResolverError(t *testing.T) {
	t.Parallel()

	fsys, a := newFixture(t, map[string]string{"Foo/libs/Broken/": ""})

	_, err := DiscoverLibraries(context.Background(), fsys, a, DiscoverOptions{Layout: DefaultLayout(), Resolver: stubResolver{}})
	if err == nil {
		t.Fatal("DiscoverLibraries() error = nil, want resolver error")
	}
}
