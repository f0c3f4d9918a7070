// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/libembed/libembed/internal/issue"
	"github.com/libembed/libembed/pkg/types"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: types.FilesystemPath(t.TempDir())})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, DefaultConfig())
	}
}

func TestLoad_ConfigDirFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, `
vendor_dir: "vendor"
script_patterns: ["*.lua", "modules/**/*.lua"]
runtime: name: "LibStub"
git: command: "git -c protocol.file.allow=always"
ui: verbose: true
`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: types.FilesystemPath(dir)})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.VendorDir != "vendor" {
		t.Errorf("VendorDir = %q, want vendor", cfg.VendorDir)
	}
	if want := []string{"*.lua", "modules/**/*.lua"}; !slices.Equal(cfg.ScriptPatterns, want) {
		t.Errorf("ScriptPatterns = %q, want %q", cfg.ScriptPatterns, want)
	}
	if cfg.Runtime.Name != "LibStub" {
		t.Errorf("Runtime.Name = %q, want LibStub", cfg.Runtime.Name)
	}
	if cfg.Runtime.URL != DefaultRuntimeURL {
		t.Errorf("Runtime.URL = %q, want default %q", cfg.Runtime.URL, DefaultRuntimeURL)
	}
	if cfg.Git.Command != "git -c protocol.file.allow=always" {
		t.Errorf("Git.Command = %q", cfg.Git.Command)
	}
	if !cfg.UI.Verbose {
		t.Error("UI.Verbose = false, want true")
	}
	if cfg.DefaultLibraryVersion != DefaultLibraryVersion {
		t.Errorf("DefaultLibraryVersion = %q, want default", cfg.DefaultLibraryVersion)
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, t.TempDir(), `default_library_version: "2.3.4"`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{
		ConfigFilePath: types.FilesystemPath(path),
		ConfigDirPath:  types.FilesystemPath(t.TempDir()),
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DefaultLibraryVersion != "2.3.4" {
		t.Errorf("DefaultLibraryVersion = %q, want 2.3.4", cfg.DefaultLibraryVersion)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		missing bool
		wantMsg string
	}{
		{name: "missing explicit file", missing: true, wantMsg: "config file not found"},
		{name: "syntax error", content: "vendor_dir: \"libs\n", wantMsg: "load configuration"},
		{name: "unknown field", content: "container_engine: \"podman\"\n", wantMsg: "container_engine"},
		{name: "nested vendor dir", content: "vendor_dir: \"third/party\"\n", wantMsg: "vendor_dir"},
		{name: "wrong type", content: "ui: verbose: \"yes\"\n", wantMsg: "ui.verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "config.cue")
			if !tt.missing {
				path = writeConfig(t, filepath.Dir(path), tt.content)
			}

			_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: types.FilesystemPath(path)})
			if err == nil {
				t.Fatal("Load() error = nil, want error")
			}
			var ae *issue.ActionableError
			if !errors.As(err, &ae) {
				t.Fatalf("Load() error = %T, want *issue.ActionableError", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Load() error = %q, want it to mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	// Not parallel: t.Setenv.
	t.Setenv("LIBEMBED_GIT_COMMAND", "/opt/git/bin/git")
	t.Setenv("LIBEMBED_RUNTIME_URL", "https://example.com/Library.git")

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: types.FilesystemPath(t.TempDir())})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Git.Command != "/opt/git/bin/git" {
		t.Errorf("Git.Command = %q, want env override", cfg.Git.Command)
	}
	if cfg.Runtime.URL != "https://example.com/Library.git" {
		t.Errorf("Runtime.URL = %q, want env override", cfg.Runtime.URL)
	}
}

func TestLoad_EnvOverrideValidated(t *testing.T) {
	// Not parallel: t.Setenv.
	t.Setenv("LIBEMBED_VENDOR_DIR", "third/party")

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: types.FilesystemPath(t.TempDir())})
	if !errors.Is(err, ErrInvalidVendorDir) {
		t.Fatalf("Load() error = %v, want ErrInvalidVendorDir", err)
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewProvider().Load(ctx, LoadOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestLoadOptions_Validate(t *testing.T) {
	t.Parallel()

	if err := (LoadOptions{}).Validate(); err != nil {
		t.Errorf("zero LoadOptions.Validate() = %v", err)
	}
	err := LoadOptions{ConfigFilePath: "  ", ConfigDirPath: "\t"}.Validate()
	var optsErr *InvalidLoadOptionsError
	if !errors.As(err, &optsErr) || len(optsErr.FieldErrors) != 2 {
		t.Fatalf("Validate() = %v, want two field errors", err)
	}
	if !errors.Is(err, ErrInvalidLoadOptions) {
		t.Error("Validate() error should wrap ErrInvalidLoadOptions")
	}
}

func TestGenerateCUE_RoundTrip(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.VendorDir = "vendor"
	cfg.ScriptPatterns = []string{"**/*.lua", "Modules/*.lua"}
	cfg.Git.Command = `git -c "user.name=Lib Embed"`
	cfg.UI.Verbose = true

	path := writeConfig(t, t.TempDir(), GenerateCUE(cfg))
	loaded, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: types.FilesystemPath(path)})
	if err != nil {
		t.Fatalf("Load(GenerateCUE()) error = %v", err)
	}
	if !reflect.DeepEqual(loaded, cfg) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", loaded, cfg)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	// Not parallel: mutates the package-level config dir override.
	dir := filepath.Join(t.TempDir(), AppName)
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	path, err := CreateDefaultConfig()
	if err != nil {
		t.Fatalf("CreateDefaultConfig() error = %v", err)
	}
	if want := filepath.Join(dir, "config.cue"); path != want {
		t.Errorf("CreateDefaultConfig() = %q, want %q", path, want)
	}

	if err := os.WriteFile(path, []byte(`vendor_dir: "kept"`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := CreateDefaultConfig(); err != nil {
		t.Fatalf("second CreateDefaultConfig() error = %v", err)
	}
	cfg, err := NewProvider().Load(context.Background(), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.VendorDir != "kept" {
		t.Errorf("existing config was overwritten: VendorDir = %q", cfg.VendorDir)
	}
}

func TestConfigDir_Override(t *testing.T) {
	// Not parallel: mutates the package-level config dir override.
	SetConfigDirOverride("/custom/libembed")
	t.Cleanup(Reset)

	got, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	if got != "/custom/libembed" {
		t.Errorf("ConfigDir() = %q, want override", got)
	}
}
