// SPDX-License-Identifier: MPL-2.0

package config

import (
	"github.com/libembed/libembed/pkg/addon"
	"github.com/libembed/libembed/pkg/embedder"
	"github.com/libembed/libembed/pkg/luascan"
)

// EmbedderOptions converts the configuration into embedding run options.
// It fails when the acquisition template does not parse.
func (c *Config) EmbedderOptions() (embedder.Options, error) {
	tmpl, err := luascan.ParseAcquisitionTemplate(c.AcquisitionTemplate, c.Runtime.Name)
	if err != nil {
		return embedder.Options{}, err
	}
	return embedder.Options{
		Layout:                addon.Layout{VendorDir: c.VendorDir, RuntimeName: c.Runtime.Name},
		RuntimeURL:            c.Runtime.URL,
		RepositoryRoot:        c.RepositoryRoot,
		ScriptPatterns:        c.ScriptPatterns,
		DefaultLibraryVersion: c.DefaultLibraryVersion,
		Template:              tmpl,
	}, nil
}
