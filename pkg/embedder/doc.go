// SPDX-License-Identifier: MPL-2.0

// Package embedder runs one library embedding pass over an add-on.
//
// A run moves through fixed states: it classifies the add-on's declared
// dependencies, resolves the source of every embeddable one from the
// repository's submodule registry, vendors them under the add-on's vendor
// directory, merges their load files into the add-on's manifests, injects
// acquisition statements into the scripts that reference them and finally
// removes them from the manifests' dependency lines. A run over an add-on
// with nothing left to embed changes nothing.
package embedder
