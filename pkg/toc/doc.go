// SPDX-License-Identifier: MPL-2.0

// Package toc reads and rewrites the two parts of a World of Warcraft add-on
// manifest (".toc" file) that library embedding cares about: the dependency
// declaration line and the ordered list of load files ("includes").
//
// All functions are pure text transforms. Every line that is neither a load
// file nor the dependency declaration survives a rewrite verbatim; comment
// lines ("## ...") are never reordered.
//
// Manifest variants per game client flavor are described by [Flavor]; see
// [Flavors] for the resolution order.
package toc
