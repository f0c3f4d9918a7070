// SPDX-License-Identifier: MPL-2.0

// Package luascan finds textual references to embedded libraries in an
// add-on's Lua scripts and injects the statements that acquire those
// libraries from the shared runtime.
//
// Matching is deliberately loose: library names are matched as plain
// substrings of the whole file, without word boundaries, so a name that is
// part of a longer identifier counts as a reference.
package luascan
