// SPDX-License-Identifier: MPL-2.0

// Package submodule connects libembed to git: it reads the repository's
// .gitmodules registry to find where a dependency's source lives, runs the
// git commands that vendor dependencies as submodules, and derives library
// versions from tags.
package submodule
