// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// The helpers build filesystem fixtures over afero (MustWriteFile,
// MustReadFile, MustMkdirAll, WriteTree, MustCopyTree).
package testutil
