// SPDX-License-Identifier: MPL-2.0

// Package addon models a World of Warcraft add-on checkout as libembed sees it:
// a directory inside an "AddOns" directory, next to the checkouts of the
// add-ons it depends on, with manifest variants, Lua scripts and a vendor
// directory holding embedded libraries.
//
// Every function takes the filesystem as an afero.Fs so the same code runs on
// the OS filesystem and on in-memory fixtures.
package addon
