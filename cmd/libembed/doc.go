// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the libembed command line interface.
//
// The root command embeds the libraries an AddOn depends on; the config
// subcommands inspect and initialize the configuration file.
package cmd
