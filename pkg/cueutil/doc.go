// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates CUE documents against an embedded schema and
// reports failures with the JSON path of the offending field.
//
//	//go:embed config_schema.cue
//	var schema string
//
//	values, err := cueutil.DecodeMap(schema, "#Config", data, "config.cue")
//	if err != nil {
//	    return err // e.g. "config.cue: git.command: conflicting values ..."
//	}
package cueutil
