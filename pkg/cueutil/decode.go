// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// DecodeMap validates data against the definition of schema and decodes it
// into a map. Fields may be left unset, so the result only holds what the
// document itself declares and can be merged over defaults.
func DecodeMap(schema, definition string, data []byte, filename string) (map[string]any, error) {
	if err := CheckFileSize(data, DefaultMaxFileSize, filename); err != nil {
		return nil, err
	}

	ctx := cuecontext.New()
	schemaValue := ctx.CompileString(schema)
	if err := schemaValue.Err(); err != nil {
		return nil, fmt.Errorf("internal error: compiling schema: %w", err)
	}
	root := schemaValue.LookupPath(cue.ParsePath(definition))
	if err := root.Err(); err != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", definition, err)
	}

	userValue := ctx.CompileBytes(data, cue.Filename(filename))
	if err := userValue.Err(); err != nil {
		return nil, FormatError(err, filename)
	}

	unified := root.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return nil, FormatError(err, filename)
	}

	var values map[string]any
	if err := unified.Decode(&values); err != nil {
		return nil, FormatError(err, filename)
	}
	return values, nil
}
