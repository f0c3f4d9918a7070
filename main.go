// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/libembed/libembed/cmd/libembed"

func main() {
	cmd.Execute()
}
