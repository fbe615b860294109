// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/jsdoc/jsdocrun/cmd/jsdocrun"

func main() {
	cmd.Execute()
}
