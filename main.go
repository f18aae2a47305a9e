// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/gmt/chopper/cmd/chopper"

func main() {
	cmd.Execute()
}
