// SPDX-License-Identifier: MPL-2.0

// Command envup prepares a project's Python development environment.
package main

import cmd "envup-cli/cmd/envup"

func main() {
	cmd.Execute()
}
