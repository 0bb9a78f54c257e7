// SPDX-License-Identifier: MPL-2.0

// Command coreutils is a multi-call binary of POSIX utilities.
package main

import cmd "github.com/invowk/coreutils/cmd/coreutils"

func main() {
	cmd.Execute()
}
