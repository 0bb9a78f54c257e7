// SPDX-License-Identifier: MPL-2.0

// Package builtin provides the POSIX utilities shipped inside the coreutils
// binary.
//
// Every utility implements [Command] and registers itself in
// [DefaultRegistry] from an init function. The same registry backs the
// command line (one subcommand per utility, plus multi-call dispatch on
// argv[0]) and the virtual shell, whose exec handler looks commands up here
// before falling back to the host.
//
// # Commands
//
// Custom implementations:
//   - mkdir: Create directories (symbolic or octal -m, -p, -v)
//   - chmod: Change file mode bits (symbolic or octal)
//   - basename: Strip directory and suffix from filenames
//   - hostname: Print the system host name
//   - nproc: Print the number of processing units
//   - pwd: Print the working directory
//   - sleep: Delay for a specified time
//   - whoami: Print the effective user name
//   - yes: Repeatedly print a line
//
// From u-root pkg/core:
//   - rm: Remove files and directories
//   - touch: Create files or update timestamps
//
// # I/O and Errors
//
// Commands read and write only through the [HandlerContext] found in their
// context, and resolve relative operands against HandlerContext.Dir rather
// than the process working directory.
//
// A command that has already written its own diagnostics returns an
// [*ExitError] carrying the exit status. Any other error is printed by the
// caller as "<name>: <message>".
package builtin
