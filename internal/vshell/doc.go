// SPDX-License-Identifier: MPL-2.0

// Package vshell runs POSIX shell scripts in-process with mvdan/sh, routing
// every registered built-in utility (mkdir, chmod, ...) to its Go
// implementation instead of a host binary.
//
// Commands that are not registered fall back to the host PATH unless the
// fallback is disabled, in which case they fail with status 127 the way a
// shell reports an unknown command.
package vshell
