// SPDX-License-Identifier: MPL-2.0

// Package filemode compiles chmod-style mode expressions into 12-bit
// permission values.
//
// Two forms are accepted. An octal expression ("755", "0750", "2775") is
// taken as the literal value. Anything else is a symbolic expression made of
// comma-separated clauses, each a who-list, one operator and a run of
// permission letters:
//
//	u+rwx,g=rx,o-w
//	+x
//	g+s
//
// Symbolic clauses are applied left to right to an accumulator. [Compile]
// starts the accumulator at [Baseline] (0777); [Expr.Apply] starts it at an
// arbitrary mode, which is what chmod needs for an existing file.
//
// The compiled value never has the process umask folded in.
package filemode
