// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package dirtree

func currentUmask() int { return 0 }
