// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package dirtree

// Platforms without a umask apply the requested permissions as given.

func withUmask(_ int, fn func() error) error { return fn() }

func withProcessUmask(fn func() error) error { return fn() }
