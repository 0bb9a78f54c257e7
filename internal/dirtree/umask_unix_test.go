// SPDX-License-Identifier: MPL-2.0

//go:build unix

package dirtree

import "golang.org/x/sys/unix"

// currentUmask reads the process umask without changing it.
func currentUmask() int {
	umaskMu.Lock()
	defer umaskMu.Unlock()

	mask := unix.Umask(0)
	unix.Umask(mask)
	return mask
}
