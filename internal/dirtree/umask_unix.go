// SPDX-License-Identifier: MPL-2.0

//go:build unix

package dirtree

import (
	"sync"

	"golang.org/x/sys/unix"
)

// umaskMu guards the process-wide umask. A mkdir that needs a cleared umask
// holds it exclusively; every other mkdir holds it shared so it never runs
// while the umask is temporarily zero.
var umaskMu sync.RWMutex

// withUmask runs fn with the process umask set to mask and restores the
// previous value before returning.
func withUmask(mask int, fn func() error) error {
	umaskMu.Lock()
	defer umaskMu.Unlock()

	old := unix.Umask(mask)
	defer unix.Umask(old)
	return fn()
}

// withProcessUmask runs fn under the umask the process was configured with.
func withProcessUmask(fn func() error) error {
	umaskMu.RLock()
	defer umaskMu.RUnlock()
	return fn()
}
