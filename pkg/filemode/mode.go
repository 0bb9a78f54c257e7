// SPDX-License-Identifier: MPL-2.0

package filemode

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

const (
	// ModeSetuid is the set-user-ID bit.
	ModeSetuid Mode = 0o4000
	// ModeSetgid is the set-group-ID bit.
	ModeSetgid Mode = 0o2000
	// ModeSticky is the restricted-deletion (sticky) bit.
	ModeSticky Mode = 0o1000

	// ModePerm covers the rwx triads of user, group and other.
	ModePerm Mode = 0o777
	// ModeSpecial covers setuid, setgid and sticky.
	ModeSpecial Mode = ModeSetuid | ModeSetgid | ModeSticky
	// ModeMask covers every bit a Mode may carry.
	ModeMask Mode = ModePerm | ModeSpecial

	// Baseline is the starting value for symbolic compilation: full
	// permissions, no special bits. It is not the process umask.
	Baseline Mode = 0o777
)

// ErrInvalidModeValue is the sentinel error wrapped by InvalidModeValueError.
var ErrInvalidModeValue = errors.New("invalid mode value")

type (
	// Mode is a 12-bit permission value: the 9 rwx bits plus setuid,
	// setgid and sticky, laid out as in chmod(2).
	Mode uint32

	// InvalidModeValueError is returned when a Mode has bits outside ModeMask.
	InvalidModeValueError struct {
		Value Mode
	}
)

// Error implements the error interface.
func (e *InvalidModeValueError) Error() string {
	return fmt.Sprintf("invalid mode value %#o (must be within 07777)", uint32(e.Value))
}

// Unwrap returns ErrInvalidModeValue for errors.Is.
func (e *InvalidModeValueError) Unwrap() error { return ErrInvalidModeValue }

// Validate returns an error if m carries bits outside ModeMask.
func (m Mode) Validate() error {
	if m&^ModeMask != 0 {
		return &InvalidModeValueError{Value: m}
	}
	return nil
}

// Perm returns the rwx bits of m.
func (m Mode) Perm() Mode { return m & ModePerm }

// Special returns the setuid, setgid and sticky bits of m.
func (m Mode) Special() Mode { return m & ModeSpecial }

// String returns the four-digit octal form, e.g. "0755".
func (m Mode) String() string {
	s := strconv.FormatUint(uint64(m&ModeMask), 8)
	for len(s) < 4 {
		s = "0" + s
	}
	return s
}

// Symbolic renders m as ls(1) shows permissions, e.g. "rwxr-sr-t".
func (m Mode) Symbolic() string {
	b := []byte("---------")
	for i, c := range "rwxrwxrwx" {
		if m&(1<<(8-i)) != 0 {
			b[i] = byte(c)
		}
	}
	special := func(i int, set Mode, lower, upper byte) {
		if m&set == 0 {
			return
		}
		if b[i] == 'x' {
			b[i] = lower
		} else {
			b[i] = upper
		}
	}
	special(2, ModeSetuid, 's', 'S')
	special(5, ModeSetgid, 's', 'S')
	special(8, ModeSticky, 't', 'T')
	return string(b)
}

// FileMode converts m to an os.FileMode, translating the special bits to
// their os.Mode* counterparts so os.Mkdir and os.Chmod pass them through.
func (m Mode) FileMode() os.FileMode {
	fm := os.FileMode(m & ModePerm)
	if m&ModeSetuid != 0 {
		fm |= os.ModeSetuid
	}
	if m&ModeSetgid != 0 {
		fm |= os.ModeSetgid
	}
	if m&ModeSticky != 0 {
		fm |= os.ModeSticky
	}
	return fm
}

// FromFileMode extracts the permission and special bits of fm.
// Type bits (directory, symlink, ...) are discarded.
func FromFileMode(fm os.FileMode) Mode {
	m := Mode(fm.Perm())
	if fm&os.ModeSetuid != 0 {
		m |= ModeSetuid
	}
	if fm&os.ModeSetgid != 0 {
		m |= ModeSetgid
	}
	if fm&os.ModeSticky != 0 {
		m |= ModeSticky
	}
	return m
}
