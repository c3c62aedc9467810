// Package perm converts between the three textual permission forms termfm
// deals with: a 3-digit octal spec typed by the user ("755"), the 9-bit
// read/write/execute mask applied to files, and the "rwxr-xr-x" rendering
// shown in the info pane.
package perm

import (
	"fmt"
	"os"

	"termfm/internal/errors"
)

// Mask holds the owner/group/other read/write/execute bits in POSIX order,
// so Mask(0o755) is rwxr-xr-x.
type Mask uint16

const (
	OwnerRead Mask = 1 << (8 - iota)
	OwnerWrite
	OwnerExec
	GroupRead
	GroupWrite
	GroupExec
	OtherRead
	OtherWrite
	OtherExec
)

// All is every permission bit.
const All Mask = 0o777

const rwx = "rwxrwxrwx"

// Parse decodes a permission spec of exactly three digits '0'-'7'.
func Parse(s string) (Mask, error) {
	if len(s) != 3 {
		return 0, errors.NewParseError(fmt.Sprintf("permission %q must be 3 octal digits", s), 'e', errors.InvalidArgument)
	}

	var m Mask
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '7' {
			return 0, errors.NewParseError(fmt.Sprintf("permission %q has non-octal digit %q", s, c), 'e', errors.InvalidArgument)
		}
		m = m<<3 | Mask(c-'0')
	}
	return m, nil
}

// FromMode extracts the permission bits of an os.FileMode.
func FromMode(mode os.FileMode) Mask {
	return Mask(mode.Perm())
}

// FileMode returns m as permission bits for os.Chmod.
func (m Mask) FileMode() os.FileMode {
	return os.FileMode(m & All)
}

// Octal renders m as three octal digits, the inverse of Parse.
func (m Mask) Octal() string {
	return fmt.Sprintf("%03o", uint16(m&All))
}

// String renders m as nine characters, r/w/x for set bits and '-' otherwise.
func (m Mask) String() string {
	var buf [9]byte
	for i := range buf {
		if m&(1<<uint(8-i)) != 0 {
			buf[i] = rwx[i]
		} else {
			buf[i] = '-'
		}
	}
	return string(buf[:])
}
