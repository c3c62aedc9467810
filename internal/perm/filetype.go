package perm

import "os"

// FileType is the file format encoded in the S_IFMT bits of st_mode.
type FileType int

const (
	Undefined FileType = iota
	Socket
	Symlink
	Regular
	BlockDevice
	Directory
	CharDevice
	FIFO
)

const modeTypeMask = 0o170000

// TypeOf classifies a raw st_mode value.
func TypeOf(stMode uint32) FileType {
	switch stMode & modeTypeMask {
	case 0o140000:
		return Socket
	case 0o120000:
		return Symlink
	case 0o100000:
		return Regular
	case 0o060000:
		return BlockDevice
	case 0o040000:
		return Directory
	case 0o020000:
		return CharDevice
	case 0o010000:
		return FIFO
	default:
		return Undefined
	}
}

// TypeOfMode classifies an os.FileMode.
func TypeOfMode(mode os.FileMode) FileType {
	switch {
	case mode&os.ModeSocket != 0:
		return Socket
	case mode&os.ModeSymlink != 0:
		return Symlink
	case mode&os.ModeDevice != 0 && mode&os.ModeCharDevice != 0:
		return CharDevice
	case mode&os.ModeDevice != 0:
		return BlockDevice
	case mode.IsDir():
		return Directory
	case mode&os.ModeNamedPipe != 0:
		return FIFO
	case mode.IsRegular():
		return Regular
	default:
		return Undefined
	}
}

// Char is the type column of ls -l. Undefined renders as NUL.
func (t FileType) Char() byte {
	switch t {
	case Socket:
		return 's'
	case Symlink:
		return 'l'
	case Regular:
		return '-'
	case BlockDevice:
		return 'b'
	case Directory:
		return 'd'
	case CharDevice:
		return 'c'
	case FIFO:
		return 'p'
	default:
		return 0
	}
}

func (t FileType) String() string {
	return string([]byte{t.Char()})
}
