package perm

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeOf(t *testing.T) {
	assert.Equal(t, Socket, TypeOf(49152))
	assert.Equal(t, Symlink, TypeOf(40960))
	assert.Equal(t, Regular, TypeOf(32768))
	assert.Equal(t, BlockDevice, TypeOf(24576))
	assert.Equal(t, Directory, TypeOf(16384))
	assert.Equal(t, CharDevice, TypeOf(8192))
	assert.Equal(t, FIFO, TypeOf(4096))
	assert.Equal(t, Undefined, TypeOf(1))

	// Permission bits do not affect the type
	assert.Equal(t, Regular, TypeOf(0o100644))
	assert.Equal(t, Directory, TypeOf(0o040755))
}

func TestTypeChar(t *testing.T) {
	assert.NotEqual(t, byte('c'), TypeOf(49152).Char())

	assert.Equal(t, byte('s'), TypeOf(49152).Char())
	assert.Equal(t, byte('l'), TypeOf(40960).Char())
	assert.Equal(t, byte('-'), TypeOf(32768).Char())
	assert.Equal(t, byte('b'), TypeOf(24576).Char())
	assert.Equal(t, byte('d'), TypeOf(16384).Char())
	assert.Equal(t, byte('c'), TypeOf(8192).Char())
	assert.Equal(t, byte('p'), TypeOf(4096).Char())
	assert.Equal(t, byte(0), TypeOf(5).Char())
}

func TestTypeOfMode(t *testing.T) {
	assert.Equal(t, Directory, TypeOfMode(os.ModeDir|0o755))
	assert.Equal(t, Regular, TypeOfMode(0o644))
	assert.Equal(t, Symlink, TypeOfMode(os.ModeSymlink|0o777))
	assert.Equal(t, FIFO, TypeOfMode(os.ModeNamedPipe))
	assert.Equal(t, Socket, TypeOfMode(os.ModeSocket))
	assert.Equal(t, CharDevice, TypeOfMode(os.ModeDevice|os.ModeCharDevice))
	assert.Equal(t, BlockDevice, TypeOfMode(os.ModeDevice))
	assert.Equal(t, "d", Directory.String())
}
