//go:build unix

package entry

import (
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"termfm/internal/perm"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamedPipeIsNeverOpened(t *testing.T) {
	root := t.TempDir()
	pipe := filepath.Join(root, "pipe")
	require.NoError(t, syscall.Mkfifo(pipe, 0o644))

	fs := afero.NewOsFs()
	entries, err := ReadDir(fs, root, nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, perm.FIFO, entries[0].Type)

	type result struct{ preview, mime, info string }
	done := make(chan result, 1)
	go func() {
		done <- result{
			preview: Preview(fs, pipe, 0),
			mime:    MimeType(fs, entries[0]),
			info:    entries[0].Info(fs),
		}
	}()

	select {
	case r := <-done:
		assert.Empty(t, r.preview)
		assert.Empty(t, r.mime)
		assert.True(t, strings.HasPrefix(r.info, "p"), r.info)
	case <-time.After(2 * time.Second):
		t.Fatal("reading a named pipe blocked")
	}
}

func TestPreviewFollowsLinkToPipe(t *testing.T) {
	root := t.TempDir()
	pipe := filepath.Join(root, "pipe")
	link := filepath.Join(root, "link")
	require.NoError(t, syscall.Mkfifo(pipe, 0o644))
	require.NoError(t, syscall.Symlink(pipe, link))

	done := make(chan string, 1)
	go func() { done <- Preview(afero.NewOsFs(), link, 0) }()

	select {
	case got := <-done:
		assert.Empty(t, got)
	case <-time.After(2 * time.Second):
		t.Fatal("preview through a link to a named pipe blocked")
	}
}
