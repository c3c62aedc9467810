package entry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"termfm/internal/perm"
	"termfm/pkg/testutils"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	testutils.CreateTestFilesWithContent(t, fs, "/home", map[string]string{
		"b.txt":       "bee",
		"a.txt":       "ay",
		".hidden":     "secret",
		"build.log":   "log",
		"src/main.go": "package main",
		"notes.md":    "# notes",
		"cache/x.tmp": "tmp",
	})
	return fs
}

func names(entries []Entry) []string {
	var out []string
	for _, e := range entries {
		out = append(out, e.DisplayName())
	}
	return out
}

func TestReadDir(t *testing.T) {
	fs := setupFs(t)

	t.Run("no filter", func(t *testing.T) {
		entries, err := ReadDir(fs, "/home", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{".hidden", "a.txt", "b.txt", "build.log", "cache/", "notes.md", "src/"}, names(entries))
	})

	t.Run("hide dotfiles and patterns", func(t *testing.T) {
		filter, err := NewFilter(false, []string{"*.log", "cache"})
		require.NoError(t, err)

		entries, err := ReadDir(fs, "/home", filter)
		require.NoError(t, err)
		assert.Equal(t, []string{"a.txt", "b.txt", "notes.md", "src/"}, names(entries))
	})

	t.Run("show hidden", func(t *testing.T) {
		filter, err := NewFilter(true, nil)
		require.NoError(t, err)

		entries, err := ReadDir(fs, "/home", filter)
		require.NoError(t, err)
		assert.Contains(t, names(entries), ".hidden")
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := ReadDir(fs, "/nowhere", nil)
		assert.Error(t, err)
	})
}

func TestNewFilterRejectsBadPattern(t *testing.T) {
	_, err := NewFilter(true, []string{"[unclosed"})
	assert.Error(t, err)
}

func TestEntryFields(t *testing.T) {
	fs := setupFs(t)
	require.NoError(t, fs.Chmod("/home/a.txt", 0o640))

	entries, err := ReadDir(fs, "/home", nil)
	require.NoError(t, err)

	var a, src Entry
	for _, e := range entries {
		switch e.Name {
		case "a.txt":
			a = e
		case "src":
			src = e
		}
	}

	assert.Equal(t, "/home/a.txt", a.Path)
	assert.True(t, a.IsFile())
	assert.False(t, a.IsDir())
	assert.Equal(t, perm.Mask(0o640), a.Mode)
	assert.Equal(t, int64(2), a.Size)

	assert.True(t, src.IsDir())
	assert.Equal(t, "src/", src.DisplayName())
}

func TestInfo(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/f.txt", []byte(strings.Repeat("x", 1500)), 0o644))
	mtime := time.Date(2023, time.March, 4, 5, 6, 7, 0, time.Local)
	require.NoError(t, fs.Chtimes("/f.txt", mtime, mtime))

	info, err := fs.Stat("/f.txt")
	require.NoError(t, err)
	e := FromInfo("/", info)

	lines := strings.Split(e.Info(fs), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "-rw-r--r--", lines[0])
	assert.Equal(t, "1.5 kB", lines[1])
	assert.Equal(t, "Mar  4 05:06:07", lines[2])
	assert.Equal(t, "text/plain; charset=utf-8", lines[3])
}

func TestMimeType(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/img.png", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), 0o644))
	require.NoError(t, fs.MkdirAll("/dir", 0o755))

	png, err := fs.Stat("/img.png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", MimeType(fs, FromInfo("/", png)))

	dir, err := fs.Stat("/dir")
	require.NoError(t, err)
	assert.Equal(t, "inode/directory", MimeType(fs, FromInfo("/", dir)))

	assert.Empty(t, MimeType(fs, Entry{Path: "/gone", Type: perm.Regular}))
}

func TestPreview(t *testing.T) {
	fs := afero.NewMemMapFs()
	var long []string
	for i := 0; i < 25; i++ {
		long = append(long, strings.Repeat("l", i))
	}
	require.NoError(t, afero.WriteFile(fs, "/long.txt", []byte(strings.Join(long, "\n")), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/short.txt", []byte("one\ntwo\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/bin", []byte("ok\n\xff\xfe\n"), 0o644))
	require.NoError(t, fs.MkdirAll("/dir", 0o755))

	assert.Equal(t, strings.Join(long[:10], "\n"), Preview(fs, "/long.txt", 0))
	assert.Equal(t, strings.Join(long[:3], "\n"), Preview(fs, "/long.txt", 3))
	assert.Equal(t, "one\ntwo", Preview(fs, "/short.txt", 10))
	assert.Empty(t, Preview(fs, "/bin", 10), "invalid utf-8 clears the preview")
	assert.Empty(t, Preview(fs, "/dir", 10))
	assert.Empty(t, Preview(fs, "/missing", 10))
}

func TestSymlinkListedAsLink(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "real"), 0o755))
	require.NoError(t, os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "link")))

	entries, err := ReadDir(afero.NewOsFs(), root, nil)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "link", entries[0].Name)
	assert.Equal(t, perm.Symlink, entries[0].Type)
	assert.Equal(t, byte('l'), entries[0].Type.Char())
	assert.True(t, entries[1].IsDir())
}
