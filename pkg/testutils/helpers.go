// Package testutils holds fixtures shared by package tests.
package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// CreateTestFilesWithContent writes files under dir, creating parent
// directories. Keys are slash-separated paths relative to dir.
func CreateTestFilesWithContent(t *testing.T, fs afero.Fs, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	}
}

// CreateTestFilesWithDefault writes a small mixed set of files under dir.
func CreateTestFilesWithDefault(t *testing.T, fs afero.Fs, dir string) {
	CreateTestFilesWithContent(t, fs, dir, map[string]string{
		"test1.txt":        "test content 1",
		"test2.txt":        "test content 2",
		"docs/readme.md":   "# readme\n",
		"docs/img/pic.png": "\x89PNG\r\n\x1a\n",
	})
}

// ReadTree returns every regular file under root keyed by its slash path
// relative to root. Directories map to a trailing-slash key with no content.
func ReadTree(t *testing.T, fs afero.Fs, root string) map[string]string {
	t.Helper()
	tree := map[string]string{}
	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil || rel == "." {
			return err
		}
		rel = filepath.ToSlash(rel)
		if info.IsDir() {
			tree[rel+"/"] = ""
			return nil
		}
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return err
		}
		tree[rel] = string(data)
		return nil
	})
	require.NoError(t, err)
	return tree
}

// StripANSI removes ANSI escape sequences from a string
func StripANSI(str string) string {
	var result []rune
	inEscape := false
	for _, r := range str {
		if r == '\x1b' {
			inEscape = true
			continue
		}
		if inEscape {
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEscape = false
			}
			continue
		}
		result = append(result, r)
	}
	return string(result)
}
