// Package fsops holds the filesystem primitives behind paste and delete:
// single-file byte copy and depth-first copy/removal of directory trees.
//
// Every function takes an afero.Fs so the same code runs against the OS and
// against an in-memory filesystem in tests. The first failing call aborts
// the whole operation; nothing is rolled back.
package fsops

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// CopyFile copies the bytes of src to dst, creating or truncating dst and
// carrying over the permission bits of src.
func CopyFile(fs afero.Fs, src, dst string) error {
	in, err := fs.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat source file: %w", err)
	}

	out, err := fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy file contents: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close destination file: %w", err)
	}
	return nil
}

// CopyTree recreates the directory src at dst. Sub-directories are copied
// recursively and every other entry is byte-copied under the same name.
// Entries come from the directory listing, which does not follow symlinks,
// so a link to a directory is never descended; byte-copying it fails.
func CopyTree(fs afero.Fs, src, dst string) error {
	if err := fs.MkdirAll(dst, 0755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	entries, err := afero.ReadDir(fs, src)
	if err != nil {
		return fmt.Errorf("failed to read source directory: %w", err)
	}

	for _, entry := range entries {
		from := filepath.Join(src, entry.Name())
		to := filepath.Join(dst, entry.Name())
		if entry.IsDir() {
			if err := CopyTree(fs, from, to); err != nil {
				return err
			}
			continue
		}
		if err := CopyFile(fs, from, to); err != nil {
			return err
		}
	}
	return nil
}

// RemoveTree removes path. A directory has its children removed depth-first
// before the directory itself; anything else, including a symlink to a
// directory, is removed as a single entry.
func RemoveTree(fs afero.Fs, path string) error {
	info, err := lstat(fs, path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.IsDir() {
		if err := fs.Remove(path); err != nil {
			return fmt.Errorf("failed to remove file: %w", err)
		}
		return nil
	}

	entries, err := afero.ReadDir(fs, path)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}
	for _, entry := range entries {
		child := filepath.Join(path, entry.Name())
		if entry.IsDir() {
			if err := RemoveTree(fs, child); err != nil {
				return err
			}
			continue
		}
		if err := fs.Remove(child); err != nil {
			return fmt.Errorf("failed to remove file: %w", err)
		}
	}

	if err := fs.Remove(path); err != nil {
		return fmt.Errorf("failed to remove directory: %w", err)
	}
	return nil
}

// Contains reports whether child is parent itself or lies inside it,
// comparing cleaned paths lexically.
func Contains(parent, child string) bool {
	rel, err := filepath.Rel(filepath.Clean(parent), filepath.Clean(child))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// maxAncestors bounds the walk up from a directory in Within.
const maxAncestors = 256

// Within reports whether dir is src itself or lies inside it. Beyond the
// lexical Contains, it walks the physical parents of dir ("dir/..",
// "dir/../..") so a directory reached through a symlink into src is caught.
// The physical walk needs FileInfo values os.SameFile understands, so on
// filesystems without them (MemMapFs) only the lexical check applies.
func Within(fs afero.Fs, src, dir string) bool {
	if Contains(src, dir) {
		return true
	}
	srcInfo, err := fs.Stat(src)
	if err != nil || !os.SameFile(srcInfo, srcInfo) {
		return false
	}

	p := dir
	for i := 0; i < maxAncestors; i++ {
		info, err := fs.Stat(p)
		if err != nil {
			return false
		}
		if os.SameFile(srcInfo, info) {
			return true
		}
		// Joined by hand: filepath.Join would resolve ".." lexically.
		parent := p + string(filepath.Separator) + ".."
		up, err := fs.Stat(parent)
		if err != nil || os.SameFile(info, up) {
			return false
		}
		p = parent
	}
	return false
}

// Same reports whether a and b name the same file once symlinks are
// followed. It is false when either is missing or fs cannot tell.
func Same(fs afero.Fs, a, b string) bool {
	ai, err := fs.Stat(a)
	if err != nil {
		return false
	}
	bi, err := fs.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}

func lstat(fs afero.Fs, path string) (os.FileInfo, error) {
	if l, ok := fs.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)
		return info, err
	}
	return fs.Stat(path)
}
