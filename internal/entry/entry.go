// Package entry reads directory listings and renders the preview and info
// panes for a single entry.
package entry

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"termfm/internal/errors"
	"termfm/internal/perm"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gobwas/glob"
	"github.com/spf13/afero"
)

// DefaultPreviewLines is how many lines Preview shows unless configured.
const DefaultPreviewLines = 10

// TimeFormat renders modification times in the info pane.
const TimeFormat = "Jan _2 15:04:05"

// Entry is one item of a directory listing. Type and Mode come from the
// listing itself, so a symlink is reported as a symlink.
type Entry struct {
	Name    string
	Path    string
	Type    perm.FileType
	Mode    perm.Mask
	ModTime time.Time
	Size    int64
}

// FromInfo builds an Entry for info found in dir.
func FromInfo(dir string, info os.FileInfo) Entry {
	return Entry{
		Name:    info.Name(),
		Path:    filepath.Join(dir, info.Name()),
		Type:    perm.TypeOfMode(info.Mode()),
		Mode:    perm.FromMode(info.Mode()),
		ModTime: info.ModTime(),
		Size:    info.Size(),
	}
}

func (e Entry) IsDir() bool  { return e.Type == perm.Directory }
func (e Entry) IsFile() bool { return e.Type == perm.Regular }

// DisplayName is the name as shown in the listing; directories get a
// trailing slash.
func (e Entry) DisplayName() string {
	if e.IsDir() {
		return e.Name + "/"
	}
	return e.Name
}

// Info renders the info pane: type and permissions, size, modification
// time and MIME type, one per line.
func (e Entry) Info(fs afero.Fs) string {
	return fmt.Sprintf("%s%s\n%s\n%s\n%s",
		e.Type,
		e.Mode,
		humanize.Bytes(uint64(e.Size)),
		e.ModTime.Local().Format(TimeFormat),
		MimeType(fs, e),
	)
}

// MimeType detects the content type of e. Directories report
// inode/directory. Only regular files are opened; anything else, and
// anything unreadable, reports an empty string.
func MimeType(fs afero.Fs, e Entry) string {
	if e.IsDir() {
		return "inode/directory"
	}
	if !e.IsFile() {
		return ""
	}
	f, err := fs.Open(e.Path)
	if err != nil {
		return ""
	}
	defer f.Close()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return ""
	}
	return mtype.String()
}

// Filter decides which names are left out of a listing.
type Filter struct {
	showHidden bool
	hide       []glob.Glob
}

// NewFilter compiles the hide patterns. Dotfiles are hidden unless
// showHidden is set.
func NewFilter(showHidden bool, patterns []string) (*Filter, error) {
	f := &Filter{showHidden: showHidden}
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid hide pattern %q", p)
		}
		f.hide = append(f.hide, g)
	}
	return f, nil
}

// Hidden reports whether name should be left out.
func (f *Filter) Hidden(name string) bool {
	if f == nil {
		return false
	}
	if !f.showHidden && strings.HasPrefix(name, ".") {
		return true
	}
	for _, g := range f.hide {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// ReadDir lists dir sorted by name, skipping names the filter hides. A nil
// filter keeps everything.
func ReadDir(fs afero.Fs, dir string, filter *Filter) ([]Entry, error) {
	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, errors.NewExecError("list", dir, errors.IOFailure, err)
	}

	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		if filter.Hidden(info.Name()) {
			continue
		}
		entries = append(entries, FromInfo(dir, info))
	}
	return entries, nil
}

// Preview returns up to n lines of the file at path. Anything but a regular
// file (after following links), read errors and files with a line that is
// not valid UTF-8 give an empty preview. Pipes and devices are never opened.
func Preview(fs afero.Fs, path string, n int) string {
	if n <= 0 {
		n = DefaultPreviewLines
	}
	if info, err := fs.Stat(path); err != nil || !info.Mode().IsRegular() {
		return ""
	}
	f, err := fs.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	lines := make([]string, 0, n)
	scanner := bufio.NewScanner(f)
	for len(lines) < n && scanner.Scan() {
		line := scanner.Text()
		if !utf8.ValidString(line) {
			return ""
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return ""
	}
	return strings.Join(lines, "\n")
}
