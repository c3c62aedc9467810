package command

import (
	"fmt"
	"os"
	"path/filepath"

	"termfm/internal/errors"
	"termfm/internal/fsops"
	"termfm/internal/log"
	"termfm/internal/perm"

	"github.com/spf13/afero"
)

// State is the clipboard state.
type State int

const (
	// Idle means nothing has been copied or cut yet.
	Idle State = iota
	PendingCopy
	PendingCut
	// Consumed is entered by paste. It behaves like Idle.
	Consumed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case PendingCopy:
		return "copy"
	case PendingCut:
		return "cut"
	case Consumed:
		return "consumed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// DirProvider supplies the directory that relative names resolve against.
type DirProvider interface {
	Dir() (string, error)
}

// WorkingDir resolves against the process working directory.
type WorkingDir struct{}

// Dir returns os.Getwd.
func (WorkingDir) Dir() (string, error) {
	return os.Getwd()
}

// FixedDir always resolves against the same directory.
type FixedDir string

// Dir returns d.
func (d FixedDir) Dir() (string, error) {
	return string(d), nil
}

// Executor performs file operations and owns the clipboard.
type Executor struct {
	fs     afero.Fs
	dir    DirProvider
	state  State
	source string
}

// NewExecutor returns an Idle executor over fs.
func NewExecutor(fs afero.Fs, dir DirProvider) *Executor {
	return &Executor{fs: fs, dir: dir}
}

// State returns the clipboard state.
func (e *Executor) State() State {
	return e.state
}

// Pending returns the pending source path, if a copy or cut is armed.
func (e *Executor) Pending() (string, bool) {
	if e.state == PendingCopy || e.state == PendingCut {
		return e.source, true
	}
	return "", false
}

// Run dispatches cmd to its operation.
func (e *Executor) Run(cmd Command) error {
	switch c := cmd.(type) {
	case Copy:
		return e.Copy(c.Target)
	case Cut:
		return e.Cut(c.Target)
	case Paste:
		return e.Paste()
	case Delete:
		return e.Delete(c.Target)
	case Rename:
		return e.Rename(c.Target, c.NewName)
	case Create:
		return e.Create(c.Kind, c.Name)
	case Edit:
		return e.Edit(c.Target, c.Mask)
	default:
		return errors.Newf("unsupported command %T", cmd)
	}
}

// Copy arms the clipboard with name for copying, replacing any pending source.
func (e *Executor) Copy(name string) error {
	return e.arm(OpCopy, PendingCopy, name)
}

// Cut arms the clipboard with name for moving, replacing any pending source.
func (e *Executor) Cut(name string) error {
	return e.arm(OpCut, PendingCut, name)
}

func (e *Executor) arm(op Op, state State, name string) error {
	path, err := e.resolve(op, name)
	if err != nil {
		return err
	}
	e.state = state
	e.source = path
	log.LogWithFields(log.F("op", op.Name()), log.F("path", path)).Debug("Clipboard armed")
	return nil
}

// Paste copies the pending source into the working directory, removing the
// source afterwards for a cut. Without a pending source it does nothing.
// The clipboard is Consumed afterwards whatever the outcome.
func (e *Executor) Paste() error {
	state, src := e.state, e.source
	e.state, e.source = Consumed, ""

	if state != PendingCopy && state != PendingCut {
		log.Debug("Paste with empty clipboard")
		return nil
	}

	dir, err := e.dir.Dir()
	if err != nil {
		return errors.NewExecError(OpPaste.Name(), "", errors.IOFailure, err)
	}
	dst := filepath.Join(dir, filepath.Base(src))
	if dst == src || fsops.Same(e.fs, dst, src) {
		log.LogWithFields(log.F("path", src)).Debug("Paste onto its own source skipped")
		return nil
	}

	info, err := e.fs.Stat(src)
	if err != nil {
		return errors.NewExecError(OpPaste.Name(), src, errors.IOFailure, err)
	}

	if info.IsDir() {
		if fsops.Within(e.fs, src, dir) {
			return errors.NewExecError(OpPaste.Name(), dst, errors.InvalidOperation,
				fmt.Errorf("cannot paste %s into itself", src))
		}
		err = fsops.CopyTree(e.fs, src, dst)
	} else {
		err = fsops.CopyFile(e.fs, src, dst)
	}
	if err != nil {
		return errors.NewExecError(OpPaste.Name(), dst, errors.IOFailure, err)
	}

	if state == PendingCut {
		if err := fsops.RemoveTree(e.fs, src); err != nil {
			return errors.NewExecError(OpCut.Name(), src, errors.IOFailure, err)
		}
	}

	log.LogWithFields(
		log.F("from", src),
		log.F("to", dst),
		log.F("move", state == PendingCut),
	).Info("Pasted")
	return nil
}

// Delete removes name, descending into directories.
func (e *Executor) Delete(name string) error {
	path, err := e.resolve(OpDelete, name)
	if err != nil {
		return err
	}
	if err := fsops.RemoveTree(e.fs, path); err != nil {
		return errors.NewExecError(OpDelete.Name(), path, errors.IOFailure, err)
	}
	log.LogWithFields(log.F("path", path)).Info("Deleted")
	return nil
}

// Rename renames name to newName, both relative to the working directory.
func (e *Executor) Rename(name, newName string) error {
	from, err := e.resolve(OpRename, name)
	if err != nil {
		return err
	}
	to, err := e.resolve(OpRename, newName)
	if err != nil {
		return err
	}
	if err := e.fs.Rename(from, to); err != nil {
		return errors.NewExecError(OpRename.Name(), from, errors.IOFailure, err)
	}
	log.LogWithFields(log.F("from", from), log.F("to", to)).Info("Renamed")
	return nil
}

// Create makes an empty directory or file. An existing entry is an error.
func (e *Executor) Create(kind Kind, name string) error {
	path, err := e.resolve(OpCreate, name)
	if err != nil {
		return err
	}

	switch kind {
	case KindDir:
		err = e.fs.Mkdir(path, 0755)
	case KindFile:
		var f afero.File
		f, err = e.fs.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil {
			err = f.Close()
		}
	default:
		return errors.NewParseError("create kind must be d or f", rune(OpCreate), errors.InvalidArgument)
	}
	if err != nil {
		return errors.NewExecError(OpCreate.Name(), path, errors.IOFailure, err)
	}
	log.LogWithFields(log.F("path", path), log.F("kind", string(kind))).Info("Created")
	return nil
}

// Edit replaces the permission bits of name with mask.
func (e *Executor) Edit(name string, mask perm.Mask) error {
	path, err := e.resolve(OpEdit, name)
	if err != nil {
		return err
	}
	if err := e.fs.Chmod(path, mask.FileMode()); err != nil {
		return errors.NewExecError(OpEdit.Name(), path, errors.IOFailure, err)
	}
	log.LogWithFields(log.F("path", path), log.F("mode", mask.Octal())).Info("Permissions changed")
	return nil
}

func (e *Executor) resolve(op Op, name string) (string, error) {
	if filepath.IsAbs(name) {
		return filepath.Clean(name), nil
	}
	dir, err := e.dir.Dir()
	if err != nil {
		return "", errors.NewExecError(op.Name(), name, errors.IOFailure, err)
	}
	return filepath.Join(dir, name), nil
}
