// Package command implements the colon command engine: parsing and
// validating command text, the clipboard-holding executor that performs the
// file operations, and the handler that ties both to the command line mode.
package command

import "termfm/internal/perm"

// Op is the operation character that follows the colon.
type Op rune

const (
	OpCopy   Op = 'c'
	OpCut    Op = 'm'
	OpPaste  Op = 'p'
	OpDelete Op = 'd'
	OpRename Op = 'r'
	OpCreate Op = 'n'
	OpEdit   Op = 'e'
)

// Name is the operation name used in logs and errors.
func (o Op) Name() string {
	switch o {
	case OpCopy:
		return "copy"
	case OpCut:
		return "cut"
	case OpPaste:
		return "paste"
	case OpDelete:
		return "delete"
	case OpRename:
		return "rename"
	case OpCreate:
		return "create"
	case OpEdit:
		return "edit"
	default:
		return string(o)
	}
}

// needsSelection reports whether the operation acts on the selected entry.
func (o Op) needsSelection() bool {
	return o != OpCreate && o != OpPaste
}

// Command is a parsed and validated command. The concrete types below are
// the only implementations.
type Command interface {
	Op() Op
}

// Copy marks Target as the pending copy source.
type Copy struct {
	Target string
}

// Cut marks Target as the pending cut source.
type Cut struct {
	Target string
}

// Paste materializes the pending source in the working directory.
type Paste struct{}

// Delete removes Target, recursively for directories.
type Delete struct {
	Target string
}

// Rename renames Target to NewName inside the working directory.
type Rename struct {
	Target  string
	NewName string
}

// Kind selects what Create makes.
type Kind string

const (
	KindDir  Kind = "d"
	KindFile Kind = "f"
)

// Create makes an empty directory or regular file called Name.
type Create struct {
	Kind Kind
	Name string
}

// Edit sets the permission bits of Target to Mask.
type Edit struct {
	Target string
	Mask   perm.Mask
}

func (Copy) Op() Op   { return OpCopy }
func (Cut) Op() Op    { return OpCut }
func (Paste) Op() Op  { return OpPaste }
func (Delete) Op() Op { return OpDelete }
func (Rename) Op() Op { return OpRename }
func (Create) Op() Op { return OpCreate }
func (Edit) Op() Op   { return OpEdit }
