package command

import (
	"strings"

	"termfm/internal/errors"
	"termfm/internal/perm"
)

// rule is the argument shape of one operation. build receives the selected
// name (empty for create and paste) and the tokens after the operation.
type rule struct {
	argc  int
	build func(selected string, args []string) (Command, error)
}

var rules = map[Op]rule{
	OpCopy: {1, func(sel string, _ []string) (Command, error) {
		return Copy{Target: sel}, nil
	}},
	OpCut: {1, func(sel string, _ []string) (Command, error) {
		return Cut{Target: sel}, nil
	}},
	OpPaste: {1, func(string, []string) (Command, error) {
		return Paste{}, nil
	}},
	OpDelete: {1, func(sel string, _ []string) (Command, error) {
		return Delete{Target: sel}, nil
	}},
	OpRename: {2, func(sel string, args []string) (Command, error) {
		return Rename{Target: sel, NewName: args[0]}, nil
	}},
	OpCreate: {3, func(_ string, args []string) (Command, error) {
		kind := Kind(args[0])
		if kind != KindDir && kind != KindFile {
			return nil, errors.NewParseError("create kind must be d or f", rune(OpCreate), errors.InvalidArgument)
		}
		return Create{Kind: kind, Name: args[1]}, nil
	}},
	OpEdit: {2, func(sel string, args []string) (Command, error) {
		mask, err := perm.Parse(args[0])
		if err != nil {
			return nil, err
		}
		return Edit{Target: sel, Mask: mask}, nil
	}},
}

// Parse turns command text into a Command. selected is the highlighted
// entry name and ok reports whether anything is highlighted at all.
//
// Checks run in a fixed order: the shape of the first token, then the
// selection requirement, then the operation lookup, then the argument
// shape. Nothing here touches the filesystem.
func Parse(text string, selected string, ok bool) (Command, error) {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return nil, errors.ErrMalformedCommand
	}

	head := tokens[0]
	if len(head) != 2 || head[0] != ':' {
		return nil, errors.NewParseError("malformed command "+head, 0, errors.MalformedCommand)
	}

	op := Op(head[1])
	if !ok && op.needsSelection() {
		return nil, errors.NewParseError("no file selected", rune(op), errors.MissingSelection)
	}

	r, found := rules[op]
	if !found {
		return nil, errors.NewParseError("operation not found", rune(op), errors.OperationNotFound)
	}
	if len(tokens) != r.argc {
		return nil, errors.NewParseError("wrong argument count", rune(op), errors.WrongArgumentCount)
	}

	if !op.needsSelection() {
		selected = ""
	}
	return r.build(selected, tokens[1:])
}
