package command

import (
	"termfm/internal/errors"
	"termfm/internal/log"
)

// Handler is the command line: the text being typed, the mode it is shown
// in, and the executor that typed commands run against.
type Handler struct {
	input string
	mode  Mode
	exec  *Executor
	last  error
}

// NewHandler returns a handler in Normal mode.
func NewHandler(exec *Executor) *Handler {
	return &Handler{exec: exec}
}

// Input is the command line as typed so far, including the leading colon.
func (h *Handler) Input() string { return h.input }

// Mode is the state the command line is shown in.
func (h *Handler) Mode() Mode { return h.mode }

// Executor runs parsed commands and owns the clipboard.
func (h *Handler) Executor() *Executor { return h.exec }

// Err is the error behind the current Error mode, or nil.
func (h *Handler) Err() error { return h.last }

// Begin starts a new command line.
func (h *Handler) Begin() {
	h.input = ":"
	h.mode = Editing
}

// Type appends r to the command line.
func (h *Handler) Type(r rune) {
	if h.mode != Editing {
		return
	}
	h.input += string(r)
}

// Backspace drops the last rune of the command line.
func (h *Handler) Backspace() {
	if h.mode != Editing || h.input == "" {
		return
	}
	runes := []rune(h.input)
	h.input = string(runes[:len(runes)-1])
}

// Cancel abandons the command line.
func (h *Handler) Cancel() {
	h.input = ""
	h.mode = Normal
	h.last = nil
}

// Submit runs the command line. See Exec.
func (h *Handler) Submit(selected string, ok bool) Mode {
	return h.Exec(h.input, selected, ok)
}

// Exec parses and runs text with selected as the highlighted entry; ok is
// false when nothing is highlighted. The command line is cleared and the
// resulting mode returned: Normal on success, Error otherwise.
func (h *Handler) Exec(text, selected string, ok bool) Mode {
	h.input = ""
	h.last = nil

	cmd, err := Parse(text, selected, ok)
	if err == nil {
		err = h.exec.Run(cmd)
	}
	if err != nil {
		h.last = err
		h.mode = Error
		logFailure(text, err)
		return h.mode
	}

	h.mode = Normal
	log.LogWithFields(log.F("command", text)).Debug("Command executed")
	return h.mode
}

// logFailure records a failed command. Rejected input is routine and logged
// at info; filesystem failures are warnings and anything else is an error.
func logFailure(text string, err error) {
	l := log.LogWithError(err).With(log.F("command", text), log.F("kind", errors.KindOf(err).String()))
	switch {
	case errors.IsParseError(err):
		l.Info("Command rejected")
	case errors.IsExecError(err):
		l.Warn("Command failed")
	default:
		l.Error("Command failed")
	}
}
