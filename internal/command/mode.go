package command

// Mode is what the command line shows after the last keystroke or command.
type Mode int

const (
	// Normal means no command is being typed and the last one succeeded.
	Normal Mode = iota
	// Editing means a command is being typed.
	Editing
	// Error means the last command was rejected or failed.
	Error
)

func (m Mode) String() string {
	switch m {
	case Normal:
		return "normal"
	case Editing:
		return "editing"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}
