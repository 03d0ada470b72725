package session

// Outcome is how a finished Session hands control back to its caller.
type Outcome int

const (
	// ReturnToURLPrompt is returned when the playlist runs out of items or the user asks to go back.
	ReturnToURLPrompt Outcome = iota
	// Terminate is returned on an explicit quit, and ends the program.
	Terminate
)

func (o Outcome) String() string {
	switch o {
	case ReturnToURLPrompt:
		return "return-to-url-prompt"
	case Terminate:
		return "terminate"
	default:
		return "unknown"
	}
}
