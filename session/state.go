package session

// State is the position of the session in the protocol.
type State int

const (
	StateConnecting    State = iota // Stream open, nothing received
	StateAwaitIdentity              // Waiting for the player id digit
	StateAwaitStart                 // Holding until the server starts the game
	StateActive                     // Game in progress
	StateTerminal                   // Outcome received
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateAwaitIdentity:
		return "waiting for identity"
	case StateAwaitStart:
		return "waiting for start"
	case StateActive:
		return "playing"
	case StateTerminal:
		return "finished"
	default:
		return "unknown"
	}
}

// Outcome is the result of a finished game for this client.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeLose
	OutcomeDraw
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeLose:
		return "lose"
	case OutcomeDraw:
		return "draw"
	default:
		return "none"
	}
}

// Message is the line shown to the player when the game ends.
func (o Outcome) Message() string {
	switch o {
	case OutcomeWin:
		return "You win!"
	case OutcomeLose:
		return "You lost."
	case OutcomeDraw:
		return "Draw."
	default:
		return ""
	}
}
