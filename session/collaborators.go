package session

import (
	"github.com/drake/tictac/board"
	"github.com/drake/tictac/protocol"
)

// Notice classifies a status line so the display can style it.
type Notice int

const (
	NoticeInfo Notice = iota
	NoticeWaiting
	NoticeInvalid
	NoticeWin
	NoticeLose
	NoticeDraw
)

// Display is the terminal output the session writes to.
type Display interface {
	Render(text string)
	RenderNotice(kind Notice, text string)
	RenderBoard(b board.Board)
}

// Prompter supplies the local player's move: 0-8 for a position, 9 to ask
// the server for the active player count. Implementations validate input
// themselves and never touch the connection.
type Prompter interface {
	PromptMove(b board.Board, self protocol.Player) (int, error)
}
