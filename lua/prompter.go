package lua

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/drake/tictac/board"
	"github.com/drake/tictac/protocol"
	"github.com/drake/tictac/session"
)

// MaxAttempts bounds how often a script may return an unusable move
// before the prompt fails.
const MaxAttempts = 3

// ErrBadMove is returned when the script keeps returning unusable moves.
var ErrBadMove = errors.New("bot returned no valid move")

var _ session.Prompter = (*Prompter)(nil)

// Prompter plays moves chosen by a Lua script.
type Prompter struct {
	engine *Engine
	out    io.Writer
	logger *zap.Logger

	// Moves already sent on lastBoard. The server answers an occupied
	// position with INV then TRN on an unchanged board.
	lastBoard board.Board
	tried     []int
}

// NewPrompter loads the script at path. out receives a line for each move
// played and may be nil.
func NewPrompter(path string, out io.Writer, logger *zap.Logger) (*Prompter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := NewEngine(logger)
	if err := e.DoFile(path); err != nil {
		e.Close()
		return nil, fmt.Errorf("loading bot %s: %w", path, err)
	}
	return newPrompter(e, out, logger), nil
}

func newPrompter(e *Engine, out io.Writer, logger *zap.Logger) *Prompter {
	return &Prompter{
		engine:    e,
		out:       out,
		logger:    logger,
		lastBoard: board.New(),
	}
}

// PromptMove asks the script for a move.
func (p *Prompter) PromptMove(b board.Board, self protocol.Player) (int, error) {
	if b != p.lastBoard {
		p.lastBoard = b
		p.tried = nil
	}

	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		move, err := p.engine.ChooseMove(b, self, p.tried)
		if err != nil {
			return 0, err
		}
		if p.usable(move) {
			p.tried = append(p.tried, move)
			if p.out != nil {
				fmt.Fprintf(p.out, "Bot plays %d\n", move)
			}
			return move, nil
		}
		p.logger.Debug("bot returned unusable move", zap.Int("move", move), zap.Int("attempt", attempt))
	}
	return 0, fmt.Errorf("%w after %d attempts", ErrBadMove, MaxAttempts)
}

// usable rejects out of range values and positions already refused on
// this board. Asking for the player count again is allowed.
func (p *Prompter) usable(move int) bool {
	if move < 0 || move > session.MaxMove {
		return false
	}
	if move == session.MaxMove {
		return true
	}
	for _, m := range p.tried {
		if m == move {
			return false
		}
	}
	return true
}

// Close releases the Lua VM.
func (p *Prompter) Close() {
	p.engine.Close()
}
