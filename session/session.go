// Package session drives one game against the server: it reads the player
// id, holds until the game starts, then dispatches messages until an
// outcome arrives.
package session

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/drake/tictac/board"
	"github.com/drake/tictac/network"
	"github.com/drake/tictac/protocol"
)

// ErrBadIdentity is returned when the server assigns an id other than 0 or 1.
var ErrBadIdentity = errors.New("server assigned an invalid player id")

// MaxMove is the largest value a prompter may return. It asks for the
// active player count rather than naming a position.
const MaxMove = 9

// Config holds the session's collaborators.
type Config struct {
	Display  Display
	Prompter Prompter
	Logger   *zap.Logger // Optional
}

// Session owns the connection and the client's view of the game.
type Session struct {
	conn     *network.Conn
	display  Display
	prompter Prompter
	logger   *zap.Logger

	state   State
	player  protocol.Player
	board   board.Board
	outcome Outcome
}

// New creates a session on an established connection. The session takes
// ownership of conn and closes it when Run returns.
func New(conn *network.Conn, cfg Config) *Session {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		conn:     conn,
		display:  cfg.Display,
		prompter: cfg.Prompter,
		logger:   logger,
		state:    StateConnecting,
		board:    board.New(),
	}
}

// State returns the current protocol state.
func (s *Session) State() State { return s.state }

// Player returns the identity assigned by the server.
func (s *Session) Player() protocol.Player { return s.player }

// Board returns a copy of the current board.
func (s *Session) Board() board.Board { return s.board }

// Outcome returns the game result, or OutcomeNone while the game runs.
func (s *Session) Outcome() Outcome { return s.outcome }

// Run plays the whole game. The connection is closed exactly once before
// Run returns, whether the game finished or failed.
func (s *Session) Run() (Outcome, error) {
	defer s.close()

	if err := s.Handshake(); err != nil {
		return OutcomeNone, err
	}

	for {
		done, err := s.Step()
		if err != nil {
			return OutcomeNone, err
		}
		if done {
			break
		}
	}

	s.display.Render("Game over.")
	return s.outcome, nil
}

// Handshake reads the player id and waits for the start signal.
func (s *Session) Handshake() error {
	s.state = StateAwaitIdentity
	id, err := s.conn.ReadDigit()
	if err != nil {
		return fmt.Errorf("reading player id: %w", err)
	}
	player := protocol.Player(id)
	if !player.Valid() {
		return fmt.Errorf("%w: %d", ErrBadIdentity, id)
	}
	s.player = player
	s.logger.Debug("client id assigned", zap.Int("id", id))

	s.display.Render("Tic-Tac-Toe\n------------")

	s.state = StateAwaitStart
	for {
		tag, err := s.conn.ReadTag()
		if err != nil {
			return fmt.Errorf("waiting for game start: %w", err)
		}
		if tag == protocol.TagStart {
			break
		}
		if tag != protocol.TagHold {
			return s.unexpected(tag)
		}
		s.display.RenderNotice(NoticeWaiting, "Waiting for a second player...")
	}

	s.state = StateActive
	s.display.RenderNotice(NoticeInfo, "Game on!")
	s.display.RenderNotice(NoticeInfo, fmt.Sprintf("You are %c's", s.player.Symbol()))
	s.display.RenderBoard(s.board)
	return nil
}

// Step reads one message during play and acts on it. done is true once an
// outcome has been received.
func (s *Session) Step() (done bool, err error) {
	if s.state != StateActive {
		return false, fmt.Errorf("step while %s", s.state)
	}

	tag, err := s.conn.ReadTag()
	if err != nil {
		return false, err
	}

	switch tag {
	case protocol.TagTurn:
		return false, s.takeTurn()

	case protocol.TagInvalid:
		// The server follows INV with TRN.
		s.display.RenderNotice(NoticeInvalid, "That position has already been played. Try again.")

	case protocol.TagCount:
		// The server follows CNT with TRN.
		n, err := s.conn.ReadDigit()
		if err != nil {
			return false, fmt.Errorf("reading player count: %w", err)
		}
		s.display.RenderNotice(NoticeInfo, fmt.Sprintf("There are currently %d active players.", n))

	case protocol.TagUpdate:
		return false, s.applyUpdate()

	case protocol.TagWait:
		s.display.RenderNotice(NoticeWaiting, "Waiting for other players move...")

	case protocol.TagWin:
		s.finish(OutcomeWin, NoticeWin)
		return true, nil

	case protocol.TagLose:
		s.finish(OutcomeLose, NoticeLose)
		return true, nil

	case protocol.TagDraw:
		s.finish(OutcomeDraw, NoticeDraw)
		return true, nil

	case protocol.TagHold, protocol.TagStart:
		return false, s.unexpected(tag)

	default:
		return false, s.unexpected(tag)
	}
	return false, nil
}

func (s *Session) takeTurn() error {
	s.display.Render("Your move...")
	move, err := s.prompter.PromptMove(s.board, s.player)
	if err != nil {
		return fmt.Errorf("prompting for move: %w", err)
	}
	if move < 0 || move > MaxMove {
		return fmt.Errorf("prompter returned move %d outside 0-%d", move, MaxMove)
	}
	return s.conn.WriteDigit(move)
}

func (s *Session) applyUpdate() error {
	id, err := s.conn.ReadDigit()
	if err != nil {
		return fmt.Errorf("reading update player: %w", err)
	}
	pos, err := s.conn.ReadDigit()
	if err != nil {
		return fmt.Errorf("reading update position: %w", err)
	}

	s.board.Apply(pos, protocol.Player(id))
	s.logger.Debug("board updated", zap.Int("player", id), zap.Int("position", pos))
	s.display.RenderBoard(s.board)
	return nil
}

func (s *Session) finish(outcome Outcome, kind Notice) {
	s.outcome = outcome
	s.state = StateTerminal
	s.display.RenderNotice(kind, outcome.Message())
}

func (s *Session) unexpected(tag protocol.Tag) error {
	return &protocol.UnknownMessageError{Raw: tag.String(), Phase: s.state.String()}
}

func (s *Session) close() {
	if err := s.conn.Close(); err != nil {
		s.logger.Debug("closing connection", zap.Error(err))
	}

	st := s.conn.Stats()
	s.logger.Debug("session ended",
		zap.Stringer("state", s.state),
		zap.Stringer("outcome", s.outcome),
		zap.Uint64("bytes_read", st.BytesRead),
		zap.Uint64("bytes_written", st.BytesWritten),
		zap.Uint64("tags", st.TagsRead),
		zap.Uint64("digits_read", st.DigitsRead),
		zap.Uint64("digits_sent", st.DigitsSent),
	)
}
