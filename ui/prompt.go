package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/drake/tictac/board"
	"github.com/drake/tictac/protocol"
	"github.com/drake/tictac/session"
)

const (
	// MovePrompt asks for a position or the player count query.
	MovePrompt = "Enter 0-8 to make a move, or 9 for number of active players: "

	// InvalidInput is shown before re-prompting.
	InvalidInput = "Invalid input. Try again."
)

// ErrInputClosed is returned when the player's input ends before a move
// was entered.
var ErrInputClosed = errors.New("input closed")

// ParseMove accepts a single digit 0-9, ignoring surrounding whitespace.
func ParseMove(line string) (int, bool) {
	s := strings.TrimSpace(line)
	if len(s) != 1 {
		return 0, false
	}
	move := protocol.DecodeDigit(s[0])
	if move < 0 || move > session.MaxMove {
		return 0, false
	}
	return move, true
}

var _ session.Prompter = (*ConsolePrompter)(nil)

// ConsolePrompter reads moves line by line.
type ConsolePrompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewConsolePrompter reads from in and writes prompts to out.
func NewConsolePrompter(in io.Reader, out io.Writer) *ConsolePrompter {
	return &ConsolePrompter{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// PromptMove asks until a valid move is entered.
func (p *ConsolePrompter) PromptMove(board.Board, protocol.Player) (int, error) {
	for {
		fmt.Fprint(p.out, MovePrompt)
		if !p.scanner.Scan() {
			if err := p.scanner.Err(); err != nil {
				return 0, fmt.Errorf("reading move: %w", err)
			}
			return 0, ErrInputClosed
		}

		if move, ok := ParseMove(p.scanner.Text()); ok {
			fmt.Fprintln(p.out)
			return move, nil
		}
		fmt.Fprintln(p.out, "\n"+InvalidInput)
	}
}
