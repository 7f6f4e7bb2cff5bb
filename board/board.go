// Package board holds the client's copy of the 3x3 game grid.
package board

import (
	"strings"

	"github.com/samber/lo"

	"github.com/drake/tictac/protocol"
)

// Size is the width and height of the grid.
const Size = 3

// Cells is the number of positions on the grid.
const Cells = Size * Size

const rowSeparator = "-----------"

// Cell is the state of one grid position.
type Cell byte

const (
	Empty Cell = ' '
	O     Cell = 'O'
	X     Cell = 'X'
)

// String returns the single character shown for c.
func (c Cell) String() string {
	return string(c)
}

// CellFor returns the mark placed by player.
func CellFor(player protocol.Player) Cell {
	return Cell(player.Symbol())
}

// Board is the shared grid as reported by the server.
// The zero value is not ready for use; call New.
type Board struct {
	cells [Size][Size]Cell
}

// New returns an empty board.
func New() Board {
	var b Board
	for r := range b.cells {
		for c := range b.cells[r] {
			b.cells[r][c] = Empty
		}
	}
	return b
}

// Apply places player's mark at position (0-8, row-major).
// The server arbitrates legality; positions off the grid are ignored.
func (b *Board) Apply(position int, player protocol.Player) {
	if position < 0 || position >= Cells {
		return
	}
	b.cells[position/Size][position%Size] = CellFor(player)
}

// Cell returns the state at row, col.
func (b Board) Cell(row, col int) Cell {
	return b.cells[row][col]
}

// At returns the state at position (0-8, row-major).
func (b Board) At(position int) Cell {
	return b.cells[position/Size][position%Size]
}

// Positions returns every cell in row-major order.
func (b Board) Positions() [Cells]Cell {
	var out [Cells]Cell
	for i := range out {
		out[i] = b.At(i)
	}
	return out
}

// IsEmpty reports whether no mark has been placed yet.
func (b Board) IsEmpty() bool {
	p := b.Positions()
	return lo.EveryBy(p[:], func(c Cell) bool { return c == Empty })
}

// Render draws the grid as plain text.
func (b Board) Render() string {
	return b.RenderWith(Cell.String)
}

// RenderWith draws the grid, formatting each cell with format.
//
//	 X | O |
//	-----------
//	   | X |
//	-----------
//	 O |   | X
func (b Board) RenderWith(format func(Cell) string) string {
	rows := lo.Map(b.cells[:], func(row [Size]Cell, _ int) string {
		parts := lo.Map(row[:], func(c Cell, _ int) string { return format(c) })
		return " " + strings.Join(parts, " | ") + " "
	})
	return strings.Join(rows, "\n"+rowSeparator+"\n")
}
