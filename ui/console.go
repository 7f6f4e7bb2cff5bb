package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/drake/tictac/board"
	"github.com/drake/tictac/session"
	"github.com/drake/tictac/ui/style"
)

var _ session.Display = (*Console)(nil)

// Console implements session.Display on a plain output stream.
// Styling is applied only when color is enabled.
type Console struct {
	out    io.Writer
	color  bool
	styles style.Styles
}

// NewConsole creates a display writing to out.
func NewConsole(out io.Writer, color bool) *Console {
	return &Console{
		out:    out,
		color:  color,
		styles: style.DefaultStyles(lipgloss.NewRenderer(out)),
	}
}

// Render outputs a line of text.
func (c *Console) Render(text string) {
	fmt.Fprintln(c.out, text)
}

// RenderNotice outputs a status line styled by kind.
func (c *Console) RenderNotice(kind session.Notice, text string) {
	if c.color {
		text = c.noticeStyle(kind).Render(text)
	}
	fmt.Fprintln(c.out, text)
}

// RenderBoard draws the grid.
func (c *Console) RenderBoard(b board.Board) {
	if !c.color {
		fmt.Fprintln(c.out, b.Render())
		return
	}

	grid := b.RenderWith(func(cell board.Cell) string {
		switch cell {
		case board.X:
			return c.styles.MarkX.Render(cell.String())
		case board.O:
			return c.styles.MarkO.Render(cell.String())
		default:
			return cell.String()
		}
	})

	// Dim the separators but leave the marks alone.
	lines := strings.Split(grid, "\n")
	for i, line := range lines {
		if i%2 == 1 {
			lines[i] = c.styles.Grid.Render(line)
		}
	}
	fmt.Fprintln(c.out, strings.Join(lines, "\n"))
}

func (c *Console) noticeStyle(kind session.Notice) lipgloss.Style {
	switch kind {
	case session.NoticeWaiting:
		return c.styles.Waiting
	case session.NoticeInvalid:
		return c.styles.Invalid
	case session.NoticeWin:
		return c.styles.Win
	case session.NoticeLose:
		return c.styles.Lose
	case session.NoticeDraw:
		return c.styles.Draw
	default:
		return c.styles.Info
	}
}
