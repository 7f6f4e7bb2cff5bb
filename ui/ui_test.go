package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drake/tictac/board"
	"github.com/drake/tictac/protocol"
	"github.com/drake/tictac/session"
	"github.com/drake/tictac/ui/style"
)

func TestParseMove(t *testing.T) {
	for v := 0; v <= 9; v++ {
		move, ok := ParseMove(string(rune('0' + v)))
		require.True(t, ok)
		assert.Equal(t, v, move)
	}

	move, ok := ParseMove("  7 \n")
	assert.True(t, ok)
	assert.Equal(t, 7, move)

	for _, bad := range []string{"", " ", "a", "x", "-1", "10", "45", "/", ":", "4 5"} {
		_, ok := ParseMove(bad)
		assert.False(t, ok, "input %q", bad)
	}
}

func TestConsolePrompterRePrompts(t *testing.T) {
	var out bytes.Buffer
	p := NewConsolePrompter(strings.NewReader("a\n12\n\n4\n"), &out)

	move, err := p.PromptMove(board.New(), protocol.PlayerO)
	require.NoError(t, err)
	assert.Equal(t, 4, move)
	assert.Equal(t, 4, strings.Count(out.String(), MovePrompt))
	assert.Equal(t, 3, strings.Count(out.String(), InvalidInput))
}

func TestConsolePrompterSequentialMoves(t *testing.T) {
	var out bytes.Buffer
	p := NewConsolePrompter(strings.NewReader("3\n9\n"), &out)

	move, err := p.PromptMove(board.New(), protocol.PlayerX)
	require.NoError(t, err)
	assert.Equal(t, 3, move)

	move, err = p.PromptMove(board.New(), protocol.PlayerX)
	require.NoError(t, err)
	assert.Equal(t, 9, move)

	_, err = p.PromptMove(board.New(), protocol.PlayerX)
	assert.ErrorIs(t, err, ErrInputClosed)
}

func TestConsolePrompterReadError(t *testing.T) {
	failure := errors.New("tty gone")
	p := NewConsolePrompter(iotest.ErrReader(failure), &bytes.Buffer{})

	_, err := p.PromptMove(board.New(), protocol.PlayerO)
	assert.ErrorIs(t, err, failure)
}

func TestConsolePlainOutput(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out, false)

	b := board.New()
	b.Apply(4, protocol.PlayerX)

	c.Render("Tic-Tac-Toe")
	c.RenderNotice(session.NoticeWin, "You win!")
	c.RenderBoard(b)

	want := strings.Join([]string{
		"Tic-Tac-Toe",
		"You win!",
		"   |   |   ",
		"-----------",
		"   | X |   ",
		"-----------",
		"   |   |   ",
		"",
	}, "\n")
	assert.Equal(t, want, out.String())
}

func TestConsoleColorOutputKeepsText(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out, true)

	b := board.New()
	b.Apply(0, protocol.PlayerO)
	c.RenderNotice(session.NoticeLose, "You lost.")
	c.RenderBoard(b)

	assert.Contains(t, out.String(), "You lost.")
	assert.Contains(t, out.String(), "O")
	assert.Equal(t, 6, strings.Count(out.String(), "\n"))
}

func typeKeys(m moveModel, s string) moveModel {
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(moveModel)
	}
	return m
}

func press(m moveModel, k tea.KeyType) (moveModel, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: k})
	return next.(moveModel), cmd
}

func testStyles() style.Styles {
	return style.DefaultStyles(lipgloss.NewRenderer(&bytes.Buffer{}))
}

func TestMoveModelAcceptsDigit(t *testing.T) {
	m := typeKeys(newMoveModel(testStyles(), protocol.PlayerX), "5")
	m, cmd := press(m, tea.KeyEnter)

	assert.True(t, m.done)
	assert.Equal(t, 5, m.move)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, m.View())
}

func TestMoveModelRejectsNonDigit(t *testing.T) {
	m := typeKeys(newMoveModel(testStyles(), protocol.PlayerX), "q")
	m, cmd := press(m, tea.KeyEnter)

	assert.False(t, m.done)
	assert.Nil(t, cmd)
	assert.Equal(t, InvalidInput, m.errText)
	assert.Empty(t, m.input.Value())
	assert.Contains(t, m.View(), InvalidInput)

	m = typeKeys(m, "8")
	m, _ = press(m, tea.KeyEnter)
	assert.True(t, m.done)
	assert.Equal(t, 8, m.move)
}

func TestMoveModelAbort(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		m, cmd := press(newMoveModel(testStyles(), protocol.PlayerO), k)
		assert.True(t, m.aborted)
		assert.False(t, m.done)
		require.NotNil(t, cmd)
	}
}
