// Package lua runs scripted players. A script defines
//
//	function choose_move(cells, symbol, avoid) ... end
//
// where cells is a 1-based table of nine strings (" ", "O" or "X"), symbol
// is the bot's own mark and avoid lists moves the server already rejected
// on this board. It returns 0-8 for a position or 9 to ask for the player
// count.
package lua

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	glua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/drake/tictac/board"
	"github.com/drake/tictac/protocol"
)

// ChooseMoveFunc is the global a bot script must define.
const ChooseMoveFunc = "choose_move"

// ErrNoChooseMove is returned when the loaded script has no choose_move.
var ErrNoChooseMove = errors.New("script does not define " + ChooseMoveFunc)

// Engine wraps gopher-lua and manages the VM lifecycle.
type Engine struct {
	L      *glua.LState
	logger *zap.Logger

	// Cached table reference
	apiTable *glua.LTable
}

// NewEngine creates an Engine with a fresh VM and the tictac API
// registered. A nil logger discards script logs.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		L:      glua.NewState(),
		logger: logger,
	}
	e.registerAPI()
	return e
}

// Close cleans up the Lua state.
func (e *Engine) Close() {
	if e.L != nil {
		e.L.Close()
		e.L = nil
	}
}

// DoString executes a raw string of Lua code.
// The name parameter is used for stack traces.
func (e *Engine) DoString(name, code string) error {
	fn, err := e.L.Load(strings.NewReader(code), name)
	if err != nil {
		return err
	}
	e.L.Push(fn)
	return e.L.PCall(0, 0, nil)
}

// DoFile executes a Lua file from the filesystem.
// It temporarily adjusts package.path to allow local requires.
func (e *Engine) DoFile(path string) error {
	path = expandTilde(path)

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(absPath)

	// Temporarily prepend script's directory to package.path
	pkg := e.L.GetGlobal("package").(*glua.LTable)
	oldPath := e.L.GetField(pkg, "path").String()
	e.L.SetField(pkg, "path", glua.LString(dir+"/?.lua;"+oldPath))

	err = e.L.DoFile(absPath)

	// Restore original path
	e.L.SetField(pkg, "path", glua.LString(oldPath))

	return err
}

// ChooseMove calls the script's choose_move. A return value that is not a
// whole number is reported as -1 so the caller treats it as invalid.
func (e *Engine) ChooseMove(b board.Board, self protocol.Player, avoid []int) (int, error) {
	fn := e.L.GetGlobal(ChooseMoveFunc)
	if fn.Type() != glua.LTFunction {
		return 0, ErrNoChooseMove
	}

	if err := e.L.CallByParam(glua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, cellsTable(e.L, b), glua.LString(self.String()), intTable(e.L, avoid)); err != nil {
		return 0, fmt.Errorf("%s: %w", ChooseMoveFunc, err)
	}

	ret := e.L.Get(-1)
	e.L.Pop(1)

	n, ok := ret.(glua.LNumber)
	if !ok || float64(n) != math.Trunc(float64(n)) {
		return -1, nil
	}
	return int(n), nil
}

func cellsTable(L *glua.LState, b board.Board) *glua.LTable {
	t := L.NewTable()
	for _, c := range b.Positions() {
		t.Append(glua.LString(c.String()))
	}
	return t
}

func intTable(L *glua.LState, values []int) *glua.LTable {
	t := L.NewTable()
	for _, v := range values {
		t.Append(glua.LNumber(v))
	}
	return t
}

func expandTilde(path string) string {
	if len(path) > 0 && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
