package lua

import (
	glua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// registerAPI exposes the tictac table to scripts.
func (e *Engine) registerAPI() {
	e.apiTable = e.L.NewTable()
	e.L.SetGlobal("tictac", e.apiTable)

	// tictac.log(text): Writes to the debug log
	e.L.SetField(e.apiTable, "log", e.L.NewFunction(func(L *glua.LState) int {
		e.logger.Debug("bot", zap.String("msg", L.CheckString(1)))
		return 0
	}))

	// tictac.empty(cells): Returns the 0-based positions still open
	e.L.SetField(e.apiTable, "empty", e.L.NewFunction(func(L *glua.LState) int {
		cells := L.CheckTable(1)
		open := L.NewTable()
		for i := 1; i <= cells.Len(); i++ {
			if cells.RawGetInt(i).String() == " " {
				open.Append(glua.LNumber(i - 1))
			}
		}
		L.Push(open)
		return 1
	}))
}
