package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/siomorehead/Fighter-Robot/internal/game/dice"
)

// RegisterModules installs the engine table into L:
//
//	engine.log.debug/info/warn(msg)
//	engine.dice.roll(expr)  -> total, or nil on a bad expression
//	engine.robot(id)        -> {id, health, col, row}, or nil
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()

	log := L.NewTable()
	L.SetField(log, "debug", L.NewFunction(m.luaLog(zapcore.DebugLevel)))
	L.SetField(log, "info", L.NewFunction(m.luaLog(zapcore.InfoLevel)))
	L.SetField(log, "warn", L.NewFunction(m.luaLog(zapcore.WarnLevel)))
	L.SetField(engine, "log", log)

	d := L.NewTable()
	L.SetField(d, "roll", L.NewFunction(m.luaRoll))
	L.SetField(engine, "dice", d)

	L.SetField(engine, "robot", L.NewFunction(m.luaRobot))

	L.SetGlobal("engine", engine)
}

func (m *Manager) luaLog(level zapcore.Level) lua.LGFunction {
	return func(L *lua.LState) int {
		msg := L.CheckString(1)
		if ce := m.logger.Check(level, msg); ce != nil {
			ce.Write(zap.String("source", "lua"))
		}
		return 0
	}
}

func (m *Manager) luaRoll(L *lua.LState) int {
	raw := L.CheckString(1)
	expr, err := dice.Parse(raw)
	if err != nil {
		m.logger.Warn("scripting: bad dice expression", zap.String("expr", raw), zap.Error(err))
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(m.roller.Roll(expr).Total()))
	return 1
}

func (m *Manager) luaRobot(L *lua.LState) int {
	id := L.CheckInt(1)
	if m.GetRobot == nil {
		L.Push(lua.LNil)
		return 1
	}
	info := m.GetRobot(id)
	if info == nil {
		L.Push(lua.LNil)
		return 1
	}
	t := L.NewTable()
	L.SetField(t, "id", lua.LNumber(info.ID))
	L.SetField(t, "health", lua.LNumber(info.Health))
	L.SetField(t, "col", lua.LNumber(info.Col))
	L.SetField(t, "row", lua.LNumber(info.Row))
	L.SetField(t, "variant", lua.LString(info.Variant))
	L.Push(t)
	return 1
}
