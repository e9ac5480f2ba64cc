// This file is part of Gopher6502.
//
// Gopher6502 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher6502 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher6502.  If not, see <https://www.gnu.org/licenses/>.
// Package hostscript allows a Lua script to watch the accesses made by the
// CPU and to change the CPU's input lines in response. The script is attached
// to the harness as an observer.
//
// The script can define the following functions, which are called after every
// access:
//
//	on_read(cycle, address, data, sync)
//	on_write(cycle, address, data)
//
// The following functions are available to the script:
//
//	reset(bool), irq(bool), nmi(bool), ready(bool), so(bool)
//	set_line(name, bool)
//	incompatible() -> bool
//	peek(address) -> number
//	poke(address, value)
//	log(string)
//
// Calling error() from a hook stops the CPU.
package hostscript

import (
	"fmt"
	"io"

	lua "github.com/yuin/gopher-lua"

	"github.com/jetsetilly/gopher6502/curated"
	"github.com/jetsetilly/gopher6502/hardware/cpu/signals"
	"github.com/jetsetilly/gopher6502/harness"
	"github.com/jetsetilly/gopher6502/logger"
)

// Sentinel error patterns.
const (
	ScriptError = "hostscript: %v"
	HookError   = "hostscript: %s: %v"
)

// Memory is the part of the harness the script can look at.
type Memory interface {
	Peek(address uint16, length int) []uint8
	Poke(address uint16, data uint8)
}

// Script is a running Lua script.
type Script struct {
	state *lua.LState
	cpu   harness.Signaller
	mem   Memory

	onRead  *lua.LFunction
	onWrite *lua.LFunction
}

// NewScript is the preferred method of initialisation for the Script type.
// The script source is read and run once. Hook functions defined by the
// script are looked up afterwards.
func NewScript(src io.Reader, name string, cpu harness.Signaller, mem Memory) (*Script, error) {
	scr := &Script{
		state: lua.NewState(),
		cpu:   cpu,
		mem:   mem,
	}

	for global, line := range map[string]signals.Line{
		"reset": signals.Reset,
		"irq":   signals.IRQ,
		"nmi":   signals.NMI,
		"ready": signals.Ready,
		"so":    signals.SO,
	} {
		scr.state.SetGlobal(global, scr.state.NewFunction(scr.lineSetter(line)))
	}
	scr.state.SetGlobal("set_line", scr.state.NewFunction(scr.setLine))
	scr.state.SetGlobal("incompatible", scr.state.NewFunction(scr.incompatible))
	scr.state.SetGlobal("peek", scr.state.NewFunction(scr.peek))
	scr.state.SetGlobal("poke", scr.state.NewFunction(scr.poke))
	scr.state.SetGlobal("log", scr.state.NewFunction(scr.log))

	fn, err := scr.state.Load(src, name)
	if err != nil {
		scr.state.Close()
		return nil, curated.Errorf(ScriptError, err)
	}
	scr.state.Push(fn)
	if err := scr.state.PCall(0, lua.MultRet, nil); err != nil {
		scr.state.Close()
		return nil, curated.Errorf(ScriptError, err)
	}

	scr.onRead = scr.hook("on_read")
	scr.onWrite = scr.hook("on_write")

	return scr, nil
}

// Close releases the Lua state.
func (scr *Script) Close() {
	scr.state.Close()
}

func (scr *Script) hook(name string) *lua.LFunction {
	if fn, ok := scr.state.GetGlobal(name).(*lua.LFunction); ok {
		return fn
	}
	return nil
}

// Observe implements the harness.Observer interface.
func (scr *Script) Observe(acc harness.Access) error {
	if acc.Write {
		if scr.onWrite == nil {
			return nil
		}
		return scr.call("on_write", scr.onWrite,
			lua.LNumber(acc.Cycle), lua.LNumber(acc.Address), lua.LNumber(acc.Data))
	}

	if scr.onRead == nil {
		return nil
	}
	return scr.call("on_read", scr.onRead,
		lua.LNumber(acc.Cycle), lua.LNumber(acc.Address), lua.LNumber(acc.Data), lua.LBool(acc.Sync))
}

func (scr *Script) call(name string, fn *lua.LFunction, args ...lua.LValue) error {
	err := scr.state.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, args...)
	if err != nil {
		return curated.Errorf(HookError, name, err)
	}
	return nil
}

func (scr *Script) lineSetter(line signals.Line) lua.LGFunction {
	return func(L *lua.LState) int {
		scr.cpu.SetLine(line, L.CheckBool(1))
		return 0
	}
}

func (scr *Script) setLine(L *lua.LState) int {
	line, err := signals.ParseLine(L.CheckString(1))
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	scr.cpu.SetLine(line, L.CheckBool(2))
	return 0
}

func (scr *Script) incompatible(L *lua.LState) int {
	L.Push(lua.LBool(scr.cpu.IsIncompatible()))
	return 1
}

func (scr *Script) address(L *lua.LState, n int) uint16 {
	a := L.CheckInt(n)
	if a < 0 || a > 0xffff {
		L.ArgError(n, fmt.Sprintf("address out of range (%#x)", a))
	}
	return uint16(a)
}

func (scr *Script) peek(L *lua.LState) int {
	d := scr.mem.Peek(scr.address(L, 1), 1)
	L.Push(lua.LNumber(d[0]))
	return 1
}

func (scr *Script) poke(L *lua.LState) int {
	address := scr.address(L, 1)
	v := L.CheckInt(2)
	if v < 0 || v > 0xff {
		L.ArgError(2, fmt.Sprintf("value out of range (%#x)", v))
	}
	scr.mem.Poke(address, uint8(v))
	return 0
}

func (scr *Script) log(L *lua.LState) int {
	logger.Log(logger.Allow, "script", L.CheckString(1))
	return 0
}
