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

package cpu

import (
	"context"
	"errors"
	"fmt"

	"github.com/jetsetilly/gopher6502/curated"
	"github.com/jetsetilly/gopher6502/hardware/cpu/execution"
	"github.com/jetsetilly/gopher6502/hardware/cpu/registers"
	"github.com/jetsetilly/gopher6502/hardware/cpu/signals"
	"github.com/jetsetilly/gopher6502/hardware/memory/cpubus"
)

// ResetMidInstruction is returned by bus accesses when RESET has been
// asserted. It is consumed by Step() and never returned to the caller.
var ResetMidInstruction = errors.New("cpu: reset mid instruction")

// UnimplementedInstruction is returned by Step() and Run() when the opcode
// fetched has no definition. It is not possible to continue after this error.
const UnimplementedInstruction = "cpu: unimplemented instruction (%#02x) at (%#04x)"

// ResetState is the state of the reset sequencer.
type ResetState int

// List of valid ResetState values.
const (
	Running ResetState = iota
	ResetActive
	ResetVectoring
)

func (s ResetState) String() string {
	switch s {
	case Running:
		return "running"
	case ResetActive:
		return "reset active"
	case ResetVectoring:
		return "reset vectoring"
	}
	return "unknown reset state"
}

// the effect of SEI and CLI is delayed by one instruction.
type delayedOp int

const (
	noDelayedOp delayedOp = iota
	delayedSEI
	delayedCLI
)

// CPU implements the 6502. Register logic is implemented by the types in
// the registers sub-package.
type CPU struct {
	PC     registers.ProgramCounter
	A      registers.Register
	X      registers.Register
	Y      registers.Register
	SP     registers.StackPointer
	Status registers.StatusRegister

	ResetState ResetState

	// the most recent instruction. the Final field is false if the
	// instruction was abandoned because of a reset
	LastResult execution.Result

	// every bus cycle since power on, including stalled cycles
	TotalCycles uint64

	mem   cpubus.Bus
	lines *signals.Lines

	delayed delayedOp

	// raised immediately before an approximated bus access and lowered
	// immediately after it
	incompatible bool
}

// NewCPU is the preferred method of initialisation for the CPU structure.
// The CPU is in its power on state.
func NewCPU(mem cpubus.Bus) *CPU {
	mc := &CPU{
		mem:   mem,
		lines: signals.NewLines(),
	}
	mc.PowerOn()
	return mc
}

// Plumb a new Bus into the CPU.
func (mc *CPU) Plumb(mem cpubus.Bus) {
	mc.mem = mem
}

// PowerOn puts the CPU into the state it has when power is first applied.
// Registers are zero except the status register, which has every bit set.
// The signal lines are not affected.
func (mc *CPU) PowerOn() {
	mc.PC = registers.NewProgramCounter(0)
	mc.A = registers.NewRegister(0, "A")
	mc.X = registers.NewRegister(0, "X")
	mc.Y = registers.NewRegister(0, "Y")
	mc.SP = registers.NewStackPointer(0)
	mc.Status = registers.NewStatusRegister()
	mc.ResetState = Running
	mc.LastResult.Reset()
	mc.TotalCycles = 0
	mc.delayed = noDelayedOp
	mc.incompatible = false
}

// Snapshot creates a copy of the CPU in its current state. The copy is not
// connected to a bus or to the signal lines.
func (mc *CPU) Snapshot() *CPU {
	n := *mc
	n.mem = nil
	n.lines = nil
	return &n
}

func (mc *CPU) String() string {
	return fmt.Sprintf("%s=%s %s %s %s %s %s=%s",
		mc.PC.Label(), mc.PC, mc.A, mc.X, mc.Y, mc.SP, mc.Status.Label(), mc.Status)
}

// State is a copy of the CPU registers suitable for sharing with another
// goroutine.
type State struct {
	PC          uint16
	A           uint8
	X           uint8
	Y           uint8
	SP          uint8
	Status      uint8
	ResetState  ResetState
	TotalCycles uint64
	LastResult  string
}

// State returns a copy of the CPU registers. Must be called from the same
// goroutine as Step() or Run().
func (mc *CPU) State() State {
	return State{
		PC:          mc.PC.Address(),
		A:           mc.A.Value(),
		X:           mc.X.Value(),
		Y:           mc.Y.Value(),
		SP:          mc.SP.Value(),
		Status:      mc.Status.Value(),
		ResetState:  mc.ResetState,
		TotalCycles: mc.TotalCycles,
		LastResult:  mc.LastResult.String(),
	}
}

// SetReset sets the level of the RESET line.
func (mc *CPU) SetReset(state bool) {
	mc.lines.Set(signals.Reset, state)
}

// SetIRQ sets the level of the IRQ line.
func (mc *CPU) SetIRQ(state bool) {
	mc.lines.Set(signals.IRQ, state)
}

// SetNMI sets the level of the NMI line.
func (mc *CPU) SetNMI(state bool) {
	mc.lines.Set(signals.NMI, state)
}

// SetReady sets the level of the READY line. The CPU stalls while the line
// is low.
func (mc *CPU) SetReady(state bool) {
	mc.lines.Set(signals.Ready, state)
}

// SetSetOverflow sets the level of the SO line.
func (mc *CPU) SetSetOverflow(state bool) {
	mc.lines.Set(signals.SO, state)
}

// SetLine sets the level of any line.
func (mc *CPU) SetLine(line signals.Line, state bool) {
	mc.lines.Set(line, state)
}

// Line returns the current level of a line.
func (mc *CPU) Line(line signals.Line) bool {
	return mc.lines.Get(line)
}

// SetLineObserver installs a function that is called whenever a line
// changes.
func (mc *CPU) SetLineObserver(observer signals.Observer) {
	mc.lines.SetObserver(observer)
}

// IsIncompatible returns true if the current bus access is known to differ
// from the real chip. It is only meaningful when called from inside a call
// to the Bus.
func (mc *CPU) IsIncompatible() bool {
	return mc.incompatible
}

// Step runs the reset sequence if a reset is pending or otherwise executes
// one instruction. An instruction abandoned because of a reset is not an
// error.
func (mc *CPU) Step() error {
	var err error

	if mc.lines.ResetPending() {
		err = mc.resetSequence()
	} else {
		err = mc.executeInstruction()
	}

	if errors.Is(err, ResetMidInstruction) {
		return nil
	}

	return err
}

// Run calls Step() until an error occurs or the context is cancelled. The
// hook function, if not nil, is called after every step. An error from the
// hook stops the CPU and is returned.
func (mc *CPU) Run(ctx context.Context, hook func() error) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := mc.Step(); err != nil {
			return err
		}

		if hook != nil {
			if err := hook(); err != nil {
				return err
			}
		}
	}
}

// executeInstruction services any pending interrupt and then fetches and
// executes one instruction.
func (mc *CPU) executeInstruction() error {
	mc.LastResult.Reset()

	if mc.lines.Take(signals.NMI) {
		mc.LastResult.Interrupt = execution.NMI
		if err := mc.interrupt(cpubus.NMI); err != nil {
			return err
		}
	} else if mc.lines.Get(signals.IRQ) && !mc.Status.InterruptDisable {
		mc.LastResult.Interrupt = execution.IRQ
		if err := mc.interrupt(cpubus.IRQ); err != nil {
			return err
		}
	}

	mc.LastResult.InterruptCycles = mc.LastResult.Cycles
	mc.LastResult.Cycles = 0

	switch mc.delayed {
	case delayedSEI:
		mc.Status.InterruptDisable = true
	case delayedCLI:
		mc.Status.InterruptDisable = false
	}
	mc.delayed = noDelayedOp

	mc.LastResult.Address = mc.PC.Address()

	// +1 cycle
	opcode, err := mc.read(mc.PC.Address(), true)
	if err != nil {
		return err
	}
	mc.PC.Increment()
	mc.LastResult.ByteCount = 1

	d := dispatch[opcode]
	if d.defn == nil {
		return curated.Errorf(UnimplementedInstruction, opcode, mc.LastResult.Address)
	}
	mc.LastResult.Defn = d.defn

	address, err := d.mode(mc)
	if err != nil {
		return err
	}

	if err := d.op(mc, address); err != nil {
		return err
	}

	mc.LastResult.Final = true

	return nil
}
