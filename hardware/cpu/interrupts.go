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
	"github.com/jetsetilly/gopher6502/hardware/cpu/signals"
	"github.com/jetsetilly/gopher6502/hardware/memory/cpubus"
)

// interrupt services an NMI or IRQ. the break bit is clear in the status
// value pushed to the stack.
func (mc *CPU) interrupt(vector uint16) error {
	// the opcode fetch is replaced by the interrupt sequence. the fetch still
	// happens and the SYNC line is raised as normal
	if _, err := mc.read(mc.PC.Address(), true); err != nil {
		return err
	}

	// phantom read
	if _, err := mc.read(mc.PC.Address(), false); err != nil {
		return err
	}

	return mc.vectorThroughStack(vector, mc.Status.Value()&^0x10)
}

// vectorThroughStack pushes the PC and the status value and then loads the
// PC from the vector. used by BRK and the hardware interrupts.
func (mc *CPU) vectorThroughStack(vector uint16, status uint8) error {
	if err := mc.push(mc.PC.Hi()); err != nil {
		return err
	}

	if err := mc.push(mc.PC.Lo()); err != nil {
		return err
	}

	if err := mc.push(status); err != nil {
		return err
	}

	mc.Status.InterruptDisable = true

	return mc.loadVector(vector)
}

// resetSequence idles while RESET is held and then loads the PC from the
// reset vector. the stack is read rather than written.
func (mc *CPU) resetSequence() error {
	mc.ResetState = ResetActive
	mc.LastResult.Reset()
	mc.LastResult.Address = mc.PC.Address()

	// the value on the bus while RESET is held has not been verified
	mc.incompatible = true
	for mc.lines.Get(signals.Reset) {
		if _, err := mc.mem.Read(mc.PC.Address(), false); err != nil {
			return err
		}
		mc.endCycle()
	}

	mc.lines.Take(signals.Reset)
	mc.ResetState = ResetVectoring
	mc.delayed = noDelayedOp

	mc.incompatible = true
	if _, err := mc.read(mc.PC.Address(), false); err != nil {
		return err
	}
	mc.PC.Increment()

	mc.incompatible = true
	if _, err := mc.read(mc.PC.Address(), false); err != nil {
		return err
	}

	for range 3 {
		if _, err := mc.read(mc.SP.Address(), false); err != nil {
			return err
		}
		mc.SP.Decrement()
	}

	if err := mc.loadVector(cpubus.Reset); err != nil {
		return err
	}

	mc.Status.InterruptDisable = true
	mc.ResetState = Running

	return nil
}
