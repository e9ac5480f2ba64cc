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
)

// endCycle is called after every call to the bus.
func (mc *CPU) endCycle() {
	mc.TotalCycles++
	if mc.lines.Take(signals.SO) {
		mc.Status.Overflow = true
	}
}

// read returns 8bit value from the specified address
//
// side-effects:
//   - repeats the access while READY is low
//   - lowers the incompatible flag
//   - returns ResetMidInstruction if a reset is pending after the access
func (mc *CPU) read(address uint16, sync bool) (uint8, error) {
	var data uint8

	for {
		var err error
		data, err = mc.mem.Read(address, sync)
		if err != nil {
			return 0, err
		}
		mc.endCycle()

		if mc.lines.Get(signals.Ready) {
			break
		}
	}

	mc.incompatible = false
	mc.LastResult.Cycles++

	// the access has happened. the data is discarded if RESET arrived
	if mc.lines.ResetPending() {
		return 0, mc.abortForReset(address)
	}

	return data, nil
}

// write writes 8 bits to the specified address
//
// side-effects:
//   - repeats the access while READY is low
//   - lowers the incompatible flag
//   - becomes a read and returns ResetMidInstruction if a reset is pending
//   - returns ResetMidInstruction if a reset is pending after the access
func (mc *CPU) write(address uint16, data uint8) error {
	if mc.lines.ResetPending() {
		return mc.abortForReset(address)
	}

	for {
		if err := mc.mem.Write(address, data); err != nil {
			return err
		}
		mc.endCycle()

		if mc.lines.Get(signals.Ready) {
			break
		}
	}

	mc.incompatible = false
	mc.LastResult.Cycles++

	// the write has reached the bus. the rest of the instruction is abandoned
	if mc.lines.ResetPending() {
		return mc.abortForReset(address)
	}

	return nil
}

// abortForReset idles on the bus for as long as RESET is held and then
// returns the ResetMidInstruction sentinel.
func (mc *CPU) abortForReset(address uint16) error {
	mc.ResetState = ResetActive

	// the chip reads while RESET is held. the value on the bus during these
	// cycles has not been verified
	mc.incompatible = true
	for mc.lines.Get(signals.Reset) {
		if _, err := mc.mem.Read(address, false); err != nil {
			return err
		}
		mc.endCycle()
	}

	return ResetMidInstruction
}

// push writes a value to the top of the stack and decrements the stack
// pointer.
func (mc *CPU) push(data uint8) error {
	if err := mc.write(mc.SP.Address(), data); err != nil {
		return err
	}
	mc.SP.Decrement()
	return nil
}

// readOperand reads the next byte of the program and advances the PC.
func (mc *CPU) readOperand() (uint8, error) {
	// +1 cycle
	data, err := mc.read(mc.PC.Address(), false)
	if err != nil {
		return 0, err
	}
	mc.PC.Increment()
	mc.LastResult.ByteCount++
	return data, nil
}

// loadVector reads the two byte vector at address into the PC. The halves
// of the PC are latched in separate cycles.
func (mc *CPU) loadVector(address uint16) error {
	// +1 cycle
	lo, err := mc.read(address, false)
	if err != nil {
		return err
	}
	mc.PC.LoadLo(lo)

	// +1 cycle
	hi, err := mc.read(address+1, false)
	if err != nil {
		return err
	}
	mc.PC.LoadHi(hi)

	return nil
}
