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

package registers

import (
	"fmt"
)

// ProgramCounter represents the PC register in the 6502. The two halves are
// stored separately so that they can be latched in separate bus cycles.
type ProgramCounter struct {
	hi uint8
	lo uint8
}

// NewProgramCounter is the preferred method of initialisation for the
// ProgramCounter.
func NewProgramCounter(val uint16) ProgramCounter {
	return ProgramCounter{hi: uint8(val >> 8), lo: uint8(val)}
}

// Label returns an identifying string for the PC.
func (pc ProgramCounter) Label() string {
	return "PC"
}

func (pc ProgramCounter) String() string {
	return fmt.Sprintf("%#04x", pc.Address())
}

// Address returns the current value of the PC as a 16 bit address.
func (pc ProgramCounter) Address() uint16 {
	return uint16(pc.hi)<<8 | uint16(pc.lo)
}

// Hi returns the high byte of the PC.
func (pc ProgramCounter) Hi() uint8 {
	return pc.hi
}

// Lo returns the low byte of the PC.
func (pc ProgramCounter) Lo() uint8 {
	return pc.lo
}

// Load a 16 bit value into the PC.
func (pc *ProgramCounter) Load(val uint16) {
	pc.hi = uint8(val >> 8)
	pc.lo = uint8(val)
}

// LoadHi replaces the high byte of the PC. The low byte is unchanged.
func (pc *ProgramCounter) LoadHi(val uint8) {
	pc.hi = val
}

// LoadLo replaces the low byte of the PC. The high byte is unchanged.
func (pc *ProgramCounter) LoadLo(val uint8) {
	pc.lo = val
}

// Increment the PC by one. The carry from the low byte propagates to the
// high byte and the full value wraps at 0xffff.
func (pc *ProgramCounter) Increment() {
	pc.Load(pc.Address() + 1)
}
