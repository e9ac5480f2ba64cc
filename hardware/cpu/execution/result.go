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

// Package execution records the result of the most recent instruction
// executed by the CPU. The Result type is updated as the instruction
// progresses and is only complete when the Final field is true.
package execution

import (
	"fmt"

	"github.com/jetsetilly/gopher6502/hardware/cpu/instructions"
)

// Bug describes a known hardware bug triggered by an instruction.
type Bug string

// List of CPU bugs that are reproduced.
const (
	NoBug                    Bug = ""
	JmpIndirectAddressingBug Bug = "indirect addressing bug"
)

// Interrupt identifies the interrupt serviced before an instruction.
type Interrupt string

// List of interrupts.
const (
	NoInterrupt Interrupt = ""
	NMI         Interrupt = "NMI"
	IRQ         Interrupt = "IRQ"
)

// Result records the state/result of the most recent instruction.
type Result struct {
	// the address of the opcode
	Address uint16

	// nil until the opcode has been fetched and decoded
	Defn *instructions.Definition

	// operand of the instruction. the low byte only for two byte instructions
	InstructionData uint16

	// number of bytes read from the program, including the opcode
	ByteCount int

	// number of bus cycles taken by the instruction. stalled cycles while
	// READY is deasserted are not counted
	Cycles int

	// bus cycles taken servicing an interrupt before the instruction
	InterruptCycles int

	// the interrupt serviced before the instruction, if any
	Interrupt Interrupt

	// the indexed address crossed a page, or a taken branch changed page
	PageFault bool

	// whether a known CPU bug was triggered by the instruction
	CPUBug Bug

	// the instruction ran to completion
	Final bool
}

// Reset the result to its zero state.
func (r *Result) Reset() {
	*r = Result{}
}

func (r Result) String() string {
	if r.Defn == nil {
		return fmt.Sprintf("%#04x ???", r.Address)
	}

	s := fmt.Sprintf("%#04x %s", r.Address, r.Defn.Operator)
	if operand := r.operand(); operand != "" {
		s = fmt.Sprintf("%s %s", s, operand)
	}

	if r.Interrupt != NoInterrupt {
		s = fmt.Sprintf("%s [%s]", s, r.Interrupt)
	}
	if r.CPUBug != NoBug {
		s = fmt.Sprintf("%s (%s)", s, r.CPUBug)
	}
	if !r.Final {
		s = fmt.Sprintf("%s (aborted)", s)
	}

	return s
}

// operand formats the instruction data according to the addressing mode.
func (r Result) operand() string {
	d := r.InstructionData

	switch r.Defn.AddressingMode {
	case instructions.Implied, instructions.Stack:
		return ""
	case instructions.Accumulator:
		return "A"
	case instructions.Immediate:
		return fmt.Sprintf("#$%02x", d)
	case instructions.Relative:
		// branch destination relative to the address of the next instruction
		dest := r.Address + uint16(r.Defn.Bytes) + uint16(int8(d))
		return fmt.Sprintf("$%04x", dest)
	case instructions.Absolute:
		return fmt.Sprintf("$%04x", d)
	case instructions.ZeroPage:
		return fmt.Sprintf("$%02x", d)
	case instructions.Indirect:
		return fmt.Sprintf("($%04x)", d)
	case instructions.IndexedIndirect:
		return fmt.Sprintf("($%02x,X)", d)
	case instructions.IndirectIndexed:
		return fmt.Sprintf("($%02x),Y", d)
	case instructions.ZeroPageIndirect:
		return fmt.Sprintf("($%02x)", d)
	case instructions.AbsoluteIndexedX:
		return fmt.Sprintf("$%04x,X", d)
	case instructions.AbsoluteIndexedY:
		return fmt.Sprintf("$%04x,Y", d)
	case instructions.ZeroPageIndexedX:
		return fmt.Sprintf("$%02x,X", d)
	case instructions.ZeroPageIndexedY:
		return fmt.Sprintf("$%02x,Y", d)
	}

	return ""
}
