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

package instructions

import "fmt"

// AddressingMode describes the method data for the instruction should be
// received.
type AddressingMode int

// List of supported addressing modes.
const (
	Implied AddressingMode = iota
	Accumulator
	Immediate
	Relative // relative addressing is used for branch instructions
	Stack    // push and pull instructions, RTS and RTI

	Absolute // abs
	ZeroPage // zpg
	Indirect // ind

	IndexedIndirect  // (ind,X)
	IndirectIndexed  // (ind),Y
	ZeroPageIndirect // (zpg)

	AbsoluteIndexedX // abs,X
	AbsoluteIndexedY // abs,Y

	ZeroPageIndexedX // zpg,X
	ZeroPageIndexedY // zpg,Y
)

func (m AddressingMode) String() string {
	switch m {
	case Implied:
		return "Implied"
	case Accumulator:
		return "Accumulator"
	case Immediate:
		return "Immediate"
	case Relative:
		return "Relative"
	case Stack:
		return "Stack"
	case Absolute:
		return "Absolute"
	case ZeroPage:
		return "ZeroPage"
	case Indirect:
		return "Indirect"
	case IndexedIndirect:
		return "IndexedIndirect"
	case IndirectIndexed:
		return "IndirectIndexed"
	case ZeroPageIndirect:
		return "ZeroPageIndirect"
	case AbsoluteIndexedX:
		return "AbsoluteIndexedX"
	case AbsoluteIndexedY:
		return "AbsoluteIndexedY"
	case ZeroPageIndexedX:
		return "ZeroPageIndexedX"
	case ZeroPageIndexedY:
		return "ZeroPageIndexedY"
	}
	return "unknown addressing mode"
}

// Bytes returns the length of an instruction using the addressing mode,
// including the opcode.
func (m AddressingMode) Bytes() int {
	switch m {
	case Implied, Accumulator, Stack:
		return 1
	case Absolute, Indirect, AbsoluteIndexedX, AbsoluteIndexedY:
		return 3
	}
	return 2
}

// IsIndexed returns true for the addressing modes where an index register is
// added to a 16 bit base address and where the addition may carry into the
// high byte.
func (m AddressingMode) IsIndexed() bool {
	return m == AbsoluteIndexedX || m == AbsoluteIndexedY || m == IndirectIndexed
}

// EffectCategory categorises an instruction by the effect it has.
type EffectCategory int

// List of effect categories.
const (
	Read EffectCategory = iota
	Write
	RMW

	// the following three effects have a variable effect on the program
	// counter, depending on the instruction's precise operand.

	// flow consists of the Branch and JMP instructions. Branch instructions
	// specifically can be distinguished by the AddressingMode.
	Flow

	Subroutine
	Interrupt
)

func (e EffectCategory) String() string {
	switch e {
	case Read:
		return "Read"
	case Write:
		return "Write"
	case RMW:
		return "RMW"
	case Flow:
		return "Flow"
	case Subroutine:
		return "Subroutine"
	case Interrupt:
		return "Interrupt"
	}
	return "unknown effect"
}

// Definition defines each instruction in the instruction set; one per
// instruction.
type Definition struct {
	OpCode         uint8
	Operator       Operator
	Bytes          int
	Cycles         int
	AddressingMode AddressingMode
	Effect         EffectCategory

	// PageSensitive instructions take an extra cycle if the indexed address
	// crosses a page boundary.
	PageSensitive bool

	// ForcedPenalty instructions always take the extra cycle of an indexed
	// address. Stores and read-modify-write instructions cannot cancel the
	// read of the uncarried address so they always pay.
	ForcedPenalty bool

	// CMOS is true for the small number of instructions that are not part of
	// the documented NMOS instruction set.
	CMOS bool
}

// String returns a single instruction definition as a string.
func (defn Definition) String() string {
	if defn.Operator == "" {
		return "undecoded instruction"
	}
	return fmt.Sprintf("%02x %s +%dbytes (%d cycles) [mode=%s pagesens=%t forced=%t effect=%s]",
		defn.OpCode, defn.Operator, defn.Bytes, defn.Cycles, defn.AddressingMode,
		defn.PageSensitive, defn.ForcedPenalty, defn.Effect)
}

// IsBranch returns true if instruction is a branch instruction.
func (defn Definition) IsBranch() bool {
	return defn.AddressingMode == Relative && defn.Effect == Flow
}
