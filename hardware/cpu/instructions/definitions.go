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

// abbreviated addressing modes for the definitions table.
const (
	imp = Implied
	acc = Accumulator
	imm = Immediate
	rel = Relative
	stk = Stack
	abs = Absolute
	zpg = ZeroPage
	ind = Indirect
	izx = IndexedIndirect
	izy = IndirectIndexed
	izp = ZeroPageIndirect
	abx = AbsoluteIndexedX
	aby = AbsoluteIndexedY
	zpx = ZeroPageIndexedX
	zpy = ZeroPageIndexedY
)

type entry struct {
	opcode uint8
	op     Operator
	mode   AddressingMode
	cycles int
	effect EffectCategory
	cmos   bool
}

// cycles are the nominal cycle counts. branches taken and page sensitive
// instructions crossing a page take longer.
var table = []entry{
	{0x69, ADC, imm, 2, Read, false},
	{0x65, ADC, zpg, 3, Read, false},
	{0x75, ADC, zpx, 4, Read, false},
	{0x6d, ADC, abs, 4, Read, false},
	{0x7d, ADC, abx, 4, Read, false},
	{0x79, ADC, aby, 4, Read, false},
	{0x61, ADC, izx, 6, Read, false},
	{0x71, ADC, izy, 5, Read, false},

	{0x29, AND, imm, 2, Read, false},
	{0x25, AND, zpg, 3, Read, false},
	{0x35, AND, zpx, 4, Read, false},
	{0x2d, AND, abs, 4, Read, false},
	{0x3d, AND, abx, 4, Read, false},
	{0x39, AND, aby, 4, Read, false},
	{0x21, AND, izx, 6, Read, false},
	{0x31, AND, izy, 5, Read, false},

	{0x0a, ASL, acc, 2, RMW, false},
	{0x06, ASL, zpg, 5, RMW, false},
	{0x16, ASL, zpx, 6, RMW, false},
	{0x0e, ASL, abs, 6, RMW, false},
	{0x1e, ASL, abx, 7, RMW, false},

	{0x90, BCC, rel, 2, Flow, false},
	{0xb0, BCS, rel, 2, Flow, false},
	{0xf0, BEQ, rel, 2, Flow, false},
	{0x30, BMI, rel, 2, Flow, false},
	{0xd0, BNE, rel, 2, Flow, false},
	{0x10, BPL, rel, 2, Flow, false},
	{0x50, BVC, rel, 2, Flow, false},
	{0x70, BVS, rel, 2, Flow, false},

	{0x24, BIT, zpg, 3, Read, false},
	{0x2c, BIT, abs, 4, Read, false},
	{0x89, BIT, imm, 2, Read, true},
	{0x34, BIT, zpx, 4, Read, true},
	{0x3c, BIT, abx, 4, Read, true},

	{0x00, BRK, imp, 7, Interrupt, false},

	{0x18, CLC, imp, 2, Read, false},
	{0xd8, CLD, imp, 2, Read, false},
	{0x58, CLI, imp, 2, Read, false},
	{0xb8, CLV, imp, 2, Read, false},

	{0xc9, CMP, imm, 2, Read, false},
	{0xc5, CMP, zpg, 3, Read, false},
	{0xd5, CMP, zpx, 4, Read, false},
	{0xcd, CMP, abs, 4, Read, false},
	{0xdd, CMP, abx, 4, Read, false},
	{0xd9, CMP, aby, 4, Read, false},
	{0xc1, CMP, izx, 6, Read, false},
	{0xd1, CMP, izy, 5, Read, false},
	{0xd2, CMP, izp, 5, Read, true},

	{0xe0, CPX, imm, 2, Read, false},
	{0xe4, CPX, zpg, 3, Read, false},
	{0xec, CPX, abs, 4, Read, false},

	{0xc0, CPY, imm, 2, Read, false},
	{0xc4, CPY, zpg, 3, Read, false},
	{0xcc, CPY, abs, 4, Read, false},

	{0xc6, DEC, zpg, 5, RMW, false},
	{0xd6, DEC, zpx, 6, RMW, false},
	{0xce, DEC, abs, 6, RMW, false},
	{0xde, DEC, abx, 7, RMW, false},
	{0x3a, DEC, acc, 2, RMW, true},

	{0xca, DEX, imp, 2, Read, false},
	{0x88, DEY, imp, 2, Read, false},

	{0x49, EOR, imm, 2, Read, false},
	{0x45, EOR, zpg, 3, Read, false},
	{0x55, EOR, zpx, 4, Read, false},
	{0x4d, EOR, abs, 4, Read, false},
	{0x5d, EOR, abx, 4, Read, false},
	{0x59, EOR, aby, 4, Read, false},
	{0x41, EOR, izx, 6, Read, false},
	{0x51, EOR, izy, 5, Read, false},
	{0x52, EOR, izp, 5, Read, true},

	{0xe6, INC, zpg, 5, RMW, false},
	{0xf6, INC, zpx, 6, RMW, false},
	{0xee, INC, abs, 6, RMW, false},
	{0xfe, INC, abx, 7, RMW, false},
	{0x1a, INC, acc, 2, RMW, true},

	{0xe8, INX, imp, 2, Read, false},
	{0xc8, INY, imp, 2, Read, false},

	{0x4c, JMP, abs, 3, Flow, false},
	{0x6c, JMP, ind, 5, Flow, false},

	{0x20, JSR, abs, 6, Subroutine, false},

	{0xa9, LDA, imm, 2, Read, false},
	{0xa5, LDA, zpg, 3, Read, false},
	{0xb5, LDA, zpx, 4, Read, false},
	{0xad, LDA, abs, 4, Read, false},
	{0xbd, LDA, abx, 4, Read, false},
	{0xb9, LDA, aby, 4, Read, false},
	{0xa1, LDA, izx, 6, Read, false},
	{0xb1, LDA, izy, 5, Read, false},

	{0xa2, LDX, imm, 2, Read, false},
	{0xa6, LDX, zpg, 3, Read, false},
	{0xb6, LDX, zpy, 4, Read, false},
	{0xae, LDX, abs, 4, Read, false},
	{0xbe, LDX, aby, 4, Read, false},

	{0xa0, LDY, imm, 2, Read, false},
	{0xa4, LDY, zpg, 3, Read, false},
	{0xb4, LDY, zpx, 4, Read, false},
	{0xac, LDY, abs, 4, Read, false},
	{0xbc, LDY, abx, 4, Read, false},

	{0x4a, LSR, acc, 2, RMW, false},
	{0x46, LSR, zpg, 5, RMW, false},
	{0x56, LSR, zpx, 6, RMW, false},
	{0x4e, LSR, abs, 6, RMW, false},
	{0x5e, LSR, abx, 7, RMW, false},

	{0xea, NOP, imp, 2, Read, false},

	{0x09, ORA, imm, 2, Read, false},
	{0x05, ORA, zpg, 3, Read, false},
	{0x15, ORA, zpx, 4, Read, false},
	{0x0d, ORA, abs, 4, Read, false},
	{0x1d, ORA, abx, 4, Read, false},
	{0x19, ORA, aby, 4, Read, false},
	{0x01, ORA, izx, 6, Read, false},
	{0x11, ORA, izy, 5, Read, false},

	{0x48, PHA, stk, 3, Write, false},
	{0x08, PHP, stk, 3, Write, false},
	{0x68, PLA, stk, 4, Read, false},
	{0x28, PLP, stk, 4, Read, false},

	{0x2a, ROL, acc, 2, RMW, false},
	{0x26, ROL, zpg, 5, RMW, false},
	{0x36, ROL, zpx, 6, RMW, false},
	{0x2e, ROL, abs, 6, RMW, false},
	{0x3e, ROL, abx, 7, RMW, false},

	{0x6a, ROR, acc, 2, RMW, false},
	{0x66, ROR, zpg, 5, RMW, false},
	{0x76, ROR, zpx, 6, RMW, false},
	{0x6e, ROR, abs, 6, RMW, false},
	{0x7e, ROR, abx, 7, RMW, false},

	{0x40, RTI, stk, 6, Interrupt, false},
	{0x60, RTS, stk, 6, Subroutine, false},

	{0xe9, SBC, imm, 2, Read, false},
	{0xe5, SBC, zpg, 3, Read, false},
	{0xf5, SBC, zpx, 4, Read, false},
	{0xed, SBC, abs, 4, Read, false},
	{0xfd, SBC, abx, 4, Read, false},
	{0xf9, SBC, aby, 4, Read, false},
	{0xe1, SBC, izx, 6, Read, false},
	{0xf1, SBC, izy, 5, Read, false},

	{0x38, SEC, imp, 2, Read, false},
	{0xf8, SED, imp, 2, Read, false},
	{0x78, SEI, imp, 2, Read, false},

	{0x85, STA, zpg, 3, Write, false},
	{0x95, STA, zpx, 4, Write, false},
	{0x8d, STA, abs, 4, Write, false},
	{0x9d, STA, abx, 5, Write, false},
	{0x99, STA, aby, 5, Write, false},
	{0x81, STA, izx, 6, Write, false},
	{0x91, STA, izy, 6, Write, false},
	{0x92, STA, izp, 5, Write, true},

	{0x86, STX, zpg, 3, Write, false},
	{0x96, STX, zpy, 4, Write, false},
	{0x8e, STX, abs, 4, Write, false},

	{0x84, STY, zpg, 3, Write, false},
	{0x94, STY, zpx, 4, Write, false},
	{0x8c, STY, abs, 4, Write, false},

	{0xaa, TAX, imp, 2, Read, false},
	{0xa8, TAY, imp, 2, Read, false},
	{0xba, TSX, imp, 2, Read, false},
	{0x8a, TXA, imp, 2, Read, false},
	{0x9a, TXS, imp, 2, Read, false},
	{0x98, TYA, imp, 2, Read, false},
}

// GetDefinitions returns the table of instruction definitions indexed by
// opcode. Opcodes with no definition are nil.
func GetDefinitions() [256]*Definition {
	var defs [256]*Definition

	for _, e := range table {
		defn := &Definition{
			OpCode:         e.opcode,
			Operator:       e.op,
			Bytes:          e.mode.Bytes(),
			Cycles:         e.cycles,
			AddressingMode: e.mode,
			Effect:         e.effect,
			CMOS:           e.cmos,
		}

		if defn.AddressingMode.IsIndexed() {
			switch defn.Effect {
			case Read:
				defn.PageSensitive = true
			case Write, RMW:
				defn.ForcedPenalty = true
			}
		}

		// BRK is followed by a signature byte that the CPU skips
		if defn.Operator == BRK {
			defn.Bytes = 2
		}

		defs[defn.OpCode] = defn
	}

	return defs
}
