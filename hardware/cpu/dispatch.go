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
	"fmt"

	"github.com/jetsetilly/gopher6502/hardware/cpu/instructions"
)

type dispatchEntry struct {
	defn *instructions.Definition
	mode addressingMode
	op   operator
}

// indexed by opcode. entries with a nil defn are undefined opcodes.
var dispatch [256]dispatchEntry

var operators = map[instructions.Operator]operator{
	instructions.ADC: (*CPU).adc,
	instructions.AND: (*CPU).and,
	instructions.ASL: (*CPU).asl,
	instructions.BCC: (*CPU).bcc,
	instructions.BCS: (*CPU).bcs,
	instructions.BEQ: (*CPU).beq,
	instructions.BIT: (*CPU).bit,
	instructions.BMI: (*CPU).bmi,
	instructions.BNE: (*CPU).bne,
	instructions.BPL: (*CPU).bpl,
	instructions.BRK: (*CPU).brk,
	instructions.BVC: (*CPU).bvc,
	instructions.BVS: (*CPU).bvs,
	instructions.CLC: (*CPU).clc,
	instructions.CLD: (*CPU).cld,
	instructions.CLI: (*CPU).cli,
	instructions.CLV: (*CPU).clv,
	instructions.CMP: (*CPU).cmp,
	instructions.CPX: (*CPU).cpx,
	instructions.CPY: (*CPU).cpy,
	instructions.DEC: (*CPU).dec,
	instructions.DEX: (*CPU).dex,
	instructions.DEY: (*CPU).dey,
	instructions.EOR: (*CPU).eor,
	instructions.INC: (*CPU).inc,
	instructions.INX: (*CPU).inx,
	instructions.INY: (*CPU).iny,
	instructions.JMP: (*CPU).jmp,
	instructions.JSR: (*CPU).jsr,
	instructions.LDA: (*CPU).lda,
	instructions.LDX: (*CPU).ldx,
	instructions.LDY: (*CPU).ldy,
	instructions.LSR: (*CPU).lsr,
	instructions.NOP: (*CPU).nop,
	instructions.ORA: (*CPU).ora,
	instructions.PHA: (*CPU).pha,
	instructions.PHP: (*CPU).php,
	instructions.PLA: (*CPU).pla,
	instructions.PLP: (*CPU).plp,
	instructions.ROL: (*CPU).rol,
	instructions.ROR: (*CPU).ror,
	instructions.RTI: (*CPU).rti,
	instructions.RTS: (*CPU).rts,
	instructions.SBC: (*CPU).sbc,
	instructions.SEC: (*CPU).sec,
	instructions.SED: (*CPU).sed,
	instructions.SEI: (*CPU).sei,
	instructions.STA: (*CPU).sta,
	instructions.STX: (*CPU).stx,
	instructions.STY: (*CPU).sty,
	instructions.TAX: (*CPU).tax,
	instructions.TAY: (*CPU).tay,
	instructions.TSX: (*CPU).tsx,
	instructions.TXA: (*CPU).txa,
	instructions.TXS: (*CPU).txs,
	instructions.TYA: (*CPU).tya,
}

func init() {
	for opcode, defn := range instructions.GetDefinitions() {
		if defn == nil {
			continue
		}

		op, ok := operators[defn.Operator]
		if !ok {
			panic(fmt.Sprintf("cpu: no operator for %s", defn.Operator))
		}

		dispatch[opcode] = dispatchEntry{
			defn: defn,
			mode: addressingModeFor(defn),
			op:   op,
		}
	}
}

func addressingModeFor(defn *instructions.Definition) addressingMode {
	switch defn.Operator {
	case instructions.JSR:
		return (*CPU).noAccess
	case instructions.BRK:
		return (*CPU).immediate
	}

	switch defn.AddressingMode {
	case instructions.Implied, instructions.Accumulator:
		return (*CPU).implied
	case instructions.Immediate, instructions.Relative:
		return (*CPU).immediate
	case instructions.Stack:
		return (*CPU).stack
	case instructions.Absolute:
		return (*CPU).absolute
	case instructions.ZeroPage:
		return (*CPU).zeroPage
	case instructions.Indirect:
		return (*CPU).indirect
	case instructions.IndexedIndirect:
		return (*CPU).indexedIndirect
	case instructions.IndirectIndexed:
		return (*CPU).indirectIndexed
	case instructions.ZeroPageIndirect:
		return (*CPU).zeroPageIndirect
	case instructions.AbsoluteIndexedX:
		return (*CPU).absoluteX
	case instructions.AbsoluteIndexedY:
		return (*CPU).absoluteY
	case instructions.ZeroPageIndexedX:
		return (*CPU).zeroPageX
	case instructions.ZeroPageIndexedY:
		return (*CPU).zeroPageY
	}

	panic(fmt.Sprintf("cpu: no addressing mode for %s", defn.AddressingMode))
}
