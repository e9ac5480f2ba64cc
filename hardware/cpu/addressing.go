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
	"github.com/jetsetilly/gopher6502/hardware/cpu/execution"
)

// an addressingMode performs the bus cycles required to resolve the
// effective address of the instruction. the opcode has already been read
// and the PC points to the byte after it.
type addressingMode func(mc *CPU) (uint16, error)

// noAccess is used by instructions that read their own operand.
func (mc *CPU) noAccess() (uint16, error) {
	return mc.PC.Address(), nil
}

// implied and accumulator instructions read the next program byte and
// discard it. the PC is not advanced.
func (mc *CPU) implied() (uint16, error) {
	// phantom read
	_, err := mc.read(mc.PC.Address(), false)
	return 0, err
}

// immediate returns the address of the operand, which is read by the
// operator.
func (mc *CPU) immediate() (uint16, error) {
	address := mc.PC.Address()
	mc.PC.Increment()
	mc.LastResult.ByteCount++
	return address, nil
}

// stack returns the address of the top of the stack.
func (mc *CPU) stack() (uint16, error) {
	// phantom read
	if _, err := mc.read(mc.PC.Address(), false); err != nil {
		return 0, err
	}
	return mc.SP.Address(), nil
}

func (mc *CPU) zeroPage() (uint16, error) {
	zp, err := mc.readOperand()
	if err != nil {
		return 0, err
	}
	mc.LastResult.InstructionData = uint16(zp)
	return uint16(zp), nil
}

func (mc *CPU) zeroPageX() (uint16, error) {
	return mc.zeroPageIndexed(mc.X.Value())
}

func (mc *CPU) zeroPageY() (uint16, error) {
	return mc.zeroPageIndexed(mc.Y.Value())
}

// the indexed address wraps around the zero page.
func (mc *CPU) zeroPageIndexed(index uint8) (uint16, error) {
	zp, err := mc.readOperand()
	if err != nil {
		return 0, err
	}
	mc.LastResult.InstructionData = uint16(zp)

	// phantom read of the unindexed address
	if _, err := mc.read(uint16(zp), false); err != nil {
		return 0, err
	}

	return uint16(zp + index), nil
}

func (mc *CPU) absolute() (uint16, error) {
	lo, err := mc.readOperand()
	if err != nil {
		return 0, err
	}

	hi, err := mc.readOperand()
	if err != nil {
		return 0, err
	}

	address := uint16(hi)<<8 | uint16(lo)
	mc.LastResult.InstructionData = address

	return address, nil
}

func (mc *CPU) absoluteX() (uint16, error) {
	return mc.absoluteIndexed(mc.X.Value())
}

func (mc *CPU) absoluteY() (uint16, error) {
	return mc.absoluteIndexed(mc.Y.Value())
}

func (mc *CPU) absoluteIndexed(index uint8) (uint16, error) {
	base, err := mc.absolute()
	if err != nil {
		return 0, err
	}
	return mc.indexed(base, index)
}

// indexed adds the index to the base address. the chip adds the index to
// the low byte first and reads from that address. if the addition carried,
// or if the instruction always takes the penalty cycle, the value read is
// discarded and the high byte is corrected in the next cycle.
func (mc *CPU) indexed(base uint16, index uint8) (uint16, error) {
	address := base + uint16(index)

	carried := address&0xff00 != base&0xff00
	if carried {
		mc.LastResult.PageFault = true
	}

	if carried || mc.LastResult.Defn.ForcedPenalty {
		// +1 cycle
		if _, err := mc.read(base&0xff00|address&0x00ff, false); err != nil {
			return 0, err
		}
	}

	return address, nil
}

// indirect is only used by JMP.
func (mc *CPU) indirect() (uint16, error) {
	pointer, err := mc.absolute()
	if err != nil {
		return 0, err
	}

	lo, err := mc.read(pointer, false)
	if err != nil {
		return 0, err
	}

	// the high byte of the pointer is not incremented when the low byte
	// wraps around
	next := pointer&0xff00 | uint16(uint8(pointer)+1)
	if next&0xff00 != (pointer+1)&0xff00 {
		mc.LastResult.CPUBug = execution.JmpIndirectAddressingBug
	}

	hi, err := mc.read(next, false)
	if err != nil {
		return 0, err
	}

	return uint16(hi)<<8 | uint16(lo), nil
}

// indexedIndirect is the (zp,X) mode. the pointer never leaves the zero
// page.
func (mc *CPU) indexedIndirect() (uint16, error) {
	zp, err := mc.readOperand()
	if err != nil {
		return 0, err
	}
	mc.LastResult.InstructionData = uint16(zp)

	// phantom read of the unindexed pointer
	if _, err := mc.read(uint16(zp), false); err != nil {
		return 0, err
	}

	zp += mc.X.Value()

	return mc.zeroPagePointer(zp)
}

// indirectIndexed is the (zp),Y mode.
func (mc *CPU) indirectIndexed() (uint16, error) {
	zp, err := mc.readOperand()
	if err != nil {
		return 0, err
	}
	mc.LastResult.InstructionData = uint16(zp)

	base, err := mc.zeroPagePointer(zp)
	if err != nil {
		return 0, err
	}

	return mc.indexed(base, mc.Y.Value())
}

// zeroPageIndirect is the (zp) mode.
func (mc *CPU) zeroPageIndirect() (uint16, error) {
	zp, err := mc.readOperand()
	if err != nil {
		return 0, err
	}
	mc.LastResult.InstructionData = uint16(zp)

	return mc.zeroPagePointer(zp)
}

// zeroPagePointer reads the two byte pointer at zp. the high byte is read
// from zp+1 wrapped within the zero page.
func (mc *CPU) zeroPagePointer(zp uint8) (uint16, error) {
	lo, err := mc.read(uint16(zp), false)
	if err != nil {
		return 0, err
	}

	hi, err := mc.read(uint16(zp+1), false)
	if err != nil {
		return 0, err
	}

	return uint16(hi)<<8 | uint16(lo), nil
}
