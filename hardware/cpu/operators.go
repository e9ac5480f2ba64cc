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
	"github.com/jetsetilly/gopher6502/hardware/cpu/instructions"
	"github.com/jetsetilly/gopher6502/hardware/cpu/registers"
	"github.com/jetsetilly/gopher6502/hardware/memory/cpubus"
	"github.com/jetsetilly/gopher6502/logger"
)

// an operator performs the remaining bus cycles of the instruction, using
// the address returned by the addressingMode.
type operator func(mc *CPU, address uint16) error

func (mc *CPU) setNZ(v uint8) {
	mc.Status.Zero = v == 0
	mc.Status.Sign = v&0x80 == 0x80
}

// fetch reads the operand of an instruction. the value is recorded in the
// LastResult for modes where the operand is part of the program.
func (mc *CPU) fetch(address uint16) (uint8, error) {
	v, err := mc.read(address, false)
	if err != nil {
		return 0, err
	}

	switch mc.LastResult.Defn.AddressingMode {
	case instructions.Immediate, instructions.Relative:
		mc.LastResult.InstructionData = uint16(v)
	}

	return v, nil
}

// decimalMode raises the incompatible flag for the operand read of ADC and
// SBC when the decimal mode flag is set. the arithmetic is binary.
func (mc *CPU) decimalMode() {
	if mc.Status.DecimalMode {
		mc.incompatible = true
		logger.Logf(logger.Allow, "cpu", "decimal mode %s at %#04x is treated as binary", mc.LastResult.Defn.Operator, mc.LastResult.Address)
	}
}

func (mc *CPU) adc(address uint16) error {
	mc.decimalMode()
	v, err := mc.fetch(address)
	if err != nil {
		return err
	}
	mc.Status.Carry, mc.Status.Overflow = mc.A.Add(v, mc.Status.Carry)
	mc.setNZ(mc.A.Value())
	return nil
}

func (mc *CPU) sbc(address uint16) error {
	mc.decimalMode()
	v, err := mc.fetch(address)
	if err != nil {
		return err
	}
	mc.Status.Carry, mc.Status.Overflow = mc.A.Subtract(v, mc.Status.Carry)
	mc.setNZ(mc.A.Value())
	return nil
}

func (mc *CPU) and(address uint16) error {
	v, err := mc.fetch(address)
	if err != nil {
		return err
	}
	mc.A.AND(v)
	mc.setNZ(mc.A.Value())
	return nil
}

func (mc *CPU) eor(address uint16) error {
	v, err := mc.fetch(address)
	if err != nil {
		return err
	}
	mc.A.EOR(v)
	mc.setNZ(mc.A.Value())
	return nil
}

func (mc *CPU) ora(address uint16) error {
	v, err := mc.fetch(address)
	if err != nil {
		return err
	}
	mc.A.ORA(v)
	mc.setNZ(mc.A.Value())
	return nil
}

// the immediate form of BIT only affects the zero flag.
func (mc *CPU) bit(address uint16) error {
	v, err := mc.fetch(address)
	if err != nil {
		return err
	}
	mc.Status.Zero = mc.A.Value()&v == 0
	if mc.LastResult.Defn.AddressingMode != instructions.Immediate {
		mc.Status.Sign = v&0x80 == 0x80
		mc.Status.Overflow = v&0x40 == 0x40
	}
	return nil
}

func (mc *CPU) compare(r registers.Register, address uint16) error {
	v, err := mc.fetch(address)
	if err != nil {
		return err
	}
	var result uint8
	mc.Status.Carry, result = r.Compare(v)
	mc.setNZ(result)
	return nil
}

func (mc *CPU) cmp(address uint16) error {
	return mc.compare(mc.A, address)
}

func (mc *CPU) cpx(address uint16) error {
	return mc.compare(mc.X, address)
}

func (mc *CPU) cpy(address uint16) error {
	return mc.compare(mc.Y, address)
}

func (mc *CPU) load(r *registers.Register, address uint16) error {
	v, err := mc.fetch(address)
	if err != nil {
		return err
	}
	r.Load(v)
	mc.setNZ(v)
	return nil
}

func (mc *CPU) lda(address uint16) error {
	return mc.load(&mc.A, address)
}

func (mc *CPU) ldx(address uint16) error {
	return mc.load(&mc.X, address)
}

func (mc *CPU) ldy(address uint16) error {
	return mc.load(&mc.Y, address)
}

func (mc *CPU) sta(address uint16) error {
	return mc.write(address, mc.A.Value())
}

func (mc *CPU) stx(address uint16) error {
	return mc.write(address, mc.X.Value())
}

func (mc *CPU) sty(address uint16) error {
	return mc.write(address, mc.Y.Value())
}

// modify is the read-modify-write sequence. in accumulator mode the
// register is modified with no further bus activity.
func (mc *CPU) modify(address uint16, f func(r *registers.Register)) error {
	if mc.LastResult.Defn.AddressingMode == instructions.Accumulator {
		f(&mc.A)
		mc.setNZ(mc.A.Value())
		return nil
	}

	v, err := mc.read(address, false)
	if err != nil {
		return err
	}

	// the unmodified value is written back before the modified value
	if err := mc.write(address, v); err != nil {
		return err
	}

	r := registers.NewRegister(v, "")
	f(&r)

	if err := mc.write(address, r.Value()); err != nil {
		return err
	}

	mc.setNZ(r.Value())

	return nil
}

func (mc *CPU) asl(address uint16) error {
	return mc.modify(address, func(r *registers.Register) {
		mc.Status.Carry = r.ASL()
	})
}

func (mc *CPU) lsr(address uint16) error {
	return mc.modify(address, func(r *registers.Register) {
		mc.Status.Carry = r.LSR()
	})
}

func (mc *CPU) rol(address uint16) error {
	return mc.modify(address, func(r *registers.Register) {
		mc.Status.Carry = r.ROL(mc.Status.Carry)
	})
}

func (mc *CPU) ror(address uint16) error {
	return mc.modify(address, func(r *registers.Register) {
		mc.Status.Carry = r.ROR(mc.Status.Carry)
	})
}

func (mc *CPU) inc(address uint16) error {
	return mc.modify(address, func(r *registers.Register) {
		r.Add(1, false)
	})
}

func (mc *CPU) dec(address uint16) error {
	return mc.modify(address, func(r *registers.Register) {
		r.Subtract(1, true)
	})
}

func (mc *CPU) incdec(r *registers.Register, inc bool) {
	if inc {
		r.Add(1, false)
	} else {
		r.Subtract(1, true)
	}
	mc.setNZ(r.Value())
}

func (mc *CPU) inx(_ uint16) error {
	mc.incdec(&mc.X, true)
	return nil
}

func (mc *CPU) iny(_ uint16) error {
	mc.incdec(&mc.Y, true)
	return nil
}

func (mc *CPU) dex(_ uint16) error {
	mc.incdec(&mc.X, false)
	return nil
}

func (mc *CPU) dey(_ uint16) error {
	mc.incdec(&mc.Y, false)
	return nil
}

func (mc *CPU) transfer(to *registers.Register, from uint8) {
	to.Load(from)
	mc.setNZ(from)
}

func (mc *CPU) tax(_ uint16) error {
	mc.transfer(&mc.X, mc.A.Value())
	return nil
}

func (mc *CPU) tay(_ uint16) error {
	mc.transfer(&mc.Y, mc.A.Value())
	return nil
}

func (mc *CPU) txa(_ uint16) error {
	mc.transfer(&mc.A, mc.X.Value())
	return nil
}

func (mc *CPU) tya(_ uint16) error {
	mc.transfer(&mc.A, mc.Y.Value())
	return nil
}

func (mc *CPU) tsx(_ uint16) error {
	mc.transfer(&mc.X, mc.SP.Value())
	return nil
}

// no flags are affected by TXS.
func (mc *CPU) txs(_ uint16) error {
	mc.SP.Load(mc.X.Value())
	return nil
}

func (mc *CPU) clc(_ uint16) error {
	mc.Status.Carry = false
	return nil
}

func (mc *CPU) sec(_ uint16) error {
	mc.Status.Carry = true
	return nil
}

func (mc *CPU) cld(_ uint16) error {
	mc.Status.DecimalMode = false
	return nil
}

func (mc *CPU) sed(_ uint16) error {
	mc.Status.DecimalMode = true
	return nil
}

func (mc *CPU) clv(_ uint16) error {
	mc.Status.Overflow = false
	return nil
}

// the interrupt disable flag changes at the start of the next instruction.
func (mc *CPU) cli(_ uint16) error {
	mc.delayed = delayedCLI
	return nil
}

func (mc *CPU) sei(_ uint16) error {
	mc.delayed = delayedSEI
	return nil
}

func (mc *CPU) nop(_ uint16) error {
	return nil
}

// branch reads the offset and, if the branch is taken, adds it to the PC.
// the low byte of the PC is corrected first. a second cycle is needed if
// the high byte changes.
func (mc *CPU) branch(address uint16, taken bool) error {
	v, err := mc.fetch(address)
	if err != nil {
		return err
	}

	if !taken {
		return nil
	}

	// +1 cycle
	if _, err := mc.read(mc.PC.Address(), false); err != nil {
		return err
	}

	dest := mc.PC.Address() + uint16(int8(v))
	mc.PC.LoadLo(uint8(dest))

	if mc.PC.Address() != dest {
		mc.LastResult.PageFault = true

		// +1 cycle
		if _, err := mc.read(mc.PC.Address(), false); err != nil {
			return err
		}
		mc.PC.LoadHi(uint8(dest >> 8))
	}

	return nil
}

func (mc *CPU) bcc(address uint16) error {
	return mc.branch(address, !mc.Status.Carry)
}

func (mc *CPU) bcs(address uint16) error {
	return mc.branch(address, mc.Status.Carry)
}

func (mc *CPU) bne(address uint16) error {
	return mc.branch(address, !mc.Status.Zero)
}

func (mc *CPU) beq(address uint16) error {
	return mc.branch(address, mc.Status.Zero)
}

func (mc *CPU) bpl(address uint16) error {
	return mc.branch(address, !mc.Status.Sign)
}

func (mc *CPU) bmi(address uint16) error {
	return mc.branch(address, mc.Status.Sign)
}

func (mc *CPU) bvc(address uint16) error {
	return mc.branch(address, !mc.Status.Overflow)
}

func (mc *CPU) bvs(address uint16) error {
	return mc.branch(address, mc.Status.Overflow)
}

func (mc *CPU) jmp(address uint16) error {
	mc.PC.Load(address)
	return nil
}

// jsr reads the low byte of the destination before pushing the return
// address and the high byte after. the address pushed is that of the high
// byte.
func (mc *CPU) jsr(_ uint16) error {
	lo, err := mc.readOperand()
	if err != nil {
		return err
	}

	// phantom read of the stack
	if _, err := mc.read(mc.SP.Address(), false); err != nil {
		return err
	}

	if err := mc.push(mc.PC.Hi()); err != nil {
		return err
	}

	if err := mc.push(mc.PC.Lo()); err != nil {
		return err
	}

	// the PC is not incremented past the high byte
	hi, err := mc.read(mc.PC.Address(), false)
	if err != nil {
		return err
	}
	mc.LastResult.ByteCount++

	address := uint16(hi)<<8 | uint16(lo)
	mc.LastResult.InstructionData = address
	mc.PC.Load(address)

	return nil
}

// pull increments the stack pointer and reads the new top of the stack.
func (mc *CPU) pull() (uint8, error) {
	mc.SP.Increment()
	return mc.read(mc.SP.Address(), false)
}

func (mc *CPU) rts(address uint16) error {
	// phantom read of the stack
	if _, err := mc.read(address, false); err != nil {
		return err
	}

	lo, err := mc.pull()
	if err != nil {
		return err
	}
	mc.PC.LoadLo(lo)

	hi, err := mc.pull()
	if err != nil {
		return err
	}
	mc.PC.LoadHi(hi)

	// the return address is the last byte of the JSR instruction
	if _, err := mc.read(mc.PC.Address(), false); err != nil {
		return err
	}
	mc.PC.Increment()

	return nil
}

func (mc *CPU) rti(address uint16) error {
	// phantom read of the stack
	if _, err := mc.read(address, false); err != nil {
		return err
	}

	status, err := mc.pull()
	if err != nil {
		return err
	}
	mc.Status.Pull(status)

	lo, err := mc.pull()
	if err != nil {
		return err
	}
	mc.PC.LoadLo(lo)

	hi, err := mc.pull()
	if err != nil {
		return err
	}
	mc.PC.LoadHi(hi)

	return nil
}

func (mc *CPU) pha(address uint16) error {
	if err := mc.write(address, mc.A.Value()); err != nil {
		return err
	}
	mc.SP.Decrement()
	return nil
}

// the status register is pushed as it is.
func (mc *CPU) php(address uint16) error {
	if err := mc.write(address, mc.Status.Value()); err != nil {
		return err
	}
	mc.SP.Decrement()
	return nil
}

func (mc *CPU) pla(address uint16) error {
	// phantom read of the stack
	if _, err := mc.read(address, false); err != nil {
		return err
	}

	v, err := mc.pull()
	if err != nil {
		return err
	}
	mc.A.Load(v)
	mc.setNZ(v)

	return nil
}

func (mc *CPU) plp(address uint16) error {
	// phantom read of the stack
	if _, err := mc.read(address, false); err != nil {
		return err
	}

	v, err := mc.pull()
	if err != nil {
		return err
	}
	mc.Status.Pull(v)

	return nil
}

// brk skips the signature byte that follows the opcode and pushes the
// status register as it is.
func (mc *CPU) brk(address uint16) error {
	if _, err := mc.fetch(address); err != nil {
		return err
	}

	return mc.vectorThroughStack(cpubus.BRK, mc.Status.Value())
}
