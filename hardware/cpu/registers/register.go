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

// Register is an 8 bit register. Used for the accumulator and the two index
// registers.
type Register struct {
	label string
	value uint8
}

// NewRegister is the preferred method of initialisation for Register.
func NewRegister(val uint8, label string) Register {
	return Register{
		value: val,
		label: label,
	}
}

func (r Register) String() string {
	return fmt.Sprintf("%s=%#02x", r.label, r.value)
}

// Label returns the name of the register.
func (r Register) Label() string {
	return r.label
}

// Value returns the current value of the register.
func (r Register) Value() uint8 {
	return r.value
}

// Address returns the value of the register widened for use as an index.
func (r Register) Address() uint16 {
	return uint16(r.value)
}

// IsNegative returns true if bit 7 is set.
func (r Register) IsNegative() bool {
	return r.value&0x80 == 0x80
}

// IsZero returns true if the register is zero.
func (r Register) IsZero() bool {
	return r.value == 0
}

// Load a value into the register.
func (r *Register) Load(val uint8) {
	r.value = val
}

// Add val to the register, with carry in. Returns the carry out of bit 7
// and whether the signed result overflowed.
//
// Overflow occurs when both operands have the same sign and the sign of the
// result is different to it.
func (r *Register) Add(val uint8, carry bool) (rcarry bool, overflow bool) {
	sum := uint16(r.value) + uint16(val)
	if carry {
		sum++
	}

	v := r.value
	r.value = uint8(sum)

	overflow = ((v ^ r.value) & (val ^ r.value) & 0x80) != 0
	rcarry = sum&0x100 == 0x100

	return rcarry, overflow
}

// Subtract val from the register. The carry argument is the inverse of the
// borrow. The returned carry is set if no borrow occurred.
func (r *Register) Subtract(val uint8, carry bool) (rcarry bool, overflow bool) {
	return r.Add(^val, carry)
}

// Compare the register with val without changing the register. The result
// is computed as 0x100|register minus val. Carry is set if bit 8 of the
// result survives, the low byte of the result is returned for the caller to
// set the zero and sign flags.
func (r Register) Compare(val uint8) (carry bool, result uint8) {
	v := (0x100 | uint16(r.value)) - uint16(val)
	return v&0x100 == 0x100, uint8(v)
}

// AND val with the register.
func (r *Register) AND(val uint8) {
	r.value &= val
}

// EOR val with the register.
func (r *Register) EOR(val uint8) {
	r.value ^= val
}

// ORA val with the register.
func (r *Register) ORA(val uint8) {
	r.value |= val
}

// ASL shifts the register left by one. Returns the bit shifted out.
func (r *Register) ASL() bool {
	carry := r.IsNegative()
	r.value <<= 1
	return carry
}

// LSR shifts the register right by one. Returns the bit shifted out.
func (r *Register) LSR() bool {
	carry := r.value&0x01 == 0x01
	r.value >>= 1
	return carry
}

// ROL rotates the register left through the carry.
func (r *Register) ROL(carry bool) bool {
	rcarry := r.IsNegative()
	r.value <<= 1
	if carry {
		r.value |= 0x01
	}
	return rcarry
}

// ROR rotates the register right through the carry.
func (r *Register) ROR(carry bool) bool {
	rcarry := r.value&0x01 == 0x01
	r.value >>= 1
	if carry {
		r.value |= 0x80
	}
	return rcarry
}
