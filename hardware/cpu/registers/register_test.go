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

package registers_test

import (
	"testing"

	"github.com/jetsetilly/gopher6502/hardware/cpu/registers"
	"github.com/jetsetilly/gopher6502/test"
)

func TestRegister(t *testing.T) {
	var carry, overflow bool

	r8 := registers.NewRegister(0, "TEST")
	test.ExpectEquality(t, r8.IsZero(), true)
	test.ExpectEquality(t, r8.Value(), 0)
	test.ExpectEquality(t, r8.String(), "TEST=0x00")

	// loading & addition
	r8.Load(127)
	r8.Add(2, false)
	test.ExpectEquality(t, r8.Value(), 129)

	// addition boundary
	r8.Load(255)
	test.ExpectEquality(t, r8.IsNegative(), true)
	carry, overflow = r8.Add(1, false)
	test.ExpectEquality(t, carry, true)
	test.ExpectEquality(t, overflow, false)
	test.ExpectEquality(t, r8.IsZero(), true)

	// addition boundary with carry
	r8.Load(255)
	carry, overflow = r8.Add(1, true)
	test.ExpectEquality(t, carry, true)
	test.ExpectEquality(t, overflow, false)
	test.ExpectEquality(t, r8.Value(), 1)

	// carry in with an operand of 0xff must still carry out
	r8.Load(0x00)
	carry, _ = r8.Add(0xff, true)
	test.ExpectEquality(t, carry, true)
	test.ExpectEquality(t, r8.Value(), 0x00)

	// two positives producing a negative
	r8.Load(0x50)
	carry, overflow = r8.Add(0x50, true)
	test.ExpectEquality(t, r8.Value(), 0xa1)
	test.ExpectEquality(t, carry, false)
	test.ExpectEquality(t, overflow, true)

	// subtraction
	r8.Load(11)
	r8.Subtract(1, true)
	test.ExpectEquality(t, r8.Value(), 10)

	r8.Load(12)
	r8.Subtract(1, false)
	test.ExpectEquality(t, r8.Value(), 10)

	// subtract on boundary, borrow means carry clear
	r8.Load(0)
	carry, _ = r8.Subtract(1, true)
	test.ExpectEquality(t, r8.Value(), 255)
	test.ExpectEquality(t, carry, false)

	// negative minus positive producing a positive
	r8.Load(0x80)
	_, overflow = r8.Subtract(0x01, true)
	test.ExpectEquality(t, r8.Value(), 0x7f)
	test.ExpectEquality(t, overflow, true)

	// logical operators
	r8.Load(0x21)
	r8.AND(0x01)
	test.ExpectEquality(t, r8.Value(), 0x01)
	r8.EOR(0xff)
	test.ExpectEquality(t, r8.Value(), 0xfe)
	r8.ORA(0x01)
	test.ExpectEquality(t, r8.Value(), 0xff)

	// shifts
	r8.Load(0xff)
	carry = r8.ASL()
	test.ExpectEquality(t, carry, true)
	test.ExpectEquality(t, r8.Value(), 0xfe)
	carry = r8.LSR()
	test.ExpectEquality(t, carry, false)
	test.ExpectEquality(t, r8.Value(), 0x7f)

	// rotations
	r8.Load(0x80)
	carry = r8.ROL(true)
	test.ExpectEquality(t, carry, true)
	test.ExpectEquality(t, r8.Value(), 0x01)
	carry = r8.ROR(true)
	test.ExpectEquality(t, carry, true)
	test.ExpectEquality(t, r8.Value(), 0x80)
}

func TestCompare(t *testing.T) {
	r8 := registers.NewRegister(0x40, "A")

	carry, result := r8.Compare(0x40)
	test.ExpectEquality(t, carry, true)
	test.ExpectEquality(t, result, 0x00)

	carry, result = r8.Compare(0x41)
	test.ExpectEquality(t, carry, false)
	test.ExpectEquality(t, result, 0xff)

	carry, result = r8.Compare(0x00)
	test.ExpectEquality(t, carry, true)
	test.ExpectEquality(t, result, 0x40)

	// register is unchanged
	test.ExpectEquality(t, r8.Value(), 0x40)
}

func TestStackPointer(t *testing.T) {
	sp := registers.NewStackPointer(0x00)
	test.ExpectEquality(t, sp.Address(), 0x0100)

	sp.Decrement()
	test.ExpectEquality(t, sp.Value(), 0xff)
	test.ExpectEquality(t, sp.Address(), 0x01ff)

	sp.Increment()
	test.ExpectEquality(t, sp.Value(), 0x00)
	test.ExpectEquality(t, sp.Address(), 0x0100)
}

func TestStatusRegister(t *testing.T) {
	sr := registers.NewStatusRegister()
	test.ExpectEquality(t, sr.Value(), 0xff)
	test.ExpectEquality(t, sr.String(), "SV-BDIZC")

	sr.Load(0x00)
	test.ExpectEquality(t, sr.Value(), 0x00)
	test.ExpectEquality(t, sr.String(), "sv_bdizc")

	// pulling from the stack always sets the break and unused bits
	sr.Pull(0x00)
	test.ExpectEquality(t, sr.Value(), 0x30)
	sr.Pull(0xc3)
	test.ExpectEquality(t, sr.Value(), 0xf3)
	test.ExpectEquality(t, sr.String(), "SV-BdiZC")
}
