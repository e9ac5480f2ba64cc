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
	"strings"
)

// Bit positions of the flags in the status register.
const (
	Carry            = uint8(0x01)
	Zero             = uint8(0x02)
	InterruptDisable = uint8(0x04)
	DecimalMode      = uint8(0x08)
	Break            = uint8(0x10)
	Unused           = uint8(0x20)
	Overflow         = uint8(0x40)
	Sign             = uint8(0x80)
)

// PulledBits are forced to one whenever the status register is restored
// from the stack.
const PulledBits = Break | Unused

// StatusRegister is the special purpose register that stores the flags of
// the CPU.
type StatusRegister struct {
	Sign             bool
	Overflow         bool
	Unused           bool
	Break            bool
	DecimalMode      bool
	InterruptDisable bool
	Zero             bool
	Carry            bool
}

// NewStatusRegister returns a status register with every bit set. This is
// the state of a real chip before the first reset.
func NewStatusRegister() StatusRegister {
	var sr StatusRegister
	sr.Load(0xff)
	return sr
}

// Label returns the canonical name for the status register.
func (sr StatusRegister) Label() string {
	return "SR"
}

// String returns the flags as an eight character string. Upper case means
// the flag is set.
func (sr StatusRegister) String() string {
	s := strings.Builder{}

	flag := func(set bool, r rune) {
		if set {
			s.WriteRune(r - 'a' + 'A')
		} else {
			s.WriteRune(r)
		}
	}

	flag(sr.Sign, 's')
	flag(sr.Overflow, 'v')
	if sr.Unused {
		s.WriteRune('-')
	} else {
		s.WriteRune('_')
	}
	flag(sr.Break, 'b')
	flag(sr.DecimalMode, 'd')
	flag(sr.InterruptDisable, 'i')
	flag(sr.Zero, 'z')
	flag(sr.Carry, 'c')

	return s.String()
}

// Value converts the StatusRegister into a value suitable for pushing onto
// the stack.
func (sr StatusRegister) Value() uint8 {
	var v uint8

	if sr.Sign {
		v |= Sign
	}
	if sr.Overflow {
		v |= Overflow
	}
	if sr.Unused {
		v |= Unused
	}
	if sr.Break {
		v |= Break
	}
	if sr.DecimalMode {
		v |= DecimalMode
	}
	if sr.InterruptDisable {
		v |= InterruptDisable
	}
	if sr.Zero {
		v |= Zero
	}
	if sr.Carry {
		v |= Carry
	}

	return v
}

// Load sets every bit of the status register from v.
func (sr *StatusRegister) Load(v uint8) {
	sr.Sign = v&Sign == Sign
	sr.Overflow = v&Overflow == Overflow
	sr.Unused = v&Unused == Unused
	sr.Break = v&Break == Break
	sr.DecimalMode = v&DecimalMode == DecimalMode
	sr.InterruptDisable = v&InterruptDisable == InterruptDisable
	sr.Zero = v&Zero == Zero
	sr.Carry = v&Carry == Carry
}

// Pull sets the status register from a value taken from the stack. The
// unused and break bits are always set afterwards.
func (sr *StatusRegister) Pull(v uint8) {
	sr.Load(v | PulledBits)
}
