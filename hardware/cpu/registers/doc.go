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

// Package registers implements the four types of register found in the 6502:
// the 8 bit general purpose Register (used for A, X and Y), the
// ProgramCounter, the StackPointer and the StatusRegister.
//
// The ProgramCounter is stored as two independent halves. The 6502 latches
// the low and high bytes of a new program counter value in separate bus
// cycles and there are instructions (taken branches, JSR, RTS) where the two
// halves are visibly updated at different times.
//
// The StackPointer is 8 bits wide and always addresses page one. Pushes and
// pulls wrap within the page and never carry into the high byte.
//
// None of the register types affect the status register. Flags are updated
// by the CPU explicitly after an operation. For example:
//
//	a.Load(10)
//	a.Subtract(11, true)
//	sr.Zero = a.IsZero()
//	sr.Sign = a.IsNegative()
package registers
