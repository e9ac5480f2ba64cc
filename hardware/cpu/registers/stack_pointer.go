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

import "fmt"

// StackPointer is the 8 bit SP register. The stack always lives in page one.
type StackPointer struct {
	value uint8
}

// NewStackPointer is the preferred method of initialisation for the
// StackPointer.
func NewStackPointer(val uint8) StackPointer {
	return StackPointer{value: val}
}

// Label returns an identifying string for the SP.
func (sp StackPointer) Label() string {
	return "SP"
}

func (sp StackPointer) String() string {
	return fmt.Sprintf("%s=%#02x", sp.Label(), sp.value)
}

// Value returns the 8 bit value of the SP.
func (sp StackPointer) Value() uint8 {
	return sp.value
}

// Address returns the page one address the SP points to.
func (sp StackPointer) Address() uint16 {
	return 0x0100 | uint16(sp.value)
}

// Load an 8 bit value into the SP.
func (sp *StackPointer) Load(val uint8) {
	sp.value = val
}

// Increment wraps at 0xff.
func (sp *StackPointer) Increment() {
	sp.value++
}

// Decrement wraps at 0x00.
func (sp *StackPointer) Decrement() {
	sp.value--
}
