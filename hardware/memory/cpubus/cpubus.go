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

package cpubus

// Bus defines the operations for the memory and IO system as seen from the
// CPU. Every call is one bus cycle. The implementation decides what is mapped
// where and what side effects an access has.
//
// The sync argument to Read() is true when the cycle is an opcode fetch. The
// implementation is not required to return a different value because of it
// but harnesses and debuggers will want to know.
//
// The CPU may call Read() or Write() more than once with identical arguments
// for what is logically a single access. This happens while the READY line is
// deasserted and the real chip stretches the clock.
//
// An error returned by either function stops the CPU. The error is returned
// unchanged to the caller of CPU.Step() or CPU.Run().
type Bus interface {
	Read(address uint16, sync bool) (uint8, error)
	Write(address uint16, data uint8) error
}

// The vector addresses. Each address is the location of the low byte of the
// vector. The high byte is at the next address.
const (
	NMI   = uint16(0xfffa)
	Reset = uint16(0xfffc)
	IRQ   = uint16(0xfffe)

	// BRK shares the IRQ vector.
	BRK = IRQ
)

// StackPage is the high byte of every stack address.
const StackPage = uint16(0x0100)
