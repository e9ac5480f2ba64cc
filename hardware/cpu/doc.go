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

// Package cpu emulates the 6502 microprocessor one bus cycle at a time.
//
// Every instruction performs exactly the reads and writes that the real
// chip performs, in the same order. This includes the "phantom" accesses
// whose values are discarded: the read of the next program byte by single
// byte instructions, the read of the uncarried address by indexed
// addressing modes, the double write of read-modify-write instructions, and
// so on. External test equipment compares the emulation against the real
// chip cycle by cycle so the phantom accesses are as important as the real
// ones.
//
// The CPU accesses memory through the cpubus.Bus interface. Each call to
// Read() or Write() is one bus cycle.
//
// The CPU is driven by calling Step() or Run(). Step() performs the reset
// sequence if a reset is pending or otherwise executes one instruction,
// servicing a pending NMI or IRQ beforehand.
//
// # Signal lines
//
// The RESET, IRQ, NMI, READY and SO lines are set with the SetReset(),
// SetIRQ(), SetNMI(), SetReady() and SetSetOverflow() functions. These can
// be called at any time, from any goroutine, and from inside a call to the
// Bus. The CPU samples the lines at the points where the real chip does:
//
//   - NMI is edge triggered. It is serviced at the next instruction
//     boundary, once per rising edge.
//   - IRQ is level triggered. It is serviced at any instruction boundary
//     where the line is high and the interrupt disable flag is clear.
//   - READY low stalls the CPU. The bus access in progress is repeated with
//     identical arguments until READY is high again.
//   - SO is edge triggered. A rising edge sets the overflow flag at the end
//     of the current bus cycle.
//   - RESET is checked at every bus access. A rising edge abandons the
//     current instruction. The CPU idles while RESET is held and then runs
//     the reset sequence.
//
// # Reset during an instruction
//
// When RESET is seen during an instruction, the bus access returns the
// ResetMidInstruction sentinel error. Every function that accesses the bus
// returns immediately on error and so the error travels back to Step(),
// which discards it. The instruction is left incomplete and the next call to
// Step() begins the reset sequence. A write that is interrupted in this way
// becomes a read of the same address.
//
// # Known incompatibility
//
// Some behaviour is an approximation of the real chip, for example the
// values on the bus during the reset sequence. The IsIncompatible()
// function returns true during a bus access that is approximated in this
// way. A conformance harness can use it to tolerate a mismatch for that
// access.
package cpu
