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

package cpu_test

import (
	"testing"

	"github.com/jetsetilly/gopher6502/hardware/cpu"
	"github.com/jetsetilly/gopher6502/test"
)

func TestResetSequence(t *testing.T) {
	bus := &mockBus{}
	bus.load(0xfffc, 0x00, 0x02)
	bus.load(0x0200, 0xa9, 0x42)

	mc := cpu.NewCPU(bus)

	var states []cpu.ResetState
	bus.hook = func(n int) {
		states = append(states, mc.ResetState)
		if n == 1 {
			mc.SetReset(false)
		}
	}

	mc.SetReset(true)
	step(t, mc, 1)

	expectAccesses(t, bus.log,
		read(0x0000, 0x00),
		read(0x0000, 0x00),
		read(0x0000, 0x00),
		read(0x0001, 0x00),
		read(0x0100, 0x00),
		read(0x01ff, 0x00),
		read(0x01fe, 0x00),
		read(0xfffc, 0x00),
		read(0xfffd, 0x02),
	)
	test.ExpectEquality(t, states[0], cpu.ResetActive)
	test.ExpectEquality(t, states[2], cpu.ResetVectoring)
	test.ExpectEquality(t, mc.ResetState, cpu.Running)
	test.ExpectEquality(t, mc.PC.Address(), 0x0200)
	test.ExpectEquality(t, mc.SP.Value(), 0xfd)
	test.ExpectEquality(t, mc.Status.InterruptDisable, true)

	bus.log = bus.log[:0]
	step(t, mc, 1)

	expectAccesses(t, bus.log,
		fetch(0x0200, 0xa9),
		read(0x0201, 0x42),
	)
	test.ExpectEquality(t, mc.A.Value(), 0x42)
	test.ExpectEquality(t, mc.PC.Address(), 0x0202)
}

func TestResetIncompatible(t *testing.T) {
	bus := &mockBus{}
	mc := cpu.NewCPU(bus)

	var incompatible []bool
	bus.hook = func(n int) {
		incompatible = append(incompatible, mc.IsIncompatible())
		if n == 0 {
			mc.SetReset(false)
		}
	}

	mc.SetReset(true)
	step(t, mc, 1)

	// one hold cycle, two cycles of unverified reads and then the stack
	// and vector reads
	test.ExpectEquality(t, len(incompatible), 8)
	for i, v := range incompatible {
		test.ExpectEquality(t, v, i < 3, i)
	}
}

func TestResetMidRead(t *testing.T) {
	// LDA $1234
	mc, bus := newCPU(0xad, 0x34, 0x12)
	bus.load(0xfffc, 0x00, 0x03)
	bus.mem[0x1234] = 0x99

	bus.hook = func(n int) {
		switch n {
		case 1:
			mc.SetReset(true)
		case 3:
			mc.SetReset(false)
		}
	}
	step(t, mc, 1)

	expectAccesses(t, bus.log,
		fetch(0x0200, 0xad),
		read(0x0201, 0x34),
		read(0x0201, 0x34),
		read(0x0201, 0x34),
	)
	test.ExpectEquality(t, mc.LastResult.Final, false)
	test.ExpectEquality(t, mc.ResetState, cpu.ResetActive)
	test.ExpectEquality(t, mc.A.Value(), 0x00)

	bus.log = bus.log[:0]
	bus.hook = nil
	step(t, mc, 1)

	expectAccesses(t, bus.log,
		read(0x0201, 0x34),
		read(0x0202, 0x12),
		read(0x01fd, 0x00),
		read(0x01fc, 0x00),
		read(0x01fb, 0x00),
		read(0xfffc, 0x00),
		read(0xfffd, 0x03),
	)
	test.ExpectEquality(t, mc.ResetState, cpu.Running)
	test.ExpectEquality(t, mc.PC.Address(), 0x0300)
	test.ExpectEquality(t, mc.SP.Value(), 0xfa)
}

func TestResetMidWrite(t *testing.T) {
	// JSR $0300. RESET arrives during the first push
	mc, bus := newCPU(0x20, 0x00, 0x03)
	bus.load(0xfffc, 0x00, 0x04)

	bus.hook = func(n int) {
		switch n {
		case 3:
			mc.SetReset(true)
		case 5:
			mc.SetReset(false)
		}
	}
	step(t, mc, 1)

	// the write has happened but the instruction is abandoned. the bus idles
	// at the same address while RESET is held
	expectAccesses(t, bus.log,
		fetch(0x0200, 0x20),
		read(0x0201, 0x00),
		read(0x01fd, 0x00),
		write(0x01fd, 0x02),
		read(0x01fd, 0x02),
		read(0x01fd, 0x02),
	)
	test.ExpectEquality(t, bus.mem[0x01fc], 0x00)
	test.ExpectEquality(t, mc.SP.Value(), 0xfd)
	test.ExpectEquality(t, mc.LastResult.Final, false)
	test.ExpectEquality(t, mc.ResetState, cpu.ResetActive)

	bus.log = bus.log[:0]
	bus.hook = nil
	step(t, mc, 1)
	test.ExpectEquality(t, len(bus.log), 7)
	test.ExpectEquality(t, mc.ResetState, cpu.Running)
	test.ExpectEquality(t, mc.PC.Address(), 0x0400)
}

func TestResetDuringVectoring(t *testing.T) {
	bus := &mockBus{}
	bus.load(0xfffc, 0x00, 0x02)
	mc := cpu.NewCPU(bus)

	bus.hook = func(n int) {
		switch n {
		case 0:
			mc.SetReset(false)
		case 6:
			mc.SetReset(true)
		case 7:
			mc.SetReset(false)
		}
	}

	mc.SetReset(true)
	step(t, mc, 1)
	test.ExpectEquality(t, len(bus.log), 8)
	test.ExpectEquality(t, mc.ResetState, cpu.ResetActive)

	step(t, mc, 1)
	test.ExpectEquality(t, len(bus.log), 15)
	test.ExpectEquality(t, mc.ResetState, cpu.Running)
	test.ExpectEquality(t, mc.PC.Address(), 0x0200)
}

func TestResetLevel(t *testing.T) {
	// a reset that is asserted and released between instructions is still
	// serviced
	mc, bus := newCPU(0xea, 0xea)
	bus.load(0xfffc, 0x00, 0x03)
	bus.load(0x0300, nops(4)...)
	mc.SetReset(true)
	mc.SetReset(false)

	step(t, mc, 1)
	test.ExpectEquality(t, mc.PC.Address(), 0x0300)
	test.ExpectEquality(t, mc.ResetState, cpu.Running)

	// repeating the level is not a new edge
	mc.SetReset(true)
	mc.SetReset(true)
	bus.hook = func(_ int) {
		mc.SetReset(false)
	}
	step(t, mc, 1)
	test.ExpectEquality(t, mc.ResetState, cpu.Running)
	test.ExpectEquality(t, mc.PC.Address(), 0x0300)

	step(t, mc, 1)
	test.ExpectEquality(t, mc.LastResult.Final, true)
	test.ExpectEquality(t, mc.PC.Address(), 0x0301)
}
