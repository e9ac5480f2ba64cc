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
	"context"
	"errors"
	"testing"

	"github.com/jetsetilly/gopher6502/curated"
	"github.com/jetsetilly/gopher6502/hardware/cpu"
	"github.com/jetsetilly/gopher6502/hardware/cpu/execution"
	"github.com/jetsetilly/gopher6502/hardware/cpu/instructions"
	"github.com/jetsetilly/gopher6502/test"
)

func step(t *testing.T, mc *cpu.CPU, n int) {
	t.Helper()
	for range n {
		test.DemandSuccess(t, mc.Step())
	}
}

func TestPowerOn(t *testing.T) {
	mc := cpu.NewCPU(&mockBus{})
	test.ExpectEquality(t, mc.PC.Address(), 0x0000)
	test.ExpectEquality(t, mc.A.Value(), 0x00)
	test.ExpectEquality(t, mc.SP.Value(), 0x00)
	test.ExpectEquality(t, mc.Status.Value(), 0xff)
	test.ExpectEquality(t, mc.ResetState, cpu.Running)
	test.ExpectEquality(t, mc.String(), "PC=0x0000 A=0x00 X=0x00 Y=0x00 SP=0x00 SR=SV-BDIZC")
}

func TestLoadImmediate(t *testing.T) {
	mc, bus := newCPU(0xa9, 0x42)
	step(t, mc, 1)

	expectAccesses(t, bus.log,
		fetch(0x0200, 0xa9),
		read(0x0201, 0x42),
	)
	test.ExpectEquality(t, mc.A.Value(), 0x42)
	test.ExpectEquality(t, mc.PC.Address(), 0x0202)
	test.ExpectEquality(t, mc.LastResult.String(), "0x0200 LDA #$42")
	test.ExpectSuccess(t, mc.LastResult.IsValid())
}

func TestIndexedPenalty(t *testing.T) {
	// LDA $12ff,X crossing a page
	mc, bus := newCPU(0xbd, 0xff, 0x12)
	bus.mem[0x1300] = 0x99
	mc.X.Load(0x01)
	step(t, mc, 1)

	expectAccesses(t, bus.log,
		fetch(0x0200, 0xbd),
		read(0x0201, 0xff),
		read(0x0202, 0x12),
		read(0x1200, 0x00),
		read(0x1300, 0x99),
	)
	test.ExpectEquality(t, mc.A.Value(), 0x99)
	test.ExpectEquality(t, mc.LastResult.PageFault, true)
	test.ExpectEquality(t, mc.LastResult.Cycles, 5)

	// LDA $1200,X not crossing a page
	mc, bus = newCPU(0xbd, 0x00, 0x12)
	mc.X.Load(0x01)
	step(t, mc, 1)
	test.ExpectEquality(t, len(bus.log), 4)
	test.ExpectEquality(t, mc.LastResult.PageFault, false)

	// STA $1200,X always takes the extra cycle
	mc, bus = newCPU(0x9d, 0x00, 0x12)
	mc.A.Load(0x55)
	step(t, mc, 1)

	expectAccesses(t, bus.log,
		fetch(0x0200, 0x9d),
		read(0x0201, 0x00),
		read(0x0202, 0x12),
		read(0x1200, 0x00),
		write(0x1200, 0x55),
	)
	test.ExpectEquality(t, mc.LastResult.PageFault, false)
	test.ExpectSuccess(t, mc.LastResult.IsValid())
}

func TestIndirectModes(t *testing.T) {
	// LDA ($10,X)
	mc, bus := newCPU(0xa1, 0x10)
	bus.load(0x0015, 0x34, 0x12)
	bus.mem[0x1234] = 0x77
	mc.X.Load(0x05)
	step(t, mc, 1)

	expectAccesses(t, bus.log,
		fetch(0x0200, 0xa1),
		read(0x0201, 0x10),
		read(0x0010, 0x00),
		read(0x0015, 0x34),
		read(0x0016, 0x12),
		read(0x1234, 0x77),
	)
	test.ExpectEquality(t, mc.A.Value(), 0x77)

	// LDA ($ff),Y with the pointer wrapping in the zero page
	mc, bus = newCPU(0xb1, 0xff)
	bus.mem[0x00ff] = 0xf0
	bus.mem[0x0000] = 0x12
	bus.mem[0x1300] = 0x88
	mc.Y.Load(0x10)
	step(t, mc, 1)

	expectAccesses(t, bus.log,
		fetch(0x0200, 0xb1),
		read(0x0201, 0xff),
		read(0x00ff, 0xf0),
		read(0x0000, 0x12),
		read(0x1200, 0x00),
		read(0x1300, 0x88),
	)
	test.ExpectEquality(t, mc.A.Value(), 0x88)
	test.ExpectEquality(t, mc.LastResult.PageFault, true)

	// EOR ($20)
	mc, bus = newCPU(0x52, 0x20)
	bus.load(0x0020, 0x00, 0x30)
	bus.mem[0x3000] = 0x11
	mc.A.Load(0x01)
	step(t, mc, 1)

	expectAccesses(t, bus.log,
		fetch(0x0200, 0x52),
		read(0x0201, 0x20),
		read(0x0020, 0x00),
		read(0x0021, 0x30),
		read(0x3000, 0x11),
	)
	test.ExpectEquality(t, mc.A.Value(), 0x10)
	test.ExpectSuccess(t, mc.LastResult.IsValid())
}

func TestZeroPageIndexedWraps(t *testing.T) {
	// LDA $f0,X
	mc, bus := newCPU(0xb5, 0xf0)
	bus.mem[0x0010] = 0x66
	mc.X.Load(0x20)
	step(t, mc, 1)

	expectAccesses(t, bus.log,
		fetch(0x0200, 0xb5),
		read(0x0201, 0xf0),
		read(0x00f0, 0x00),
		read(0x0010, 0x66),
	)
	test.ExpectEquality(t, mc.A.Value(), 0x66)
}

func TestReadModifyWrite(t *testing.T) {
	// INC $10
	mc, bus := newCPU(0xe6, 0x10)
	bus.mem[0x0010] = 0x7f
	step(t, mc, 1)

	expectAccesses(t, bus.log,
		fetch(0x0200, 0xe6),
		read(0x0201, 0x10),
		read(0x0010, 0x7f),
		write(0x0010, 0x7f),
		write(0x0010, 0x80),
	)
	test.ExpectEquality(t, mc.Status.Sign, true)
	test.ExpectEquality(t, mc.Status.Zero, false)

	// ASL A
	mc, bus = newCPU(0x0a)
	mc.A.Load(0x81)
	step(t, mc, 1)

	expectAccesses(t, bus.log,
		fetch(0x0200, 0x0a),
		read(0x0201, 0x00),
	)
	test.ExpectEquality(t, mc.A.Value(), 0x02)
	test.ExpectEquality(t, mc.Status.Carry, true)
	test.ExpectEquality(t, mc.PC.Address(), 0x0201)

	// ROR $1234 with carry in
	mc, bus = newCPU(0x6e, 0x34, 0x12)
	bus.mem[0x1234] = 0x02
	mc.Status.Carry = true
	step(t, mc, 1)
	test.ExpectEquality(t, bus.mem[0x1234], 0x81)
	test.ExpectEquality(t, mc.Status.Carry, false)
	test.ExpectEquality(t, mc.LastResult.Cycles, 6)
}

func TestJmpIndirectBug(t *testing.T) {
	mc, bus := newCPU(0x6c, 0xff, 0x12)
	bus.mem[0x12ff] = 0x34
	bus.mem[0x1200] = 0x12
	bus.mem[0x1300] = 0x56
	step(t, mc, 1)

	expectAccesses(t, bus.log,
		fetch(0x0200, 0x6c),
		read(0x0201, 0xff),
		read(0x0202, 0x12),
		read(0x12ff, 0x34),
		read(0x1200, 0x12),
	)
	test.ExpectEquality(t, mc.PC.Address(), 0x1234)
	test.ExpectEquality(t, mc.LastResult.CPUBug, execution.JmpIndirectAddressingBug)

	mc, bus = newCPU(0x6c, 0x00, 0x12)
	bus.load(0x1200, 0x78, 0x56)
	step(t, mc, 1)
	test.ExpectEquality(t, mc.PC.Address(), 0x5678)
	test.ExpectEquality(t, mc.LastResult.CPUBug, execution.NoBug)
}

func TestBranch(t *testing.T) {
	// BNE not taken
	mc, bus := newCPU(0xd0, 0x02)
	mc.Status.Zero = true
	step(t, mc, 1)
	test.ExpectEquality(t, len(bus.log), 2)
	test.ExpectEquality(t, mc.PC.Address(), 0x0202)

	// BNE taken, same page
	mc, bus = newCPU(0xd0, 0x02)
	step(t, mc, 1)
	expectAccesses(t, bus.log,
		fetch(0x0200, 0xd0),
		read(0x0201, 0x02),
		read(0x0202, 0x00),
	)
	test.ExpectEquality(t, mc.PC.Address(), 0x0204)
	test.ExpectEquality(t, mc.LastResult.PageFault, false)

	// BNE taken, backwards to the previous page. the low byte of the PC is
	// corrected before the high byte
	mc, bus = newCPU(0xd0, 0x80)
	step(t, mc, 1)
	expectAccesses(t, bus.log,
		fetch(0x0200, 0xd0),
		read(0x0201, 0x80),
		read(0x0202, 0x00),
		read(0x0282, 0x00),
	)
	test.ExpectEquality(t, mc.PC.Address(), 0x0182)
	test.ExpectEquality(t, mc.LastResult.PageFault, true)
	test.ExpectSuccess(t, mc.LastResult.IsValid())
}

func TestSubroutine(t *testing.T) {
	// JSR $0300 followed by RTS
	mc, bus := newCPU(0x20, 0x00, 0x03)
	bus.mem[0x0300] = 0x60
	step(t, mc, 1)

	expectAccesses(t, bus.log,
		fetch(0x0200, 0x20),
		read(0x0201, 0x00),
		read(0x01fd, 0x00),
		write(0x01fd, 0x02),
		write(0x01fc, 0x02),
		read(0x0202, 0x03),
	)
	test.ExpectEquality(t, mc.PC.Address(), 0x0300)
	test.ExpectEquality(t, mc.SP.Value(), 0xfb)
	test.ExpectSuccess(t, mc.LastResult.IsValid())

	bus.log = bus.log[:0]
	step(t, mc, 1)

	expectAccesses(t, bus.log,
		fetch(0x0300, 0x60),
		read(0x0301, 0x00),
		read(0x01fb, 0x00),
		read(0x01fc, 0x02),
		read(0x01fd, 0x02),
		read(0x0202, 0x03),
	)
	test.ExpectEquality(t, mc.PC.Address(), 0x0203)
	test.ExpectEquality(t, mc.SP.Value(), 0xfd)
	test.ExpectSuccess(t, mc.LastResult.IsValid())
}

func TestBreak(t *testing.T) {
	// BRK followed by RTI
	mc, bus := newCPU(0x00, 0xea)
	bus.load(0xfffe, 0x00, 0x04)
	bus.mem[0x0400] = 0x40
	mc.Status.Carry = true
	step(t, mc, 1)

	expectAccesses(t, bus.log,
		fetch(0x0200, 0x00),
		read(0x0201, 0xea),
		write(0x01fd, 0x02),
		write(0x01fc, 0x02),
		write(0x01fb, 0x31),
		read(0xfffe, 0x00),
		read(0xffff, 0x04),
	)
	test.ExpectEquality(t, mc.PC.Address(), 0x0400)
	test.ExpectEquality(t, mc.Status.InterruptDisable, true)
	test.ExpectSuccess(t, mc.LastResult.IsValid())

	bus.log = bus.log[:0]
	step(t, mc, 1)

	expectAccesses(t, bus.log,
		fetch(0x0400, 0x40),
		read(0x0401, 0x00),
		read(0x01fa, 0x00),
		read(0x01fb, 0x31),
		read(0x01fc, 0x02),
		read(0x01fd, 0x02),
	)
	test.ExpectEquality(t, mc.PC.Address(), 0x0202)
	test.ExpectEquality(t, mc.Status.InterruptDisable, false)
	test.ExpectEquality(t, mc.Status.Carry, true)
	test.ExpectSuccess(t, mc.LastResult.IsValid())
}

func TestStack(t *testing.T) {
	// LDA #$80; PHA; LDA #$00; PLA
	mc, bus := newCPU(0xa9, 0x80, 0x48, 0xa9, 0x00, 0x68)
	step(t, mc, 2)
	test.ExpectEquality(t, bus.mem[0x01fd], 0x80)
	test.ExpectEquality(t, mc.SP.Value(), 0xfc)

	bus.log = bus.log[:0]
	step(t, mc, 2)
	test.ExpectEquality(t, mc.A.Value(), 0x80)
	test.ExpectEquality(t, mc.Status.Sign, true)
	test.ExpectEquality(t, mc.SP.Value(), 0xfd)
	expectAccesses(t, bus.log[2:],
		fetch(0x0205, 0x68),
		read(0x0206, 0x00),
		read(0x01fc, 0x00),
		read(0x01fd, 0x80),
	)

	// PHP; CLC; CLV; CLD; PLP restores every flag. the break and unused bits
	// were clear when pushed but are set when pulled
	mc, bus = newCPU(0x08, 0x18, 0xb8, 0xd8, 0x28)
	mc.Status.Load(0xcf)
	step(t, mc, 4)
	test.ExpectEquality(t, bus.mem[0x01fd], 0xcf)
	test.ExpectEquality(t, mc.Status.Value(), 0x86)

	step(t, mc, 1)
	test.ExpectEquality(t, mc.Status.Value(), 0xff)
	test.ExpectEquality(t, mc.SP.Value(), 0xfd)

	// PLP always sets the break and unused bits
	mc, bus = newCPU(0x28)
	bus.mem[0x01fe] = 0x01
	step(t, mc, 1)
	test.ExpectEquality(t, mc.Status.Value(), 0x31)
}

func TestArithmetic(t *testing.T) {
	// ADC #$50 with carry in and signed overflow
	mc, _ := newCPU(0x69, 0x50)
	mc.A.Load(0x50)
	mc.Status.Carry = true
	step(t, mc, 1)
	test.ExpectEquality(t, mc.A.Value(), 0xa1)
	test.ExpectEquality(t, mc.Status.Overflow, true)
	test.ExpectEquality(t, mc.Status.Carry, false)
	test.ExpectEquality(t, mc.Status.Sign, true)

	// SBC #$b0 with carry set
	mc, _ = newCPU(0xe9, 0xb0)
	mc.A.Load(0x50)
	mc.Status.Carry = true
	step(t, mc, 1)
	test.ExpectEquality(t, mc.A.Value(), 0xa0)
	test.ExpectEquality(t, mc.Status.Carry, false)
	test.ExpectEquality(t, mc.Status.Overflow, true)

	// CMP #$40; CMP #$41
	mc, _ = newCPU(0xc9, 0x40, 0xc9, 0x41)
	mc.A.Load(0x40)
	step(t, mc, 1)
	test.ExpectEquality(t, mc.Status.Zero, true)
	test.ExpectEquality(t, mc.Status.Carry, true)
	step(t, mc, 1)
	test.ExpectEquality(t, mc.Status.Zero, false)
	test.ExpectEquality(t, mc.Status.Carry, false)
	test.ExpectEquality(t, mc.Status.Sign, true)
	test.ExpectEquality(t, mc.A.Value(), 0x40)

	// INC A; DEC A
	mc, _ = newCPU(0x1a, 0x3a)
	mc.A.Load(0xff)
	mc.X.Load(0x10)
	step(t, mc, 1)
	test.ExpectEquality(t, mc.A.Value(), 0x00)
	test.ExpectEquality(t, mc.Status.Zero, true)
	step(t, mc, 1)
	test.ExpectEquality(t, mc.A.Value(), 0xff)
	test.ExpectEquality(t, mc.X.Value(), 0x10)
	test.ExpectEquality(t, mc.Status.Sign, true)
}

func TestBit(t *testing.T) {
	// BIT $10
	mc, bus := newCPU(0x24, 0x10)
	bus.mem[0x0010] = 0xc0
	mc.A.Load(0x01)
	step(t, mc, 1)
	test.ExpectEquality(t, mc.Status.Zero, true)
	test.ExpectEquality(t, mc.Status.Sign, true)
	test.ExpectEquality(t, mc.Status.Overflow, true)

	// BIT $10 with a common bit
	mc, bus = newCPU(0x24, 0x10)
	bus.mem[0x0010] = 0x03
	mc.A.Load(0x01)
	step(t, mc, 1)
	test.ExpectEquality(t, mc.Status.Zero, false)
	test.ExpectEquality(t, mc.Status.Sign, false)

	// BIT #$c0 only affects the zero flag
	mc, _ = newCPU(0x89, 0xc0)
	mc.A.Load(0x01)
	step(t, mc, 1)
	test.ExpectEquality(t, mc.Status.Zero, true)
	test.ExpectEquality(t, mc.Status.Sign, false)
	test.ExpectEquality(t, mc.Status.Overflow, false)
}

func TestTransfers(t *testing.T) {
	// LDX #$00; LDA #$01; TXS
	mc, _ := newCPU(0xa2, 0x00, 0xa9, 0x01, 0x9a)
	step(t, mc, 3)
	test.ExpectEquality(t, mc.SP.Value(), 0x00)
	test.ExpectEquality(t, mc.Status.Zero, false)

	// TSX
	mc, _ = newCPU(0xba)
	step(t, mc, 1)
	test.ExpectEquality(t, mc.X.Value(), 0xfd)
	test.ExpectEquality(t, mc.Status.Sign, true)
}

func TestDecimalMode(t *testing.T) {
	// SED; ADC #$01
	mc, bus := newCPU(0xf8, 0x69, 0x01)

	var incompatible []bool
	bus.hook = func(_ int) {
		incompatible = append(incompatible, mc.IsIncompatible())
	}

	step(t, mc, 2)
	test.ExpectEquality(t, len(incompatible), 4)
	test.ExpectEquality(t, incompatible[2], false)
	test.ExpectEquality(t, incompatible[3], true)
	test.ExpectEquality(t, mc.IsIncompatible(), false)
	test.ExpectEquality(t, mc.A.Value(), 0x01)
}

func TestUnimplementedInstruction(t *testing.T) {
	mc, _ := newCPU(0x02)
	err := mc.Step()
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, cpu.UnimplementedInstruction))
	test.ExpectEquality(t, mc.LastResult.Final, false)

	// every opcode without a definition stops the CPU after the fetch
	var count int
	for opcode, defn := range instructions.GetDefinitions() {
		if defn != nil {
			continue
		}
		count++

		mc, bus := newCPU(uint8(opcode))
		err := mc.Step()
		test.ExpectSuccess(t, curated.Is(err, cpu.UnimplementedInstruction), opcode)
		test.ExpectEquality(t, len(bus.log), 1, opcode)
		test.ExpectEquality(t, mc.LastResult.Final, false, opcode)
	}
	test.ExpectEquality(t, count, 256-159)
}

func TestRun(t *testing.T) {
	// NOP loop
	mc, _ := newCPU(0xea, 0x4c, 0x00, 0x02)

	stop := errors.New("stop")
	steps := 0

	err := mc.Run(context.Background(), func() error {
		steps++
		if steps == 10 {
			return stop
		}
		return nil
	})
	test.ExpectSuccess(t, errors.Is(err, stop))
	test.ExpectEquality(t, steps, 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = mc.Run(ctx, nil)
	test.ExpectSuccess(t, errors.Is(err, context.Canceled))
}

func TestState(t *testing.T) {
	mc, _ := newCPU(0xa9, 0x42)
	step(t, mc, 1)

	s := mc.State()
	test.ExpectEquality(t, s.PC, 0x0202)
	test.ExpectEquality(t, s.A, 0x42)
	test.ExpectEquality(t, s.SP, 0xfd)
	test.ExpectEquality(t, s.TotalCycles, 2)
	test.ExpectEquality(t, s.LastResult, "0x0200 LDA #$42")

	snap := mc.Snapshot()
	step(t, mc, 1)
	test.ExpectEquality(t, snap.PC.Address(), 0x0202)
}
