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
	"fmt"
	"testing"

	"github.com/jetsetilly/gopher6502/hardware/cpu"
)

type access struct {
	write   bool
	address uint16
	data    uint8
	sync    bool
}

func (a access) String() string {
	d := "R"
	if a.write {
		d = "W"
	}
	return fmt.Sprintf("%s %#04x %#02x %v", d, a.address, a.data, a.sync)
}

func read(address uint16, data uint8) access {
	return access{address: address, data: data}
}

func fetch(address uint16, data uint8) access {
	return access{address: address, data: data, sync: true}
}

func write(address uint16, data uint8) access {
	return access{write: true, address: address, data: data}
}

// mockBus is 64k of RAM that records every access. the hook, if not nil, is
// called at the start of every access with the number of previous accesses.
type mockBus struct {
	mem  [0x10000]uint8
	log  []access
	hook func(n int)
}

func (b *mockBus) Read(address uint16, sync bool) (uint8, error) {
	if b.hook != nil {
		b.hook(len(b.log))
	}
	v := b.mem[address]
	b.log = append(b.log, access{address: address, data: v, sync: sync})
	return v, nil
}

func (b *mockBus) Write(address uint16, data uint8) error {
	if b.hook != nil {
		b.hook(len(b.log))
	}
	b.mem[address] = data
	b.log = append(b.log, access{write: true, address: address, data: data})
	return nil
}

func (b *mockBus) load(address uint16, data ...uint8) {
	for i, d := range data {
		b.mem[address+uint16(i)] = d
	}
}

// newCPU creates a CPU with the program loaded at 0x0200 and the PC pointing
// to it. the stack pointer is 0xfd and every flag is clear except the break
// and unused bits.
func newCPU(program ...uint8) (*cpu.CPU, *mockBus) {
	bus := &mockBus{}
	bus.load(0x0200, program...)

	mc := cpu.NewCPU(bus)
	mc.PC.Load(0x0200)
	mc.SP.Load(0xfd)
	mc.Status.Load(0x30)

	return mc, bus
}

// expectAccesses compares the log with the expected accesses.
func expectAccesses(t *testing.T, log []access, expected ...access) {
	t.Helper()

	if len(log) != len(expected) {
		t.Errorf("number of accesses: %d instead of %d", len(log), len(expected))
	}

	for i := range min(len(log), len(expected)) {
		if log[i] != expected[i] {
			t.Errorf("access %d: %s instead of %s", i, log[i], expected[i])
		}
	}
}
