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
package wavwriter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"

	"github.com/jetsetilly/gopher6502/hardware/cpu/signals"
	"github.com/jetsetilly/gopher6502/harness"
	"github.com/jetsetilly/gopher6502/test"
	"github.com/jetsetilly/gopher6502/wavwriter"
)

type lines map[signals.Line]bool

func (l lines) Line(line signals.Line) bool {
	return l[line]
}

func TestWavWriter(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "capture.wav")

	l := lines{signals.Ready: true}
	aw, err := wavwriter.New(filename, l, 1000000)
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, aw.Observe(harness.Access{Address: 0x0200, Data: 0xea, Sync: true}))
	l[signals.NMI] = true
	test.ExpectSuccess(t, aw.Observe(harness.Access{Write: true, Address: 0x01fd, Data: 0x02}))
	test.ExpectEquality(t, aw.Len(), 2)
	test.DemandSuccess(t, aw.Close())

	f, err := os.Open(filename)
	test.DemandSuccess(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	test.DemandSuccess(t, dec.IsValidFile())
	buf, err := dec.FullPCMBuffer()
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, int(dec.NumChans), wavwriter.NumChannels)
	test.ExpectEquality(t, int(dec.SampleRate), 1000000)
	test.DemandEquality(t, len(buf.Data), 2*wavwriter.NumChannels)

	// read, sync, RESET, IRQ, NMI, READY, SO, data
	expected := []int{
		0x7fff, 0x7fff, 0, 0, 0, 0x7fff, 0, 0xea << 7,
		0, 0, 0, 0, 0x7fff, 0x7fff, 0, 0x02 << 7,
	}
	for i, v := range expected {
		test.ExpectEquality(t, buf.Data[i], v, i)
	}
}

func TestBadRate(t *testing.T) {
	_, err := wavwriter.New("x.wav", lines{}, 0)
	test.ExpectFailure(t, err)
}
