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

package signals_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/jetsetilly/gopher6502/curated"
	"github.com/jetsetilly/gopher6502/hardware/cpu/signals"
	"github.com/jetsetilly/gopher6502/test"
)

func TestInitialState(t *testing.T) {
	l := signals.NewLines()
	test.ExpectEquality(t, l.Get(signals.Ready), true)
	test.ExpectEquality(t, l.Get(signals.Reset), false)
	test.ExpectEquality(t, l.Get(signals.IRQ), false)
	test.ExpectEquality(t, l.Get(signals.NMI), false)
	test.ExpectEquality(t, l.Get(signals.SO), false)
	test.ExpectEquality(t, l.ResetPending(), false)
}

func TestEdgeLatch(t *testing.T) {
	l := signals.NewLines()

	// latch survives the line going low again
	l.Set(signals.NMI, true)
	l.Set(signals.NMI, false)
	test.ExpectEquality(t, l.Pending(signals.NMI), true)

	// consumed exactly once
	test.ExpectEquality(t, l.Take(signals.NMI), true)
	test.ExpectEquality(t, l.Take(signals.NMI), false)

	// holding the line high is not a new edge
	l.Set(signals.NMI, true)
	test.ExpectEquality(t, l.Take(signals.NMI), true)
	l.Set(signals.NMI, true)
	test.ExpectEquality(t, l.Take(signals.NMI), false)

	// levels do not latch
	l.Set(signals.IRQ, true)
	test.ExpectEquality(t, l.Pending(signals.IRQ), false)
	test.ExpectEquality(t, l.Get(signals.IRQ), true)
}

func TestResetPending(t *testing.T) {
	l := signals.NewLines()
	l.Set(signals.Reset, true)
	test.ExpectEquality(t, l.ResetPending(), true)
	l.Set(signals.Reset, false)
	test.ExpectEquality(t, l.ResetPending(), true)
	test.ExpectEquality(t, l.Take(signals.Reset), true)
	test.ExpectEquality(t, l.ResetPending(), false)
}

func TestObserver(t *testing.T) {
	l := signals.NewLines()

	var changes []string
	l.SetObserver(func(line signals.Line, state bool) {
		changes = append(changes, fmt.Sprintf("%s=%v", line, state))
	})

	l.Set(signals.IRQ, true)
	l.Set(signals.IRQ, true)
	l.Set(signals.Ready, false)
	l.SetObserver(nil)
	l.Set(signals.IRQ, false)

	test.DemandEquality(t, len(changes), 2)
	test.ExpectEquality(t, changes[0], "IRQ=true")
	test.ExpectEquality(t, changes[1], "READY=false")
}

func TestParseLine(t *testing.T) {
	l, err := signals.ParseLine("nmi")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, l, signals.NMI)

	l, err = signals.ParseLine("Ready")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, l, signals.Ready)

	_, err = signals.ParseLine("halt")
	test.ExpectSuccess(t, curated.Is(err, signals.UnknownLine))
}

func TestConcurrentSetters(t *testing.T) {
	l := signals.NewLines()

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := range 100 {
				l.Set(signals.IRQ, (i+j)%2 == 0)
				_ = l.Get(signals.IRQ)
			}
		}(i)
	}
	wg.Wait()
}
