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

package future

import (
	"container/list"
	"fmt"
	"strings"
)

// Event represents a single scheduled action.
type Event struct {
	ticker *Ticker
	elem   *list.Element

	label string

	// the number of cycles the event began with
	initialCycles int

	// the number of remaining ticks before the payload is run
	remainingCycles int

	payload func()
}

func (ev *Event) String() string {
	label := strings.TrimSpace(ev.label)
	if label == "" {
		label = "[unlabelled event]"
	}
	return fmt.Sprintf("%s -> %d", label, ev.remainingCycles)
}

func (ev *Event) isActive() bool {
	return ev.remainingCycles >= 0
}

func (ev *Event) tick() bool {
	if !ev.isActive() {
		panic("events should not be ticked once they have expired under any circumstances")
	}

	ev.remainingCycles--

	if ev.remainingCycles == -1 {
		ev.payload()
		return true
	}

	return false
}

// RemainingCycles reports the number of calls to Tick() that must happen
// before the payload is run. A negative value means the event has completed
// or was dropped.
func (ev *Event) RemainingCycles() int {
	return ev.remainingCycles
}

// Label returns the label given to Schedule().
func (ev *Event) Label() string {
	return ev.label
}

// Drop removes the event from the ticker without running the payload.
func (ev *Event) Drop() {
	if !ev.isActive() {
		panic("cannot do that to a completed event")
	}
	ev.ticker.events.Remove(ev.elem)
	ev.remainingCycles = -1
}
