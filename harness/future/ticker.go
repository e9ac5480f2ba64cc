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
	"strings"
)

// Ticker coordinates scheduled events.
type Ticker struct {
	Label string

	events list.List
}

// NewTicker is the preferred method of initialisation for the Ticker type.
func NewTicker(label string) *Ticker {
	return &Ticker{Label: label}
}

func (tck *Ticker) String() string {
	s := strings.Builder{}
	for e := tck.events.Front(); e != nil; e = e.Next() {
		if tck.Label != "" {
			s.WriteString(tck.Label)
			s.WriteString(": ")
		}
		s.WriteString(e.Value.(*Event).String())
		s.WriteString("\n")
	}
	return s.String()
}

// Len returns the number of events still to run.
func (tck *Ticker) Len() int {
	return tck.events.Len()
}

// Tick moves every pending event on one cycle. Returns true if any payload
// was run.
func (tck *Ticker) Tick() bool {
	r := false

	e := tck.events.Front()
	for e != nil {
		n := e.Next()
		if e.Value.(*Event).tick() {
			r = true
			tck.events.Remove(e)
		}
		e = n
	}

	return r
}

// Schedule the payload to run after delay cycles.
func (tck *Ticker) Schedule(delay int, payload func(), label string) *Event {
	if delay < 0 {
		payload()
		return nil
	}

	ev := &Event{
		ticker:          tck,
		label:           label,
		initialCycles:   delay,
		remainingCycles: delay,
		payload:         payload,
	}
	ev.elem = tck.events.PushBack(ev)

	return ev
}

// Clear drops every pending event without running its payload.
func (tck *Ticker) Clear() {
	for e := tck.events.Front(); e != nil; e = e.Next() {
		e.Value.(*Event).remainingCycles = -1
	}
	tck.events.Init()
}
