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

// Package signals holds the state of the external signal lines of the CPU:
// RESET, IRQ, NMI, READY and SO (set overflow).
//
// IRQ and READY are levels. The CPU samples them at the points where the real
// chip does. NMI and SO are edge triggered. A rising edge latches a pending
// flag which remains set until the CPU consumes it, regardless of the line
// returning low in the meantime. RESET is a level but a rising edge also
// latches a pending flag, which the CPU checks at every bus access.
//
// The lines may be changed from any goroutine. Only the CPU consumes the
// latches.
package signals

import (
	"strings"
	"sync"

	"github.com/jetsetilly/gopher6502/curated"
)

// Line identifies one of the signal lines.
type Line int

// List of signal lines.
const (
	Reset Line = iota
	IRQ
	NMI
	Ready
	SO
	numLines
)

func (l Line) String() string {
	switch l {
	case Reset:
		return "RESET"
	case IRQ:
		return "IRQ"
	case NMI:
		return "NMI"
	case Ready:
		return "READY"
	case SO:
		return "SO"
	}
	return "unknown line"
}

// UnknownLine is returned by ParseLine() if the name is not recognised.
const UnknownLine = "signals: unknown line (%s)"

// ParseLine returns the Line for a name. The comparison ignores case.
func ParseLine(name string) (Line, error) {
	for l := Reset; l < numLines; l++ {
		if strings.EqualFold(name, l.String()) {
			return l, nil
		}
	}
	return 0, curated.Errorf(UnknownLine, name)
}

// Observer is called whenever a line changes state. It is called without
// any locks held and from whichever goroutine changed the line.
type Observer func(line Line, state bool)

// Lines is the current state of the signal lines and the latches fed by them.
type Lines struct {
	crit sync.Mutex

	levels  [numLines]bool
	pending [numLines]bool

	observer Observer
}

// NewLines is the preferred method of initialisation for the Lines type. All
// lines are low except for READY.
func NewLines() *Lines {
	l := &Lines{}
	l.levels[Ready] = true
	return l
}

// SetObserver installs a function to be called on every change of state. A
// nil observer removes the existing one.
func (l *Lines) SetObserver(observer Observer) {
	l.crit.Lock()
	defer l.crit.Unlock()
	l.observer = observer
}

// Set changes the state of a line. Setting a line to its current state has
// no effect.
func (l *Lines) Set(line Line, state bool) {
	l.crit.Lock()

	if l.levels[line] == state {
		l.crit.Unlock()
		return
	}
	l.levels[line] = state

	// rising edges
	if state {
		switch line {
		case Reset, NMI, SO:
			l.pending[line] = true
		}
	}

	observer := l.observer
	l.crit.Unlock()

	if observer != nil {
		observer(line, state)
	}
}

// Get returns the current level of a line.
func (l *Lines) Get(line Line) bool {
	l.crit.Lock()
	defer l.crit.Unlock()
	return l.levels[line]
}

// Pending returns the state of the edge latch of a line without consuming it.
// Only RESET, NMI and SO have a latch.
func (l *Lines) Pending(line Line) bool {
	l.crit.Lock()
	defer l.crit.Unlock()
	return l.pending[line]
}

// Take consumes the edge latch of a line. Returns true if the latch was set.
func (l *Lines) Take(line Line) bool {
	l.crit.Lock()
	defer l.crit.Unlock()
	p := l.pending[line]
	l.pending[line] = false
	return p
}

// ResetPending is true if RESET has had a rising edge that has not yet been
// acknowledged by the reset sequence.
func (l *Lines) ResetPending() bool {
	return l.Pending(Reset)
}
