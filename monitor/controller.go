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
package monitor

import (
	"sync"

	"github.com/jetsetilly/gopher6502/curated"
	"github.com/jetsetilly/gopher6502/hardware/cpu"
)

// NotRunning is returned by Step() when the CPU has stopped.
const NotRunning = "monitor: cpu is not running"

// Controller sits between the run loop and the monitor service.
type Controller struct {
	crit sync.Mutex
	cond *sync.Cond

	paused bool

	// the run loop is blocked in Publish()
	waiting bool

	// the number of steps that can be taken while paused
	allowed int

	// the number of calls to Publish()
	steps uint64

	state cpu.State

	finished bool
	result   error
}

// NewController is the preferred method of initialisation for the
// Controller type.
func NewController() *Controller {
	ctl := &Controller{}
	ctl.cond = sync.NewCond(&ctl.crit)
	return ctl
}

// Publish records the state of the CPU. It blocks while the CPU is paused.
// Must be called from the run loop.
func (ctl *Controller) Publish(state cpu.State) {
	ctl.crit.Lock()
	defer ctl.crit.Unlock()

	ctl.state = state
	ctl.steps++
	ctl.cond.Broadcast()

	ctl.waiting = true
	for ctl.paused && ctl.allowed == 0 && !ctl.finished {
		ctl.cond.Wait()
	}
	ctl.waiting = false

	if ctl.allowed > 0 {
		ctl.allowed--
	}
}

// Finish indicates that the run loop has ended. Any calls to Publish() or
// Step() that are waiting will return.
func (ctl *Controller) Finish(result error) {
	ctl.crit.Lock()
	defer ctl.crit.Unlock()
	ctl.finished = true
	ctl.result = result
	ctl.cond.Broadcast()
}

// Pause stops the CPU at the next call to Publish().
func (ctl *Controller) Pause() {
	ctl.crit.Lock()
	defer ctl.crit.Unlock()
	ctl.paused = true
}

// Resume undoes the effect of Pause().
func (ctl *Controller) Resume() {
	ctl.crit.Lock()
	defer ctl.crit.Unlock()
	ctl.paused = false
	ctl.allowed = 0
	ctl.cond.Broadcast()
}

// Step pauses the CPU if it is not already paused and then allows it to run
// for one step. It returns the state of the CPU once the step has completed.
func (ctl *Controller) Step() (cpu.State, error) {
	ctl.crit.Lock()
	defer ctl.crit.Unlock()

	if ctl.finished {
		return ctl.state, curated.Errorf(NotRunning)
	}

	// the run loop will stop at the next call to Publish() if it is not
	// already waiting
	ctl.paused = true
	if ctl.waiting {
		ctl.allowed++
	}
	target := ctl.steps + 1
	ctl.cond.Broadcast()

	for ctl.steps < target && !ctl.finished {
		ctl.cond.Wait()
	}

	return ctl.state, nil
}

// Report is a copy of the information held by the Controller.
type Report struct {
	State    cpu.State
	Steps    uint64
	Paused   bool
	Finished bool
	Result   error
}

// Report returns the most recently published state.
func (ctl *Controller) Report() Report {
	ctl.crit.Lock()
	defer ctl.crit.Unlock()
	return Report{
		State:    ctl.state,
		Steps:    ctl.steps,
		Paused:   ctl.paused,
		Finished: ctl.finished,
		Result:   ctl.result,
	}
}
