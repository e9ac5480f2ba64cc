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
package harness

import (
	"fmt"
	"io"
	"sync"

	"github.com/jetsetilly/gopher6502/curated"
	"github.com/jetsetilly/gopher6502/harness/future"
	"github.com/jetsetilly/gopher6502/harness/memfile"
	"github.com/jetsetilly/gopher6502/hardware/cpu/signals"
	"github.com/jetsetilly/gopher6502/hardware/memory/cpubus"
	"github.com/jetsetilly/gopher6502/logger"
)

// Sentinel error patterns.
const (
	TestComplete    = "harness: test complete at cycle %d"
	PlanMismatch    = "harness: plan line %d: %s: expected %#x got %#x (address %#04x data %#02x)"
	PlanExhausted   = "harness: plan exhausted at cycle %d"
	NoResetVector   = "harness: reset vector not read within %d cycles"
	ImageOutOfRange = "harness: memory image line %d: address out of range (%#x)"
)

// DefaultGrace is the number of accesses allowed before the reset vector must
// be read.
const DefaultGrace = 50

// the field widths of a test plan record, from the least significant bit
var planWidths = []int{8, 8, 16, 4}

// bits in the flags field of a test plan record
const (
	flagRead = 0x01
	flagSync = 0x02
)

// addresses in the command page
const (
	cmdDone      = 0x0200
	cmdReadyLen  = 0x0280
	cmdReady     = 0x0281
	cmdSOLen     = 0x0282
	cmdSO        = 0x0283
	cmdNMILen    = 0x02fa
	cmdNMI       = 0x02fb
	cmdResetLen  = 0x02fc
	cmdReset     = 0x02fd
	cmdIRQLen    = 0x02fe
	cmdIRQ       = 0x02ff
	commandsPage = 0x02
)

// Signaller is the part of the CPU the harness talks to.
type Signaller interface {
	SetLine(line signals.Line, state bool)
	IsIncompatible() bool
}

// Access describes a single bus cycle.
type Access struct {
	// zero until the reset vector has been read
	Cycle int

	Write   bool
	Address uint16
	Data    uint8
	Sync    bool
}

func (acc Access) String() string {
	if acc.Write {
		return fmt.Sprintf("%d W: %04x %02x", acc.Cycle, acc.Address, acc.Data)
	}
	if acc.Sync {
		return fmt.Sprintf("%d R: %04x %02x *", acc.Cycle, acc.Address, acc.Data)
	}
	return fmt.Sprintf("%d R: %04x %02x", acc.Cycle, acc.Address, acc.Data)
}

// Observer is notified of every access after it has been checked. An error
// returned by Observe() stops the CPU.
type Observer interface {
	Observe(acc Access) error
}

// Observers is a list of Observer instances, called in order. The first error
// stops the remaining observers from being called.
type Observers []Observer

// Observe implements the Observer interface.
func (obs Observers) Observe(acc Access) error {
	for _, o := range obs {
		if err := o.Observe(acc); err != nil {
			return err
		}
	}
	return nil
}

// Progress is a summary of the state of the harness.
type Progress struct {
	Started   bool
	FreeRun   bool
	Cycle     int
	PlanLine  int
	PlanTotal int
	Tolerated int
	Pending   int
	Last      Access
}

// Harness is a cpubus.Bus that checks the CPU against a test plan.
type Harness struct {
	crit sync.Mutex

	mem [0x10000]uint8

	plan    []memfile.Record
	planIdx int
	freeRun bool

	grace    int
	accesses int
	started  bool

	// the number of the next access once started
	cycle int

	tolerated int
	last      Access

	cpu      Signaller
	ticker   *future.Ticker
	observer Observer
	trace    io.Writer
}

// NewHarness is the preferred method of initialisation for the Harness type.
// The plan argument can be nil, in which case the harness runs freely.
func NewHarness(image io.Reader, plan io.Reader) (*Harness, error) {
	h := &Harness{
		grace:   DefaultGrace,
		freeRun: plan == nil,
		ticker:  future.NewTicker("harness"),
	}

	recs, err := memfile.ReadAll(image, 8)
	if err != nil {
		return nil, err
	}
	for _, r := range recs {
		if r.Address > 0xffff {
			return nil, curated.Errorf(ImageOutOfRange, r.Line, r.Address)
		}
		h.mem[r.Address] = uint8(r.Fields[0])
	}

	if plan != nil {
		recs, err = memfile.ReadAll(plan, planWidths...)
		if err != nil {
			return nil, err
		}
		for _, r := range recs {
			// wait records are produced by the plan writer and do not
			// describe a bus access
			if r.Fields[3] != 0 {
				h.plan = append(h.plan, r)
			}
		}
	}

	return h, nil
}

// Plumb attaches the CPU to the harness. The RESET line is raised and stays
// high until the harness releases it.
func (h *Harness) Plumb(cpu Signaller) {
	h.crit.Lock()
	h.cpu = cpu
	h.crit.Unlock()

	cpu.SetLine(signals.Reset, true)
}

// SetGrace changes the number of accesses allowed before the reset vector
// must be read. Must be called before the CPU is started.
func (h *Harness) SetGrace(accesses int) {
	h.crit.Lock()
	defer h.crit.Unlock()
	h.grace = accesses
}

// SetObserver sets the observer for all subsequent accesses. A value of nil
// removes the observer.
func (h *Harness) SetObserver(observer Observer) {
	h.crit.Lock()
	defer h.crit.Unlock()
	h.observer = observer
}

// SetTrace writes a line describing every access to the writer. A value of
// nil stops the trace.
func (h *Harness) SetTrace(trace io.Writer) {
	h.crit.Lock()
	defer h.crit.Unlock()
	h.trace = trace
}

// Read implements the cpubus.Bus interface.
func (h *Harness) Read(address uint16, sync bool) (uint8, error) {
	acc, observer, err := h.read(address, sync)
	if err != nil {
		return acc.Data, err
	}
	if observer != nil {
		return acc.Data, observer.Observe(acc)
	}
	return acc.Data, nil
}

func (h *Harness) read(address uint16, sync bool) (Access, Observer, error) {
	h.crit.Lock()
	defer h.crit.Unlock()

	h.ticker.Tick()

	acc := Access{
		Address: address,
		Data:    h.mem[address],
		Sync:    sync,
	}

	if !h.started {
		if err := h.startup(address); err != nil {
			return acc, nil, err
		}
		if !h.started {
			return acc, nil, nil
		}
	}

	acc.Cycle = h.cycle
	h.cycle++
	h.last = acc
	h.writeTrace(acc)

	if err := h.check(acc); err != nil {
		return acc, nil, err
	}

	return acc, h.observer, nil
}

// startup counts accesses until the reset vector is read.
func (h *Harness) startup(address uint16) error {
	if h.freeRun {
		h.release()
		h.start()
		return nil
	}

	h.accesses++
	if h.accesses == 3 {
		h.release()
	}

	if address == cpubus.Reset && h.accesses >= 3 {
		h.start()
		return nil
	}

	if h.accesses >= h.grace {
		return curated.Errorf(NoResetVector, h.grace)
	}

	return nil
}

func (h *Harness) release() {
	if h.cpu != nil {
		h.cpu.SetLine(signals.Reset, false)
	}
}

func (h *Harness) start() {
	h.started = true
	h.cycle = 1
	logger.Log(logger.Allow, "harness", "reset vector read")
}

// Write implements the cpubus.Bus interface.
func (h *Harness) Write(address uint16, data uint8) error {
	acc, observer, err := h.write(address, data)
	if err != nil {
		return err
	}
	if observer != nil {
		return observer.Observe(acc)
	}
	return nil
}

func (h *Harness) write(address uint16, data uint8) (Access, Observer, error) {
	h.crit.Lock()
	defer h.crit.Unlock()

	h.ticker.Tick()

	acc := Access{
		Cycle:   h.cycle,
		Write:   true,
		Address: address,
		Data:    data,
	}

	h.cycle++
	h.last = acc
	h.writeTrace(acc)

	if h.started {
		if err := h.check(acc); err != nil {
			return acc, nil, err
		}
	}

	h.mem[address] = data

	if address>>8 == commandsPage {
		if err := h.command(address, data); err != nil {
			return acc, nil, err
		}
	}

	return acc, h.observer, nil
}

func (h *Harness) writeTrace(acc Access) {
	if h.trace != nil {
		fmt.Fprintln(h.trace, acc.String())
	}
}

// check compares the access with the next record in the test plan.
func (h *Harness) check(acc Access) error {
	if h.freeRun {
		return nil
	}

	if h.planIdx >= len(h.plan) {
		if acc.Write {
			logger.Logf(logger.Allow, "harness", "write beyond end of plan: %s", acc)
			return nil
		}
		return curated.Errorf(PlanExhausted, acc.Cycle)
	}

	rec := h.plan[h.planIdx]
	h.planIdx++

	flags := rec.Fields[0]
	data := rec.Fields[1]
	address := rec.Fields[2]

	var direction uint64
	msg := "write where read was expected"
	if !acc.Write {
		direction = flagRead
		msg = "read where write was expected"
	}
	if err := h.compare(rec, msg, flags&flagRead, direction, acc); err != nil {
		return err
	}

	msg = "wrong address"
	if err := h.compare(rec, msg, address, uint64(acc.Address), acc); err != nil {
		return err
	}

	msg = "wrong data"
	if err := h.compare(rec, msg, data, uint64(acc.Data), acc); err != nil {
		return err
	}

	if flags&flagSync == flagSync && !acc.Write {
		var sync uint64
		if acc.Sync {
			sync = flagSync
		}
		if err := h.compare(rec, "opcode fetch expected", flagSync, sync, acc); err != nil {
			return err
		}
	}

	return nil
}

func (h *Harness) compare(rec memfile.Record, msg string, expected uint64, actual uint64, acc Access) error {
	if expected == actual {
		return nil
	}

	err := curated.Errorf(PlanMismatch, rec.Line, msg, expected, actual, acc.Address, acc.Data)
	if h.cpu != nil && h.cpu.IsIncompatible() {
		h.tolerated++
		logger.Logf(logger.Allow, "harness", "known incompatibility: %v", err)
		return nil
	}

	return err
}

// command handles a write to the command page. the value has already been
// stored in memory.
func (h *Harness) command(address uint16, data uint8) error {
	switch address {
	case cmdDone:
		logger.Logf(logger.Allow, "harness", "test complete at cycle %d", h.cycle-1)
		return curated.Errorf(TestComplete, h.cycle-1)
	case cmdReady:
		// READY is active low and takes effect a cycle earlier than the
		// other lines
		h.schedule(signals.Ready, false, int(data)-1, h.mem[cmdReadyLen])
	case cmdSO:
		h.schedule(signals.SO, true, int(data), h.mem[cmdSOLen])
	case cmdNMI:
		h.schedule(signals.NMI, true, int(data), h.mem[cmdNMILen])
	case cmdReset:
		h.schedule(signals.Reset, true, int(data), h.mem[cmdResetLen])
	case cmdIRQ:
		h.schedule(signals.IRQ, true, int(data), h.mem[cmdIRQLen])
	}
	return nil
}

// schedule changes the line to the active state after delay cycles and back
// again after a further length cycles.
func (h *Harness) schedule(line signals.Line, active bool, delay int, length uint8) {
	logger.Logf(logger.Allow, "harness", "%s scheduled for cycle %d (%d cycles)", line, h.cycle+delay, length)

	h.ticker.Schedule(delay, func() {
		h.setLine(line, active)
	}, fmt.Sprintf("%s active", line))

	h.ticker.Schedule(delay+int(length), func() {
		h.setLine(line, !active)
	}, fmt.Sprintf("%s inactive", line))
}

func (h *Harness) setLine(line signals.Line, state bool) {
	if h.cpu != nil {
		h.cpu.SetLine(line, state)
	}
}

// Progress returns a summary of the harness state. Safe to call from any
// goroutine.
func (h *Harness) Progress() Progress {
	h.crit.Lock()
	defer h.crit.Unlock()

	return Progress{
		Started:   h.started,
		FreeRun:   h.freeRun,
		Cycle:     h.cycle,
		PlanLine:  h.planLine(),
		PlanTotal: len(h.plan),
		Tolerated: h.tolerated,
		Pending:   h.ticker.Len(),
		Last:      h.last,
	}
}

// the line number of the next plan record. zero if there is no record
func (h *Harness) planLine() int {
	if h.planIdx >= len(h.plan) {
		return 0
	}
	return h.plan[h.planIdx].Line
}

// Pending returns a description of every scheduled line change.
func (h *Harness) Pending() string {
	h.crit.Lock()
	defer h.crit.Unlock()
	return h.ticker.String()
}

// Peek returns a copy of length bytes of memory starting at address. The copy
// is shortened if it would extend past the end of memory. Safe to call from
// any goroutine.
func (h *Harness) Peek(address uint16, length int) []uint8 {
	h.crit.Lock()
	defer h.crit.Unlock()

	end := min(int(address)+max(length, 0), len(h.mem))
	d := make([]uint8, end-int(address))
	copy(d, h.mem[address:end])
	return d
}

// Poke changes memory without an access being made. Safe to call from any
// goroutine.
func (h *Harness) Poke(address uint16, data uint8) {
	h.crit.Lock()
	defer h.crit.Unlock()
	h.mem[address] = data
}

// IsFinished returns true if the error returned from the CPU means that the
// test ran to completion.
func IsFinished(err error) bool {
	return curated.Is(err, TestComplete)
}
