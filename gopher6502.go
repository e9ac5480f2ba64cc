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
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/bradleyjkemp/memviz"
	"golang.org/x/term"

	"github.com/jetsetilly/gopher6502/curated"
	"github.com/jetsetilly/gopher6502/easyterm"
	"github.com/jetsetilly/gopher6502/hardware/cpu"
	"github.com/jetsetilly/gopher6502/hardware/cpu/signals"
	"github.com/jetsetilly/gopher6502/harness"
	"github.com/jetsetilly/gopher6502/harness/hostscript"
	"github.com/jetsetilly/gopher6502/logger"
	"github.com/jetsetilly/gopher6502/modalflag"
	"github.com/jetsetilly/gopher6502/monitor"
	"github.com/jetsetilly/gopher6502/statsview"
	"github.com/jetsetilly/gopher6502/version"
	"github.com/jetsetilly/gopher6502/wavwriter"
)

// CycleLimit is returned when the CPU has run for the number of cycles given
// by the -cycles flag.
const CycleLimit = "cycle limit reached (%d)"

// the address used by the monitor if one is not given
const defaultMonitorAddress = "localhost:6502"

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"

	// reset interrupt signal handling. used when the mode has its own
	// handler.
	//
	// takes no arguments.
	reqNoIntSig stateReq = "NOINTSIG"
)

type stateRequest struct {
	req  stateReq
	args any
}

// communication between the main() function and the launch() function.
type mainSync struct {
	state chan stateRequest
}

func main() {
	sync := &mainSync{
		state: make(chan stateRequest),
	}

	// the value to use with os.Exit(). can be changed with reqQuit
	exitVal := 0

	// default handler for ctrl-c. can be turned off with reqNoIntSig
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	go launch(sync)

	done := false
	for !done {
		select {
		case <-intChan:
			fmt.Println("\r")
			done = true

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}

			case reqNoIntSig:
				signal.Reset(os.Interrupt)
				if state.args != nil {
					panic(fmt.Sprintf("%s does not accept any arguments", reqNoIntSig))
				}
			}
		}
	}

	os.Exit(exitVal)
}

// launch is called from main() as a goroutine. uses mainSync instance to
// indicate when to quit.
func launch(sync *mainSync) {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("RUN", "MONITOR", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		sync.state <- stateRequest{req: reqQuit}
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		sync.state <- stateRequest{req: reqQuit, args: 10}
		return
	}

	switch md.Mode() {
	case "RUN":
		err = run(md, sync)

	case "MONITOR":
		err = monitorMode(md)

	case "VERSION":
		fmt.Println(version.String())
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		sync.state <- stateRequest{req: reqQuit, args: 20}
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}

// the writer to use for log output. the colorizer is used only when the
// output is a terminal
func logOutput(out *os.File) io.Writer {
	if term.IsTerminal(int(out.Fd())) {
		return logger.NewColorizer(out)
	}
	return out
}

func run(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	log := md.AddBool("log", false, "echo log to stdout")
	verbose := md.AddBool("verbose", false, "trace every access and every instruction")
	grace := md.AddInt("grace", harness.DefaultGrace, "accesses allowed before the reset vector must be read")
	script := md.AddString("script", "", "lua script to attach to the harness")
	monitorAddr := md.AddString("monitor", "", fmt.Sprintf("start the monitor service on this address (eg. %s)", defaultMonitorAddress))
	paused := md.AddBool("paused", false, "start paused. only useful with -monitor")
	wav := md.AddString("wav", "", "record the bus to a WAV file")
	rate := md.AddInt("rate", 1000000, "accesses per second in the WAV file")
	memvizFile := md.AddString("memviz", "", "write a graphviz representation of the CPU to this file when the run ends")
	stats := md.AddString("statsview", "", fmt.Sprintf("launch the statistics server on this address (eg. %s)", statsview.DefaultAddress))
	cycles := md.AddUint64("cycles", 0, "stop after this number of cycles. zero for no limit")
	timeout := md.AddDuration("timeout", 0, "stop after this amount of time. zero for no limit")

	md.AdditionalHelp(`Arguments are a memory image and an optional test plan. Without a test plan
the CPU runs freely until the program writes to the end of test address.`)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log || *verbose {
		logger.SetEcho(logOutput(os.Stdout), false)
	} else {
		logger.SetEcho(nil, false)
	}

	var image *os.File
	var plan io.Reader

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("memory image required for %s mode", md)
	case 2:
		f, err := os.Open(md.GetArg(1))
		if err != nil {
			return err
		}
		defer f.Close()
		plan = f
		fallthrough
	case 1:
		image, err = os.Open(md.GetArg(0))
		if err != nil {
			return err
		}
		defer image.Close()
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	h, err := harness.NewHarness(image, plan)
	if err != nil {
		return err
	}
	h.SetGrace(*grace)

	mc := cpu.NewCPU(h)
	mc.SetLineObserver(func(line signals.Line, state bool) {
		logger.Logf(logger.Flag(*verbose), "cpu", "%s set to %v", line, state)
	})

	var observers harness.Observers

	if *script != "" {
		f, err := os.Open(*script)
		if err != nil {
			return err
		}
		scr, err := hostscript.NewScript(f, filepath.Base(*script), mc, h)
		f.Close()
		if err != nil {
			return err
		}
		defer scr.Close()
		observers = append(observers, scr)
	}

	if *wav != "" {
		aw, err := wavwriter.New(*wav, mc, *rate)
		if err != nil {
			return err
		}
		defer func() {
			if err := aw.Close(); err != nil {
				logger.Log(logger.Allow, "error", err)
			}
		}()
		observers = append(observers, aw)
	}

	if len(observers) > 0 {
		h.SetObserver(observers)
	}

	if *verbose {
		h.SetTrace(os.Stdout)
	}

	h.Plumb(mc)

	ctl := monitor.NewController()
	if *monitorAddr != "" {
		lis, err := net.Listen("tcp", *monitorAddr)
		if err != nil {
			return err
		}
		srv := monitor.NewServer(ctl, h, mc)
		go func() {
			if err := srv.Serve(lis); err != nil {
				logger.Log(logger.Allow, "error", err)
			}
		}()
		defer srv.Stop()

		if *paused {
			ctl.Pause()
		}
		fmt.Printf("monitor available at %s\n", lis.Addr())
	}

	if *stats != "" {
		if statsview.Available() {
			statsview.Launch(os.Stdout, *stats)
		} else {
			fmt.Println("* statsview not available in this build")
		}
	}

	// the run is stopped by ctrl-c rather than the default handler in main()
	sync.state <- stateRequest{req: reqNoIntSig}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	start := time.Now()

	err = mc.Run(ctx, func() error {
		ctl.Publish(mc.State())
		if *verbose {
			logger.Log(logger.Allow, "cpu", mc.LastResult.String())
		}
		if *cycles > 0 && mc.TotalCycles >= *cycles {
			return curated.Errorf(CycleLimit, *cycles)
		}
		return nil
	})
	ctl.Finish(err)

	if *memvizFile != "" {
		if err := writeMemviz(*memvizFile, mc); err != nil {
			logger.Log(logger.Allow, "error", err)
		}
	}

	return report(os.Stdout, err, mc, h, time.Since(start))
}

// report the result of the run. a run that ends for any reason other than the
// end of test is an error.
func report(out io.Writer, err error, mc *cpu.CPU, h *harness.Harness, elapsed time.Duration) error {
	prog := h.Progress()

	switch {
	case harness.IsFinished(err):
		fmt.Fprintf(out, "%s\n", err)
	case curated.Is(err, CycleLimit):
		fmt.Fprintf(out, "%s\n", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintln(out, "run stopped")
	default:
		fmt.Fprintf(out, "%s\n", mc)
		return err
	}

	fmt.Fprintf(out, "%s\n", mc)
	fmt.Fprintf(out, "%d cycles in %s\n", mc.TotalCycles, elapsed.Round(time.Millisecond))
	if !prog.FreeRun {
		fmt.Fprintf(out, "%d known incompatibilities\n", prog.Tolerated)
	}

	if harness.IsFinished(err) || curated.Is(err, CycleLimit) {
		return nil
	}
	return err
}

func writeMemviz(filename string, mc *cpu.CPU) (rerr error) {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = err
		}
	}()

	memviz.Map(f, mc.Snapshot())
	return nil
}

func monitorMode(md *modalflag.Modes) error {
	md.NewMode()

	keys := md.AddBool("keys", false, "control the CPU with single key presses")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	address := defaultMonitorAddress
	switch len(md.RemainingArgs()) {
	case 0:
	case 1:
		address = md.GetArg(0)
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	cl, err := monitor.NewClient(address)
	if err != nil {
		return err
	}
	defer cl.Close()

	ctx := context.Background()

	if *keys {
		var pt easyterm.Terminal
		if err := pt.Initialise(os.Stdin, os.Stdout); err != nil {
			return err
		}
		defer pt.CleanUp()

		if err := pt.CBreakMode(); err != nil {
			return err
		}
		return cl.Keys(ctx, &pt, os.Stdout)
	}

	return cl.REPL(ctx, os.Stdin, os.Stdout)
}
