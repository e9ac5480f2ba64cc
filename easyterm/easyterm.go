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
// Package easyterm is a wrapper for "github.com/pkg/term/termios". It wraps
// the termios functions in methods with friendlier names and does nothing
// when the input is not a terminal.
package easyterm

import (
	"fmt"
	"os"
	"sync"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Terminal is the main container for posix terminals.
type Terminal struct {
	input  *os.File
	output *os.File

	// input is a terminal
	isTerm bool

	canAttr    unix.Termios
	cbreakAttr unix.Termios

	mu sync.Mutex
}

// Initialise the fields in the Terminal struct.
func (pt *Terminal) Initialise(inputFile, outputFile *os.File) error {
	if inputFile == nil {
		return fmt.Errorf("easyterm Terminal requires an input file")
	}
	if outputFile == nil {
		return fmt.Errorf("easyterm Terminal requires an output file")
	}

	pt.input = inputFile
	pt.output = outputFile
	pt.isTerm = term.IsTerminal(int(pt.input.Fd()))

	if !pt.isTerm {
		return nil
	}

	if err := termios.Tcgetattr(pt.input.Fd(), &pt.canAttr); err != nil {
		return fmt.Errorf("easyterm: %w", err)
	}

	pt.cbreakAttr = pt.canAttr
	termios.Cfmakecbreak(&pt.cbreakAttr)

	return nil
}

// IsTerminal returns true if the input file is a terminal.
func (pt *Terminal) IsTerminal() bool {
	return pt.isTerm
}

// CleanUp returns the terminal to canonical mode.
func (pt *Terminal) CleanUp() {
	_ = pt.CanonicalMode()
}

// Print writes the formatted string to the output file.
func (pt *Terminal) Print(s string, a ...any) {
	pt.mu.Lock()
	defer pt.mu.Unlock()
	fmt.Fprintf(pt.output, s, a...)
}

// Geometry returns the number of columns and rows of the output terminal.
func (pt *Terminal) Geometry() (int, int, error) {
	return term.GetSize(int(pt.output.Fd()))
}

// CanonicalMode puts terminal into normal, everyday canonical mode.
func (pt *Terminal) CanonicalMode() error {
	if !pt.isTerm {
		return nil
	}
	return termios.Tcsetattr(pt.input.Fd(), termios.TCSANOW, &pt.canAttr)
}

// CBreakMode puts terminal into cbreak mode. Key presses are available
// immediately and are not echoed.
func (pt *Terminal) CBreakMode() error {
	if !pt.isTerm {
		return nil
	}
	return termios.Tcsetattr(pt.input.Fd(), termios.TCSANOW, &pt.cbreakAttr)
}

// Flush makes sure the terminal's input buffer is empty.
func (pt *Terminal) Flush() error {
	if !pt.isTerm {
		return nil
	}
	return termios.Tcflush(pt.input.Fd(), termios.TCIFLUSH)
}

// ReadKey returns the next byte from the input. In cbreak mode this is the
// next key press.
func (pt *Terminal) ReadKey() (byte, error) {
	var b [1]byte
	if _, err := pt.input.Read(b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}
