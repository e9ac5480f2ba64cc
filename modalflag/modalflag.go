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
package modalflag

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"
)

const modeSeparator = "/"

// ParseResult is returned from the Parse() function.
type ParseResult int

// List of valid ParseResult values.
const (
	// continue with command line processing
	ParseContinue ParseResult = iota

	// help was requested and has been printed
	ParseHelp

	// an error has occurred and is returned as the second return value
	ParseError
)

// Modes is a command line parser for programs with modes.
type Modes struct {
	// where help messages are written. help is not shown if Output is nil
	Output io.Writer

	// flags for the current level. recreated by NewMode()
	flags *flag.FlagSet

	args    []string
	argsIdx int

	// the modes available at the current level
	subModes []string

	// every mode selected so far
	path []string

	additionalHelp string
}

func (md *Modes) String() string {
	return md.Path()
}

// NewArgs starts parsing of a new argument list.
func (md *Modes) NewArgs(args []string) {
	md.args = args
	md.argsIdx = 0
	md.path = md.path[:0]
	md.NewMode()
}

// NewMode starts a new level of parsing. Arguments that were not consumed by
// the previous level are parsed with a new set of flags.
func (md *Modes) NewMode() {
	md.subModes = nil
	md.additionalHelp = ""
	md.flags = flag.NewFlagSet("", flag.ContinueOnError)
	md.flags.SetOutput(io.Discard)
}

// Mode returns the most recently selected mode.
func (md *Modes) Mode() string {
	if len(md.path) == 0 {
		return ""
	}
	return md.path[len(md.path)-1]
}

// Path returns every mode selected so far.
func (md *Modes) Path() string {
	return strings.Join(md.path, modeSeparator)
}

// AddSubModes adds to the list of modes for the next call to Parse(). The
// first mode in the list is the default.
func (md *Modes) AddSubModes(subModes ...string) {
	for _, m := range subModes {
		md.subModes = append(md.subModes, strings.ToUpper(m))
	}
}

// AdditionalHelp is shown after the list of flags when help is requested.
func (md *Modes) AdditionalHelp(help string) {
	md.additionalHelp = help
}

// Parse the current level of arguments.
func (md *Modes) Parse() (ParseResult, error) {
	err := md.flags.Parse(md.args[md.argsIdx:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			md.help()
			return ParseHelp, nil
		}

		// an unrecognised flag at this level is left for the default mode
		if len(md.subModes) == 0 {
			return ParseError, err
		}
		md.path = append(md.path, md.subModes[0])
		return ParseContinue, nil
	}

	// flags at this level have been consumed
	md.argsIdx = len(md.args) - md.flags.NArg()

	if len(md.subModes) > 0 {
		mode := md.subModes[0]
		arg := strings.ToUpper(md.flags.Arg(0))
		for _, m := range md.subModes {
			if m == arg {
				mode = m
				md.argsIdx++
				break
			}
		}
		md.path = append(md.path, mode)
	}

	return ParseContinue, nil
}

func (md *Modes) help() {
	if md.Output == nil {
		return
	}

	var flags strings.Builder
	md.flags.SetOutput(&flags)
	md.flags.PrintDefaults()
	md.flags.SetOutput(io.Discard)

	if flags.Len() == 0 && len(md.subModes) == 0 && md.additionalHelp == "" {
		if md.Path() == "" {
			fmt.Fprintln(md.Output, "No help available")
		} else {
			fmt.Fprintf(md.Output, "No help available for %s\n", md.Path())
		}
		return
	}

	if md.Path() == "" {
		fmt.Fprintln(md.Output, "Usage:")
	} else {
		fmt.Fprintf(md.Output, "Usage for %s mode:\n", md.Path())
	}

	fmt.Fprint(md.Output, flags.String())

	if len(md.subModes) > 0 {
		if flags.Len() > 0 {
			fmt.Fprintln(md.Output)
		}
		fmt.Fprintf(md.Output, "  available sub-modes: %s\n", strings.Join(md.subModes, ", "))
		fmt.Fprintf(md.Output, "    default: %s\n", md.subModes[0])
	}

	if md.additionalHelp != "" {
		fmt.Fprintf(md.Output, "\n%s\n", md.additionalHelp)
	}
}

// RemainingArgs returns the arguments that are not flags or a mode.
func (md *Modes) RemainingArgs() []string {
	return md.args[md.argsIdx:]
}

// GetArg returns the numbered argument that is not a flag or a mode. Returns
// the empty string if there is no such argument.
func (md *Modes) GetArg(i int) string {
	r := md.RemainingArgs()
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

// AddBool flag for next call to Parse().
func (md *Modes) AddBool(name string, value bool, usage string) *bool {
	return md.flags.Bool(name, value, usage)
}

// AddInt flag for next call to Parse().
func (md *Modes) AddInt(name string, value int, usage string) *int {
	return md.flags.Int(name, value, usage)
}

// AddUint64 flag for next call to Parse().
func (md *Modes) AddUint64(name string, value uint64, usage string) *uint64 {
	return md.flags.Uint64(name, value, usage)
}

// AddString flag for next call to Parse().
func (md *Modes) AddString(name string, value string, usage string) *string {
	return md.flags.String(name, value, usage)
}

// AddDuration flag for next call to Parse().
func (md *Modes) AddDuration(name string, value time.Duration, usage string) *time.Duration {
	return md.flags.Duration(name, value, usage)
}
