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

package logger

import (
	"io"
	"strings"

	"github.com/jetsetilly/gopher6502/easyterm/ansi"
)

// Colorizer applies basic coloring rules to logging output. The tag of each
// entry is written in a dim pen. Entries tagged with "error" are written
// entirely in red.
type Colorizer struct {
	out io.Writer
}

// NewColorizer is the preferred method if initialisation for the Colorizer
// type.
func NewColorizer(out io.Writer) Colorizer {
	return Colorizer{out: out}
}

// Write implements the io.Writer interface.
func (c Colorizer) Write(p []byte) (n int, err error) {
	s := strings.Builder{}

	for _, l := range strings.SplitAfter(string(p), "\n") {
		if l == "" {
			continue
		}

		tag, detail, ok := strings.Cut(l, ": ")
		switch {
		case !ok:
			s.WriteString(l)
		case tag == "error":
			s.WriteString(ansi.Pens["red"])
			s.WriteString(l)
			s.WriteString(ansi.NormalPen)
		default:
			s.WriteString(ansi.DimPens["cyan"])
			s.WriteString(tag)
			s.WriteString(ansi.NormalPen)
			s.WriteString(": ")
			s.WriteString(detail)
		}
	}

	if _, err := io.WriteString(c.out, s.String()); err != nil {
		return 0, err
	}

	return len(p), nil
}
