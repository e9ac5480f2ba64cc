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
package easyterm_test

import (
	"errors"
	"io"
	"os"
	"testing"

	"github.com/jetsetilly/gopher6502/easyterm"
	"github.com/jetsetilly/gopher6502/test"
)

func TestNotTerminal(t *testing.T) {
	r, w, err := os.Pipe()
	test.DemandSuccess(t, err)
	defer r.Close()

	var pt easyterm.Terminal
	test.DemandSuccess(t, pt.Initialise(r, w))
	test.ExpectFailure(t, pt.IsTerminal())

	// mode changes are ignored
	test.ExpectSuccess(t, pt.CBreakMode())
	test.ExpectSuccess(t, pt.Flush())
	test.ExpectSuccess(t, pt.CanonicalMode())

	_, err = w.Write([]byte("ab"))
	test.DemandSuccess(t, err)
	w.Close()

	k, err := pt.ReadKey()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, k, 'a')
	k, err = pt.ReadKey()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, k, 'b')
	_, err = pt.ReadKey()
	test.ExpectSuccess(t, errors.Is(err, io.EOF))
}

func TestMissingFiles(t *testing.T) {
	var pt easyterm.Terminal
	test.ExpectFailure(t, pt.Initialise(nil, os.Stdout))
	test.ExpectFailure(t, pt.Initialise(os.Stdin, nil))
}
