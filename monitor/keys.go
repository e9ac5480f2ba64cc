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
	"context"
	"errors"
	"fmt"
	"io"
)

// KeyReader returns one key press at a time.
type KeyReader interface {
	ReadKey() (byte, error)
}

// the keys understood by Keys()
const keysHelp = `space/s step   p pause   r resume   i status   n NMI   q quit
`

// Keys controls the CPU with single key presses. It returns when the input is
// exhausted or the q key is pressed.
func (cl *Client) Keys(ctx context.Context, keys KeyReader, out io.Writer) error {
	fmt.Fprint(out, keysHelp)

	for {
		k, err := keys.ReadKey()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch k {
		case 'q', 0x04:
			return nil
		case ' ', 's':
			err = cl.command(ctx, out, []string{"step"})
		case 'p':
			err = cl.Pause(ctx)
			if err == nil {
				fmt.Fprintln(out, "paused")
			}
		case 'r':
			err = cl.Resume(ctx)
			if err == nil {
				fmt.Fprintln(out, "running")
			}
		case 'i':
			err = cl.command(ctx, out, []string{"status"})
		case 'n':
			err = cl.command(ctx, out, []string{"pulse", "nmi"})
		case '?', 'h':
			fmt.Fprint(out, keysHelp)
		}

		if err != nil {
			fmt.Fprintf(out, "%v\n", err)
		}
	}
}
