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
//go:build statsview

package statsview

import (
	"fmt"
	"io"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

const url = "/debug/statsview"

// Launch the statistics server in a new goroutine. The server runs until the
// program ends.
func Launch(output io.Writer, address string) {
	if address == "" {
		address = DefaultAddress
	}

	// viewer configuration is global
	viewer.SetConfiguration(viewer.WithAddr(address), viewer.WithTheme(viewer.ThemeWesteros))

	mgr := statsview.New()
	go mgr.Start()

	fmt.Fprintf(output, "runtime statistics at http://%s%s\n", address, url)
}

// Available returns true if a statsview is available to launch.
func Available() bool {
	return true
}
