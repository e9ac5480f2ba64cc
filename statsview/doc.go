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
// Package statsview serves runtime statistics over HTTP while the CPU runs.
// It is only built when the statsview build constraint is present. Without
// the constraint Available() returns false and Launch() does nothing.
//
// Underlying functionality is provided by "github.com/go-echarts/statsview".
// After launch with the default address, graphical statistics are viewable at:
//
//	localhost:16502/debug/statsview
//
// And standard Go pprof statistics at:
//
//	localhost:16502/debug/pprof/
package statsview

// DefaultAddress is used by Launch() when no address is given.
const DefaultAddress = "localhost:16502"
