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

// Package future schedules actions that happen a number of bus cycles after
// they were requested. The test harness uses it to raise and lower the CPU's
// input lines at the cycle requested by the program under test.
//
// Events are scheduled with the Schedule() function of the Ticker type. The
// function takes the delay period, a callback function and a label (useful
// for identifying the event when logging). The Tick() function indicates
// that one cycle has passed. An event with a delay of zero runs on the next
// call to Tick(). An event with a negative delay runs immediately and is never
// added to the ticker.
//
// Events scheduled for the same cycle run in the order they were scheduled.
package future
