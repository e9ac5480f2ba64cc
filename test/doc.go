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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The Expect*() functions report a test failure and allow the test to
// continue. The Demand*() functions stop the test immediately. Use a Demand
// function when the value being tested is required by the rest of the test,
// for example the length of a slice that is about to be iterated over.
//
// Success and failure values depend on the type. A bool is successful if it is
// true, an error is successful if it is nil, and nil itself is a success.
//
// Every function takes an optional list of tags. The tags are included in the
// failure message and help to identify which of many similar tests in a loop
// has failed.
//
// The RingWriter type is an io.Writer that keeps only the most recent output.
package test
