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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error. The pattern is kept and is used
// to identify the error later:
//
//	const PlanMismatch = "harness: plan mismatch at line %d: %v"
//
//	err := curated.Errorf(PlanMismatch, 10, "address")
//	if curated.Is(err, PlanMismatch) {
//		fmt.Println("true")
//	}
//
// The Has() function is similar but checks whether the pattern occurs
// anywhere in the chain of wrapped errors. Errors are chained by passing an
// error as one of the placeholder values.
//
// The IsAny() function answers whether the error was created by
// curated.Errorf(). Put another way, it returns true if the error is
// 'expected' and false if it is 'unexpected'.
//
// The Error() function normalises the message so that a chain does not
// contain duplicate adjacent parts. This means that a function can wrap an
// error with its own prefix without worrying whether the callee has already
// done so:
//
//	error: error: not yet implemented
//
// becomes:
//
//	error: not yet implemented
//
// Curated errors also implement Unwrap() so that errors.Is() and errors.As()
// from the standard library see any error placed in the values list.
package curated
