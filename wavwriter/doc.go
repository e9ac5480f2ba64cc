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
// Package wavwriter records the state of the bus and the CPU's input lines to
// a multichannel WAV file. One sample is taken for every access, so the file
// can be opened in a logic analyser or audio editor and read as a timing
// diagram.
//
// The channels, in order, are: read, sync, RESET, IRQ, NMI, READY, SO and
// the data bus. Samples are 16 bit. A line that is high is written as the
// largest positive value and a line that is low as zero. The data bus is
// scaled to the same range.
//
// Samples are buffered in memory in their entirety and written to disk when
// the WavWriter is closed. It is therefore only suitable for short runs.
package wavwriter
