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
// Package monitor allows a running CPU to be inspected and controlled from
// another process. The Server type offers a gRPC service with the name
// gopher6502.Monitor. The Client type connects to the service and has a
// simple command line interface.
//
// The messages used by the service are the protobuf well-known types. The
// Status method returns a Struct with the CPU registers and the progress of
// the harness. The Peek and SetLine methods take a Struct containing their
// arguments.
//
// The run loop must call Controller.Publish() after every step of the CPU
// and Controller.Finish() when the CPU stops. Publish() blocks while the
// monitor has paused the CPU.
package monitor
