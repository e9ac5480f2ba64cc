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
// Package modalflag handles command lines that are divided into modes. Each
// mode has its own set of flags. For example:
//
//	gopher6502 RUN -grace 60 image.mem plan.mem
//	gopher6502 MONITOR localhost:6502
//
// Arguments are given to NewArgs() and flags for the top level added with the
// Add*() functions. The available modes for the next level are given with
// AddSubModes(), the first of which is the default. After Parse() the
// selected mode is returned by Mode(). Parsing of the next level starts with
// a call to NewMode():
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "MONITOR")
//	if p, err := md.Parse(); p != modalflag.ParseContinue {
//		return err
//	}
//
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		grace := md.AddInt("grace", 50, "accesses allowed before the reset vector")
//		...
//	}
//
// Mode names are not case sensitive. A request for help (the -help flag) is
// handled automatically and causes Parse() to return ParseHelp.
package modalflag
