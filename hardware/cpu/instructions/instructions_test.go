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

package instructions_test

import (
	"testing"

	"github.com/jetsetilly/gopher6502/hardware/cpu/instructions"
	"github.com/jetsetilly/gopher6502/test"
)

func TestDefinitionCounts(t *testing.T) {
	defs := instructions.GetDefinitions()

	var nmos, cmos, undefined int
	for i, defn := range defs {
		if defn == nil {
			undefined++
			continue
		}
		test.ExpectEquality(t, int(defn.OpCode), i)
		if defn.CMOS {
			cmos++
		} else {
			nmos++
		}
	}

	test.ExpectEquality(t, nmos, 151)
	test.ExpectEquality(t, cmos, 8)
	test.ExpectEquality(t, undefined, 256-151-8)
}

func TestEveryOperatorIsUsed(t *testing.T) {
	defs := instructions.GetDefinitions()

	used := make(map[instructions.Operator]bool)
	for _, defn := range defs {
		if defn != nil {
			used[defn.Operator] = true
		}
	}

	for _, op := range instructions.Operators {
		test.ExpectEquality(t, used[op], true, op)
	}
	test.ExpectEquality(t, len(used), len(instructions.Operators))
}

func TestPenalties(t *testing.T) {
	defs := instructions.GetDefinitions()

	for _, defn := range defs {
		if defn == nil {
			continue
		}

		// a definition can never be both
		test.ExpectEquality(t, defn.PageSensitive && defn.ForcedPenalty, false, defn.OpCode)

		if defn.ForcedPenalty {
			test.ExpectEquality(t, defn.AddressingMode.IsIndexed(), true, defn.OpCode)
			test.ExpectInequality(t, defn.Effect, instructions.Read, defn.OpCode)
		}
	}

	// spot checks
	test.ExpectEquality(t, defs[0xbd].PageSensitive, true)
	test.ExpectEquality(t, defs[0x9d].ForcedPenalty, true)
	test.ExpectEquality(t, defs[0x91].ForcedPenalty, true)
	test.ExpectEquality(t, defs[0xfe].ForcedPenalty, true)
	test.ExpectEquality(t, defs[0x5e].ForcedPenalty, true)
	test.ExpectEquality(t, defs[0xb6].PageSensitive, false)
}

func TestBytes(t *testing.T) {
	defs := instructions.GetDefinitions()

	test.ExpectEquality(t, defs[0x00].Bytes, 2)
	test.ExpectEquality(t, defs[0xea].Bytes, 1)
	test.ExpectEquality(t, defs[0x0a].Bytes, 1)
	test.ExpectEquality(t, defs[0xa9].Bytes, 2)
	test.ExpectEquality(t, defs[0x6c].Bytes, 3)
	test.ExpectEquality(t, defs[0x92].Bytes, 2)
	test.ExpectEquality(t, defs[0x20].Bytes, 3)
}

func TestIsBranch(t *testing.T) {
	defs := instructions.GetDefinitions()

	var branches int
	for _, defn := range defs {
		if defn != nil && defn.IsBranch() {
			branches++
		}
	}
	test.ExpectEquality(t, branches, 8)
	test.ExpectEquality(t, defs[0x4c].IsBranch(), false)
}
