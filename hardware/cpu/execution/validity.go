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

package execution

import (
	"github.com/jetsetilly/gopher6502/curated"
)

// IsValid checks whether the instance of Result is consistent with the
// instruction definition.
func (r Result) IsValid() error {
	if !r.Final {
		return curated.Errorf("cpu: execution not finalised (bad opcode?)")
	}

	if r.Defn == nil {
		return curated.Errorf("cpu: execution has no instruction definition")
	}

	// is PageFault valid given content of Defn
	if r.PageFault && !r.Defn.PageSensitive && !r.Defn.ForcedPenalty && !r.Defn.IsBranch() {
		return curated.Errorf("cpu: unexpected page fault")
	}

	if r.ByteCount != r.Defn.Bytes {
		return curated.Errorf("cpu: unexpected number of bytes read during decode (%d instead of %d)", r.ByteCount, r.Defn.Bytes)
	}

	expected := r.Defn.Cycles
	switch {
	case r.Defn.IsBranch():
		// a taken branch costs one more cycle and crossing a page costs
		// another. a page fault is only possible if the branch was taken
		if r.Cycles < expected || r.Cycles > expected+2 || (r.PageFault && r.Cycles != expected+2) {
			return curated.Errorf("cpu: number of cycles wrong for opcode %#02x [%s] (%d instead of %d, %d or %d)",
				r.Defn.OpCode, r.Defn.Operator, r.Cycles, expected, expected+1, expected+2)
		}
		return nil
	case r.Defn.PageSensitive && r.PageFault:
		expected++
	}

	if r.Cycles != expected {
		return curated.Errorf("cpu: number of cycles wrong for opcode %#02x [%s] (%d instead of %d)",
			r.Defn.OpCode, r.Defn.Operator, r.Cycles, expected)
	}

	return nil
}
