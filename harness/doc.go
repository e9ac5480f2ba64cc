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
// Package harness implements a conformance bus for the CPU. The bus serves a
// memory image and checks every access the CPU makes against a test plan,
// which is a cycle by cycle record of a reference chip running the same
// program.
//
// The CPU must be held in reset when the harness starts. The harness releases
// RESET on the third access and starts checking accesses once the CPU reads
// the reset vector. If the reset vector is not read within the grace period
// the run fails with NoResetVector.
//
// A mismatch between the CPU and the plan stops the run with PlanMismatch
// unless the CPU reports that the access is known to be incompatible with the
// reference chip. Tolerated mismatches are logged and counted.
//
// The program under test controls the harness through a page of command
// addresses. A write to any of the following addresses is handled by the
// harness as well as being stored in memory:
//
//	0x0200	end of test. the run stops with TestComplete
//	0x0281	deassert READY after (value-1) cycles for memory[0x0280] cycles
//	0x0283	raise SO after (value) cycles for memory[0x0282] cycles
//	0x02fb	raise NMI after (value) cycles for memory[0x02fa] cycles
//	0x02fd	raise RESET after (value) cycles for memory[0x02fc] cycles
//	0x02ff	raise IRQ after (value) cycles for memory[0x02fe] cycles
//
// Scheduled line changes are applied at the start of the access with the
// requested cycle number.
//
// Without a test plan the harness runs freely. RESET is released on the first
// access and nothing is checked. The command page still works.
package harness
