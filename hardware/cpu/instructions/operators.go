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

package instructions

// Operator is the mnemonic of an instruction.
type Operator string

// List of operators.
const (
	ADC Operator = "ADC"
	AND Operator = "AND"
	ASL Operator = "ASL"
	BCC Operator = "BCC"
	BCS Operator = "BCS"
	BEQ Operator = "BEQ"
	BIT Operator = "BIT"
	BMI Operator = "BMI"
	BNE Operator = "BNE"
	BPL Operator = "BPL"
	BRK Operator = "BRK"
	BVC Operator = "BVC"
	BVS Operator = "BVS"
	CLC Operator = "CLC"
	CLD Operator = "CLD"
	CLI Operator = "CLI"
	CLV Operator = "CLV"
	CMP Operator = "CMP"
	CPX Operator = "CPX"
	CPY Operator = "CPY"
	DEC Operator = "DEC"
	DEX Operator = "DEX"
	DEY Operator = "DEY"
	EOR Operator = "EOR"
	INC Operator = "INC"
	INX Operator = "INX"
	INY Operator = "INY"
	JMP Operator = "JMP"
	JSR Operator = "JSR"
	LDA Operator = "LDA"
	LDX Operator = "LDX"
	LDY Operator = "LDY"
	LSR Operator = "LSR"
	NOP Operator = "NOP"
	ORA Operator = "ORA"
	PHA Operator = "PHA"
	PHP Operator = "PHP"
	PLA Operator = "PLA"
	PLP Operator = "PLP"
	ROL Operator = "ROL"
	ROR Operator = "ROR"
	RTI Operator = "RTI"
	RTS Operator = "RTS"
	SBC Operator = "SBC"
	SEC Operator = "SEC"
	SED Operator = "SED"
	SEI Operator = "SEI"
	STA Operator = "STA"
	STX Operator = "STX"
	STY Operator = "STY"
	TAX Operator = "TAX"
	TAY Operator = "TAY"
	TSX Operator = "TSX"
	TXA Operator = "TXA"
	TXS Operator = "TXS"
	TYA Operator = "TYA"
)

// Operators lists every operator in alphabetical order.
var Operators = []Operator{
	ADC, AND, ASL, BCC, BCS, BEQ, BIT, BMI, BNE, BPL, BRK, BVC, BVS, CLC,
	CLD, CLI, CLV, CMP, CPX, CPY, DEC, DEX, DEY, EOR, INC, INX, INY, JMP,
	JSR, LDA, LDX, LDY, LSR, NOP, ORA, PHA, PHP, PLA, PLP, ROL, ROR, RTI,
	RTS, SBC, SEC, SED, SEI, STA, STX, STY, TAX, TAY, TSX, TXA, TXS, TYA,
}
