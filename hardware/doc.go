// Package hardware is the base package for the 6502 emulation. The CPU is in
// the cpu sub-package and the interface it uses to reach memory is in the
// memory/cpubus sub-package.
//
// There is no memory implementation in this package tree. The CPU is always
// connected to something that implements the cpubus.Bus interface, such as
// the conformance harness in the harness package.
package hardware
