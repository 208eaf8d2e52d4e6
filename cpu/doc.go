// Package cpu implements the register machine and assembler for the vcpu system.
//
// The CPU consists of an instruction pointer (IP), a stack pointer (SP) and
// four 32-bit general-purpose registers (GRA-GRD). Programs are a linear
// Memory of Instructions fetched at IP; IP is advanced before each
// Instruction executes.
//
// The assembler provides a small line-oriented language for building a
// Memory in place, supporting labels, equates, and compile-time expression
// evaluation.
package cpu
