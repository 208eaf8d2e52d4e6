package cpu

import (
	"iter"
)

// Memory is the program memory: instructions addressed by index.
// It is appended to while a program is built, and only read while running.
type Memory struct {
	Instructions []Instruction
	LineNo       []int // Source line of each instruction, if assembled.
}

// Append adds instructions to the end of memory.
func (mem *Memory) Append(instrs ...Instruction) {
	mem.Instructions = append(mem.Instructions, instrs...)
}

// Len returns the number of instructions in memory.
func (mem *Memory) Len() int {
	return len(mem.Instructions)
}

// Fetch returns the instruction at ip.
func (mem *Memory) Fetch(ip uint32) (instr Instruction, ok bool) {
	if uint64(ip) >= uint64(len(mem.Instructions)) {
		return
	}

	return mem.Instructions[ip], true
}

// Line returns the source line of the instruction at ip, or 0 if unknown.
func (mem *Memory) Line(ip uint32) int {
	if uint64(ip) >= uint64(len(mem.LineNo)) {
		return 0
	}

	return mem.LineNo[ip]
}

// All iterates over the instructions and their addresses.
func (mem *Memory) All() iter.Seq2[uint32, Instruction] {
	return func(yield func(ip uint32, instr Instruction) bool) {
		for n, instr := range mem.Instructions {
			if !yield(uint32(n), instr) {
				return
			}
		}
	}
}
