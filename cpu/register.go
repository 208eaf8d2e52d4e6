package cpu

import (
	"iter"
)

// RegisterIndex names a register operand.
type RegisterIndex uint8

//go:generate go tool stringer -linecomment -type=RegisterIndex
const (
	REG_NONE = RegisterIndex(0) // none
	REG_IP   = RegisterIndex(1) // ip
	REG_SP   = RegisterIndex(2) // sp
	REG_GRA  = RegisterIndex(3) // gra
	REG_GRB  = RegisterIndex(4) // grb
	REG_GRC  = RegisterIndex(5) // grc
	REG_GRD  = RegisterIndex(6) // grd
)

// REGISTER_COUNT is the number of real registers; REG_NONE is not one.
const REGISTER_COUNT = 6

// Valid returns true if the index names a real register.
func (ri RegisterIndex) Valid() bool {
	return ri > REG_NONE && ri <= REG_GRD
}

// RegisterFile is the register bank, indexed by RegisterIndex.
// Slot REG_NONE is never written, so it always reads as zero.
type RegisterFile [REGISTER_COUNT + 1]uint32

// Get returns the value of a register. Unknown registers read as zero.
func (rf *RegisterFile) Get(index RegisterIndex) uint32 {
	if !index.Valid() {
		return 0
	}
	return rf[index]
}

// Set writes a register. Writes to unknown registers are dropped.
func (rf *RegisterFile) Set(index RegisterIndex, value uint32) {
	if !index.Valid() {
		return
	}
	rf[index] = value
}

// Copy sets dst to the value of src.
func (rf *RegisterFile) Copy(dst, src RegisterIndex) {
	rf.Set(dst, rf.Get(src))
}

// Reset zeros all registers.
func (rf *RegisterFile) Reset() {
	clear(rf[:])
}

// All iterates over the real registers in index order.
func (rf *RegisterFile) All() iter.Seq2[RegisterIndex, uint32] {
	return func(yield func(index RegisterIndex, value uint32) bool) {
		for index := REG_IP; index <= REG_GRD; index++ {
			if !yield(index, rf[index]) {
				return
			}
		}
	}
}
