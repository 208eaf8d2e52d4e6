package cpu

import (
	"fmt"
	"strings"
)

// Opcode is the operation an Instruction performs.
type Opcode uint8

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_NOP  = Opcode(0) // nop
	OP_ADD  = Opcode(1) // add
	OP_SUB  = Opcode(2) // sub
	OP_MUL  = Opcode(3) // mul
	OP_MOV  = Opcode(4) // mov
	OP_RET  = Opcode(5) // ret
	OP_CALL = Opcode(6) // call
)

// OPCODE_COUNT is the number of declared opcodes.
const OPCODE_COUNT = 7

// Arity returns the number of operands the assembler form of the opcode takes.
func (op Opcode) Arity() int {
	switch op {
	case OP_NOP, OP_RET:
		return 0
	case OP_CALL:
		return 1
	default:
		return 2
	}
}

// Instruction is a single operation and its operands.
//
// An operand is a register when its RegisterIndex is not REG_NONE, otherwise
// the matching immediate is used. The one exception is a register-immediate
// mov, which carries its immediate in LeftValue.
type Instruction struct {
	Opcode     Opcode
	Left       RegisterIndex
	Right      RegisterIndex
	LeftValue  uint32
	RightValue uint32
}

// NewInstruction creates an instruction.
func NewInstruction(op Opcode, left, right RegisterIndex, lvalue, rvalue uint32) Instruction {
	return Instruction{
		Opcode:     op,
		Left:       left,
		Right:      right,
		LeftValue:  lvalue,
		RightValue: rvalue,
	}
}

// operand formats a register reference, or the immediate when there is none.
func operand(ri RegisterIndex, value uint32) string {
	if ri != REG_NONE {
		return ri.String()
	}
	return fmt.Sprintf("%d", value)
}

// String returns the assembly language representation of the instruction.
func (instr Instruction) String() string {
	words := []string{instr.Opcode.String()}

	lhs := operand(instr.Left, instr.LeftValue)
	rhs := operand(instr.Right, instr.RightValue)
	if instr.Opcode == OP_MOV && instr.Left != REG_NONE && instr.Right == REG_NONE {
		rhs = fmt.Sprintf("%d", instr.LeftValue)
	}

	switch instr.Opcode.Arity() {
	case 0:
	case 1:
		words = append(words, lhs)
	default:
		words = append(words, lhs, rhs)
	}

	return strings.Join(words, " ")
}
