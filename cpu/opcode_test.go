package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpcode_String(t *testing.T) {
	assert := assert.New(t)

	for op := range Opcode(OPCODE_COUNT) {
		assert.False(strings.HasPrefix(op.String(), "Opcode("), "opcode %d has no name", op)
	}

	assert.Equal("Opcode(7)", Opcode(OPCODE_COUNT).String())
}

func TestOpcode_Handlers(t *testing.T) {
	assert := assert.New(t)

	assert.Len(handlers, OPCODE_COUNT)
	for op := range Opcode(OPCODE_COUNT) {
		assert.NotNil(handlers[op], op.String())
	}
}

func TestInstruction_String(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		instr    Instruction
		expected string
	}){
		{NewInstruction(OP_NOP, REG_NONE, REG_NONE, 0, 0), "nop"},
		{NewInstruction(OP_MOV, REG_GRA, REG_NONE, 12, 0), "mov gra 12"},
		{NewInstruction(OP_MOV, REG_GRB, REG_GRA, 0, 0), "mov grb gra"},
		{NewInstruction(OP_ADD, REG_GRA, REG_GRB, 0, 0), "add gra grb"},
		{NewInstruction(OP_ADD, REG_GRA, REG_NONE, 0, 7), "add gra 7"},
		{NewInstruction(OP_ADD, REG_NONE, REG_GRB, 3, 0), "add 3 grb"},
		{NewInstruction(OP_SUB, REG_GRC, REG_GRD, 0, 0), "sub grc grd"},
		{NewInstruction(OP_RET, REG_NONE, REG_NONE, 0, 0), "ret"},
		{NewInstruction(OP_CALL, REG_NONE, REG_NONE, 0x10, 0), "call 16"},
	}

	for _, entry := range table {
		assert.Equal(entry.expected, entry.instr.String())
	}
}

func TestNewInstruction(t *testing.T) {
	assert := assert.New(t)

	instr := NewInstruction(OP_ADD, REG_GRA, REG_GRB, 1, 2)
	assert.Equal(Instruction{Opcode: OP_ADD, Left: REG_GRA, Right: REG_GRB, LeftValue: 1, RightValue: 2}, instr)
}
