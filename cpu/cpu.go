package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"strings"
)

var _cpu_defines = map[string]string{
	"REGISTER_COUNT": fmt.Sprintf("%d", REGISTER_COUNT),
	"OPCODE_COUNT":   fmt.Sprintf("%d", OPCODE_COUNT),
}

// Cpu is the simulation context for the register machine.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Register RegisterFile // Register bank, including IP and SP.
	Memory   *Memory      // Program memory.

	Ticks int // Instructions dispatched since reset.
}

// NewCpu creates a new CPU attached to a program memory.
func NewCpu(mem *Memory) (cpu *Cpu) {
	if mem == nil {
		mem = &Memory{}
	}

	cpu = &Cpu{
		Memory: mem,
	}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Ip returns the address of the next instruction to fetch.
func (cpu *Cpu) Ip() uint32 {
	return cpu.Register[REG_IP]
}

// String returns the register state as a single line.
func (cpu *Cpu) String() string {
	var text strings.Builder

	text.WriteString("Registers :")
	for index, value := range cpu.Register.All() {
		fmt.Fprintf(&text, "\t%s : %d", strings.ToUpper(index.String()), value)
	}

	return text.String()
}

// Reset the CPU state.
// - Clears the registers, so execution starts at address 0.
// - Zeros statistics counters.
func (cpu *Cpu) Reset() (err error) {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Register.Reset()
	cpu.Ticks = 0

	return
}

// Fetch returns the instruction at IP, and advances IP past it.
func (cpu *Cpu) Fetch() (instr Instruction, err error) {
	ip := cpu.Register[REG_IP]

	instr, ok := cpu.Memory.Fetch(ip)
	if !ok {
		err = ErrIpEmpty
		return
	}

	cpu.Register[REG_IP] = ip + 1

	return
}

// Tick executes a single CPU instruction cycle.
func (cpu *Cpu) Tick() (err error) {
	instr, err := cpu.Fetch()
	if err != nil {
		return
	}

	err = cpu.Execute(instr)

	return
}

// handler executes one opcode against the CPU.
type handler func(cpu *Cpu, instr Instruction) error

// handlers holds one entry per declared opcode.
var handlers = [OPCODE_COUNT]handler{
	OP_NOP:  (*Cpu).doNop,
	OP_ADD:  (*Cpu).doAdd,
	OP_SUB:  (*Cpu).doIllegal,
	OP_MUL:  (*Cpu).doIllegal,
	OP_MOV:  (*Cpu).doMov,
	OP_RET:  (*Cpu).doIllegal,
	OP_CALL: (*Cpu).doIllegal,
}

// Execute executes a single fetched instruction.
// IP must already point past the instruction, as Fetch leaves it.
// An instruction that cannot execute leaves the CPU state unchanged, and
// returns an *ErrIllegal wrapping ErrIllegalInstruction.
func (cpu *Cpu) Execute(instr Instruction) (err error) {
	ip := cpu.Register[REG_IP] - 1

	defer func() {
		if err != nil {
			err = &ErrIllegal{Ip: ip, Instruction: instr, Err: err}
		}
	}()

	if cpu.Verbose {
		log.Printf("cpu: %03x: %v", ip, instr)
	}

	cpu.Ticks += 1

	if int(instr.Opcode) >= len(handlers) || handlers[instr.Opcode] == nil {
		err = ErrIllegalInstruction
		return
	}

	err = handlers[instr.Opcode](cpu, instr)

	return
}

// malformed is the error for an operand pattern with no defined effect.
var malformed = errors.Join(ErrIllegalInstruction, ErrMalformedOperands)

func (cpu *Cpu) doNop(instr Instruction) (err error) {
	return
}

func (cpu *Cpu) doIllegal(instr Instruction) (err error) {
	return ErrIllegalInstruction
}

func (cpu *Cpu) doMov(instr Instruction) (err error) {
	switch {
	case instr.Left == REG_NONE:
		// mov 0x1000,<any>
		err = malformed
	case instr.Right != REG_NONE:
		// mov gra,grb
		cpu.Register.Copy(instr.Left, instr.Right)
	default:
		// mov gra,0x1000
		cpu.Register.Set(instr.Left, instr.LeftValue)
	}

	return
}

func (cpu *Cpu) doAdd(instr Instruction) (err error) {
	switch {
	case instr.Left == REG_NONE:
		// add 0x1000,<any> has nowhere to put the sum.
		err = malformed
	case instr.Right != REG_NONE:
		// add gra,grb
		cpu.Register.Set(instr.Left, cpu.Register.Get(instr.Left)+cpu.Register.Get(instr.Right))
	default:
		// add gra,0x1000
		cpu.Register.Set(instr.Left, cpu.Register.Get(instr.Left)+instr.RightValue)
	}

	return
}
