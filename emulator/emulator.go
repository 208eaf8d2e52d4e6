// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"os"

	"github.com/ezrec/vcpu/cpu"
	"github.com/ezrec/vcpu/internal"
)

const (
	MEMORY_SIZE = 0x10000 // Largest program the emulator will load.
)

var _emulator_defines = map[string]string{
	"MEMORY_SIZE": fmt.Sprintf("%d", MEMORY_SIZE),
}

var ErrProgramSize = errors.New(f("program too large"))

// Emulator state. CPU + program + execution loop.
type Emulator struct {
	Verbose  bool        // If set, enables verbose logging.
	*cpu.Cpu             // Reference to the CPU simulation.
	Program  *cpu.Memory // Reference to the currently loaded program.

	Trace io.Writer // Register state reports; nil discards them.
	Gate  Gate      // Step gate between instructions; nil never blocks.

	HaltOnIllegal bool // If set, an illegal instruction halts the loop.
	MaxTicks      int  // If non-zero, the most instructions to dispatch.

	state   State
	illegal int
}

// NewEmulator creates a new emulator, tracing to stdout.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(nil),
		Program: &cpu.Memory{},
		Trace:   os.Stdout,
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Close the emulator
func (emu *Emulator) Close() (err error) {
	emu.state = STATE_HALTED

	return
}

// Reset loads the program, and resets the CPU to run it from address 0.
func (emu *Emulator) Reset() (err error) {
	if emu.Program.Len() > MEMORY_SIZE {
		err = ErrProgramSize
		return
	}

	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Memory = emu.Program

	err = emu.Cpu.Reset()
	if err != nil {
		return
	}

	emu.illegal = 0
	emu.state = STATE_FETCHING

	if emu.Verbose {
		log.Printf("emulator: reset, %d instructions", emu.Program.Len())
	}

	return
}

// State returns the execution loop state.
func (emu *Emulator) State() State {
	return emu.state
}

// Ticks returns the instructions dispatched since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Illegal returns the illegal instructions reported since a reset.
func (emu *Emulator) Illegal() int {
	return emu.illegal
}

// LineNo returns the source line for the next instruction.
func (emu *Emulator) LineNo() int {
	return emu.Program.Line(emu.Cpu.Ip())
}

// tracef writes a line to the trace output.
func (emu *Emulator) tracef(format string, args ...any) {
	if emu.Trace == nil {
		return
	}

	fmt.Fprintf(emu.Trace, format+"\n", args...)
}

// halted moves to STATE_HALTED if IP has run past the program.
func (emu *Emulator) halted() bool {
	if uint64(emu.Cpu.Ip()) < uint64(emu.Program.Len()) {
		return false
	}

	emu.state = STATE_HALTED
	emu.tracef("CPU Halted!")

	if emu.Verbose {
		log.Printf("emulator: halted at ip %d after %d ticks", emu.Cpu.Ip(), emu.Cpu.Ticks)
	}

	return true
}

// Tick performs a single fetch and dispatch of the emulator.
// done is set once the loop has halted.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	switch emu.state {
	case STATE_HALTED:
		done = true
		return
	case STATE_DISPATCHING:
		// A previous Tick failed mid-cycle; pick up at the next fetch.
		emu.state = STATE_FETCHING
	}

	if emu.halted() {
		done = true
		return
	}

	ip := emu.Cpu.Ip()
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Ip: ip, LineNo: lineno, Err: err}
		}
	}()

	if emu.MaxTicks > 0 && emu.Cpu.Ticks >= emu.MaxTicks {
		emu.state = STATE_HALTED
		done = true
		err = ErrTickLimit
		return
	}

	emu.tracef("BEFORE EXECUTION")
	emu.tracef("%v", emu.Cpu)

	instr, err := emu.Cpu.Fetch()
	if err != nil {
		return
	}
	emu.state = STATE_DISPATCHING

	err = emu.Cpu.Execute(instr)
	var illegal *cpu.ErrIllegal
	if errors.As(err, &illegal) {
		emu.illegal += 1
		emu.tracef("Illegal instruction at %d", illegal.Ip)
		if emu.HaltOnIllegal {
			emu.state = STATE_HALTED
			done = true
			return
		}
		err = nil
	}
	if err != nil {
		return
	}

	emu.tracef("AFTER EXECUTION")
	emu.tracef("%v", emu.Cpu)

	emu.state = STATE_FETCHING
	if emu.halted() {
		done = true
		return
	}

	if emu.Gate != nil {
		err = emu.Gate.Wait()
	}

	return
}

// Run ticks the emulator until it halts.
func (emu *Emulator) Run() (err error) {
	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}
