// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/ezrec/vcpu/cpu"
	"github.com/ezrec/vcpu/emulator"
)

// sample is the built-in program run when no source is given.
func sample() (prog *cpu.Memory) {
	prog = &cpu.Memory{}

	// set 12 to register GRA
	prog.Append(cpu.NewInstruction(cpu.OP_MOV, cpu.REG_GRA, cpu.REG_NONE, 12, 0))
	// set 23 to register GRB
	prog.Append(cpu.NewInstruction(cpu.OP_MOV, cpu.REG_GRB, cpu.REG_NONE, 23, 0))
	// add GRA and GRB and place result in GRA
	prog.Append(cpu.NewInstruction(cpu.OP_ADD, cpu.REG_GRA, cpu.REG_GRB, 0, 0))

	return
}

func main() {
	var source []string
	var step bool
	var haltOnIllegal bool
	var maxTicks int
	var verbose bool

	flag.Func("e", "Assembler source line (repeatable)", func(line string) error {
		source = append(source, line)
		return nil
	})
	flag.BoolVar(&step, "s", false, "Wait for [ENTER] between instructions")
	flag.BoolVar(&haltOnIllegal, "halt-on-illegal", false, "Stop on the first illegal instruction")
	flag.IntVar(&maxTicks, "max-ticks", 0, "Stop after this many instructions (0 is unlimited)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	emu := emulator.NewEmulator()
	defer emu.Close()

	emu.Verbose = verbose
	emu.HaltOnIllegal = haltOnIllegal
	emu.MaxTicks = maxTicks

	if len(source) != 0 {
		asm := &cpu.Assembler{Verbose: verbose}
		for key, value := range emu.Defines() {
			asm.Predefine(key, value)
		}
		prog, err := asm.Parse(strings.NewReader(strings.Join(source, "\n")))
		if err != nil {
			log.Fatalf("%v: %v", os.Args[0], err)
		}
		emu.Program = prog
	} else {
		emu.Program = sample()
	}

	if step {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			emu.Gate = &emulator.LineGate{
				Prompt: "Press [ENTER] to continue execution",
				Input:  os.Stdin,
				Output: os.Stdout,
			}
		} else if verbose {
			log.Printf("%v: stdin is not a terminal, not stepping", os.Args[0])
		}
	}

	err := emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	err = emu.Run()
	if err != nil {
		log.Fatal(err)
	}
}
