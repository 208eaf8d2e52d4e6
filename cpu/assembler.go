// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// opMap maps mnemonics to opcodes.
var opMap = map[string]Opcode{
	"nop":  OP_NOP,
	"add":  OP_ADD,
	"sub":  OP_SUB,
	"mul":  OP_MUL,
	"mov":  OP_MOV,
	"ret":  OP_RET,
	"call": OP_CALL,
}

// regMap maps register names to register indexes.
var regMap = map[string]RegisterIndex{
	"ip":  REG_IP,
	"sp":  REG_SP,
	"gra": REG_GRA,
	"grb": REG_GRB,
	"grc": REG_GRC,
	"grd": REG_GRD,
}

var reLabel = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// link is an operand waiting for a label address.
type link struct {
	Ip    int    // Instruction to patch.
	Right bool   // Patch RightValue rather than LeftValue.
	Label string // Label to resolve.
}

// Assembler is a single pass assembler for the vcpu system.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of jump labels to instruction indexes.
	Equate    map[string]string // Map of equates.

	memory *Memory
	links  []link
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value uint32, err error) {
	invert := false
	if len(word) > 1 && word[0] == '~' {
		invert = true
		word = word[1:]
	}
	v64, err := strconv.ParseInt(word, 0, 34)
	if err != nil || v64 > 0xffffffff || v64 < -int64(0x80000000) {
		err = ErrParseNumber(word)
		return
	}

	value = uint32(v64)

	if invert {
		value = ^value
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint32, err error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value32 uint32
		value32, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			err = nil
			continue
		}
		pred[key] = starlark.MakeUint(uint(value32))
	}
	for key, ip := range asm.Label {
		pred[key] = starlark.MakeInt(ip)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrParseExpression(expr), err)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = uint32(st_int64)
	return
}

// parseLine expands a single line into words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do $() evaluations
	re := regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#x", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for len(words) > 0 && strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		if !reLabel.MatchString(label) {
			err = ErrLabelInvalid
			return
		}
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		asm.Label[label] = asm.memory.Len()
		words = words[1:]
	}

	return
}

// operand decodes a register name, an immediate, or a label reference.
func (asm *Assembler) operand(word string) (ri RegisterIndex, value uint32, label string, err error) {
	ri, ok := regMap[strings.ToLower(word)]
	if ok {
		return
	}

	value, err = asm.valueOf(word)
	if err == nil {
		return
	}

	if reLabel.MatchString(word) {
		err = nil
		ip, ok := asm.Label[word]
		if ok {
			value = uint32(ip)
		} else {
			label = word
		}
		return
	}

	err = ErrParseValue(word)
	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	// no-op
	if len(words) == 0 {
		return
	}

	op, ok := opMap[strings.ToLower(words[0])]
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	args := words[1:]
	arity := op.Arity()
	switch {
	case len(args) > arity:
		err = ErrOpcodeExtraArgs
		return
	case len(args) < arity:
		err = ErrOperandMissing
		return
	}

	instr := Instruction{Opcode: op}
	ip := asm.memory.Len()

	var values [2]uint32
	var regs [2]RegisterIndex
	for n, arg := range args {
		var label string
		regs[n], values[n], label, err = asm.operand(arg)
		if err != nil {
			return
		}
		if len(label) != 0 {
			asm.links = append(asm.links, link{Ip: ip, Right: n == 1, Label: label})
		}
	}

	instr.Left, instr.LeftValue = regs[0], values[0]
	instr.Right, instr.RightValue = regs[1], values[1]

	// mov <reg>,<imm> carries the immediate on the left.
	if op == OP_MOV && instr.Left != REG_NONE && instr.Right == REG_NONE {
		instr.LeftValue, instr.RightValue = instr.RightValue, 0
		for n := range asm.links {
			if asm.links[n].Ip == ip {
				asm.links[n].Right = false
			}
		}
	}

	if asm.Verbose {
		log.Printf("asm: %03x: %v", ip, instr)
	}

	asm.memory.Append(instr)
	asm.memory.LineNo = append(asm.memory.LineNo, lineno)

	return
}

// Parse parses an input stream into a program Memory.
func (asm *Assembler) Parse(input io.Reader) (mem *Memory, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.memory = &Memory{}
	asm.links = asm.links[:0]
	asm.Label = make(map[string]int, 16)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("asm: %v: %v", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Final linking of forward label references.
	for _, lnk := range asm.links {
		ip, ok := asm.Label[lnk.Label]
		if !ok {
			lineno = asm.memory.LineNo[lnk.Ip]
			line = asm.memory.Instructions[lnk.Ip].String()
			err = ErrLabelMissing(lnk.Label)
			return
		}
		instr := &asm.memory.Instructions[lnk.Ip]
		if lnk.Right {
			instr.RightValue = uint32(ip)
		} else {
			instr.LeftValue = uint32(ip)
		}
	}

	mem = &Memory{
		Instructions: slices.Clone(asm.memory.Instructions),
		LineNo:       slices.Clone(asm.memory.LineNo),
	}

	return
}
