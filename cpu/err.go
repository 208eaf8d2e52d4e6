package cpu

import (
	"errors"

	"github.com/ezrec/vcpu/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrIpEmpty = errors.New(f("ip empty"))

	// Instruction errors
	ErrIllegalInstruction = errors.New(f("illegal instruction"))
	ErrMalformedOperands  = errors.New(f("malformed operands"))

	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrLabelInvalid    = errors.New(f("label invalid"))
	ErrOpcodeExtraArgs = errors.New(f("excessive arguments"))
	ErrOperandMissing  = errors.New(f("operand missing"))
	ErrOpcodeInvalid   = errors.New(f("opcode invalid"))
)

// ErrIllegal reports an instruction that could not be executed.
type ErrIllegal struct {
	Ip          uint32      // Address of the failing instruction.
	Instruction Instruction // The failing instruction.
	Err         error
}

func (err *ErrIllegal) Error() string {
	return f("illegal instruction at %d '%v' %v", err.Ip, err.Instruction, err.Err)
}

func (err *ErrIllegal) Unwrap() error {
	return err.Err
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseValue string

func (err ErrParseValue) Error() string {
	return f("'%v' is not a value or register", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
