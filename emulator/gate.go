package emulator

import (
	"bufio"
	"fmt"
	"io"
)

// Gate blocks the execution loop between instructions.
type Gate interface {
	// Wait returns when the next instruction may run.
	Wait() error
}

// GateFunc adapts a function to a Gate.
type GateFunc func() error

func (fn GateFunc) Wait() error {
	return fn()
}

// LineGate prompts on Output, and waits for a line on Input.
type LineGate struct {
	Prompt string
	Input  io.Reader
	Output io.Writer

	reader *bufio.Reader
}

func (lg *LineGate) Wait() (err error) {
	if lg.reader == nil {
		lg.reader = bufio.NewReader(lg.Input)
	}

	if lg.Output != nil && len(lg.Prompt) != 0 {
		fmt.Fprint(lg.Output, lg.Prompt)
	}

	_, err = lg.reader.ReadString('\n')
	if err == io.EOF {
		// No more input; keep running unattended.
		err = nil
	}

	return
}
