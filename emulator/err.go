package emulator

import (
	"errors"

	"github.com/ezrec/vcpu/translate"
)

var f = translate.From

var (
	ErrTickLimit = errors.New(f("tick limit exceeded"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Ip     uint32
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("ip %d %v", err.Ip, err.Err)
	}
	return f("ip %d line %d %v", err.Ip, err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
