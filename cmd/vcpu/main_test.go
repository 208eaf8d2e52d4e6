package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/vcpu/cpu"
	"github.com/ezrec/vcpu/emulator"
)

func TestSample(t *testing.T) {
	assert := assert.New(t)

	trace := &bytes.Buffer{}

	emu := emulator.NewEmulator()
	emu.Trace = trace
	emu.Program = sample()

	assert.NoError(emu.Reset())
	assert.NoError(emu.Run())

	assert.Equal(emulator.STATE_HALTED, emu.State())
	assert.Equal(cpu.RegisterFile{cpu.REG_IP: 3, cpu.REG_GRA: 35, cpu.REG_GRB: 23}, emu.Cpu.Register)
	assert.True(strings.HasSuffix(trace.String(),
		"Registers :\tIP : 3\tSP : 0\tGRA : 35\tGRB : 23\tGRC : 0\tGRD : 0\nCPU Halted!\n"))
}
