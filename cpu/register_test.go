package cpu

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterFile_GetSet(t *testing.T) {
	assert := assert.New(t)

	rf := &RegisterFile{}

	for n, index := range []RegisterIndex{REG_IP, REG_SP, REG_GRA, REG_GRB, REG_GRC, REG_GRD} {
		rf.Set(index, uint32(0x100+n))
	}

	assert.Equal(uint32(0x100), rf.Get(REG_IP))
	assert.Equal(uint32(0x101), rf.Get(REG_SP))
	assert.Equal(uint32(0x102), rf.Get(REG_GRA))
	assert.Equal(uint32(0x103), rf.Get(REG_GRB))
	assert.Equal(uint32(0x104), rf.Get(REG_GRC))
	assert.Equal(uint32(0x105), rf.Get(REG_GRD))
}

func TestRegisterFile_None(t *testing.T) {
	assert := assert.New(t)

	rf := &RegisterFile{}
	rf.Set(REG_GRA, 0x1234)

	before := *rf
	rf.Set(REG_NONE, 0xdead)
	assert.Equal(before, *rf)
	assert.Equal(uint32(0), rf.Get(REG_NONE))

	// Out of range indexes behave like REG_NONE.
	rf.Set(RegisterIndex(42), 0xbeef)
	assert.Equal(before, *rf)
	assert.Equal(uint32(0), rf.Get(RegisterIndex(42)))
}

func TestRegisterFile_Copy(t *testing.T) {
	assert := assert.New(t)

	rf := &RegisterFile{}
	rf.Set(REG_GRA, 5)

	rf.Copy(REG_GRB, REG_GRA)
	assert.Equal(uint32(5), rf.Get(REG_GRB))
	assert.Equal(uint32(5), rf.Get(REG_GRA))

	// Copying from REG_NONE clears the target.
	rf.Copy(REG_GRB, REG_NONE)
	assert.Equal(uint32(0), rf.Get(REG_GRB))

	// Copying to REG_NONE is dropped.
	rf.Copy(REG_NONE, REG_GRA)
	assert.Equal(uint32(0), rf.Get(REG_NONE))
}

func TestRegisterFile_Reset(t *testing.T) {
	assert := assert.New(t)

	rf := &RegisterFile{}
	for index := range rf.All() {
		rf.Set(index, 0xffffffff)
	}

	rf.Reset()
	for index, value := range rf.All() {
		assert.Equal(uint32(0), value, index.String())
	}
}

func TestRegisterFile_All(t *testing.T) {
	assert := assert.New(t)

	rf := &RegisterFile{}
	rf.Set(REG_GRC, 7)

	var order []RegisterIndex
	for index := range rf.All() {
		order = append(order, index)
	}
	assert.Equal([]RegisterIndex{REG_IP, REG_SP, REG_GRA, REG_GRB, REG_GRC, REG_GRD}, order)
	assert.Len(order, REGISTER_COUNT)

	values := maps.Collect(rf.All())
	assert.Equal(uint32(7), values[REG_GRC])
	assert.NotContains(values, REG_NONE)
}

func TestRegisterIndex_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("none", REG_NONE.String())
	assert.Equal("ip", REG_IP.String())
	assert.Equal("grd", REG_GRD.String())
	assert.Equal("RegisterIndex(7)", RegisterIndex(7).String())

	assert.False(REG_NONE.Valid())
	assert.True(REG_IP.Valid())
	assert.True(REG_GRD.Valid())
	assert.False(RegisterIndex(7).Valid())
}
