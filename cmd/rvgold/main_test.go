package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/rvgold/branch"
	"github.com/ezrec/rvgold/golden"
	rvio "github.com/ezrec/rvgold/io"
)

func TestReport(t *testing.T) {
	assert := assert.New(t)

	gen := &golden.Generator{}
	result, err := gen.Run(&golden.Job{Source: "bne x1, x0, 0\nnop\n"}, rvio.MemFS{})
	if !assert.NoError(err) {
		return
	}

	// Two facts for slot 0; only the last one stays in the table.
	result.Facts = []branch.Fact{
		{Address: 0x0, Taken: true, Target: 0x0},
		{Address: 0x400, Taken: false, Target: 0x404},
	}
	result.Table = branch.PackSlice(result.Facts)
	assert.Equal(1, result.Table.Len())

	buff := &bytes.Buffer{}
	report(buff, &golden.Job{BranchOut: "out/branches.mem"}, result)
	assert.Equal("Generated program.mem with 2 instructions\n"+
		"Generated out/branches.mem with 2 branch entries\n", buff.String())
}

func TestDefineFlag(t *testing.T) {
	assert := assert.New(t)

	defines := defineFlag{}
	assert.NoError(defines.Set("BASE=0x100"))
	assert.NoError(defines.Set("EMPTY="))
	assert.Equal(defineFlag{"BASE": "0x100", "EMPTY": ""}, defines)

	assert.Equal(ErrDefine("BASE"), defines.Set("BASE"))
	assert.Equal(ErrDefine("=1"), defines.Set("=1"))
}

func TestListFlag(t *testing.T) {
	assert := assert.New(t)

	var traces listFlag
	assert.NoError(traces.Set("a.trace"))
	assert.NoError(traces.Set("b.trace"))
	assert.Equal(listFlag{"a.trace", "b.trace"}, traces)
	assert.Equal("a.trace,b.trace", traces.String())
}
