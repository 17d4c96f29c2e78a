package rv

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := parse(t, loopProgram)

	op := prog.Debug(0)
	assert.NotNil(op)
	assert.Equal(1, op.LineNo)

	op = prog.Debug(8)
	assert.NotNil(op)
	assert.Equal(4, op.LineNo)
	assert.Equal([]string{"addi", "x2", "x2", "1"}, op.Words)

	op = prog.Debug(16)
	assert.NotNil(op)
	assert.Equal(6, op.LineNo)

	assert.Nil(prog.Debug(20))
	assert.Nil(prog.Debug(2))
}

func TestProgram_Codes(t *testing.T) {
	assert := assert.New(t)

	prog := parse(t, loopProgram)

	var addrs []uint32
	var words Image
	for addr, word := range prog.Codes() {
		addrs = append(addrs, addr)
		words = append(words, word)
	}

	assert.Equal([]uint32{0, 4, 8, 12, 16}, addrs)
	assert.Equal(prog.Words(), words)

	// Early termination.
	count := 0
	for range prog.Codes() {
		count++
		break
	}
	assert.Equal(1, count)
}

func TestProgram_Listing(t *testing.T) {
	assert := assert.New(t)

	prog := parse(t, loopProgram)

	buff := &bytes.Buffer{}
	err := prog.Listing(buff)
	assert.NoError(err)

	lines := strings.Split(strings.TrimSpace(buff.String()), "\n")
	assert.Equal(6, len(lines))
	assert.Equal("loop:", lines[2])
	assert.True(strings.HasPrefix(lines[5], "00000010: FE009CE3  bne ra, zero, loop"), lines[5])
}
