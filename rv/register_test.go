package rv

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRegister(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		Token string
		Reg   Reg
	}{
		{"x0", 0},
		{"x31", 31},
		{"X5", 5},
		{" x7 ", 7},
		{"x05", 5},
		{"x40", 40}, // Not bounds checked.
		{"zero", 0},
		{"ra", 1},
		{"sp", 2},
		{"gp", 3},
		{"tp", 4},
		{"t0", 5},
		{"t2", 7},
		{"s0", 8},
		{"fp", 8},
		{"s1", 9},
		{"a0", 10},
		{"A7", 17},
		{"s2", 18},
		{"s11", 27},
		{"t3", 28},
		{"t6", 31},
		{"bogus", 0}, // Unknown names fall back to x0.
		{"r1", 0},
		{"", 0},
	}

	for _, testcase := range table {
		reg, err := ParseRegister(testcase.Token)
		assert.NoError(err, testcase.Token)
		assert.Equal(testcase.Reg, reg, testcase.Token)
	}
}

func TestParseRegister_Malformed(t *testing.T) {
	assert := assert.New(t)

	for _, token := range []string{"x", "xyz", "x1a", "x0x1"} {
		_, err := ParseRegister(token)
		var pr ErrParseRegister
		assert.True(errors.As(err, &pr), token)
		assert.Equal(ErrParseRegister(token), pr)
	}
}

func TestReg_Index(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(uint32(8), Reg(40).Index())
	assert.Equal(uint32(31), Reg(31).Index())
	assert.Equal(uint32(31), Reg(0xffffffff).Index())
}

func TestReg_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("zero", REG_ZERO.String())
	assert.Equal("ra", REG_RA.String())
	assert.Equal("s0", REG_FP.String())
	assert.Equal("t6", Reg(31).String())
	assert.Equal("x40", Reg(40).String())
}
