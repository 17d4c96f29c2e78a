package rv

import (
	"fmt"
	"strconv"
	"strings"
)

// Reg is a register index. Only the low 5 bits are encoded.
type Reg uint32

const (
	REG_ZERO = Reg(0)
	REG_RA   = Reg(1)
	REG_SP   = Reg(2)
	REG_FP   = Reg(8)
)

// abiNames is indexed by register number.
var abiNames = [32]string{
	"zero", "ra", "sp", "gp", "tp",
	"t0", "t1", "t2",
	"s0", "s1",
	"a0", "a1", "a2", "a3", "a4", "a5", "a6", "a7",
	"s2", "s3", "s4", "s5", "s6", "s7", "s8", "s9", "s10", "s11",
	"t3", "t4", "t5", "t6",
}

// regMap maps ABI register names to register indexes.
var regMap = func() map[string]Reg {
	m := make(map[string]Reg, len(abiNames)+1)
	for n, name := range abiNames {
		m[name] = Reg(n)
	}
	m["fp"] = REG_FP
	return m
}()

// ParseRegister resolves a register token.
//
// Numeric names (x0..x31) are not bounds checked; larger values are
// truncated to 5 bits when encoded. Unknown names silently resolve to x0.
// Only an 'x' prefix followed by something that is not an integer is an
// error.
func ParseRegister(token string) (reg Reg, err error) {
	name := strings.ToLower(strings.TrimSpace(token))

	if rest, ok := strings.CutPrefix(name, "x"); ok {
		var value int64
		value, err = strconv.ParseInt(rest, 10, 64)
		if err != nil {
			err = ErrParseRegister(token)
			return
		}
		reg = Reg(uint32(value))
		return
	}

	reg = regMap[name]

	return
}

// Index returns the 5-bit field value of the register.
func (reg Reg) Index() uint32 {
	return uint32(reg) & 0x1f
}

// String returns the ABI name of the register.
func (reg Reg) String() string {
	if uint32(reg) < uint32(len(abiNames)) {
		return abiNames[reg]
	}
	return fmt.Sprintf("x%d", uint32(reg))
}
