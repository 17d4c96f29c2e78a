// Package branch derives, reads and packs the expected control-flow
// outcomes of a program into the fixed-width lookup table consumed by the
// hardware branch predictor testbench.
package branch

import (
	"fmt"
	"iter"

	"github.com/ezrec/rvgold/rv"
)

// Fact is the expected outcome of one branch or jump.
type Fact struct {
	Address uint32
	Taken   bool
	Target  uint32
}

func (fact Fact) String() string {
	taken := 0
	if fact.Taken {
		taken = 1
	}
	return fmt.Sprintf("0x%08X %d 0x%08X", fact.Address, taken, fact.Target)
}

// DeriveFrom statically derives facts from an address-ordered sequence of
// machine words.
//
// Branch targets and JAL targets are exact. JAL is always taken. Whether a
// conditional branch is taken cannot be known without executing the
// program, so branches are marked taken when their instruction index is
// even. That is a placeholder for demonstration data only; real golden
// data needs an execution trace, see ReadTrace.
func DeriveFrom(codes iter.Seq2[uint32, rv.Word]) (facts []Fact) {
	index := 0
	for pc, word := range codes {
		switch word.Opcode() {
		case rv.OPCODE_BRANCH:
			target, _ := word.Target(pc)
			facts = append(facts, Fact{Address: pc, Taken: index%2 == 0, Target: target})
		case rv.OPCODE_JAL:
			target, _ := word.Target(pc)
			facts = append(facts, Fact{Address: pc, Taken: true, Target: target})
		}
		index++
	}

	return
}

// Derive statically derives facts from a program image loaded at address 0.
func Derive(words []rv.Word) (facts []Fact) {
	return DeriveFrom(func(yield func(uint32, rv.Word) bool) {
		for n, word := range words {
			if !yield(uint32(n)*4, word) {
				return
			}
		}
	})
}
