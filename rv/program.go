package rv

import (
	"fmt"
	"io"
	"iter"
	"slices"
)

// Opcode is a line of assembled code with its source location.
type Opcode struct {
	LineNo      int
	Addr        uint32
	Words       []string
	Instruction Instruction
	Word        Word
}

// Program is the result of an assembly run.
type Program struct {
	Opcodes []Opcode
	Label   map[string]uint32
}

// Debug returns the opcode assembled at addr, or nil.
func (prog *Program) Debug(addr uint32) (op *Opcode) {
	for n := range prog.Opcodes {
		if prog.Opcodes[n].Addr == addr {
			op = &prog.Opcodes[n]
			break
		}
	}

	return
}

// Words returns the machine words in program order.
func (prog *Program) Words() (words Image) {
	words = make(Image, 0, len(prog.Opcodes))
	for _, op := range prog.Opcodes {
		words = append(words, op.Word)
	}

	return
}

// Codes iterates over the program as address, word pairs.
func (prog *Program) Codes() iter.Seq2[uint32, Word] {
	return func(yield func(addr uint32, word Word) bool) {
		for _, op := range prog.Opcodes {
			if !yield(op.Addr, op.Word) {
				return
			}
		}
	}
}

// Listing writes a human readable listing of the program.
func (prog *Program) Listing(w io.Writer) (err error) {
	labels := make(map[uint32][]string, len(prog.Label))
	for label, addr := range prog.Label {
		labels[addr] = append(labels[addr], label)
	}

	for _, op := range prog.Opcodes {
		names := labels[op.Addr]
		slices.Sort(names)
		for _, name := range names {
			_, err = fmt.Fprintf(w, "%v:\n", name)
			if err != nil {
				return
			}
		}
		_, err = fmt.Fprintf(w, "%08X: %v  %-24v ; line %d\n", op.Addr, op.Word, op.Instruction, op.LineNo)
		if err != nil {
			return
		}
	}

	return
}
