package rv

import (
	"fmt"
	"io"
)

// Word is a 32-bit machine word.
type Word uint32

// Opcode returns the major opcode field, bits 6:0.
func (word Word) Opcode() uint32 {
	return uint32(word) & OPCODE_MASK
}

// Rd returns the destination register field, bits 11:7.
func (word Word) Rd() Reg {
	return Reg((uint32(word) >> 7) & 0x1f)
}

// Funct3 returns bits 14:12.
func (word Word) Funct3() uint32 {
	return (uint32(word) >> 12) & 0x7
}

// Rs1 returns the first source register field, bits 19:15.
func (word Word) Rs1() Reg {
	return Reg((uint32(word) >> 15) & 0x1f)
}

// Rs2 returns the second source register field, bits 24:20.
func (word Word) Rs2() Reg {
	return Reg((uint32(word) >> 20) & 0x1f)
}

// Funct7 returns bits 31:25.
func (word Word) Funct7() uint32 {
	return (uint32(word) >> 25) & 0x7f
}

// ImmI returns the sign-extended 12-bit I-type immediate.
func (word Word) ImmI() int32 {
	return int32(word) >> 20
}

// BranchOffset gathers the scattered B-type immediate and sign-extends it
// from bit 12.
func (word Word) BranchOffset() int32 {
	w := uint32(word)
	imm12 := (w >> 31) & 0x1
	imm10_5 := (w >> 25) & 0x3f
	imm4_1 := (w >> 8) & 0xf
	imm11 := (w >> 7) & 0x1

	offset := (imm12 << 12) | (imm11 << 11) | (imm10_5 << 5) | (imm4_1 << 1)
	if imm12 != 0 {
		offset |= 0xffffe000
	}

	return int32(offset)
}

// JumpOffset returns the JAL offset as placed by MakeWordJal: bits 31:12
// of the word, sign-extended from bit 31.
func (word Word) JumpOffset() int32 {
	return int32(uint32(word) & 0xfffff000)
}

// Target returns the absolute target of a branch or JAL word at address pc.
// ok is false for all other opcodes.
func (word Word) Target(pc uint32) (target uint32, ok bool) {
	switch word.Opcode() {
	case OPCODE_BRANCH:
		target = pc + uint32(word.BranchOffset())
		ok = true
	case OPCODE_JAL:
		target = pc + uint32(word.JumpOffset())
		ok = true
	}

	return
}

// Decode recovers an instruction from a word. ok is false if the word is
// not an encoding of the supported instruction set.
func (word Word) Decode() (inst Instruction, ok bool) {
	if word == WORD_NOP {
		inst, ok = NewInstruction("nop")
		return
	}

	var class Class
	switch word.Opcode() {
	case OPCODE_OP:
		class = CLASS_R
	case OPCODE_OP_IMM:
		class = CLASS_I
	case OPCODE_BRANCH:
		class = CLASS_B
	case OPCODE_JAL:
		class = CLASS_JAL
	case OPCODE_JALR:
		class = CLASS_JALR
	default:
		return
	}

	for name, m := range mnemonicMap {
		if m.class != class {
			continue
		}
		if class != CLASS_JAL && m.funct3 != word.Funct3() {
			continue
		}
		if class == CLASS_R && m.funct7 != word.Funct7() {
			continue
		}
		inst, ok = NewInstruction(name)
		break
	}
	if !ok {
		return
	}

	switch class {
	case CLASS_R:
		inst.Rd, inst.Rs1, inst.Rs2 = word.Rd(), word.Rs1(), word.Rs2()
	case CLASS_I, CLASS_JALR:
		inst.Rd, inst.Rs1, inst.Imm = word.Rd(), word.Rs1(), int64(word.ImmI())
	case CLASS_B:
		inst.Rs1, inst.Rs2, inst.Imm = word.Rs1(), word.Rs2(), int64(word.BranchOffset())
	case CLASS_JAL:
		inst.Rd, inst.Imm = word.Rd(), int64(word.JumpOffset())
	}

	return
}

// String returns the word as 8 uppercase hex digits.
func (word Word) String() string {
	return fmt.Sprintf("%08X", uint32(word))
}

// Image is a program memory image.
type Image []Word

// WriteTo writes one word per line as 8 uppercase hex digits, in memory
// initialisation file format.
func (img Image) WriteTo(w io.Writer) (n int64, err error) {
	for _, word := range img {
		var c int
		c, err = fmt.Fprintf(w, "%08X\n", uint32(word))
		n += int64(c)
		if err != nil {
			return
		}
	}

	return
}
