package rv

import (
	"fmt"
)

// Class is an instruction encoding class.
type Class int

//go:generate go tool stringer -linecomment -type=Class
const (
	CLASS_NOP  = Class(0) // nop
	CLASS_R    = Class(1) // r
	CLASS_I    = Class(2) // i
	CLASS_B    = Class(3) // b
	CLASS_JAL  = Class(4) // jal
	CLASS_JALR = Class(5) // jalr
)

// Major opcodes, the low 7 bits of every word.
const (
	OPCODE_OP     = uint32(0x33)
	OPCODE_OP_IMM = uint32(0x13)
	OPCODE_BRANCH = uint32(0x63)
	OPCODE_JAL    = uint32(0x6f)
	OPCODE_JALR   = uint32(0x67)
	OPCODE_MASK   = uint32(0x7f)
)

// WORD_NOP is ADDI x0, x0, 0.
const WORD_NOP = Word(0x00000013)

// Opcode returns the major opcode of the class.
func (class Class) Opcode() uint32 {
	switch class {
	case CLASS_R:
		return OPCODE_OP
	case CLASS_B:
		return OPCODE_BRANCH
	case CLASS_JAL:
		return OPCODE_JAL
	case CLASS_JALR:
		return OPCODE_JALR
	default:
		return OPCODE_OP_IMM
	}
}

// mnemonic describes the fixed encoding fields of one mnemonic.
type mnemonic struct {
	class  Class
	funct3 uint32
	funct7 uint32
}

// mnemonicMap is the complete supported instruction set.
var mnemonicMap = map[string]mnemonic{
	"add":  {CLASS_R, 0x0, 0x00},
	"sub":  {CLASS_R, 0x0, 0x20},
	"and":  {CLASS_R, 0x7, 0x00},
	"or":   {CLASS_R, 0x6, 0x00},
	"xor":  {CLASS_R, 0x4, 0x00},
	"addi": {CLASS_I, 0x0, 0},
	"andi": {CLASS_I, 0x7, 0},
	"ori":  {CLASS_I, 0x6, 0},
	"xori": {CLASS_I, 0x4, 0},
	"beq":  {CLASS_B, 0x0, 0},
	"bne":  {CLASS_B, 0x1, 0},
	"blt":  {CLASS_B, 0x4, 0},
	"bge":  {CLASS_B, 0x5, 0},
	"jal":  {CLASS_JAL, 0, 0},
	"jalr": {CLASS_JALR, 0x0, 0},
	"nop":  {CLASS_NOP, 0, 0},
}

// Instruction is a single decoded instruction.
type Instruction struct {
	Mnemonic string
	Class    Class
	Funct3   uint32
	Funct7   uint32
	Rd       Reg
	Rs1      Reg
	Rs2      Reg
	Imm      int64  // Immediate, or byte offset for B-type and JAL.
	Label    string // Label the offset was resolved from, if any.
}

// NewInstruction returns an instruction template for a mnemonic, with the
// class and function fields filled in. Unknown mnemonics yield a nop.
func NewInstruction(name string) (inst Instruction, ok bool) {
	m, ok := mnemonicMap[name]
	if !ok {
		inst = Instruction{Mnemonic: "nop", Class: CLASS_NOP}
		return
	}

	inst = Instruction{
		Mnemonic: name,
		Class:    m.class,
		Funct3:   m.funct3,
		Funct7:   m.funct7,
	}

	return
}

// Encode returns the machine word for the instruction. The immediate of
// B-type and JAL instructions must already be resolved to a byte offset.
func (inst Instruction) Encode() Word {
	switch inst.Class {
	case CLASS_R:
		return MakeWordR(inst.Funct3, inst.Funct7, inst.Rd, inst.Rs1, inst.Rs2)
	case CLASS_I:
		return MakeWordI(inst.Funct3, inst.Rd, inst.Rs1, inst.Imm)
	case CLASS_B:
		return MakeWordB(inst.Funct3, inst.Rs1, inst.Rs2, inst.Imm)
	case CLASS_JAL:
		return MakeWordJal(inst.Rd, inst.Imm)
	case CLASS_JALR:
		return MakeWordJalr(inst.Rd, inst.Rs1, inst.Imm)
	default:
		return WORD_NOP
	}
}

// String returns the assembly language representation of the instruction.
func (inst Instruction) String() string {
	target := fmt.Sprintf("%d", inst.Imm)
	if len(inst.Label) != 0 {
		target = inst.Label
	}

	switch inst.Class {
	case CLASS_R:
		return fmt.Sprintf("%v %v, %v, %v", inst.Mnemonic, inst.Rd, inst.Rs1, inst.Rs2)
	case CLASS_I:
		return fmt.Sprintf("%v %v, %v, %d", inst.Mnemonic, inst.Rd, inst.Rs1, inst.Imm)
	case CLASS_B:
		return fmt.Sprintf("%v %v, %v, %v", inst.Mnemonic, inst.Rs1, inst.Rs2, target)
	case CLASS_JAL:
		return fmt.Sprintf("%v %v, %v", inst.Mnemonic, inst.Rd, target)
	case CLASS_JALR:
		return fmt.Sprintf("%v %v, %v, %d", inst.Mnemonic, inst.Rd, inst.Rs1, inst.Imm)
	default:
		return "nop"
	}
}

// MakeWordR creates an R-type word.
func MakeWordR(funct3, funct7 uint32, rd, rs1, rs2 Reg) Word {
	return Word(OPCODE_OP |
		(rd.Index() << 7) |
		((funct3 & 0x7) << 12) |
		(rs1.Index() << 15) |
		(rs2.Index() << 20) |
		((funct7 & 0x7f) << 25))
}

// MakeWordI creates an I-type word. The immediate is masked to 12 bits.
func MakeWordI(funct3 uint32, rd, rs1 Reg, imm int64) Word {
	return Word(OPCODE_OP_IMM |
		(rd.Index() << 7) |
		((funct3 & 0x7) << 12) |
		(rs1.Index() << 15) |
		((uint32(imm) & 0xfff) << 20))
}

// MakeWordB creates a B-type word, scattering the byte offset as
// imm[12|10:5] into bits 31:25 and imm[4:1|11] into bits 11:7.
func MakeWordB(funct3 uint32, rs1, rs2 Reg, offset int64) Word {
	imm := uint32(offset)
	return Word(OPCODE_BRANCH |
		(((imm >> 11) & 0x1) << 7) |
		(((imm >> 1) & 0xf) << 8) |
		((funct3 & 0x7) << 12) |
		(rs1.Index() << 15) |
		(rs2.Index() << 20) |
		(((imm >> 5) & 0x3f) << 25) |
		(((imm >> 12) & 0x1) << 31))
}

// MakeWordJal creates a JAL word. The offset bits 31:12 are placed
// unscrambled in word bits 31:12; the low 12 bits are dropped.
func MakeWordJal(rd Reg, offset int64) Word {
	return Word(OPCODE_JAL |
		(rd.Index() << 7) |
		(uint32(offset) & 0xfffff000))
}

// MakeWordJalr creates a JALR word.
func MakeWordJalr(rd, rs1 Reg, imm int64) Word {
	return Word(OPCODE_JALR |
		(rd.Index() << 7) |
		(rs1.Index() << 15) |
		((uint32(imm) & 0xfff) << 20))
}
