// Package rv implements a two-pass assembler for a small, closed subset of
// the RV32I instruction set, together with the word-level decoders used to
// recover branch and jump targets from assembled machine words.
//
// Supported mnemonics are add, sub, and, or, xor (R-type), addi, andi, ori,
// xori (I-type), beq, bne, blt, bge (B-type), jal, jalr and nop. Any other
// mnemonic assembles to the canonical nop word 0x00000013, and any unknown
// register name resolves to x0. Both fallbacks are part of the observable
// behaviour of the golden-data pipeline and are kept as-is.
//
// JAL is encoded by placing the upper 20 bits of the byte offset directly
// into word bits 31:12, which is not the scattered J-immediate layout of the
// RISC-V specification. Word.JumpOffset reverses exactly that placement, so
// a JAL target only survives the round trip when its offset is a multiple
// of 4096.
package rv
