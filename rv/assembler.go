// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package rv

import (
	"bufio"
	"errors"
	"io"
	"log"
	"maps"
	"math"
	"math/big"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Assembler is a two pass assembler for the supported RV32I subset.
//
// The first pass assigns an address to every label, the second pass
// encodes every instruction at its address. An Assembler may be reused,
// but not concurrently; each Parse starts with an empty symbol table.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	Label     map[string]uint32 // Map of labels to addresses.
	predefine map[string]string // Predefines for $() expressions.
}

// Predefine defines a new name, or redefines an existing name, for use
// in $() expressions.
func (asm *Assembler) Predefine(name string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{name: value}
	} else {
		asm.predefine[name] = value
	}
}

var (
	labelRegexp = regexp.MustCompile(`^([^\s:#$(),]+)\s*:\s*(.*)$`)
	parenRegexp = regexp.MustCompile(`\$\([^\$]*\)`)
)

// operandCount is the minimum number of operands per class.
var operandCount = map[Class]int{
	CLASS_NOP:  0,
	CLASS_R:    3,
	CLASS_I:    3,
	CLASS_B:    3,
	CLASS_JAL:  2,
	CLASS_JALR: 2,
}

// splitLine strips the comment, then the leading label definitions, from
// a line of source text.
func splitLine(text string) (labels []string, stmt string) {
	stmt, _, _ = strings.Cut(text, "#")
	stmt = strings.TrimSpace(stmt)

	for {
		match := labelRegexp.FindStringSubmatch(stmt)
		if match == nil {
			return
		}
		labels = append(labels, match[1])
		stmt = match[2]
	}
}

// wordMask keeps the low 64 bits of a wide literal.
var wordMask = new(big.Int).SetUint64(math.MaxUint64)

// valueOf parses an integer literal, decimal or 0x prefixed hexadecimal.
// Literals wider than 64 bits keep their low 64 bits, two's complement.
func valueOf(word string) (value int64, err error) {
	value, err = strconv.ParseInt(word, 0, 64)
	if errors.Is(err, strconv.ErrRange) {
		wide, ok := new(big.Int).SetString(word, 0)
		if ok {
			value = int64(wide.And(wide, wordMask).Uint64())
			err = nil
		}
	}
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	return
}

// target resolves a branch or jump target to a byte offset relative to pc.
// Known labels win; anything else must be a literal offset.
func (asm *Assembler) target(word string, pc uint32) (offset int64, label string, err error) {
	addr, ok := asm.Label[word]
	if ok {
		offset = int64(addr) - int64(pc)
		label = word
		return
	}

	offset, err = valueOf(word)

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string, lineno int, pc uint32) (value int64, err error) {
	thread := starlark.Thread{Name: "expr"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.predefine {
		var v int64
		v, err = valueOf(str)
		if err != nil {
			// Ignore non-integer predefines.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(v)
	}
	for key, addr := range asm.Label {
		pred[key] = starlark.MakeUint64(uint64(addr))
	}
	pred["PC"] = starlark.MakeUint64(uint64(pc))
	pred["LINENO"] = starlark.MakeInt(lineno)

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		if asm.Verbose {
			log.Printf("$(%v): %v", expr, err)
		}
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	return
}

// parseRegisters resolves a list of register tokens.
func parseRegisters(words []string) (regs []Reg, err error) {
	regs = make([]Reg, len(words))
	for n, word := range words {
		regs[n], err = ParseRegister(word)
		if err != nil {
			return
		}
	}

	return
}

// parseWords builds the instruction for a tokenised statement at address pc.
func (asm *Assembler) parseWords(words []string, pc uint32) (inst Instruction, err error) {
	inst, ok := NewInstruction(strings.ToLower(words[0]))
	if !ok {
		if asm.Verbose {
			log.Printf("%v: unknown mnemonic, assembled as nop", words[0])
		}
		return
	}

	args := words[1:]
	if len(args) < operandCount[inst.Class] {
		err = ErrOperandMissing
		return
	}

	var regs []Reg
	switch inst.Class {
	case CLASS_R:
		regs, err = parseRegisters(args[0:3])
		if err != nil {
			return
		}
		inst.Rd, inst.Rs1, inst.Rs2 = regs[0], regs[1], regs[2]
	case CLASS_I:
		regs, err = parseRegisters(args[0:2])
		if err != nil {
			return
		}
		inst.Rd, inst.Rs1 = regs[0], regs[1]
		inst.Imm, err = valueOf(args[2])
	case CLASS_B:
		regs, err = parseRegisters(args[0:2])
		if err != nil {
			return
		}
		inst.Rs1, inst.Rs2 = regs[0], regs[1]
		inst.Imm, inst.Label, err = asm.target(args[2], pc)
	case CLASS_JAL:
		inst.Rd, err = ParseRegister(args[0])
		if err != nil {
			return
		}
		inst.Imm, inst.Label, err = asm.target(args[1], pc)
	case CLASS_JALR:
		regs, err = parseRegisters(args[0:2])
		if err != nil {
			return
		}
		inst.Rd, inst.Rs1 = regs[0], regs[1]
		if len(args) > 2 {
			inst.Imm, err = valueOf(args[2])
		}
	}

	return
}

// parseLine assembles a single statement, with labels and comment already
// removed, at address pc.
func (asm *Assembler) parseLine(stmt string, lineno int, pc uint32) (op Opcode, err error) {
	// Do $() evaluations
	stmt = parenRegexp.ReplaceAllStringFunc(stmt, func(str string) string {
		value, _err := asm.parenEval(str[2:len(str)-1], lineno, pc)
		if _err != nil {
			err = _err
		}
		return strconv.FormatInt(value, 10)
	})
	if err != nil {
		return
	}

	words := strings.Fields(strings.ReplaceAll(stmt, ",", " "))

	inst, err := asm.parseWords(words, pc)
	if err != nil {
		return
	}

	op = Opcode{
		LineNo:      lineno,
		Addr:        pc,
		Words:       words,
		Instruction: inst,
		Word:        inst.Encode(),
	}

	if asm.Verbose {
		log.Printf("%08X: %v %v\n", pc, op.Word, inst)
	}

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	var lines []string
	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	err = scanner.Err()
	if err != nil {
		return
	}

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Label = make(map[string]uint32, 16)
	asm.Opcode = asm.Opcode[:0]

	// First pass: label addresses.
	var pc uint32
	for n, text := range lines {
		lineno, line = n+1, text

		labels, stmt := splitLine(text)
		for _, label := range labels {
			_, ok := asm.Label[label]
			if ok {
				err = ErrLabelDuplicate
				return
			}
			asm.Label[label] = pc
		}
		if len(stmt) != 0 {
			pc += 4
		}
	}

	// Second pass: instruction encoding.
	pc = 0
	for n, text := range lines {
		lineno, line = n+1, text

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		labels, stmt := splitLine(text)
		for _, label := range labels {
			if asm.Label[label] != pc {
				err = ErrLabelAddress
				return
			}
		}
		if len(stmt) == 0 {
			continue
		}

		var op Opcode
		op, err = asm.parseLine(stmt, lineno, pc)
		if err != nil {
			return
		}
		asm.Opcode = append(asm.Opcode, op)
		pc += 4
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
		Label:   maps.Clone(asm.Label),
	}

	return
}

// Assemble assembles source text into machine words.
func Assemble(source string) (words []Word, err error) {
	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(source))
	if err != nil {
		return
	}

	words = prog.Words()

	return
}
