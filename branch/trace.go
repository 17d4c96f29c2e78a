package branch

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// parseHex32 parses a hex value with an optional 0x prefix.
func parseHex32(word string) (value uint32, err error) {
	digits := word
	if len(digits) > 2 && (digits[:2] == "0x" || digits[:2] == "0X") {
		digits = digits[2:]
	}
	v64, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		err = ErrParseHex(word)
		return
	}
	value = uint32(v64)

	return
}

// ReadTrace reads an execution trace.
//
// Each line is 'PC TAKEN TARGET', whitespace separated. PC and TARGET are
// hexadecimal, TAKEN is a decimal integer where nonzero means taken. Blank
// lines and lines starting with '#' are ignored, as are lines with fewer
// than three fields. Fields past the third are ignored.
func ReadTrace(input io.Reader) (facts []Fact, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			facts = nil
			err = &ErrTrace{LineNo: lineno, Line: line, Err: err}
		}
	}()

	for scanner.Scan() {
		lineno++
		line = scanner.Text()

		text := strings.TrimSpace(line)
		if len(text) == 0 || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) < 3 {
			continue
		}

		var fact Fact
		fact.Address, err = parseHex32(fields[0])
		if err != nil {
			return
		}
		var taken int64
		taken, err = strconv.ParseInt(fields[1], 10, 64)
		if errors.Is(err, strconv.ErrRange) {
			// Too wide for int64, so certainly nonzero.
			taken, err = 1, nil
		}
		if err != nil {
			err = ErrParseTaken(fields[1])
			return
		}
		fact.Taken = taken != 0
		fact.Target, err = parseHex32(fields[2])
		if err != nil {
			return
		}

		facts = append(facts, fact)
	}

	err = scanner.Err()

	return
}

// WriteTrace writes facts in the format read by ReadTrace.
func WriteTrace(w io.Writer, facts []Fact) (err error) {
	for _, fact := range facts {
		_, err = fmt.Fprintln(w, fact.String())
		if err != nil {
			return
		}
	}

	return
}
