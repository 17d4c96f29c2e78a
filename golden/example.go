package golden

import (
	"strings"

	rvio "github.com/ezrec/rvgold/io"
)

const EXAMPLE_OUT = "example.asm" // Example source file.

// Example is a small program with a counted loop, a forward branch and
// an unconditional jump.
const Example = `# Example RISC-V assembly program
# Simple loop with branches

        addi x1, x0, 10      # x1 = 10 (loop counter)
        addi x2, x0, 0       # x2 = 0 (sum)

loop:
        addi x2, x2, 1       # sum++
        addi x1, x1, -1      # counter--
        bne x1, x0, loop     # if counter != 0, goto loop

        addi x3, x0, 100     # x3 = 100
        addi x4, x0, 50      # x4 = 50

        blt x4, x3, taken    # if x4 < x3, goto taken
        addi x5, x0, 1       # not taken path
        jal x0, end

taken:
        addi x5, x0, 2       # taken path

end:
        addi x6, x0, 0       # end marker
        beq x0, x0, end      # infinite loop
`

// Example writes the example source, and its golden data, to out.
func (gen *Generator) Example(out rvio.CreateFS) (result *Result, err error) {
	err = rvio.WriteFile(out, EXAMPLE_OUT, strings.NewReader(Example))
	if err != nil {
		err = &ErrJob{Name: "example", Err: err}
		return
	}

	result, err = gen.Run(&Job{Name: "example", Source: Example}, out)

	return
}
