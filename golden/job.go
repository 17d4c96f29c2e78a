// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package golden generates the golden reference memory files for a
// program: its machine code image and its expected branch table.
package golden

import (
	"bytes"
	"log"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/ezrec/rvgold/branch"
	rvio "github.com/ezrec/rvgold/io"
	"github.com/ezrec/rvgold/rv"
)

const (
	PROGRAM_OUT = "program.mem"  // Default program memory file.
	BRANCH_OUT  = "branches.mem" // Default branch table file.
)

// Job describes one program to generate golden data for.
type Job struct {
	Name       string            `yaml:"name"`     // Name used in logs and errors.
	Assembly   string            `yaml:"assembly"` // Assembly source file.
	Source     string            `yaml:"-"`        // If set, used instead of Assembly.
	Trace      []string          `yaml:"trace"`    // Trace files, in execution order.
	ProgramOut string            `yaml:"program"`  // Program memory output.
	BranchOut  string            `yaml:"branches"` // Branch table output.
	TraceOut   string            `yaml:"trace_out,omitempty"`
	ListingOut string            `yaml:"listing,omitempty"`
	Defines    map[string]string `yaml:"defines"` // Per job $() predefines.
}

func (job *Job) name() string {
	switch {
	case len(job.Name) != 0:
		return job.Name
	case len(job.Assembly) != 0:
		return job.Assembly
	default:
		return "-"
	}
}

func (job *Job) programOut() string {
	if len(job.ProgramOut) == 0 {
		return PROGRAM_OUT
	}
	return job.ProgramOut
}

func (job *Job) branchOut() string {
	if len(job.BranchOut) == 0 {
		return BRANCH_OUT
	}
	return job.BranchOut
}

// Outputs returns all the files the job writes.
func (job *Job) Outputs() (names []string) {
	names = []string{job.programOut(), job.branchOut()}
	if len(job.TraceOut) != 0 {
		names = append(names, job.TraceOut)
	}
	if len(job.ListingOut) != 0 {
		names = append(names, job.ListingOut)
	}

	return
}

// Result of a job.
type Result struct {
	Program *rv.Program   // Assembled program.
	Facts   []branch.Fact // Facts packed into the table, in order.
	Table   *branch.Table // Packed branch table.
}

// Generator runs jobs.
type Generator struct {
	Verbose bool              // If set, verbosely logs each job.
	Defines map[string]string // $() predefines shared by all jobs.
}

func (gen *Generator) source(job *Job) (source string, err error) {
	if len(job.Source) != 0 {
		source = job.Source
		return
	}

	if len(job.Assembly) == 0 {
		err = ErrAssemblyMissing
		return
	}

	data, err := os.ReadFile(job.Assembly)
	if err != nil {
		return
	}
	source = string(data)

	return
}

func (gen *Generator) facts(job *Job, prog *rv.Program) (facts []branch.Fact, err error) {
	if len(job.Trace) == 0 {
		facts = branch.DeriveFrom(prog.Codes())
		return
	}

	traces := make([][]branch.Fact, 0, len(job.Trace))
	for _, path := range job.Trace {
		var inf *os.File
		inf, err = os.Open(path)
		if err != nil {
			return
		}
		var trace []branch.Fact
		trace, err = branch.ReadTrace(inf)
		inf.Close()
		if err != nil {
			return
		}
		if gen.Verbose {
			log.Printf("%v: %d trace records", path, len(trace))
		}
		traces = append(traces, trace)
	}

	facts = slices.Concat(traces...)

	return
}

// Run assembles the job's program, collects its branch facts, either from
// its traces or by static derivation, and writes the outputs to out.
func (gen *Generator) Run(job *Job, out rvio.CreateFS) (result *Result, err error) {
	defer func() {
		if err != nil {
			result = nil
			err = &ErrJob{Name: job.name(), Err: err}
		}
	}()

	source, err := gen.source(job)
	if err != nil {
		return
	}

	asm := &rv.Assembler{Verbose: gen.Verbose}
	defines := maps.Clone(gen.Defines)
	if defines == nil {
		defines = map[string]string{}
	}
	maps.Copy(defines, job.Defines)
	for name, value := range defines {
		asm.Predefine(name, value)
	}

	prog, err := asm.Parse(strings.NewReader(source))
	if err != nil {
		return
	}

	facts, err := gen.facts(job, prog)
	if err != nil {
		return
	}

	table := branch.Pack(slices.Values(facts))

	if gen.Verbose {
		log.Printf("%v: %d instructions, %d branch facts, %d slots used", job.name(), len(prog.Opcodes), len(facts), table.Len())
		if table.Collisions() != 0 {
			log.Printf("%v: %d branch table collisions", job.name(), table.Collisions())
		}
	}

	err = rvio.WriteFile(out, job.programOut(), prog.Words())
	if err != nil {
		return
	}

	err = rvio.WriteFile(out, job.branchOut(), table)
	if err != nil {
		return
	}

	if len(job.TraceOut) != 0 {
		buff := &bytes.Buffer{}
		err = branch.WriteTrace(buff, facts)
		if err != nil {
			return
		}
		err = rvio.WriteFile(out, job.TraceOut, buff)
		if err != nil {
			return
		}
	}

	if len(job.ListingOut) != 0 {
		buff := &bytes.Buffer{}
		err = prog.Listing(buff)
		if err != nil {
			return
		}
		err = rvio.WriteFile(out, job.ListingOut, buff)
		if err != nil {
			return
		}
	}

	result = &Result{
		Program: prog,
		Facts:   facts,
		Table:   table,
	}

	return
}

// RunDir runs the job, writing its outputs into dir. Either all of the
// outputs are replaced, or none are.
func (gen *Generator) RunDir(job *Job, dir string) (result *Result, err error) {
	st := rvio.NewStage(dir)

	result, err = gen.Run(job, st)
	if err != nil {
		st.Abort()
		return
	}

	err = st.Commit()
	if err != nil {
		result = nil
		err = &ErrJob{Name: job.name(), Err: err}
		return
	}

	return
}
