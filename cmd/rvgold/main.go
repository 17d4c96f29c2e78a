// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/ezrec/rvgold/golden"
	rvio "github.com/ezrec/rvgold/io"
	"github.com/ezrec/rvgold/translate"
)

// listFlag collects every use of a repeatable flag.
type listFlag []string

func (lf *listFlag) String() string {
	return strings.Join(*lf, ",")
}

func (lf *listFlag) Set(value string) error {
	*lf = append(*lf, value)
	return nil
}

// defineFlag collects NAME=VALUE predefines.
type defineFlag map[string]string

func (df defineFlag) String() string {
	var defs []string
	for name, value := range df {
		defs = append(defs, name+"="+value)
	}
	return strings.Join(defs, ",")
}

func (df defineFlag) Set(text string) error {
	name, value, ok := strings.Cut(text, "=")
	if !ok || len(name) == 0 {
		return ErrDefine(text)
	}
	df[name] = value
	return nil
}

type ErrDefine string

func (err ErrDefine) Error() string {
	return translate.From("'%v' is not NAME=VALUE", string(err))
}

// report prints what a job generated. Every packed fact counts, even when
// a later fact replaced it in the table.
func report(w io.Writer, job *golden.Job, result *golden.Result) {
	program := job.ProgramOut
	if len(program) == 0 {
		program = golden.PROGRAM_OUT
	}
	branches := job.BranchOut
	if len(branches) == 0 {
		branches = golden.BRANCH_OUT
	}

	translate.Fprintf(w, "Generated %v with %d instructions\n", program, len(result.Program.Opcodes))
	translate.Fprintf(w, "Generated %v with %d branch entries\n", branches, len(result.Facts))
}

func main() {
	var assembly string
	var traces listFlag
	var programOut string
	var branchOut string
	var traceOut string
	var listingOut string
	var outdir string
	var example bool
	var config string
	var verbose bool
	defines := defineFlag{}

	flag.StringVar(&assembly, "a", "", "Assembly file")
	flag.Var(&traces, "t", "Branch trace file (may be repeated)")
	flag.StringVar(&programOut, "p", golden.PROGRAM_OUT, "Output program memory file")
	flag.StringVar(&branchOut, "b", golden.BRANCH_OUT, "Output branch table file")
	flag.StringVar(&traceOut, "T", "", "Output the packed branch facts as a trace")
	flag.StringVar(&listingOut, "l", "", "Output a program listing")
	flag.StringVar(&outdir, "o", ".", "Output directory")
	flag.BoolVar(&example, "example", false, "Generate example files")
	flag.StringVar(&config, "c", "", "YAML batch configuration")
	flag.Var(defines, "D", "Predefine NAME=VALUE for $() expressions (may be repeated)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	gen := &golden.Generator{
		Verbose: verbose,
		Defines: defines,
	}

	switch {
	case example:
		st := rvio.NewStage(outdir)
		result, err := gen.Example(st)
		if err != nil {
			st.Abort()
			log.Fatalf("%v", err)
		}
		err = st.Commit()
		if err != nil {
			log.Fatalf("%v", err)
		}
		translate.Fprintf(os.Stdout, "Generated %v\n", golden.EXAMPLE_OUT)
		report(os.Stdout, &golden.Job{}, result)
	case len(config) != 0:
		cfg, err := golden.LoadConfigFile(config)
		if err != nil {
			log.Fatalf("%v: %v", config, err)
		}
		cfg.Verbose = cfg.Verbose || verbose
		if cfg.Defines == nil {
			cfg.Defines = map[string]string{}
		}
		for name, value := range defines {
			cfg.Defines[name] = value
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		results, err := golden.RunBatch(ctx, cfg, outdir)
		if err != nil {
			log.Fatalf("%v: %v", config, err)
		}
		for n, result := range results {
			report(os.Stdout, &cfg.Jobs[n], result)
		}
	case len(assembly) != 0:
		job := &golden.Job{
			Assembly:   assembly,
			Trace:      traces,
			ProgramOut: programOut,
			BranchOut:  branchOut,
			TraceOut:   traceOut,
			ListingOut: listingOut,
		}
		if verbose && len(traces) == 0 {
			log.Printf("%v: no trace, deriving branch outcomes statically", assembly)
		}
		result, err := gen.RunDir(job, outdir)
		if err != nil {
			log.Fatalf("%v", err)
		}
		report(os.Stdout, job, result)
	default:
		flag.Usage()
		os.Exit(2)
	}
}
