package golden

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	assert := assert.New(t)

	text := `
verbose: true
defines:
  BASE: "0x100"
jobs:
  - name: loop
    assembly: loop.asm
    trace: [a.trace, b.trace]
    program: loop/program.mem
    branches: loop/branches.mem
    defines:
      OFF: "4"
  - assembly: other.asm
    trace_out: other.trace
    listing: other.lst
`

	cfg, err := LoadConfig(strings.NewReader(text))
	assert.NoError(err)
	if !assert.NotNil(cfg) {
		return
	}

	assert.True(cfg.Verbose)
	assert.Equal(map[string]string{"BASE": "0x100"}, cfg.Defines)
	assert.Equal([]Job{
		{
			Name:       "loop",
			Assembly:   "loop.asm",
			Trace:      []string{"a.trace", "b.trace"},
			ProgramOut: "loop/program.mem",
			BranchOut:  "loop/branches.mem",
			Defines:    map[string]string{"OFF": "4"},
		},
		{
			Assembly:   "other.asm",
			TraceOut:   "other.trace",
			ListingOut: "other.lst",
		},
	}, cfg.Jobs)

	assert.Equal([]string{PROGRAM_OUT, BRANCH_OUT, "other.trace", "other.lst"}, cfg.Jobs[1].Outputs())
	assert.NoError(cfg.Validate())
}

func TestLoadConfig_Empty(t *testing.T) {
	assert := assert.New(t)

	cfg, err := LoadConfig(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(&Config{}, cfg)
}

func TestLoadConfig_Unknown(t *testing.T) {
	assert := assert.New(t)

	cfg, err := LoadConfig(strings.NewReader("jobs:\n  - asembly: typo.asm\n"))
	assert.Error(err)
	assert.Nil(cfg)
}

func TestLoadConfigFile(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	abs := filepath.Join(dir, "abs.trace")
	text := "jobs:\n  - assembly: src/loop.asm\n    trace: [loop.trace, " + abs + "]\n"
	path := filepath.Join(dir, "batch.yaml")
	assert.NoError(os.WriteFile(path, []byte(text), 0644))

	cfg, err := LoadConfigFile(path)
	assert.NoError(err)
	if !assert.NotNil(cfg) {
		return
	}

	assert.Equal(filepath.Join(dir, "src", "loop.asm"), cfg.Jobs[0].Assembly)
	assert.Equal([]string{filepath.Join(dir, "loop.trace"), abs}, cfg.Jobs[0].Trace)
	assert.Equal("", cfg.Jobs[0].ProgramOut)

	_, err = LoadConfigFile(filepath.Join(dir, "missing.yaml"))
	assert.True(errors.Is(err, os.ErrNotExist))
}

func TestConfig_Validate(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		Jobs []Job
		Err  error
	}{
		{[]Job{{Assembly: "a.asm"}, {Assembly: "b.asm"}}, ErrOutputDuplicate(PROGRAM_OUT)},
		{[]Job{{Assembly: "a.asm", BranchOut: "x.mem", ProgramOut: "./x.mem"}}, ErrOutputDuplicate("x.mem")},
		{[]Job{{Assembly: "a.asm", TraceOut: "a/../branches.mem"}}, ErrOutputDuplicate(BRANCH_OUT)},
		{[]Job{{Name: "nothing"}}, ErrAssemblyMissing},
	}

	for _, testcase := range table {
		cfg := &Config{Jobs: testcase.Jobs}
		err := cfg.Validate()
		assert.True(errors.Is(err, testcase.Err), "%v: %v", testcase.Jobs, err)
	}

	cfg := &Config{Jobs: []Job{
		{Assembly: "a.asm", ProgramOut: "a/program.mem", BranchOut: "a/branches.mem"},
		{Source: "nop", ProgramOut: "b/program.mem", BranchOut: "b/branches.mem"},
	}}
	assert.NoError(cfg.Validate())
}
