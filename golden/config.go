package golden

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is a batch of jobs.
//
//	verbose: true
//	defines:
//	  BASE: 0x100
//	jobs:
//	  - name: loop
//	    assembly: loop.asm
//	    trace: [loop.trace]
//	    program: loop/program.mem
//	    branches: loop/branches.mem
type Config struct {
	Verbose bool              `yaml:"verbose"`
	Defines map[string]string `yaml:"defines"`
	Jobs    []Job             `yaml:"jobs"`
}

// LoadConfig decodes a YAML batch configuration. Unknown keys are errors.
func LoadConfig(input io.Reader) (cfg *Config, err error) {
	cfg = &Config{}

	dec := yaml.NewDecoder(input)
	dec.KnownFields(true)

	err = dec.Decode(cfg)
	if errors.Is(err, io.EOF) {
		err = nil
	}
	if err != nil {
		cfg = nil
		return
	}

	return
}

// LoadConfigFile loads a batch configuration from path. Relative
// assembly and trace paths are taken relative to the directory of path.
func LoadConfigFile(path string) (cfg *Config, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	cfg, err = LoadConfig(inf)
	if err != nil {
		return
	}

	base := filepath.Dir(path)
	resolve := func(name string) string {
		if len(name) == 0 || filepath.IsAbs(name) {
			return name
		}
		return filepath.Join(base, name)
	}

	for n := range cfg.Jobs {
		job := &cfg.Jobs[n]
		job.Assembly = resolve(job.Assembly)
		for t, trace := range job.Trace {
			job.Trace[t] = resolve(trace)
		}
	}

	return
}

// Validate checks that every job has a source, and that no two outputs
// have the same name.
func (cfg *Config) Validate() (err error) {
	written := map[string]bool{}

	for n := range cfg.Jobs {
		job := &cfg.Jobs[n]
		if len(job.Assembly) == 0 && len(job.Source) == 0 {
			err = &ErrJob{Name: job.name(), Err: ErrAssemblyMissing}
			return
		}

		for _, name := range job.Outputs() {
			name = filepath.Clean(name)
			if written[name] {
				err = &ErrJob{Name: job.name(), Err: ErrOutputDuplicate(name)}
				return
			}
			written[name] = true
		}
	}

	return
}
