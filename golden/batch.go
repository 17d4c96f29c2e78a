package golden

import (
	"context"

	"golang.org/x/sync/errgroup"

	rvio "github.com/ezrec/rvgold/io"
)

// RunBatch runs every job of cfg concurrently, then writes all of their
// outputs into dir. The first failing job cancels the rest, and nothing
// is written unless every job succeeds.
func RunBatch(ctx context.Context, cfg *Config, dir string) (results []*Result, err error) {
	err = cfg.Validate()
	if err != nil {
		return
	}

	gen := &Generator{Verbose: cfg.Verbose, Defines: cfg.Defines}

	results = make([]*Result, len(cfg.Jobs))
	outputs := make([]rvio.MemFS, len(cfg.Jobs))

	group, ctx := errgroup.WithContext(ctx)
	for n := range cfg.Jobs {
		job := &cfg.Jobs[n]
		outputs[n] = rvio.MemFS{}
		group.Go(func() (err error) {
			err = ctx.Err()
			if err != nil {
				return
			}
			results[n], err = gen.Run(job, outputs[n])
			return
		})
	}

	err = group.Wait()
	if err != nil {
		results = nil
		return
	}

	st := rvio.NewStage(dir)
	for n := range cfg.Jobs {
		for _, name := range cfg.Jobs[n].Outputs() {
			err = rvio.WriteFile(st, name, outputs[n][name])
			if err != nil {
				st.Abort()
				results = nil
				return
			}
		}
	}

	err = st.Commit()
	if err != nil {
		results = nil
		return
	}

	return
}
