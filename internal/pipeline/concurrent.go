package pipeline

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// RunConcurrent is the opt-in concurrent variant spec §5 permits: "an
// implementer is free to parallelize lexing of independent
// already-discovered modules, provided that the two tables serialize
// their updates." It parses entryModule, then repeatedly parses every
// module newly discovered as unresolved in parallel (bounded by jobs)
// until a round discovers nothing left to do. Table mutations are
// already serialized behind Driver.mu, so no further coordination is
// needed between workers.
func (d *Driver) RunConcurrent(ctx context.Context, entryModule string, jobs int) error {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if err := d.parseModule(entryModule); err != nil {
		return err
	}

	for {
		batch := d.unresolvedBatch()
		if len(batch) == 0 {
			break
		}
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(min(jobs, len(batch)))
		for _, name := range batch {
			g.Go(func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				return d.parseModule(name)
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}
	return nil
}

// unresolvedBatch snapshots every module name whose parsing_status is
// still false, under the same lock the sequential path uses to read the
// table.
func (d *Driver) unresolvedBatch() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var batch []string
	for name, done := range d.ModuleTable.ParsingStatus {
		if !done {
			batch = append(batch, name)
		}
	}
	return batch
}
