package generators

import (
	"context"
	stderrors "errors"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"go.eggybyte.com/classgen/core/errors"
	"go.eggybyte.com/classgen/core/log"
)

// Batch generates every request with at most jobs running at once.
// A failing class does not stop the others; outcomes keep request order.
// Every log record of one run carries the same batch_id.
//
// Parameters:
//   - ctx: Cancellation context; requests not yet started when it ends fail with CANCELED
//   - reqs: Classes to generate
//   - jobs: Parallelism bound; values below 1 mean one at a time
//
// Returns:
//   - []Outcome: One entry per request, in request order
//   - error: nil when every class succeeded, otherwise a coded error joining the failures
//
// Concurrency:
//   - Spawns up to jobs goroutines
//
// Performance:
//   - Rendering is CPU-bound and parallel; writes hit distinct paths
func (g *ClassGenerator) Batch(ctx context.Context, reqs []Request, jobs int) ([]Outcome, error) {
	if jobs < 1 {
		jobs = 1
	}

	run := &ClassGenerator{
		fs:     g.fs,
		logger: g.logger.With(log.Str("batch_id", uuid.NewString())),
		opts:   g.opts,
	}

	outcomes := make([]Outcome, len(reqs))
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	run.logger.Debug("starting batch", log.Int("classes", len(reqs)), log.Int("jobs", jobs))

	for i, req := range reqs {
		outcomes[i].Request = req
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				outcomes[i].Err = errors.Wrap(errors.CodeCanceled, "generators.Batch", err)
				return nil
			}
			result, err := run.Generate(gctx, req)
			outcomes[i].Result = result
			outcomes[i].Err = err
			if err != nil {
				run.logger.Error(err, "class generation failed", log.Str("class", req.ClassName))
			}
			return nil
		})
	}
	_ = group.Wait()

	var failures []error
	for _, o := range outcomes {
		if o.Err != nil {
			failures = append(failures, o.Err)
		}
	}
	if len(failures) == 0 {
		return outcomes, nil
	}

	code := errors.CodeOf(failures[0])
	if code == "" {
		code = errors.CodeInternal
	}
	return outcomes, errors.Build(code).
		WithOp("generators.Batch").
		WithErr(stderrors.Join(failures...)).
		WithMsgf("%d of %d classes failed", len(failures), len(reqs)).
		Err()
}
