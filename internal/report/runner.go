package report

import (
	"context"
	"sync"

	"github.com/carlwgeorge/toleo/internal/aur"
	"github.com/carlwgeorge/toleo/internal/collection"
	"github.com/carlwgeorge/toleo/internal/upstream"
)

// DefaultConcurrency bounds how many packages resolve at once.
const DefaultConcurrency = 4

// Runner resolves every package in a collection into outcomes.
type Runner struct {
	coll        *collection.Collection
	upstream    *upstream.Resolver
	repo        *aur.Client
	concurrency int
}

// RunnerOption is a functional option for configuring Runner
type RunnerOption func(*Runner)

// WithConcurrency bounds the number of packages resolved in parallel.
// Values below 1 fall back to sequential resolution.
func WithConcurrency(n int) RunnerOption {
	return func(r *Runner) {
		if n >= 1 {
			r.concurrency = n
		} else {
			r.concurrency = 1
		}
	}
}

// NewRunner creates a runner over a loaded collection.
func NewRunner(coll *collection.Collection, up *upstream.Resolver, repo *aur.Client, opts ...RunnerOption) *Runner {
	r := &Runner{
		coll:        coll,
		upstream:    up,
		repo:        repo,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run resolves all packages for the given mode. Packages resolve
// concurrently up to the configured bound, but outcomes always come
// back in collection order so reports are deterministic.
func (r *Runner) Run(ctx context.Context, mode Mode) []Outcome {
	outcomes := make([]Outcome, r.coll.Len())

	sem := make(chan struct{}, r.concurrency)
	var wg sync.WaitGroup

	for i, name := range r.coll.Names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			outcomes[i] = r.resolve(ctx, mode, name)
		}(i, name)
	}

	wg.Wait()
	return outcomes
}

// resolve handles a single package. Each side's failure is captured in
// its Result; nothing here aborts the batch.
func (r *Runner) resolve(ctx context.Context, mode Mode, name string) Outcome {
	outcome := Outcome{Package: name}
	cfg, _ := r.coll.Get(name)

	if mode == ModeUpstream || mode == ModeCompare {
		version, err := r.upstream.Resolve(ctx, name, cfg.Upstream)
		outcome.Upstream = resultFromUpstream(version, err)
	}

	if mode == ModeRepo || mode == ModeCompare {
		version, err := r.repo.Info(ctx, name)
		outcome.Repo = resultFromRepo(version, err)
	}

	return outcome
}
