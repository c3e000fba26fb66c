// Package worker runs independent jobs on a bounded pool of goroutines and
// hands results back in submission order.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/okian/rollcall/pkg/logger"
	"github.com/okian/rollcall/pkg/metrics"
)

// Handler processes one job.
type Handler[In, Out any] func(ctx context.Context, in In) (Out, error)

// Result is the outcome of one job. Index is the job's position in the
// submitted slice.
type Result[Out any] struct {
	Index int
	Value Out
	Err   error
}

type job[In any] struct {
	index int
	in    In
}

// Pool runs a Handler on up to Size goroutines.
type Pool[In, Out any] struct {
	size    int
	handler Handler[In, Out]
	cfg     settings
	active  atomic.Int64
}

// NewPool returns a pool of size workers. A size below 1 uses runtime.NumCPU().
func NewPool[In, Out any](size int, h Handler[In, Out], opts ...Option) *Pool[In, Out] {
	if size < 1 {
		size = runtime.NumCPU()
	}
	cfg := settings{name: "worker-pool", logger: logger.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.queueSize == 0 {
		cfg.queueSize = size
	}
	cfg.logger = cfg.logger.Named(cfg.name)
	return &Pool[In, Out]{size: size, handler: h, cfg: cfg}
}

// Size returns the number of workers.
func (p *Pool[In, Out]) Size() int { return p.size }

// Run processes every item and returns one Result per item, ordered like
// items. A failing job does not stop the others. When ctx is cancelled the
// jobs not yet started are skipped and Run returns ErrStopped wrapping the
// context error together with the results gathered so far.
func (p *Pool[In, Out]) Run(ctx context.Context, items []In) ([]Result[Out], error) {
	results := make([]Result[Out], len(items))
	for i := range results {
		results[i].Index = i
	}
	if len(items) == 0 {
		return results, nil
	}

	workers := min(p.size, len(items))
	q := NewQueue[job[In]](p.cfg.queueSize)
	done := make([]bool, len(items))

	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			p.work(ctx, name, q, results, done)
		}("worker-" + strconv.Itoa(w))
	}

	var err error
	for i, in := range items {
		if err = q.Enqueue(ctx, job[In]{index: i, in: in}); err != nil {
			break
		}
	}
	q.Close()
	wg.Wait()

	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		skipped := 0
		for i := range results {
			if !done[i] {
				results[i].Err = err
				skipped++
			}
		}
		p.cfg.logger.Warn(ctx, "pool stopped early", logger.Int("skipped", skipped), logger.Error(err))
		return results, fmt.Errorf("%w: %w", ErrStopped, err)
	}
	return results, nil
}

// work drains q. Each job writes only its own slot of results and done.
func (p *Pool[In, Out]) work(ctx context.Context, name string, q *Queue[job[In]], results []Result[Out], done []bool) {
	log := p.cfg.logger.Named(name)
	for j := range q.Dequeue() {
		if ctx.Err() != nil {
			return
		}
		metrics.UpdateWorkerActiveCount(int(p.active.Add(1)))
		out, err := p.handler(ctx, j.in)
		metrics.UpdateWorkerActiveCount(int(p.active.Add(-1)))

		if err != nil {
			log.Debug(ctx, "job failed", logger.Int("index", j.index), logger.Error(err))
		}
		results[j.index] = Result[Out]{Index: j.index, Value: out, Err: err}
		done[j.index] = true
	}
}
