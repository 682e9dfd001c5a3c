package engine

import (
	"golang.org/x/sync/errgroup"

	"github.com/corvidchess/corvid/internal/board"
)

// workerFunc is what each pooled goroutine runs: one worker's iterative
// deepening loop, writing its per-depth results to resultCh.
type workerFunc func(workerID int, pos *board.Position, maxDepth int, resultCh chan<- WorkerResult)

// WorkerPool is the Lazy-SMP launcher (spec.md §4.9): it clones per-thread
// state across the engine's workers and joins them on an errgroup rather
// than a bare WaitGroup, so a worker panic surfaces through Wait instead of
// wedging the result-collection goroutine forever.
type WorkerPool struct {
	resultCh chan WorkerResult
	done     chan struct{}
}

// Results returns the channel every worker's per-depth results are sent to.
// It is closed once all workers have returned.
func (p *WorkerPool) Results() <-chan WorkerResult {
	return p.resultCh
}

// Done returns a channel that closes once every worker has returned and
// resultCh has been drained-safe to close.
func (p *WorkerPool) Done() <-chan struct{} {
	return p.done
}

// launchWorkers starts one goroutine per worker running fn against pos, and
// returns a pool the caller can select on alongside a stop signal.
func (e *Engine) launchWorkers(pos *board.Position, maxDepth int, fn workerFunc) *WorkerPool {
	resultCh := make(chan WorkerResult, NumWorkers*maxDepth)

	var eg errgroup.Group
	for i := 0; i < NumWorkers; i++ {
		workerID := i
		eg.Go(func() error {
			fn(workerID, pos, maxDepth, resultCh)
			return nil
		})
	}

	done := make(chan struct{})
	go func() {
		eg.Wait()
		close(resultCh)
		close(done)
	}()

	return &WorkerPool{resultCh: resultCh, done: done}
}
