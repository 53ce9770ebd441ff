// Package tiles splits grid evaluation into row bands and runs them on a
// bounded worker pool with a deterministic merge.
package tiles

import (
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/zap"
)

// MaxWorkers caps the number of concurrent bands or tasks.
const MaxWorkers = 4

// Band is a half-open row range [Start, End).
type Band struct {
	Start int
	End   int
}

// Rows returns the number of rows in the band.
func (b Band) Rows() int {
	return b.End - b.Start
}

// RowProducer computes rows [start, end) of a size-wide grid and returns
// (end-start)*size values in row-major order.
type RowProducer func(start, end int) []float64

// Scheduler runs band and task lists either in parallel or sequentially.
// The zero value uses GOMAXPROCS workers and a no-op logger.
type Scheduler struct {
	// Workers is the desired parallelism; 0 means GOMAXPROCS.
	// The effective value never exceeds MaxWorkers.
	Workers int

	// Log receives warnings about worker failures.
	Log *zap.Logger
}

// NewScheduler creates a scheduler with the given worker count and logger.
func NewScheduler(workers int, log *zap.Logger) *Scheduler {
	return &Scheduler{Workers: workers, Log: log}
}

// Sequential returns a scheduler that evaluates everything on the caller's goroutine.
func Sequential() *Scheduler {
	return &Scheduler{Workers: 1}
}

// WorkerCount returns the effective number of workers.
func (s *Scheduler) WorkerCount() int {
	n := 0
	if s != nil {
		n = s.Workers
	}
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	if n > MaxWorkers {
		n = MaxWorkers
	}
	if n < 1 {
		n = 1
	}
	return n
}

func (s *Scheduler) logger() *zap.Logger {
	if s == nil || s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

// Partition splits [0, size) into at most n contiguous bands.
// The last band absorbs the remainder.
func Partition(size, n int) []Band {
	if size <= 0 {
		return nil
	}
	if n > size {
		n = size
	}
	if n < 1 {
		n = 1
	}

	rows := size / n
	bands := make([]Band, n)
	for i := range bands {
		start := i * rows
		end := start + rows
		if i == n-1 {
			end = size
		}
		bands[i] = Band{Start: start, End: end}
	}
	return bands
}

// Generate evaluates a size×size grid band by band and concatenates the
// bands in ascending row order.
func (s *Scheduler) Generate(size int, produce RowProducer) ([]float64, error) {
	if size <= 0 {
		return nil, fmt.Errorf("tiles: size must be positive, got %d", size)
	}

	bands := Partition(size, s.WorkerCount())
	parts := Map(s, len(bands), func(i int) []float64 {
		b := bands[i]
		rows := produce(b.Start, b.End)
		if len(rows) != b.Rows()*size {
			panic(fmt.Sprintf("tiles: band [%d,%d) produced %d values, want %d",
				b.Start, b.End, len(rows), b.Rows()*size))
		}
		return rows
	})

	out := make([]float64, 0, size*size)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out, nil
}

// Map runs task(0..n-1) on up to WorkerCount goroutines and returns the
// results indexed by task. If any worker panics, the panic is logged and the
// whole task list is re-run sequentially, so output never depends on the
// execution path.
func Map[T any](s *Scheduler, n int, task func(i int) T) []T {
	if n <= 0 {
		return nil
	}

	workers := s.WorkerCount()
	if workers > n {
		workers = n
	}
	if workers == 1 {
		return runSequential(n, task)
	}

	results, err := runParallel(workers, n, task)
	if err != nil {
		s.logger().Warn("parallel evaluation failed, falling back to sequential",
			zap.Int("tasks", n),
			zap.Int("workers", workers),
			zap.Error(err))
		return runSequential(n, task)
	}
	return results
}

func runSequential[T any](n int, task func(i int) T) []T {
	results := make([]T, n)
	for i := range results {
		results[i] = task(i)
	}
	return results
}

func runParallel[T any](workers, n int, task func(i int) T) ([]T, error) {
	results := make([]T, n)
	jobs := make(chan int, n)
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = fmt.Errorf("worker panic: %v", r)
					}
					mu.Unlock()
				}
			}()
			for i := range jobs {
				// Each task owns results[i].
				results[i] = task(i)
			}
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}
