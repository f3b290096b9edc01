// Package sweep runs one generation job over many seeds in parallel.
package sweep

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"mad-wfc/internal/telemetry"
	"mad-wfc/pkg/wfc"
	"mad-wfc/pkg/wfc/grid"
)

// ErrNoBuilder is returned by Run without a Builder.
var ErrNoBuilder = errors.New("sweep: builder is nil")

// Builder returns a fresh, independent solver. It is called once per worker.
type Builder func() (*grid.Algorithm, error)

// Options tunes a sweep.
type Options struct {
	Seeds     []int64
	Workers   int
	StepLimit int

	// Metrics, when set, observes every engine.
	Metrics *telemetry.Metrics
	// Logger, when set, receives per-run lifecycle records.
	Logger *slog.Logger
}

// Result is the outcome of one seed.
type Result struct {
	Seed      int64
	Outcome   wfc.Outcome
	Steps     int
	Collapsed int
	Duration  time.Duration
	Err       error
}

type job struct {
	index int
	seed  int64
}

// Seeds returns n consecutive seeds starting at first.
func Seeds(first int64, n int) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = first + int64(i)
	}
	return out
}

// Run solves build's job for every seed in opts. Results are returned in seed
// order. Cancelling ctx stops workers between runs; the runs finished so far
// are returned together with the context error.
func Run(ctx context.Context, build Builder, opts Options) ([]Result, error) {
	if build == nil {
		return nil, ErrNoBuilder
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, max(len(opts.Seeds), 1))

	results := make([]Result, len(opts.Seeds))
	finished := make([]bool, len(opts.Seeds))
	jobs := make(chan job)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i, seed := range opts.Seeds {
			select {
			case jobs <- job{index: i, seed: seed}:
			case <-gctx.Done():
				return nil
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			alg, err := build()
			if err != nil {
				return err
			}
			steps := 0
			alg.Subscribe(wfc.ObserverFunc(func(ev wfc.Event) {
				switch ev.Kind {
				case wfc.EventStart:
					steps = 0
				case wfc.EventStep:
					steps++
				}
			}))
			if opts.Metrics != nil {
				alg.Subscribe(opts.Metrics)
			}
			if opts.Logger != nil {
				alg.Subscribe(telemetry.NewLogObserver(opts.Logger.With("worker", w)))
			}

			for j := range jobs {
				if gctx.Err() != nil {
					continue
				}
				results[j.index] = runOne(alg, j.seed, opts, &steps)
				finished[j.index] = true
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	done := results[:0]
	for i, r := range results {
		if finished[i] {
			done = append(done, r)
		}
	}
	return done, ctx.Err()
}

func runOne(alg *grid.Algorithm, seed int64, opts Options, steps *int) Result {
	var record func(wfc.Outcome)
	if opts.Metrics != nil {
		record = opts.Metrics.Track()
	}
	start := time.Now()
	out, err := alg.Run(seed, opts.StepLimit)
	res := Result{
		Seed:     seed,
		Outcome:  out,
		Steps:    *steps,
		Duration: time.Since(start),
		Err:      err,
	}
	for c := 0; c < alg.Grid().TotalSize(); c++ {
		if alg.Remaining(c) == 1 {
			res.Collapsed++
		}
	}
	if record != nil {
		record(out)
	}
	return res
}

// Summary aggregates a sweep.
type Summary struct {
	Runs       int
	Solved     int
	Failed     int
	Incomplete int
	MeanSteps  float64
	Total      time.Duration
}

// SuccessRate is the fraction of runs that solved.
func (s Summary) SuccessRate() float64 {
	if s.Runs == 0 {
		return 0
	}
	return float64(s.Solved) / float64(s.Runs)
}

// Summarize aggregates results.
func Summarize(results []Result) Summary {
	var s Summary
	steps := 0
	for _, r := range results {
		s.Runs++
		steps += r.Steps
		s.Total += r.Duration
		switch r.Outcome {
		case wfc.OutcomeSolved:
			s.Solved++
		case wfc.OutcomeFailed:
			s.Failed++
		case wfc.OutcomeIncomplete:
			s.Incomplete++
		}
	}
	if s.Runs > 0 {
		s.MeanSteps = float64(steps) / float64(s.Runs)
	}
	return s
}
