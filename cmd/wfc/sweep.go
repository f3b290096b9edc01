package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"mad-wfc/internal/sweep"
	"mad-wfc/internal/telemetry"
)

type sweepOptions struct {
	runs        int
	first       int64
	workers     int
	steps       int
	metricsAddr string
	linger      time.Duration
	perSeed     bool
	logRuns     bool
}

func newSweepCmd(root *rootOptions) *cobra.Command {
	opts := &sweepOptions{}
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Solve the job for many seeds and report the success rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSweep(cmd.Context(), cmd.OutOrStdout(), root, opts, cmd.Flags().Changed("steps"))
		},
	}
	f := cmd.Flags()
	f.IntVarP(&opts.runs, "runs", "n", 100, "number of seeds")
	f.Int64Var(&opts.first, "first", 1, "first seed")
	f.IntVarP(&opts.workers, "workers", "w", 0, "worker goroutines (default: number of CPUs)")
	f.IntVar(&opts.steps, "steps", 0, "observation budget per run (default: the job's limit)")
	f.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
	f.DurationVar(&opts.linger, "linger", 0, "keep serving metrics this long after the sweep")
	f.BoolVar(&opts.perSeed, "per-seed", false, "print one line per seed")
	f.BoolVar(&opts.logRuns, "log-runs", false, "log the start and end of every run")
	return cmd
}

func runSweep(ctx context.Context, w io.Writer, root *rootOptions, opts *sweepOptions, stepsSet bool) error {
	if opts.runs <= 0 {
		return fmt.Errorf("--runs must be positive, got %d", opts.runs)
	}
	cfg := root.cfg
	if stepsSet {
		cfg.StepLimit = opts.steps
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	metrics := telemetry.NewMetrics(reg)

	var srv *http.Server
	if opts.metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv = &http.Server{Addr: opts.metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				root.logger.Error("metrics server", "err", err)
			}
		}()
		root.logger.Info("serving metrics", "addr", opts.metricsAddr)
	}

	sopts := sweep.Options{
		Seeds:     sweep.Seeds(opts.first, opts.runs),
		Workers:   opts.workers,
		StepLimit: cfg.StepLimit,
		Metrics:   metrics,
	}
	if opts.logRuns {
		sopts.Logger = root.logger
	}
	start := time.Now()
	results, err := sweep.Run(ctx, cfg.Build, sopts)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	summary := sweep.Summarize(results)
	if perr := printSweep(w, results, summary, opts.perSeed); perr != nil {
		return perr
	}
	root.logger.Info("sweep finished", "runs", summary.Runs, "solved", summary.Solved,
		"elapsed", time.Since(start).Round(time.Millisecond))

	if srv != nil {
		if opts.linger > 0 && err == nil {
			select {
			case <-time.After(opts.linger):
			case <-ctx.Done():
			}
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}
	return err
}

func printSweep(w io.Writer, results []sweep.Result, s sweep.Summary, perSeed bool) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if perSeed {
		fmt.Fprintln(tw, "SEED\tOUTCOME\tSTEPS\tCOLLAPSED\tTIME")
		for _, r := range results {
			fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%s\n", r.Seed, r.Outcome, r.Steps, r.Collapsed, r.Duration.Round(time.Microsecond))
		}
		fmt.Fprintln(tw)
	}
	fmt.Fprintf(tw, "runs\t%d\n", s.Runs)
	fmt.Fprintf(tw, "solved\t%d\t(%.1f%%)\n", s.Solved, 100*s.SuccessRate())
	fmt.Fprintf(tw, "failed\t%d\n", s.Failed)
	fmt.Fprintf(tw, "incomplete\t%d\n", s.Incomplete)
	fmt.Fprintf(tw, "mean steps\t%.1f\n", s.MeanSteps)
	return tw.Flush()
}
