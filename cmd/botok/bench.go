package main

import (
	"context"
	"fmt"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/OpenPecha/botok-go/internal/bench"
	"github.com/OpenPecha/botok-go/internal/service"
	"github.com/spf13/cobra"
)

func newBenchCmd() *cobra.Command {
	var (
		text          string
		runs          int
		warmup        int
		simple        bool
		format        string
		cpuProfile    string
		minThroughput float64
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark tokenization latency and throughput",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			if strings.TrimSpace(text) == "" {
				return fmt.Errorf("--text is required for bench")
			}
			if runs < 1 {
				return fmt.Errorf("--runs must be at least 1")
			}
			if warmup < 0 {
				return fmt.Errorf("--warmup must not be negative")
			}
			if format != "table" && format != "json" {
				return fmt.Errorf("--format must be 'table' or 'json'")
			}

			svc, _, err := service.New(cfg)
			if err != nil {
				return err
			}

			if cpuProfile != "" {
				f, err := os.Create(cpuProfile)
				if err != nil {
					return fmt.Errorf("create cpu profile: %w", err)
				}
				defer func() { _ = f.Close() }()

				if err := pprof.StartCPUProfile(f); err != nil {
					return fmt.Errorf("start cpu profile: %w", err)
				}
				defer pprof.StopCPUProfile()
			}

			results, err := runBench(cmd.Context(), svc, benchOptions{
				Text:   text,
				Runs:   runs,
				Warmup: warmup,
				Simple: simple,
			})
			if err != nil {
				return err
			}

			durations := make([]time.Duration, len(results))
			for i, r := range results {
				durations[i] = r.Duration
			}
			stats := bench.ComputeStats(durations)

			switch format {
			case "json":
				bench.FormatJSON(results, stats, os.Stdout)
			default:
				bench.FormatTable(results, stats, os.Stdout)
			}

			// Compute mean throughput across all runs.
			var total float64
			for _, r := range results {
				total += r.TokensPerSec
			}
			mean := total / float64(len(results))

			return bench.CheckThroughputThreshold(mean, minThroughput)
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Text to tokenize for each run (required)")
	cmd.Flags().IntVar(&runs, "runs", 5, "Number of timed tokenization runs")
	cmd.Flags().IntVar(&warmup, "warmup", 0, "Untimed runs before measurement starts")
	cmd.Flags().BoolVar(&simple, "simple", false, "Benchmark syllable tokenization without the dictionary")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table|json")
	cmd.Flags().StringVar(&cpuProfile, "cpuprofile", "", "Write a CPU profile to this file")
	cmd.Flags().Float64Var(&minThroughput, "min-throughput", 0, "Exit non-zero if mean tokens/s falls below this value (0 = disabled)")

	return cmd
}

type benchOptions struct {
	Text   string
	Runs   int
	Warmup int
	Simple bool
}

func runBench(ctx context.Context, svc *service.Service, opts benchOptions) ([]bench.RunResult, error) {
	for i := 0; i < opts.Warmup; i++ {
		if _, err := svc.Tokenize(ctx, opts.Text, opts.Simple); err != nil {
			return nil, fmt.Errorf("warmup run %d failed: %w", i+1, err)
		}
	}

	results := make([]bench.RunResult, 0, opts.Runs)

	for i := 0; i < opts.Runs; i++ {
		start := time.Now()
		tokens, err := svc.Tokenize(ctx, opts.Text, opts.Simple)
		if err != nil {
			return nil, fmt.Errorf("run %d failed: %w", i+1, err)
		}
		dur := time.Since(start)

		results = append(results, bench.RunResult{
			Index:        i,
			Cold:         i == 0 && opts.Warmup == 0,
			Duration:     dur,
			Tokens:       len(tokens),
			Bytes:        len(opts.Text),
			TokensPerSec: bench.CalcThroughput(len(tokens), dur),
		})
	}

	return results, nil
}
