// Package bench provides benchmarking primitives for the botok bench command.
package bench

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// ---------------------------------------------------------------------------
// Run result and stats
// ---------------------------------------------------------------------------

// RunResult holds the timing and output metadata for a single tokenization run.
type RunResult struct {
	Index    int
	Cold     bool // true for the first run (cold-start)
	Duration time.Duration
	Tokens   int
	Bytes    int
	// TokensPerSec is Tokens divided by Duration in seconds.
	TokensPerSec float64
}

// Stats holds aggregate timing statistics across all runs.
type Stats struct {
	Min  time.Duration
	Max  time.Duration
	Mean time.Duration
}

// ComputeStats calculates min, max and mean over a slice of durations.
// An empty slice yields zero stats.
func ComputeStats(durations []time.Duration) Stats {
	if len(durations) == 0 {
		return Stats{}
	}
	mn, mx := durations[0], durations[0]
	var sum time.Duration
	for _, d := range durations {
		if d < mn {
			mn = d
		}
		if d > mx {
			mx = d
		}
		sum += d
	}
	return Stats{
		Min:  mn,
		Max:  mx,
		Mean: sum / time.Duration(len(durations)),
	}
}

// ---------------------------------------------------------------------------
// Throughput helpers
// ---------------------------------------------------------------------------

// CalcThroughput returns tokens per second for a run.
// Returns 0 if dur is zero to avoid division by zero.
func CalcThroughput(tokens int, dur time.Duration) float64 {
	if dur <= 0 {
		return 0
	}
	return float64(tokens) / dur.Seconds()
}

// ---------------------------------------------------------------------------
// Throughput threshold gate
// ---------------------------------------------------------------------------

// CheckThroughputThreshold returns an error if meanTokensPerSec < threshold.
// A threshold of 0 disables the gate.
func CheckThroughputThreshold(meanTokensPerSec, threshold float64) error {
	if threshold <= 0 {
		return nil
	}
	if meanTokensPerSec < threshold {
		return fmt.Errorf("mean throughput %.1f tok/s below threshold %.1f tok/s", meanTokensPerSec, threshold)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Output formatters
// ---------------------------------------------------------------------------

// FormatTable writes a human-readable ASCII table of bench results to w.
func FormatTable(runs []RunResult, stats Stats, w io.Writer) {
	sb := &strings.Builder{}

	fmt.Fprintf(sb, "%-5s  %-5s  %10s  %8s  %12s\n", "Run", "Cold", "MS", "Tokens", "Tok/s")
	fmt.Fprintln(sb, strings.Repeat("-", 48))

	for _, r := range runs {
		cold := ""
		if r.Cold {
			cold = "yes"
		}
		fmt.Fprintf(sb, "%-5d  %-5s  %10.1f  %8d  %12.1f\n",
			r.Index+1,
			cold,
			float64(r.Duration.Microseconds())/1000,
			r.Tokens,
			r.TokensPerSec,
		)
	}

	fmt.Fprintln(sb, strings.Repeat("-", 48))
	fmt.Fprintf(sb, "%-5s  %-5s  %10.1f  %8s  %12s  (min)\n", "", "", float64(stats.Min.Microseconds())/1000, "", "")
	fmt.Fprintf(sb, "%-5s  %-5s  %10.1f  %8s  %12s  (mean)\n", "", "", float64(stats.Mean.Microseconds())/1000, "", "")
	fmt.Fprintf(sb, "%-5s  %-5s  %10.1f  %8s  %12s  (max)\n", "", "", float64(stats.Max.Microseconds())/1000, "", "")

	fmt.Fprint(w, sb.String())
}

// jsonReport is the top-level JSON structure emitted by FormatJSON.
type jsonReport struct {
	Runs  []jsonRun `json:"runs"`
	Stats jsonStats `json:"stats"`
}

type jsonRun struct {
	Index        int     `json:"index"`
	Cold         bool    `json:"cold"`
	DurationMS   float64 `json:"duration_ms"`
	Tokens       int     `json:"tokens"`
	Bytes        int     `json:"bytes"`
	TokensPerSec float64 `json:"tokens_per_sec"`
}

type jsonStats struct {
	MinMS  float64 `json:"min_ms"`
	MeanMS float64 `json:"mean_ms"`
	MaxMS  float64 `json:"max_ms"`
}

// FormatJSON writes a JSON report of bench results to w.
func FormatJSON(runs []RunResult, stats Stats, w io.Writer) {
	jr := jsonReport{
		Runs: make([]jsonRun, len(runs)),
		Stats: jsonStats{
			MinMS:  float64(stats.Min.Microseconds()) / 1000,
			MeanMS: float64(stats.Mean.Microseconds()) / 1000,
			MaxMS:  float64(stats.Max.Microseconds()) / 1000,
		},
	}
	for i, r := range runs {
		jr.Runs[i] = jsonRun{
			Index:        r.Index,
			Cold:         r.Cold,
			DurationMS:   float64(r.Duration.Microseconds()) / 1000,
			Tokens:       r.Tokens,
			Bytes:        r.Bytes,
			TokensPerSec: r.TokensPerSec,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(jr)
}
