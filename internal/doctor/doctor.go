// Package doctor provides environment preflight checks for botok.
package doctor

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// PassMark and FailMark are the prefix symbols printed for each check result.
const (
	PassMark = "✓"
	FailMark = "✗"
)

// LoadFunc builds the dictionary index and returns its word count.
type LoadFunc func() (words int, err error)

// TokenizeFunc tokenizes text and returns the token count.
type TokenizeFunc func(text string) (tokens int, err error)

// DefaultSampleText is tokenized when Config.SampleText is empty.
const DefaultSampleText = "བཀྲ་ཤིས་བདེ་ལེགས།"

// Config holds injectable dependencies for each doctor check.
type Config struct {
	// PacksBaseDir is the directory dialect packs are stored in.
	PacksBaseDir string
	// PackName is the pack expected under PacksBaseDir.
	PackName string
	// SkipPacks skips the pack checks (an explicit dictionary file is in use).
	SkipPacks bool
	// DictFiles lists explicit dictionary TSV paths to verify on disk.
	DictFiles []string
	// LoadIndex builds the configured dictionary index.
	LoadIndex LoadFunc
	// Tokenize runs the sample text through the loaded index.
	Tokenize TokenizeFunc
	// SampleText overrides DefaultSampleText.
	SampleText string
}

// Result collects the outcome of all checks.
type Result struct {
	failures []string
}

// Failed returns true if any check failed.
func (r *Result) Failed() bool { return len(r.failures) > 0 }

// Failures returns the list of failure messages.
func (r *Result) Failures() []string { return append([]string(nil), r.failures...) }

// AddFailure appends an external failure message to the result.
func (r *Result) AddFailure(msg string) { r.failures = append(r.failures, msg) }

func (r *Result) fail(msg string) { r.failures = append(r.failures, msg) }

// Run executes all configured checks and writes human-readable output to w.
// Each check line is prefixed with PassMark or FailMark.
func Run(cfg Config, w io.Writer) Result {
	var res Result

	// ---- dialect pack directory -------------------------------------------
	if cfg.SkipPacks {
		fmt.Fprintf(w, "%s dialect packs: skipped\n", PassMark)
	} else {
		if fi, err := os.Stat(cfg.PacksBaseDir); err != nil || !fi.IsDir() {
			res.fail(fmt.Sprintf("packs directory %q: not found", cfg.PacksBaseDir))
			fmt.Fprintf(w, "%s packs directory %s: not found\n", FailMark, cfg.PacksBaseDir)
		} else {
			fmt.Fprintf(w, "%s packs directory: %s\n", PassMark, cfg.PacksBaseDir)
		}

		packDir := filepath.Join(cfg.PacksBaseDir, cfg.PackName)
		dictDir := filepath.Join(packDir, "dictionary")
		if fi, err := os.Stat(dictDir); err != nil || !fi.IsDir() {
			res.fail(fmt.Sprintf("pack %q: no dictionary directory at %s", cfg.PackName, packDir))
			fmt.Fprintf(w, "%s pack %s: no dictionary directory (run: botok packs fetch %s)\n", FailMark, cfg.PackName, cfg.PackName)
		} else {
			fmt.Fprintf(w, "%s pack %s: %s\n", PassMark, cfg.PackName, packDir)
		}
	}

	// ---- explicit dictionary files ----------------------------------------
	for _, path := range cfg.DictFiles {
		if _, err := os.Stat(path); err != nil {
			res.fail(fmt.Sprintf("dictionary file %q: %v", path, err))
			fmt.Fprintf(w, "%s dictionary file %s: not found\n", FailMark, path)
		} else {
			fmt.Fprintf(w, "%s dictionary file: %s\n", PassMark, path)
		}
	}

	// ---- dictionary index -------------------------------------------------
	words := 0
	if cfg.LoadIndex != nil {
		n, err := cfg.LoadIndex()
		if err != nil {
			res.fail(fmt.Sprintf("dictionary index: %v", err))
			fmt.Fprintf(w, "%s dictionary index: %v\n", FailMark, err)
		} else if err := checkWordCount(n); err != nil {
			res.fail(fmt.Sprintf("dictionary index: %v", err))
			fmt.Fprintf(w, "%s dictionary index: %v\n", FailMark, err)
		} else {
			words = n
			fmt.Fprintf(w, "%s dictionary index: %d words\n", PassMark, n)
		}
	}

	// ---- sample tokenization ----------------------------------------------
	if cfg.Tokenize != nil {
		sample := cfg.SampleText
		if sample == "" {
			sample = DefaultSampleText
		}
		n, err := cfg.Tokenize(sample)
		if err != nil {
			res.fail(fmt.Sprintf("sample tokenization: %v", err))
			fmt.Fprintf(w, "%s sample tokenization: %v\n", FailMark, err)
		} else if n == 0 {
			res.fail("sample tokenization: produced no tokens")
			fmt.Fprintf(w, "%s sample tokenization: produced no tokens\n", FailMark)
		} else {
			fmt.Fprintf(w, "%s sample tokenization: %d tokens (%d dictionary words)\n", PassMark, n, words)
		}
	}

	return res
}

// checkWordCount returns an error for an empty index, since tokenization
// then degrades to per-syllable output.
func checkWordCount(words int) error {
	if words <= 0 {
		return fmt.Errorf("index is empty; tokenization will fall back to syllables")
	}
	return nil
}
