// Package dialect locates, fetches and loads dialect packs: the
// dictionary bundles published as Esukhia/botok-data releases. A pack
// is a directory whose dictionary/ subdirectory holds word TSVs and
// whose optional adjustments/ subdirectory holds forms to remove
// again after loading.
package dialect

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/OpenPecha/botok-go/trie"
)

// DefaultPack is the pack used when no name is configured.
const DefaultPack = "general"

// ErrPackNotFound reports a pack that is not present locally.
var ErrPackNotFound = errors.New("dialect pack not found")

// DefaultBaseDir returns the directory packs are unpacked into when no
// base dir is configured.
func DefaultBaseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Documents", "botok-go", "dialect_packs")
}

// Pack is a resolved pack on disk.
type Pack struct {
	Name string
	Dir  string
}

// Path returns where the named pack lives under baseDir, without
// checking that anything is there. An empty baseDir means
// DefaultBaseDir.
func Path(baseDir, name string) string {
	if baseDir == "" {
		baseDir = DefaultBaseDir()
	}
	return filepath.Join(baseDir, name)
}

// Exists reports whether the named pack is usable: its directory must
// exist and contain a dictionary subdirectory.
func Exists(baseDir, name string) bool {
	dir := Path(baseDir, name)
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		return false
	}
	fi, err := os.Stat(filepath.Join(dir, "dictionary"))
	return err == nil && fi.IsDir()
}

// Resolve returns the named pack if it is present under baseDir. An
// empty name means DefaultPack.
func Resolve(baseDir, name string) (Pack, error) {
	if name == "" {
		name = DefaultPack
	}
	if !Exists(baseDir, name) {
		return Pack{}, fmt.Errorf("%w: %s at %s", ErrPackNotFound, name, Path(baseDir, name))
	}
	return Pack{Name: name, Dir: Path(baseDir, name)}, nil
}

// DictionaryFiles returns every .tsv under the pack's dictionary
// directory, in walk order. A missing directory yields no files and
// no error.
func (p Pack) DictionaryFiles() ([]string, error) {
	return tsvFiles(filepath.Join(p.Dir, "dictionary"))
}

// AdjustmentFiles returns every .tsv under the pack's adjustments
// directory, in walk order. A missing directory yields no files and
// no error.
func (p Pack) AdjustmentFiles() ([]string, error) {
	return tsvFiles(filepath.Join(p.Dir, "adjustments"))
}

func tsvFiles(dir string) ([]string, error) {
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		return nil, nil
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".tsv" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	return files, nil
}

// LoadOptions configure Load.
type LoadOptions struct {
	// Inflect also inserts the affixed variants of every dictionary
	// form, so inflected words match without their own rows.
	Inflect bool
}

// LoadSummary reports what Load put into the index. Files counts
// dictionary files only.
type LoadSummary struct {
	Files       int
	Loaded      int
	Skipped     int
	Deactivated int
}

// Load parses every dictionary file in the pack concurrently, feeds
// the rows into one index in file order, then applies the adjustment
// files by deactivating the exact forms they list.
func Load(p Pack, opts LoadOptions) (*trie.Trie, LoadSummary, error) {
	var sum LoadSummary

	dicts, err := p.DictionaryFiles()
	if err != nil {
		return nil, sum, err
	}

	type parsed struct {
		entries []trie.Entry
		report  trie.LoadReport
	}
	results := make([]parsed, len(dicts))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range dicts {
		i, path := i, path
		g.Go(func() error {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open dictionary: %w", err)
			}
			defer f.Close()

			entries, rep, err := trie.ParseTSV(f)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = parsed{entries: entries, report: rep}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, sum, err
	}

	var bopts []trie.BuilderOption
	if opts.Inflect {
		bopts = append(bopts, trie.WithInflection())
	}
	b := trie.NewBuilder(bopts...)

	for i := range results {
		for _, e := range results[i].entries {
			if err := b.Add(e); err != nil {
				return nil, sum, fmt.Errorf("%s: %w", dicts[i], err)
			}
		}
		sum.Loaded += results[i].report.Loaded
		sum.Skipped += results[i].report.Skipped
	}
	sum.Files = len(dicts)

	adjs, err := p.AdjustmentFiles()
	if err != nil {
		return nil, sum, err
	}
	for _, path := range adjs {
		n, err := applyAdjustments(b, path)
		if err != nil {
			return nil, sum, err
		}
		sum.Deactivated += n
	}

	return b.Build(), sum, nil
}

// applyAdjustments deactivates every form listed in the file. Rows use
// the same TSV shape as dictionaries; only the form column matters.
func applyAdjustments(b *trie.Builder, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open adjustments: %w", err)
	}
	defer f.Close()

	entries, _, err := trie.ParseTSV(f)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}

	n := 0
	for _, e := range entries {
		if b.Deactivate(e.Form) {
			n++
		}
	}
	return n, nil
}
