// Package service wires configuration into a ready tokenizer. It
// resolves the dictionary source, an explicit TSV file or a dialect
// pack under the packs directory, loads the index once, and exposes
// the tokenization entry points the CLI and the HTTP server share.
package service

import (
	"context"
	"fmt"
	"os"

	"github.com/OpenPecha/botok-go/chunker"
	"github.com/OpenPecha/botok-go/dialect"
	"github.com/OpenPecha/botok-go/internal/config"
	"github.com/OpenPecha/botok-go/tokenizer"
	"github.com/OpenPecha/botok-go/trie"
)

type Service struct {
	tok  *tokenizer.Tokenizer
	opts tokenizer.Options
}

// Info describes the dictionary a Service ended up with.
type Info struct {
	Source string // TSV path, pack directory, or "none"
	Words  int
}

// Options maps tokenizer config onto pipeline options.
func Options(cfg config.TokenizerConfig) tokenizer.Options {
	return tokenizer.Options{
		SplitAffixes:  cfg.SplitAffixes,
		MergeDagdra:   cfg.MergeDagdra,
		FillLemmas:    cfg.FillLemmas,
		PickSenses:    cfg.PickSenses,
		SpacesAsPunct: cfg.SpacesAsPunct,
		Normalize:     cfg.Normalize,
	}
}

// New loads the configured dictionary and returns a ready Service. An
// explicit dict path wins over the dialect pack.
func New(cfg config.Config) (*Service, Info, error) {
	idx, info, err := loadIndex(cfg)
	if err != nil {
		return nil, Info{}, err
	}
	return &Service{
		tok:  tokenizer.New(idx),
		opts: Options(cfg.Tokenizer),
	}, info, nil
}

func loadIndex(cfg config.Config) (*trie.Trie, Info, error) {
	var bopts []trie.BuilderOption
	if cfg.Tokenizer.Inflect {
		bopts = append(bopts, trie.WithInflection())
	}

	if path := cfg.Tokenizer.DictPath; path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, Info{}, fmt.Errorf("open dictionary: %w", err)
		}
		defer f.Close()

		b := trie.NewBuilder(bopts...)
		if _, err := b.LoadTSV(f); err != nil {
			return nil, Info{}, fmt.Errorf("%s: %w", path, err)
		}
		idx := b.Build()
		return idx, Info{Source: path, Words: idx.Len()}, nil
	}

	p, err := dialect.Resolve(cfg.Packs.BaseDir, cfg.Packs.Name)
	if err != nil {
		// No pack on disk: run with an empty dictionary, so
		// tokenization degrades to per-syllable output.
		idx, _ := trie.Build(nil)
		return idx, Info{Source: "none"}, nil
	}

	idx, _, err := dialect.Load(p, dialect.LoadOptions{Inflect: cfg.Tokenizer.Inflect})
	if err != nil {
		return nil, Info{}, err
	}
	return idx, Info{Source: p.Dir, Words: idx.Len()}, nil
}

// Tokenize runs the configured pipeline. With simple set it skips the
// dictionary and emits one token per syllable chunk.
func (s *Service) Tokenize(ctx context.Context, text string, simple bool) ([]tokenizer.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if simple {
		return tokenizer.SimpleTokenize(text), nil
	}
	return s.tok.TokenizeWithOptions(text, s.opts), nil
}

// Chunks reports the raw chunks tokenization would build tokens from.
func (s *Service) Chunks(text string) []chunker.Chunk {
	if s.opts.SpacesAsPunct {
		return chunker.New(chunker.WithSpacesAsPunct()).Split(text)
	}
	return chunker.Split(text)
}
