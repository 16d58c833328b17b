//go:build js && wasm

package main

import (
	"fmt"
	"strings"
	"sync"
	"syscall/js"

	"github.com/OpenPecha/botok-go/chunker"
	"github.com/OpenPecha/botok-go/tokenizer"
	"github.com/OpenPecha/botok-go/trie"
)

var (
	engineMu sync.RWMutex
	// engine starts with an empty dictionary so tokenize works before
	// loadDict; every syllable then falls back to its own token.
	engine = tokenizer.New(nil)
)

func main() {
	kernel := map[string]any{
		"version":        "0.1.0-wasm",
		"loadDict":       js.FuncOf(loadDictAsync),
		"addWord":        js.FuncOf(addWord),
		"tokenize":       js.FuncOf(tokenizeText),
		"simpleTokenize": js.FuncOf(simpleTokenizeText),
		"chunk":          js.FuncOf(chunkText),
		"syllables":      js.FuncOf(syllablesText),
	}

	js.Global().Set("BotokKernel", js.ValueOf(kernel))
	println("botok wasm kernel loaded")
	select {}
}

func currentEngine() *tokenizer.Tokenizer {
	engineMu.RLock()
	defer engineMu.RUnlock()
	return engine
}

func loadDictAsync(_ js.Value, args []js.Value) any {
	promiseCtor := js.Global().Get("Promise")
	var handler js.Func
	handler = js.FuncOf(func(_ js.Value, pArgs []js.Value) any {
		defer handler.Release()
		resolve := pArgs[0]
		reject := pArgs[1]

		if len(args) < 1 || args[0].Type() != js.TypeString {
			reject.Invoke("missing dictionary TSV string argument")
			return nil
		}
		content := args[0].String()

		inflect := false
		if len(args) > 1 && args[1].Type() == js.TypeObject {
			if v := args[1].Get("inflect"); v.Type() == js.TypeBoolean {
				inflect = v.Bool()
			}
		}

		go func() {
			res, err := loadDict(content, inflect)
			if err != nil {
				reject.Invoke(err.Error())
				return
			}
			resolve.Invoke(js.ValueOf(res))
		}()

		return nil
	})

	return promiseCtor.New(handler)
}

// loadDict parses a dictionary TSV and swaps in a tokenizer backed by
// the new index. Tokenize calls already running keep the old snapshot.
func loadDict(content string, inflect bool) (map[string]any, error) {
	var bopts []trie.BuilderOption
	if inflect {
		bopts = append(bopts, trie.WithInflection())
	}
	b := trie.NewBuilder(bopts...)
	rep, err := b.LoadTSV(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse dictionary: %w", err)
	}
	idx := b.Build()

	newEngine := tokenizer.New(idx)
	engineMu.Lock()
	engine = newEngine
	engineMu.Unlock()

	return okResult(map[string]any{
		"words":   idx.Len(),
		"loaded":  rep.Loaded,
		"skipped": rep.Skipped,
	}), nil
}

// addWord inserts one word into the live dictionary:
// addWord(form, pos?, lemma?, freq?).
func addWord(_ js.Value, args []js.Value) any {
	if len(args) < 1 || args[0].Type() != js.TypeString {
		return errResult("missing word form argument")
	}

	e := trie.Entry{Form: trie.ParseForm(args[0].String())}
	if len(args) > 1 && args[1].Type() == js.TypeString {
		e.POS = args[1].String()
	}
	if len(args) > 2 && args[2].Type() == js.TypeString {
		e.Lemma = args[2].String()
	}
	if len(args) > 3 && args[3].Type() == js.TypeNumber {
		if f := args[3].Int(); f >= 0 {
			e.Freq = trie.Freq(uint32(f))
		}
	}

	tok := currentEngine()
	if err := tok.AddWord(e); err != nil {
		return errResult(err.Error())
	}

	return okResult(map[string]any{"words": tok.Index().Len()})
}

// tokenizeText segments text with the loaded dictionary:
// tokenize(text, options?). Without an options object the raw
// longest-match pass runs with no post-processing.
func tokenizeText(_ js.Value, args []js.Value) any {
	if len(args) < 1 {
		return errResult("missing text argument")
	}
	text := args[0].String()

	tok := currentEngine()

	var tokens []tokenizer.Token
	if len(args) > 1 && args[1].Type() == js.TypeObject {
		tokens = tok.TokenizeWithOptions(text, parseTokenizeOptions(args[1]))
	} else {
		tokens = tok.Tokenize(text)
	}

	return okResult(map[string]any{"tokens": tokensJS(tokens)})
}

func parseTokenizeOptions(v js.Value) tokenizer.Options {
	var opts tokenizer.Options

	flag := func(name string) bool {
		f := v.Get(name)
		return f.Type() == js.TypeBoolean && f.Bool()
	}

	opts.SplitAffixes = flag("splitAffixes")
	opts.MergeDagdra = flag("mergeDagdra")
	opts.FillLemmas = flag("fillLemmas")
	opts.PickSenses = flag("pickSenses")
	opts.SpacesAsPunct = flag("spacesAsPunct")
	opts.Normalize = flag("normalize")

	return opts
}

func simpleTokenizeText(_ js.Value, args []js.Value) any {
	if len(args) < 1 {
		return errResult("missing text argument")
	}

	tokens := tokenizer.SimpleTokenize(args[0].String())
	return okResult(map[string]any{"tokens": tokensJS(tokens)})
}

func chunkText(_ js.Value, args []js.Value) any {
	if len(args) < 1 {
		return errResult("missing text argument")
	}
	text := args[0].String()

	chunks := chunker.Split(text)
	out := make([]any, 0, len(chunks))
	for _, c := range chunks {
		out = append(out, map[string]any{
			"type":  c.Type.String(),
			"text":  text[c.Start : c.Start+c.Len],
			"start": c.Start,
			"len":   c.Len,
		})
	}

	return okResult(map[string]any{"chunks": out})
}

func syllablesText(_ js.Value, args []js.Value) any {
	if len(args) < 1 {
		return errResult("missing text argument")
	}

	syls := chunker.Syllables(args[0].String())
	out := make([]any, 0, len(syls))
	for _, s := range syls {
		out = append(out, s)
	}

	return okResult(map[string]any{"syllables": out})
}

func tokensJS(tokens []tokenizer.Token) []any {
	out := make([]any, 0, len(tokens))
	for i := range tokens {
		out = append(out, tokenJS(&tokens[i]))
	}
	return out
}

// tokenJS flattens a token into js.ValueOf-compatible types. Absent
// optional fields are left out, matching the JSON shape.
func tokenJS(t *tokenizer.Token) map[string]any {
	m := map[string]any{
		"text":       t.Text,
		"start":      t.Start,
		"len":        t.Len,
		"chunk_type": t.Type.String(),
	}
	if t.POS != "" {
		m["pos"] = t.POS
	}
	if t.Lemma != "" {
		m["lemma"] = t.Lemma
	}
	if t.Freq != nil {
		m["freq"] = int(*t.Freq)
	}
	if len(t.Syls) > 0 {
		syls := make([]any, len(t.Syls))
		for i, s := range t.Syls {
			syls[i] = s
		}
		m["syls"] = syls
	}
	if t.IsAffix {
		m["is_affix"] = true
	}
	if t.IsAffixHost {
		m["is_affix_host"] = true
	}
	if t.IsSkrt {
		m["is_skrt"] = true
	}
	if t.HasMergedDagdra {
		m["has_merged_dagdra"] = true
	}
	return m
}

func okResult(payload map[string]any) map[string]any {
	payload["ok"] = true
	return payload
}

func errResult(msg string) map[string]any {
	return map[string]any{
		"ok":    false,
		"error": msg,
	}
}
