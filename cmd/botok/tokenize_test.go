package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/OpenPecha/botok-go/chunker"
	"github.com/OpenPecha/botok-go/internal/config"
	"github.com/OpenPecha/botok-go/tokenizer"
)

func TestReadInputText(t *testing.T) {
	t.Run("uses positional args", func(t *testing.T) {
		got, err := readInputText([]string{"བཀྲ་ཤིས།"}, strings.NewReader("ignored"))
		if err != nil {
			t.Fatalf("readInputText returned error: %v", err)
		}
		if got != "བཀྲ་ཤིས།" {
			t.Fatalf("unexpected text: %q", got)
		}
	})

	t.Run("joins multiple args", func(t *testing.T) {
		got, err := readInputText([]string{"ka", "kha"}, strings.NewReader("ignored"))
		if err != nil {
			t.Fatalf("readInputText returned error: %v", err)
		}
		if got != "ka kha" {
			t.Fatalf("expected joined args, got %q", got)
		}
	})

	t.Run("falls back to stdin", func(t *testing.T) {
		got, err := readInputText(nil, strings.NewReader(" from stdin \n"))
		if err != nil {
			t.Fatalf("readInputText returned error: %v", err)
		}
		if got != "from stdin" {
			t.Fatalf("expected trimmed stdin text, got %q", got)
		}
	})

	t.Run("fails when both empty", func(t *testing.T) {
		_, err := readInputText(nil, strings.NewReader("   \n\t"))
		if err == nil {
			t.Fatal("expected error for empty input")
		}
	})
}

func TestWriteTokenTSV_UsesPOSOrChunkType(t *testing.T) {
	freq := uint32(100)
	tokens := []tokenizer.Token{
		{Text: "བཀྲ་ཤིས་", Type: chunker.Text, POS: "NOUN", Freq: &freq, Syls: []string{"བཀྲ", "ཤིས"}},
		{Text: "།", Type: chunker.Punct},
	}

	var buf bytes.Buffer
	if err := writeTokenTSV(&buf, tokens); err != nil {
		t.Fatalf("writeTokenTSV returned error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}

	first := strings.Split(lines[0], "\t")
	if len(first) != 3 || first[1] != "NOUN" {
		t.Errorf("word line should carry POS: %q", lines[0])
	}
	if first[2] != "བཀྲ་ཤིས" {
		t.Errorf("syllables should join with tsek: %q", first[2])
	}

	second := strings.Split(lines[1], "\t")
	if len(second) != 3 || second[1] != "PUNCT" {
		t.Errorf("punct line should fall back to the chunk type: %q", lines[1])
	}
}

func TestFormatTokens_JSONIsValid(t *testing.T) {
	tokens := []tokenizer.Token{
		{Text: "ཀ་", Type: chunker.Text, Syls: []string{"ཀ"}},
	}

	var buf bytes.Buffer
	if err := formatTokens(&buf, tokens, config.FormatJSON); err != nil {
		t.Fatalf("formatTokens returned error: %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("expected 1 token, got %d", len(decoded))
	}
	if decoded[0]["text"] != "ཀ་" {
		t.Errorf("unexpected text field: %v", decoded[0]["text"])
	}
	if decoded[0]["chunk_type"] != "TEXT" {
		t.Errorf("unexpected chunk_type field: %v", decoded[0]["chunk_type"])
	}
}

func TestFormatTokens_TableContainsHeaders(t *testing.T) {
	tokens := []tokenizer.Token{
		{Text: "ཀ་", Type: chunker.Text, POS: "NOUN", Syls: []string{"ཀ"}},
	}

	var buf bytes.Buffer
	if err := formatTokens(&buf, tokens, config.FormatTable); err != nil {
		t.Fatalf("formatTokens returned error: %v", err)
	}

	out := buf.String()
	for _, header := range []string{"TEXT", "TYPE", "POS", "SYLS"} {
		if !strings.Contains(out, header) {
			t.Errorf("table output missing header %q:\n%s", header, out)
		}
	}
	if !strings.Contains(out, "NOUN") {
		t.Errorf("table output missing token row:\n%s", out)
	}
}

func TestWriteOutput_Stdout(t *testing.T) {
	var stdout bytes.Buffer
	if err := writeOutput("-", []byte("hello\n"), &stdout); err != nil {
		t.Fatalf("writeOutput stdout returned error: %v", err)
	}
	if stdout.String() != "hello\n" {
		t.Fatalf("unexpected stdout content: %q", stdout.String())
	}
}

func TestWriteOutput_File(t *testing.T) {
	tmp := t.TempDir()
	out := filepath.Join(tmp, "tokens.tsv")

	if err := writeOutput(out, []byte("a\tb\n"), nil); err != nil {
		t.Fatalf("writeOutput file returned error: %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile returned error: %v", err)
	}
	if string(got) != "a\tb\n" {
		t.Fatalf("unexpected file content: %q", string(got))
	}
}
