package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/OpenPecha/botok-go/internal/config"
	"github.com/OpenPecha/botok-go/internal/service"
	"github.com/OpenPecha/botok-go/tokenizer"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newTokenizeCmd() *cobra.Command {
	var simple bool
	var format string
	var out string

	cmd := &cobra.Command{
		Use:   "tokenize [text]",
		Short: "Tokenize Tibetan text",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			selectedFormat, err := config.NormalizeFormat(format)
			if err != nil {
				return err
			}

			inputText, err := readInputText(args, os.Stdin)
			if err != nil {
				return err
			}

			svc, _, err := service.New(cfg)
			if err != nil {
				return err
			}

			tokens, err := svc.Tokenize(cmd.Context(), inputText, simple)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := formatTokens(&buf, tokens, selectedFormat); err != nil {
				return err
			}

			return writeOutput(out, buf.Bytes(), os.Stdout)
		},
	}

	cmd.Flags().BoolVar(&simple, "simple", false, "One token per syllable chunk, no dictionary lookup")
	cmd.Flags().StringVar(&format, "format", config.FormatTSV, "Output format: tsv|json|table")
	cmd.Flags().StringVar(&out, "out", "-", "Output path ('-' for stdout)")

	return cmd
}

// formatTokens renders tokens in the requested format.
func formatTokens(w io.Writer, tokens []tokenizer.Token, format string) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tokens)
	case config.FormatTable:
		writeTokenTable(w, tokens)
		return nil
	default:
		return writeTokenTSV(w, tokens)
	}
}

// writeTokenTSV emits one line per token: text, POS (or the chunk type
// when the dictionary gave none), and the syllables joined by tsek.
func writeTokenTSV(w io.Writer, tokens []tokenizer.Token) error {
	for i := range tokens {
		t := &tokens[i]

		pos := t.POS
		if pos == "" {
			pos = t.Type.String()
		}

		syls := strings.Join(t.Syls, "་")
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", t.Text, pos, syls); err != nil {
			return err
		}
	}
	return nil
}

func writeTokenTable(w io.Writer, tokens []tokenizer.Token) {
	data := make([][]string, 0, len(tokens))
	for i := range tokens {
		t := &tokens[i]

		freq := ""
		if t.Freq != nil {
			freq = strconv.FormatUint(uint64(*t.Freq), 10)
		}

		data = append(data, []string{
			t.Text,
			t.Type.String(),
			t.POS,
			t.Lemma,
			freq,
			strings.Join(t.Syls, "་"),
		})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"TEXT", "TYPE", "POS", "LEMMA", "FREQ", "SYLS"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()
}

func writeOutput(outPath string, data []byte, stdout io.Writer) error {
	if outPath == "" || outPath == "-" {
		if stdout == nil {
			return fmt.Errorf("stdout writer is nil")
		}
		_, err := stdout.Write(data)
		return err
	}
	return os.WriteFile(outPath, data, 0o644)
}

// readInputText joins positional arguments, falling back to stdin when
// none are given.
func readInputText(args []string, stdin io.Reader) (string, error) {
	joined := strings.TrimSpace(strings.Join(args, " "))
	if joined != "" {
		return joined, nil
	}

	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	input := strings.TrimSpace(string(b))
	if input == "" {
		return "", fmt.Errorf("either provide text as an argument or pipe text on stdin")
	}
	return input, nil
}
