package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/OpenPecha/botok-go/chunker"
	"github.com/OpenPecha/botok-go/internal/config"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newChunkCmd() *cobra.Command {
	var format string
	var out string

	cmd := &cobra.Command{
		Use:   "chunk [text]",
		Short: "Show the raw chunks tokenization is built from",
		Args:  cobra.ArbitraryArgs,
		RunE: func(_ *cobra.Command, args []string) error {
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

			var chunks []chunker.Chunk
			if cfg.Tokenizer.SpacesAsPunct {
				chunks = chunker.New(chunker.WithSpacesAsPunct()).Split(inputText)
			} else {
				chunks = chunker.Split(inputText)
			}

			var buf bytes.Buffer
			if err := formatChunks(&buf, inputText, chunks, selectedFormat); err != nil {
				return err
			}

			return writeOutput(out, buf.Bytes(), os.Stdout)
		},
	}

	cmd.Flags().StringVar(&format, "format", config.FormatTSV, "Output format: tsv|json|table")
	cmd.Flags().StringVar(&out, "out", "-", "Output path ('-' for stdout)")

	return cmd
}

func formatChunks(w io.Writer, text string, chunks []chunker.Chunk, format string) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(chunks)
	case config.FormatTable:
		writeChunkTable(w, text, chunks)
		return nil
	default:
		return writeChunkTSV(w, text, chunks)
	}
}

// writeChunkTSV emits one line per chunk: type, byte span, raw slice,
// and the cleaned syllable (empty for non-syllable chunks).
func writeChunkTSV(w io.Writer, text string, chunks []chunker.Chunk) error {
	for _, c := range chunks {
		raw := text[c.Start : c.Start+c.Len]
		if _, err := fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n", c.Type, c.Start, c.Len, raw, c.Syllable); err != nil {
			return err
		}
	}
	return nil
}

func writeChunkTable(w io.Writer, text string, chunks []chunker.Chunk) {
	data := make([][]string, 0, len(chunks))
	for _, c := range chunks {
		data = append(data, []string{
			c.Type.String(),
			strconv.Itoa(c.Start),
			strconv.Itoa(c.Len),
			text[c.Start : c.Start+c.Len],
			c.Syllable,
		})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"TYPE", "START", "LEN", "TEXT", "SYL"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()
}
