package main

import (
	"bytes"
	"os"

	"github.com/OpenPecha/botok-go/chunker"
	"github.com/spf13/cobra"
)

func newSyllablesCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "syllables [text]",
		Short: "Print the cleaned syllables of Tibetan text, one per line",
		Args:  cobra.ArbitraryArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			if _, err := requireConfig(); err != nil {
				return err
			}

			inputText, err := readInputText(args, os.Stdin)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			for _, syl := range chunker.Syllables(inputText) {
				buf.WriteString(syl)
				buf.WriteByte('\n')
			}

			return writeOutput(out, buf.Bytes(), os.Stdout)
		},
	}

	cmd.Flags().StringVar(&out, "out", "-", "Output path ('-' for stdout)")

	return cmd
}
