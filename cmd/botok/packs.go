package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/OpenPecha/botok-go/dialect"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newPacksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "packs",
		Short: "Dialect pack acquisition and inspection commands",
	}

	cmd.AddCommand(newPacksListCmd())
	cmd.AddCommand(newPacksFetchCmd())
	cmd.AddCommand(newPacksPathCmd())
	return cmd
}

func newPacksListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List dialect packs present on disk",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			baseDir := cfg.Packs.BaseDir
			if baseDir == "" {
				baseDir = dialect.DefaultBaseDir()
			}

			entries, err := os.ReadDir(baseDir)
			if err != nil {
				if os.IsNotExist(err) {
					_, _ = fmt.Fprintf(os.Stdout, "no packs at %s\n", baseDir)
					return nil
				}
				return fmt.Errorf("read packs directory: %w", err)
			}

			var data [][]string
			for _, e := range entries {
				if !e.IsDir() || !dialect.Exists(baseDir, e.Name()) {
					continue
				}
				p := dialect.Pack{Name: e.Name(), Dir: dialect.Path(baseDir, e.Name())}
				files, err := p.DictionaryFiles()
				if err != nil {
					return fmt.Errorf("list pack %s: %w", p.Name, err)
				}
				data = append(data, []string{p.Name, strconv.Itoa(len(files)), p.Dir})
			}

			if len(data) == 0 {
				_, _ = fmt.Fprintf(os.Stdout, "no packs at %s\n", baseDir)
				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"NAME", "FILES", "PATH"})
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetHeaderLine(false)
			table.SetBorder(false)
			table.SetNoWhiteSpace(true)
			table.SetTablePadding("    ")
			table.AppendBulk(data)
			table.Render()

			return nil
		},
	}
}

func newPacksFetchCmd() *cobra.Command {
	var version string

	cmd := &cobra.Command{
		Use:   "fetch [name]",
		Short: "Download a dialect pack release and unpack it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			name := cfg.Packs.Name
			if len(args) > 0 {
				name = args[0]
			}

			p, err := dialect.Fetch(name, dialect.FetchOptions{
				BaseDir: cfg.Packs.BaseDir,
				Version: version,
				Stdout:  os.Stdout,
			})
			if err != nil {
				return fmt.Errorf("fetch pack %s: %w", name, err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "pack %s ready at %s\n", p.Name, p.Dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&version, "version", "", "Pin a release tag (default: latest)")

	return cmd
}

func newPacksPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path [name]",
		Short: "Print where a dialect pack lives on disk",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			name := cfg.Packs.Name
			if len(args) > 0 {
				name = args[0]
			}

			dir := dialect.Path(cfg.Packs.BaseDir, name)
			if !dialect.Exists(cfg.Packs.BaseDir, name) {
				_, _ = fmt.Fprintf(os.Stdout, "%s (not fetched)\n", dir)
				return nil
			}

			_, _ = fmt.Fprintln(os.Stdout, dir)
			return nil
		},
	}
}
