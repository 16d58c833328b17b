package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/OpenPecha/botok-go/dialect"
	"github.com/OpenPecha/botok-go/internal/doctor"
	"github.com/OpenPecha/botok-go/internal/service"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Run local dictionary and tokenizer checks",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			baseDir := cfg.Packs.BaseDir
			if baseDir == "" {
				baseDir = dialect.DefaultBaseDir()
			}
			packName := cfg.Packs.Name
			if packName == "" {
				packName = dialect.DefaultPack
			}

			dictFile := cfg.Tokenizer.DictPath
			if dictFile != "" {
				_, _ = fmt.Fprintf(os.Stdout, "dictionary: file %s\n", dictFile)
			} else {
				_, _ = fmt.Fprintf(os.Stdout, "dictionary: pack %s\n", packName)
			}

			// The index is loaded once by the LoadIndex check and reused
			// by the sample tokenization check.
			var svc *service.Service

			dcfg := doctor.Config{
				PacksBaseDir: baseDir,
				PackName:     packName,
				SkipPacks:    dictFile != "",
				LoadIndex: func() (int, error) {
					loaded, info, err := service.New(cfg)
					if err != nil {
						return 0, err
					}
					svc = loaded
					return info.Words, nil
				},
				Tokenize: func(text string) (int, error) {
					if svc == nil {
						return 0, errors.New("dictionary index not loaded")
					}
					tokens, err := svc.Tokenize(context.Background(), text, false)
					if err != nil {
						return 0, err
					}
					return len(tokens), nil
				},
			}
			if dictFile != "" {
				dcfg.DictFiles = []string{dictFile}
			}

			result := doctor.Run(dcfg, os.Stdout)

			if result.Failed() {
				for _, f := range result.Failures() {
					fmt.Fprintf(os.Stderr, "FAIL: %s\n", f)
				}

				return errors.New("doctor checks failed")
			}

			_, _ = fmt.Fprintln(os.Stdout, "doctor checks passed")

			return nil
		},
	}

	return cmd
}
