package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the botok version",
		RunE: func(_ *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(os.Stdout, buildVersion())
			return err
		},
	}
}

// buildVersion reads the module version stamped into the binary, or
// "dev" for untagged builds.
func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}
