package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Overridden at build time via -ldflags.
var version = ""

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the lrxy version",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := version
			if v == "" {
				if info, ok := debug.ReadBuildInfo(); ok {
					v = info.Main.Version
				}
			}
			if v == "" || v == "(devel)" {
				v = "dev"
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
}
