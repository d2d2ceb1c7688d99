package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lrxy/internal/convert"
)

func newFormatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported lyric formats",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, f := range convert.Formats() {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}
}
