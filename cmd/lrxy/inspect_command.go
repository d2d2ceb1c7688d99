package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lrxy/internal/convert"
	"lrxy/internal/fileio"
	"lrxy/internal/lyric"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var inputFormat string

	cmd := &cobra.Command{
		Use:   "inspect INPUT",
		Short: "Parse a lyric file and show its structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := ctx.ensure()
			if err != nil {
				return err
			}

			from, err := resolveInputFormat(inputFormat, args[0])
			if err != nil {
				return err
			}
			content, err := fileio.ReadInput(args[0])
			if err != nil {
				return err
			}
			doc, err := convert.Parse(from, content, conversionOptions(cfg))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Format: %s\n", from)
			fmt.Fprintf(out, "Timing: %s\n", doc.Timing)
			fmt.Fprintf(out, "Lines:  %d\n", len(doc.Lyrics))
			if agents := doc.Agents(); len(agents) > 0 {
				fmt.Fprintf(out, "Agents: %s\n", strings.Join(agents, ", "))
			}
			if begin, end, ok := doc.Span(); ok {
				fmt.Fprintf(out, "Span:   %s - %s\n",
					lyric.EncodeTime(begin, 1, false), lyric.EncodeTime(end, 1, false))
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "BEGIN", "END", "AGENT", "BG", "TEXT"},
				lineRows(doc),
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFormat, "input-format", "i", "", "Input lyric format (lrc, ttml, srt, json)")
	return cmd
}

func lineRows(doc *lyric.Document) [][]string {
	rows := make([][]string, 0, len(doc.Lyrics))
	for i, line := range doc.Lyrics {
		bg := ""
		if line.Background {
			bg = "x"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			stampText(line.Begin),
			stampText(line.End),
			line.Agent,
			bg,
			lineText(line),
		})
	}
	return rows
}

func stampText(t *lyric.Millis) string {
	if t == nil {
		return ""
	}
	return lyric.EncodeTime(*t, 1, false)
}

func lineText(line lyric.Line) string {
	switch c := line.Content.(type) {
	case lyric.Text:
		return string(c)
	case lyric.Words:
		var b strings.Builder
		for i, w := range c {
			b.WriteString(w.Text)
			if !w.Part && i != len(c)-1 {
				b.WriteByte(' ')
			}
		}
		return b.String()
	}
	return ""
}
