package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"lrxy/internal/config"
	"lrxy/internal/convert"
	"lrxy/internal/fileio"
	"lrxy/internal/srt"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var inputFormat string
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "convert INPUT OUTPUT",
		Short: "Convert a lyric file between formats",
		Long: "Convert a synced lyric file between the lrc, ttml, srt, and json formats.\n" +
			"Pass - as INPUT or OUTPUT to use stdin/stdout. Formats default to the file\n" +
			"extension when not given explicitly.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := ctx.ensure()
			if err != nil {
				return err
			}

			from, err := resolveInputFormat(inputFormat, args[0])
			if err != nil {
				return err
			}
			to, err := resolveOutputFormat(outputFormat, args[1], cfg)
			if err != nil {
				return err
			}
			logger.Debug("converting", "from", from, "to", to, "input", args[0], "output", args[1])

			content, err := fileio.ReadInput(args[0])
			if err != nil {
				return err
			}

			result, advisories, err := convert.Convert(from, to, content, conversionOptions(cfg))
			if err != nil {
				return err
			}
			for _, advisory := range advisories {
				logger.Warn(advisory.Message, "code", advisory.Code)
			}

			return fileio.WriteOutput(args[1], result)
		},
	}

	cmd.Flags().StringVarP(&inputFormat, "input-format", "i", "", "Input lyric format (lrc, ttml, srt, json)")
	cmd.Flags().StringVarP(&outputFormat, "output-format", "o", "", "Output lyric format (lrc, ttml, srt, json)")
	return cmd
}

func conversionOptions(cfg *config.Config) convert.Options {
	return convert.Options{
		SRT:          srt.ParseOptions{LenientBlocks: cfg.SRT.Lenient},
		TTMLLanguage: cfg.TTML.Language,
	}
}

func resolveInputFormat(flag, path string) (convert.Format, error) {
	if flag != "" {
		return convert.ParseFormat(flag)
	}
	if path == fileio.Stdin {
		return "", errors.New("reading from stdin requires -i/--input-format")
	}
	f, err := convert.FormatForPath(path)
	if err != nil {
		return "", fmt.Errorf("%w (use -i/--input-format)", err)
	}
	return f, nil
}

func resolveOutputFormat(flag, path string, cfg *config.Config) (convert.Format, error) {
	if flag != "" {
		return convert.ParseFormat(flag)
	}
	if path == fileio.Stdin {
		if cfg.Output.Format != "" {
			return convert.ParseFormat(cfg.Output.Format)
		}
		return convert.FormatJSON, nil
	}
	f, err := convert.FormatForPath(path)
	if err != nil {
		return "", fmt.Errorf("%w (use -o/--output-format)", err)
	}
	return f, nil
}
