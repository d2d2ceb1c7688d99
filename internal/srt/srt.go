// Package srt parses and generates SubRip subtitle text: numbered blocks of
// `begin --> end` timecodes followed by cue text. SRT carries line
// granularity only, so parsing always yields Line timing and generation
// downgrades word-synced content.
package srt

import (
	"strconv"
	"strings"

	"lrxy/internal/lyric"
)

// ParseOptions controls parser strictness.
type ParseOptions struct {
	// LenientBlocks skips blocks that do not match the cue grammar instead
	// of failing. The sequential-index invariant still applies to the
	// blocks that do match.
	LenientBlocks bool
}

// Parse reads SRT text into a canonical document. Cue indexes must run
// sequentially from 1; a gap or duplicate is a parse error.
func Parse(content string, opts ParseOptions) (*lyric.Document, error) {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	blocks := strings.Split(normalized, "\n\n")

	var lines []lyric.Line
	lastIndex := 0
	for _, block := range blocks {
		if strings.TrimSpace(block) == "" {
			continue
		}
		line, index, err := parseBlock(block)
		if err != nil {
			if opts.LenientBlocks {
				continue
			}
			return nil, err
		}
		if index != lastIndex+1 {
			return nil, lyric.Errorf(lyric.ErrParse, "srt: cue %d out of sequence, expected %d", index, lastIndex+1)
		}
		lastIndex = index
		lines = append(lines, line)
	}

	return &lyric.Document{Timing: lyric.TimingLine, Lyrics: lines}, nil
}

func parseBlock(block string) (lyric.Line, int, error) {
	rows := strings.Split(strings.TrimSpace(block), "\n")
	if len(rows) < 3 {
		return lyric.Line{}, 0, lyric.Errorf(lyric.ErrParse, "srt: malformed cue %q", excerpt(block))
	}
	index, err := strconv.Atoi(strings.TrimSpace(rows[0]))
	if err != nil || index < 1 {
		return lyric.Line{}, 0, lyric.Errorf(lyric.ErrParse, "srt: malformed cue index %q", excerpt(rows[0]))
	}
	beginText, endText, found := strings.Cut(rows[1], "-->")
	if !found {
		return lyric.Line{}, 0, lyric.Errorf(lyric.ErrParse, "srt: cue %d: malformed timestamp row %q", index, excerpt(rows[1]))
	}
	begin, err := lyric.DecodeTime(beginText, true)
	if err != nil {
		return lyric.Line{}, 0, lyric.Errorf(lyric.ErrParse, "srt: cue %d: %v", index, err)
	}
	end, err := lyric.DecodeTime(endText, true)
	if err != nil {
		return lyric.Line{}, 0, lyric.Errorf(lyric.ErrParse, "srt: cue %d: %v", index, err)
	}

	return lyric.Line{
		Begin:   &begin,
		End:     &end,
		Content: lyric.Text(strings.Join(rows[2:], "\n")),
	}, index, nil
}

// Generate renders a canonical document as SRT text, renumbering cues
// sequentially from 1. Word-synced lines are collapsed into space-joined text;
// untimed documents cannot be represented.
func Generate(doc *lyric.Document) (string, error) {
	if doc.Timing == lyric.TimingNone {
		return "", lyric.Errorf(lyric.ErrUnsupportedTarget, "srt: document carries no timing information")
	}

	var b strings.Builder
	for i, line := range doc.Lyrics {
		if line.Begin == nil || line.End == nil {
			return "", lyric.Errorf(lyric.ErrUnsupportedTarget, "srt: cue %d is missing timestamps", i+1)
		}
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteByte('\n')
		b.WriteString(lyric.EncodeTime(*line.Begin, 2, true))
		b.WriteString(" --> ")
		b.WriteString(lyric.EncodeTime(*line.End, 2, true))
		b.WriteByte('\n')
		b.WriteString(cueText(line))
		b.WriteString("\n\n")
	}
	return b.String(), nil
}

// cueText flattens line content to plain text, re-inserting spaces between
// words according to their Part flags.
func cueText(line lyric.Line) string {
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

func excerpt(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 40 {
		return s[:40] + "…"
	}
	return s
}
