package lrc

import (
	"strings"

	"lrxy/internal/lyric"
)

// Generate renders a canonical document as enhanced LRC text. Background
// lines are reattached to the line preceding them as a [bg:...] bracket, and
// under Line timing bare [timestamp] markers are emitted for silence gaps and
// after the final line.
func Generate(doc *lyric.Document) (string, error) {
	var out []string
	var lastEnd *lyric.Millis

	for i, line := range doc.Lyrics {
		if doc.Timing == lyric.TimingNone {
			out = append(out, contentText(line))
			continue
		}

		if !line.Background && doc.Timing == lyric.TimingLine &&
			lastEnd != nil && line.Begin != nil && *lastEnd != *line.Begin {
			out = append(out, "["+lyric.EncodeTime(*lastEnd, 1, false)+"]")
		}
		if !line.Background {
			lastEnd = line.End
		}

		rendered, err := renderLine(doc.Timing, line, i)
		if err != nil {
			return "", err
		}
		if line.Background {
			if len(out) == 0 {
				out = append(out, rendered)
			} else {
				out[len(out)-1] += " " + rendered
			}
			continue
		}
		out = append(out, rendered)
	}

	if doc.Timing == lyric.TimingLine && lastEnd != nil {
		out = append(out, "["+lyric.EncodeTime(*lastEnd, 1, false)+"]")
	}

	var b strings.Builder
	for _, line := range out {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func renderLine(timing lyric.Timing, line lyric.Line, idx int) (string, error) {
	var cur strings.Builder

	switch {
	case line.Background:
		cur.WriteString("[bg:")
		if timing == lyric.TimingLine && line.Begin != nil {
			cur.WriteString("[" + lyric.EncodeTime(*line.Begin, 1, false) + "]")
		}
	default:
		if line.Begin == nil {
			return "", lyric.Errorf(lyric.ErrUnsupportedTarget, "lrc: line %d has no begin timestamp", idx+1)
		}
		cur.WriteString("[" + lyric.EncodeTime(*line.Begin, 1, false) + "]")
		if line.Agent != "" {
			cur.WriteString(line.Agent + ":")
		}
	}

	switch c := line.Content.(type) {
	case lyric.Text:
		cur.WriteString(string(c))
	case lyric.Words:
		writeWords(&cur, c, line.End)
	}

	if line.Background {
		cur.WriteString("]")
	}
	return cur.String(), nil
}

// writeWords emits <timestamp>word runs with duplicate-timestamp suppression:
// a tag identical to the one already at the cursor is not repeated. Words with
// Part unset are followed by a space after their closing tag.
func writeWords(cur *strings.Builder, words lyric.Words, lineEnd *lyric.Millis) {
	for i, w := range words {
		if w.Begin != nil {
			writeTag(cur, *w.Begin)
		}
		cur.WriteString(w.Text)
		if w.End != nil {
			cur.WriteString(wordTag(*w.End))
		}
		if !w.Part && i != len(words)-1 {
			cur.WriteByte(' ')
		}
	}
	if lineEnd != nil {
		writeTag(cur, *lineEnd)
	}
}

func writeTag(cur *strings.Builder, t lyric.Millis) {
	tag := wordTag(t)
	if !strings.HasSuffix(cur.String(), tag) {
		cur.WriteString(tag)
	}
}

func wordTag(t lyric.Millis) string {
	return "<" + lyric.EncodeTime(t, 1, false) + ">"
}

func contentText(line lyric.Line) string {
	if t, ok := line.Content.(lyric.Text); ok {
		return string(t)
	}
	return ""
}
