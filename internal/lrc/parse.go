package lrc

import (
	"regexp"
	"strings"

	"lrxy/internal/lyric"
)

const timestampExpr = `(\d{2}(?::\d{2})+\.\d+)`

var (
	metadataRe = regexp.MustCompile(`^\[(\D+):(.*)\]$`)
	lineRe     = regexp.MustCompile(`^(\[` + timestampExpr + `\](?:(v\d+):)?)? ?(.*)$`)
	wordRe     = regexp.MustCompile(`<` + timestampExpr + `>([^<]*)`)
)

// Parse reads enhanced LRC text into a canonical document. The document
// timing is inferred from the first non-empty timed line; every later line
// must match it.
func Parse(content string) (*lyric.Document, error) {
	physical := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	if n := len(physical); n > 0 && physical[n-1] == "" {
		physical = physical[:n-1]
	}

	var timing lyric.Timing
	var lines []lyric.Line
	for i, raw := range physical {
		lineNo := i + 1
		if metadataRe.MatchString(raw) {
			continue
		}

		m := lineRe.FindStringSubmatch(raw)
		if m[1] == "" {
			handleUntagged(&lines, &timing, m[4])
			continue
		}
		if timing == lyric.TimingNone {
			return nil, lyric.Errorf(lyric.ErrInconsistentTiming, "lrc: line %d: timed line in untimed lyric", lineNo)
		}

		begin, err := lyric.DecodeTime(m[2], false)
		if err != nil {
			return nil, lyric.Errorf(lyric.ErrParse, "lrc: line %d: %v", lineNo, err)
		}
		line, bgLines, err := parseTimedLine(m[4], m[3], &begin, false)
		if err != nil {
			return nil, lyric.Errorf(lyric.ErrParse, "lrc: line %d: %v", lineNo, err)
		}

		// A bare [mm:ss.xxx] marker carries no content: it only closes the
		// previous line and marks silence.
		if isMarker(line, bgLines) {
			closeLast(lines, line.Begin)
			continue
		}

		// Look-back rule: the new line's begin closes the previous line's
		// still-open end.
		closeLast(lines, line.Begin)

		lineTiming := lyric.TimingLine
		if _, ok := line.Content.(lyric.Words); ok {
			lineTiming = lyric.TimingWord
		}
		if timing == "" {
			timing = lineTiming
		} else if timing != lineTiming {
			return nil, lyric.Errorf(lyric.ErrInconsistentTiming, "lrc: line %d: expected %s timing", lineNo, timing)
		}
		lines = append(lines, line)
		lines = append(lines, bgLines...)
	}

	if timing == "" {
		timing = lyric.TimingNone
	}
	return &lyric.Document{Timing: timing, Lyrics: lines}, nil
}

// handleUntagged accumulates plain lines before any timed content and joins
// multi-line lyrics to the previous line under Line timing.
func handleUntagged(lines *[]lyric.Line, timing *lyric.Timing, text string) {
	if len(*lines) == 0 || (*lines)[len(*lines)-1].Begin == nil {
		*lines = append(*lines, lyric.Line{Content: lyric.Text(text)})
		if *timing == "" {
			*timing = lyric.TimingNone
		}
		return
	}
	if *timing != lyric.TimingLine || strings.TrimSpace(text) == "" {
		return
	}
	last := &(*lines)[len(*lines)-1]
	if t, ok := last.Content.(lyric.Text); ok {
		last.Content = lyric.Text(string(t) + "\n" + text)
	}
}

func closeLast(lines []lyric.Line, begin *lyric.Millis) {
	if len(lines) == 0 || begin == nil {
		return
	}
	if last := &lines[len(lines)-1]; last.End == nil && last.Begin != nil {
		last.End = begin
	}
}

func isMarker(line lyric.Line, bgLines []lyric.Line) bool {
	if line.Agent != "" || len(bgLines) > 0 {
		return false
	}
	t, ok := line.Content.(lyric.Text)
	return ok && strings.TrimSpace(string(t)) == ""
}

// parseTimedLine parses the content of one timed line: background brackets
// first, then inline word runs, falling back to plain text.
func parseTimedLine(content, agent string, begin *lyric.Millis, background bool) (lyric.Line, []lyric.Line, error) {
	line := lyric.Line{
		Begin:      begin,
		Agent:      agent,
		Background: background,
	}

	rest, spans, err := extractBackground(content)
	if err != nil {
		return line, nil, err
	}
	var bgLines []lyric.Line
	for _, span := range spans {
		bgLine, err := parseBackgroundSpan(span)
		if err != nil {
			return line, nil, err
		}
		bgLines = append(bgLines, bgLine)
	}

	words, lineEnd, err := parseWordRuns(rest, &line)
	if err != nil {
		return line, nil, err
	}
	if len(words) == 0 {
		line.Content = lyric.Text(rest)
		return line, bgLines, nil
	}
	line.Content = words
	if line.End == nil && lineEnd != nil {
		line.End = lineEnd
	}
	return line, bgLines, nil
}

// parseBackgroundSpan parses the inside of a [bg:...] bracket as its own
// background line. The span may carry an inner [mm:ss.xxx] prefix; otherwise
// its begin comes from the first inline word tag, or stays absent.
func parseBackgroundSpan(span string) (lyric.Line, error) {
	m := lineRe.FindStringSubmatch(span)
	var begin *lyric.Millis
	if m[2] != "" {
		t, err := lyric.DecodeTime(m[2], false)
		if err != nil {
			return lyric.Line{}, err
		}
		begin = &t
	}
	line, _, err := parseTimedLine(m[4], m[3], begin, true)
	return line, err
}

// extractBackground splices every [bg:...] span out of content. The scan is
// bracket-aware so an inner timestamp bracket does not terminate the span.
func extractBackground(content string) (string, []string, error) {
	var spans []string
	for {
		start := strings.Index(content, "[bg:")
		if start < 0 {
			return content, spans, nil
		}
		depth := 1
		end := -1
		for i := start + len("[bg:"); i < len(content); i++ {
			switch content[i] {
			case '[':
				depth++
			case ']':
				depth--
				if depth == 0 {
					end = i
				}
			}
			if end >= 0 {
				break
			}
		}
		if end < 0 {
			return content, nil, lyric.Errorf(lyric.ErrParse, "unterminated background bracket")
		}
		spans = append(spans, content[start+len("[bg:"):end])
		cut := start
		if cut > 0 && content[cut-1] == ' ' {
			cut--
		}
		content = content[:cut] + content[end+1:]
	}
}

// parseWordRuns tokenizes inline <timestamp>word runs. Each run closes the
// previous word's end; a whitespace-only run additionally marks the previous
// word as space-separated without creating a word of its own.
func parseWordRuns(content string, line *lyric.Line) (lyric.Words, *lyric.Millis, error) {
	matches := wordRe.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil, nil, nil
	}

	var words lyric.Words
	var last lyric.Millis
	for _, m := range matches {
		t, err := lyric.DecodeTime(m[1], false)
		if err != nil {
			return nil, nil, err
		}
		last = t
		stamp := t
		if len(words) > 0 {
			if prev := &words[len(words)-1]; prev.End == nil {
				prev.End = &stamp
			}
		} else if line.Begin == nil {
			line.Begin = &stamp
		}

		text := m[2]
		if text == "" {
			continue
		}
		if strings.TrimSpace(text) == "" {
			if len(words) > 0 {
				words[len(words)-1].Part = false
			}
			continue
		}

		begin := t
		words = append(words, lyric.Word{
			Begin: &begin,
			Part:  !strings.HasSuffix(text, " "),
			Text:  strings.TrimSuffix(text, " "),
		})
	}
	if len(words) == 0 {
		return nil, nil, nil
	}
	end := last
	return words, &end, nil
}
