package ttml

import (
	"encoding/xml"
	"regexp"
	"strings"

	"github.com/antchfx/xmlquery"

	"lrxy/internal/lyric"
)

var entityRe = regexp.MustCompile(`^#?[a-zA-Z0-9]+;`)

// repairEntities replaces every `&` that does not start a valid entity with
// `&amp;` so the XML parser survives unescaped ampersands in lyric text.
func repairEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '&' && !entityRe.MatchString(s[i+1:]) {
			b.WriteString("&amp;")
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// Parse reads TTML text into a canonical document. The document-level
// itunes:timing attribute selects per-paragraph parsing; Syllable is treated
// as Word, and a missing attribute as None.
func Parse(content string) (*lyric.Document, error) {
	repaired := repairEntities(content)
	root, err := xmlquery.ParseWithOptions(strings.NewReader(repaired), xmlquery.ParserOptions{
		Decoder: &xmlquery.DecoderOptions{
			Strict: false,
			Entity: xml.HTMLEntity,
		},
	})
	if err != nil {
		return nil, lyric.Errorf(lyric.ErrParse, "ttml: %v", err)
	}
	tt := xmlquery.FindOne(root, "//tt")
	if tt == nil {
		return nil, lyric.Errorf(lyric.ErrParse, "ttml: no tt root element")
	}

	timing := lyric.TimingNone
	if v, ok := attrValue(tt, "timing"); ok {
		switch v {
		case "Word", "Syllable":
			timing = lyric.TimingWord
		case "Line":
			timing = lyric.TimingLine
		case "None":
			timing = lyric.TimingNone
		default:
			return nil, lyric.Errorf(lyric.ErrParse, "ttml: unknown timing %q", v)
		}
	}

	paragraphs := xmlquery.Find(tt, "//p")
	var lines []lyric.Line
	for i, p := range paragraphs {
		paraNo := i + 1
		switch timing {
		case lyric.TimingWord:
			line, bgLines, err := parseWordParagraph(p, paraNo)
			if err != nil {
				return nil, err
			}
			lines = append(lines, line)
			lines = append(lines, bgLines...)
		case lyric.TimingLine:
			line, err := parseLineParagraph(p, paraNo)
			if err != nil {
				return nil, err
			}
			lines = append(lines, line)
		case lyric.TimingNone:
			lines = append(lines, lyric.Line{Content: lyric.Text(p.InnerText())})
		}
	}

	return &lyric.Document{Timing: timing, Lyrics: lines}, nil
}

// parseWordParagraph reads one <p> (or a background <span>) under Word
// timing. Nested x-bg spans are pulled out into sibling background lines; a
// word's Part flag is cleared when the tail text after its span contains a
// space.
func parseWordParagraph(p *xmlquery.Node, paraNo int) (lyric.Line, []lyric.Line, error) {
	line, err := lineShell(p, paraNo)
	if err != nil {
		return lyric.Line{}, nil, err
	}

	var bgLines []lyric.Line
	var words lyric.Words
	sawSpan := false
	for child := p.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != xmlquery.ElementNode || child.Data != "span" {
			continue
		}
		sawSpan = true
		if role, _ := attrValue(child, "role"); role == "x-bg" {
			bgLine, _, err := parseWordParagraph(child, paraNo)
			if err != nil {
				return lyric.Line{}, nil, err
			}
			bgLines = append(bgLines, bgLine)
			continue
		}

		begin, err := attrTime(child, "begin", paraNo)
		if err != nil {
			return lyric.Line{}, nil, err
		}
		end, err := attrTime(child, "end", paraNo)
		if err != nil {
			return lyric.Line{}, nil, err
		}
		if line.Begin == nil && begin != nil {
			line.Begin = begin
		}
		part := true
		if tail := child.NextSibling; tail != nil && tail.Type == xmlquery.TextNode && strings.Contains(tail.Data, " ") {
			part = false
		}
		words = append(words, lyric.Word{
			Begin: begin,
			End:   end,
			Part:  part,
			Text:  child.InnerText(),
		})
	}

	if !sawSpan && strings.TrimSpace(p.InnerText()) != "" {
		return lyric.Line{}, nil, lyric.Errorf(lyric.ErrInconsistentTiming, "ttml: paragraph %d carries plain text in a word-timed lyric", paraNo)
	}
	if line.End == nil && len(words) > 0 {
		line.End = words[len(words)-1].End
	}
	if (line.Begin == nil || line.End == nil) && !line.Background {
		return lyric.Line{}, nil, lyric.Errorf(lyric.ErrParse, "ttml: paragraph %d has no begin/end timing", paraNo)
	}
	if line.Background && !sawSpan && (line.Begin == nil || line.End == nil) {
		return lyric.Line{}, nil, lyric.Errorf(lyric.ErrParse, "ttml: background paragraph %d has neither timing nor word spans", paraNo)
	}

	line.Content = words
	return line, bgLines, nil
}

func parseLineParagraph(p *xmlquery.Node, paraNo int) (lyric.Line, error) {
	line, err := lineShell(p, paraNo)
	if err != nil {
		return lyric.Line{}, err
	}
	if (line.Begin == nil || line.End == nil) && !line.Background {
		return lyric.Line{}, lyric.Errorf(lyric.ErrParse, "ttml: paragraph %d has no begin/end timing", paraNo)
	}
	line.Content = lyric.Text(p.InnerText())
	return line, nil
}

// lineShell reads the attributes shared by every timed paragraph.
func lineShell(p *xmlquery.Node, paraNo int) (lyric.Line, error) {
	begin, err := attrTime(p, "begin", paraNo)
	if err != nil {
		return lyric.Line{}, err
	}
	end, err := attrTime(p, "end", paraNo)
	if err != nil {
		return lyric.Line{}, err
	}
	agent, _ := attrValue(p, "agent")
	role, _ := attrValue(p, "role")
	return lyric.Line{
		Begin:      begin,
		End:        end,
		Agent:      agent,
		Background: role == "x-bg",
	}, nil
}

// attrValue looks an attribute up by local name, ignoring its namespace
// prefix, since feeds disagree on prefix spelling.
func attrValue(n *xmlquery.Node, local string) (string, bool) {
	for _, a := range n.Attr {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

func attrTime(n *xmlquery.Node, local string, paraNo int) (*lyric.Millis, error) {
	v, ok := attrValue(n, local)
	if !ok || strings.TrimSpace(v) == "" {
		return nil, nil
	}
	t, err := lyric.DecodeTime(v, false)
	if err != nil {
		return nil, lyric.Errorf(lyric.ErrParse, "ttml: paragraph %d: %v", paraNo, err)
	}
	return &t, nil
}
