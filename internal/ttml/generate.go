package ttml

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"lrxy/internal/lyric"
)

const (
	nsTT     = "http://www.w3.org/ns/ttml"
	nsItunes = "http://music.apple.com/lyric-ttml-internal"
	nsTTM    = "http://www.w3.org/ns/ttml#metadata"
)

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

// Generate renders a canonical document as pretty-printed TTML with an XML
// declaration. Distinct agents are listed in head/metadata sorted by the
// digits in their identifier; the two conventional duet agents are typed
// "person", every other agent "group". lang fills the xml:lang attribute and
// defaults to "en".
func Generate(doc *lyric.Document, lang string) (string, error) {
	if lang == "" {
		lang = "en"
	}

	var b strings.Builder
	b.WriteString("<?xml version='1.0' encoding='utf-8'?>\n")
	fmt.Fprintf(&b, `<tt xmlns="%s" xmlns:itunes="%s" xmlns:ttm="%s" itunes:timing="%s" xml:lang="%s">`,
		nsTT, nsItunes, nsTTM, doc.Timing, attrEscaper.Replace(lang))
	b.WriteString("\n  <head>\n")
	writeAgents(&b, doc.Agents())
	b.WriteString("  </head>\n")
	b.WriteString("  <body>\n    <div>\n")
	for i, line := range doc.Lyrics {
		if err := writeParagraph(&b, doc.Timing, line, i); err != nil {
			return "", err
		}
	}
	b.WriteString("    </div>\n  </body>\n</tt>\n")
	return b.String(), nil
}

func writeAgents(b *strings.Builder, agents []string) {
	if len(agents) == 0 {
		b.WriteString("    <metadata/>\n")
		return
	}
	sort.SliceStable(agents, func(i, j int) bool {
		return agentNumber(agents[i]) < agentNumber(agents[j])
	})
	b.WriteString("    <metadata>\n")
	for _, agent := range agents {
		agentType := "group"
		if agent == "v1" || agent == "v2" {
			agentType = "person"
		}
		fmt.Fprintf(b, "      <ttm:agent xml:id=\"%s\" type=\"%s\"/>\n", attrEscaper.Replace(agent), agentType)
	}
	b.WriteString("    </metadata>\n")
}

// agentNumber extracts the numeric suffix of an agent identifier such as
// "v12"; identifiers without digits sort first.
func agentNumber(agent string) int {
	i := 0
	for i < len(agent) && (agent[i] < '0' || agent[i] > '9') {
		i++
	}
	n, err := strconv.Atoi(agent[i:])
	if err != nil {
		return -1
	}
	return n
}

func writeParagraph(b *strings.Builder, timing lyric.Timing, line lyric.Line, idx int) error {
	if timing == lyric.TimingNone {
		fmt.Fprintf(b, "      <p>%s</p>\n", textEscaper.Replace(contentText(line)))
		return nil
	}

	if line.Begin == nil || line.End == nil {
		return lyric.Errorf(lyric.ErrUnsupportedTarget, "ttml: line %d has no begin/end timing", idx+1)
	}
	fmt.Fprintf(b, `      <p begin="%s" end="%s"`,
		lyric.EncodeTime(*line.Begin, 1, false), lyric.EncodeTime(*line.End, 1, false))
	if line.Background {
		b.WriteString(` ttm:role="x-bg"`)
	}
	if line.Agent != "" {
		fmt.Fprintf(b, ` ttm:agent="%s"`, attrEscaper.Replace(line.Agent))
	}
	b.WriteString(">")

	switch c := line.Content.(type) {
	case lyric.Text:
		b.WriteString(textEscaper.Replace(string(c)))
	case lyric.Words:
		for _, w := range c {
			b.WriteString("<span")
			if w.Begin != nil {
				fmt.Fprintf(b, ` begin="%s"`, lyric.EncodeTime(*w.Begin, 1, false))
			}
			if w.End != nil {
				fmt.Fprintf(b, ` end="%s"`, lyric.EncodeTime(*w.End, 1, false))
			}
			b.WriteString(">")
			b.WriteString(textEscaper.Replace(w.Text))
			b.WriteString("</span>")
			if !w.Part {
				b.WriteString(" ")
			}
		}
	}
	b.WriteString("</p>\n")
	return nil
}

func contentText(line lyric.Line) string {
	if t, ok := line.Content.(lyric.Text); ok {
		return string(t)
	}
	return ""
}
