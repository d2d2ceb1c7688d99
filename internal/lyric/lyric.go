package lyric

// Millis is a count of milliseconds from track start.
type Millis int64

// Timing describes the finest granularity at which every line in a document
// is annotated. A document carries exactly one timing; mixing granularities
// across lines is a parse error.
type Timing string

const (
	TimingWord Timing = "Word"
	TimingLine Timing = "Line"
	TimingNone Timing = "None"
)

// Valid reports whether t is one of the three recognized granularities.
func (t Timing) Valid() bool {
	switch t {
	case TimingWord, TimingLine, TimingNone:
		return true
	}
	return false
}

// Word is a single timed word within a word-synced line. Part marks a word
// that is glued to the next word with no separating space, so generators know
// whether to re-insert one.
type Word struct {
	Begin *Millis
	End   *Millis
	Part  bool
	Text  string
}

// LineContent is the tagged union carried by a Line: either plain text or a
// word list, matching the document timing.
type LineContent interface {
	isLineContent()
}

// Text is plain line content, used under Line and None timing.
type Text string

// Words is word-synced line content, used under Word timing.
type Words []Word

func (Text) isLineContent()  {}
func (Words) isLineContent() {}

// Line is one lyric line. Agent identifies a duet voice (for example "v1");
// Background marks a harmony line rendered nested under the line preceding it.
type Line struct {
	Begin      *Millis
	End        *Millis
	Agent      string
	Background bool
	Content    LineContent
}

// Document is a full parsed lyric. Lines are kept in source order with
// background lines interleaved immediately after the foreground line they
// annotate.
type Document struct {
	Timing Timing
	Lyrics []Line
}

// Agents returns the distinct agent identifiers in source order.
func (d *Document) Agents() []string {
	seen := make(map[string]bool)
	var agents []string
	for _, line := range d.Lyrics {
		if line.Agent == "" || seen[line.Agent] {
			continue
		}
		seen[line.Agent] = true
		agents = append(agents, line.Agent)
	}
	return agents
}

// Span returns the begin of the first line and the end of the last line
// carrying timestamps. ok is false when the document holds no timestamps.
func (d *Document) Span() (begin, end Millis, ok bool) {
	for _, line := range d.Lyrics {
		if line.Begin == nil {
			continue
		}
		if !ok || *line.Begin < begin {
			begin = *line.Begin
			ok = true
		}
		if line.End != nil && *line.End > end {
			end = *line.End
		}
	}
	return begin, end, ok
}
