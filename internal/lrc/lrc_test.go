package lrc

import (
	"errors"
	"strings"
	"testing"

	"lrxy/internal/lyric"
)

func millis(v lyric.Millis) *lyric.Millis {
	return &v
}

func TestParseWordAdjacencyRoundTrip(t *testing.T) {
	input := "[00:01.000]<00:01.000>Hel<00:01.200>lo<00:01.400> <00:01.600>world<00:01.800>\n"

	doc, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse() err = %v; want nil", err)
	}
	if doc.Timing != lyric.TimingWord {
		t.Fatalf("Timing = %s; want Word", doc.Timing)
	}
	if len(doc.Lyrics) != 1 {
		t.Fatalf("len(Lyrics) = %d; want 1", len(doc.Lyrics))
	}

	words, ok := doc.Lyrics[0].Content.(lyric.Words)
	if !ok {
		t.Fatalf("Content = %T; want Words", doc.Lyrics[0].Content)
	}
	want := []struct {
		text string
		part bool
	}{
		{"Hel", true},
		{"lo", false},
		{"world", true},
	}
	if len(words) != len(want) {
		t.Fatalf("len(words) = %d; want %d", len(words), len(want))
	}
	for i, w := range want {
		if words[i].Text != w.text || words[i].Part != w.part {
			t.Errorf("word %d = %q part=%v; want %q part=%v", i, words[i].Text, words[i].Part, w.text, w.part)
		}
	}
	if *doc.Lyrics[0].Begin != 1000 || *doc.Lyrics[0].End != 1800 {
		t.Errorf("line span = %d-%d; want 1000-1800", *doc.Lyrics[0].Begin, *doc.Lyrics[0].End)
	}

	output, err := Generate(doc)
	if err != nil {
		t.Fatalf("Generate() err = %v; want nil", err)
	}
	if output != input {
		t.Fatalf("Generate() = %q; want byte-identical input %q", output, input)
	}
}

func TestParseBackgroundNestingRoundTrip(t *testing.T) {
	input := "[00:10.000]Lead [bg:[00:10.000]Echo]\n"

	doc, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse() err = %v; want nil", err)
	}
	if doc.Timing != lyric.TimingLine {
		t.Fatalf("Timing = %s; want Line", doc.Timing)
	}
	if len(doc.Lyrics) != 2 {
		t.Fatalf("len(Lyrics) = %d; want 2", len(doc.Lyrics))
	}

	lead, echo := doc.Lyrics[0], doc.Lyrics[1]
	if lead.Background || lead.Content.(lyric.Text) != "Lead" {
		t.Fatalf("foreground line = %+v; want text %q", lead, "Lead")
	}
	if !echo.Background || echo.Content.(lyric.Text) != "Echo" {
		t.Fatalf("background line = %+v; want background text %q", echo, "Echo")
	}
	if *lead.Begin != 10000 || *echo.Begin != 10000 {
		t.Fatalf("begins = %d, %d; want both 10000", *lead.Begin, *echo.Begin)
	}

	output, err := Generate(doc)
	if err != nil {
		t.Fatalf("Generate() err = %v; want nil", err)
	}
	if output != input {
		t.Fatalf("Generate() = %q; want %q", output, input)
	}
}

func TestParseRejectsMixedTiming(t *testing.T) {
	input := "[00:01.000]<00:01.000>Hello<00:01.500>\n[00:02.000]plain line\n"
	_, err := Parse(input)
	if !errors.Is(err, lyric.ErrInconsistentTiming) {
		t.Fatalf("Parse() err = %v; want ErrInconsistentTiming", err)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("Parse() err = %v; want offending line number", err)
	}
}

func TestParseRejectsTimedLineAfterUntimedContent(t *testing.T) {
	_, err := Parse("just text\n[00:02.000]timed\n")
	if !errors.Is(err, lyric.ErrInconsistentTiming) {
		t.Fatalf("Parse() err = %v; want ErrInconsistentTiming", err)
	}
}

func TestParseSkipsMetadata(t *testing.T) {
	doc, err := Parse("[ar:Artist]\n[ti:Title]\n[00:01.000]Hello\n")
	if err != nil {
		t.Fatalf("Parse() err = %v; want nil", err)
	}
	if len(doc.Lyrics) != 1 {
		t.Fatalf("len(Lyrics) = %d; want 1", len(doc.Lyrics))
	}
	if doc.Lyrics[0].Content.(lyric.Text) != "Hello" {
		t.Fatalf("Content = %v; want %q", doc.Lyrics[0].Content, "Hello")
	}
}

func TestParseUntimedDocument(t *testing.T) {
	input := "Hello darkness\nmy old friend\n"
	doc, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse() err = %v; want nil", err)
	}
	if doc.Timing != lyric.TimingNone {
		t.Fatalf("Timing = %s; want None", doc.Timing)
	}
	if len(doc.Lyrics) != 2 {
		t.Fatalf("len(Lyrics) = %d; want 2", len(doc.Lyrics))
	}
	output, err := Generate(doc)
	if err != nil {
		t.Fatalf("Generate() err = %v; want nil", err)
	}
	if output != input {
		t.Fatalf("Generate() = %q; want %q", output, input)
	}
}

func TestSilenceMarkersRoundTrip(t *testing.T) {
	input := "[00:01.000]One\n[00:02.000]\n[00:03.000]Two\n"
	doc, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse() err = %v; want nil", err)
	}
	if len(doc.Lyrics) != 2 {
		t.Fatalf("len(Lyrics) = %d; want 2, markers are not lines", len(doc.Lyrics))
	}
	if *doc.Lyrics[0].End != 2000 {
		t.Fatalf("first line end = %d; want 2000 from marker", *doc.Lyrics[0].End)
	}
	output, err := Generate(doc)
	if err != nil {
		t.Fatalf("Generate() err = %v; want nil", err)
	}
	if output != input {
		t.Fatalf("Generate() = %q; want %q", output, input)
	}
}

func TestTrailingMarkerEmitted(t *testing.T) {
	doc := &lyric.Document{
		Timing: lyric.TimingLine,
		Lyrics: []lyric.Line{
			{Begin: millis(1000), End: millis(3000), Content: lyric.Text("Only")},
		},
	}
	output, err := Generate(doc)
	if err != nil {
		t.Fatalf("Generate() err = %v; want nil", err)
	}
	want := "[00:01.000]Only\n[00:03.000]\n"
	if output != want {
		t.Fatalf("Generate() = %q; want %q", output, want)
	}
}

func TestParseJoinsMultiLineLyric(t *testing.T) {
	doc, err := Parse("[00:01.000]First\nsecond part\n[00:03.000]Next\n")
	if err != nil {
		t.Fatalf("Parse() err = %v; want nil", err)
	}
	if len(doc.Lyrics) != 2 {
		t.Fatalf("len(Lyrics) = %d; want 2", len(doc.Lyrics))
	}
	if got := doc.Lyrics[0].Content.(lyric.Text); got != "First\nsecond part" {
		t.Fatalf("Content = %q; want joined lyric", got)
	}
	if *doc.Lyrics[0].End != 3000 {
		t.Fatalf("first line end = %d; want 3000", *doc.Lyrics[0].End)
	}
}

func TestVoiceTagRoundTrip(t *testing.T) {
	input := "[00:05.000]v1:Hello\n[00:07.000]v2:There\n[00:09.000]\n"
	doc, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse() err = %v; want nil", err)
	}
	if doc.Lyrics[0].Agent != "v1" || doc.Lyrics[1].Agent != "v2" {
		t.Fatalf("agents = %q, %q; want v1, v2", doc.Lyrics[0].Agent, doc.Lyrics[1].Agent)
	}
	output, err := Generate(doc)
	if err != nil {
		t.Fatalf("Generate() err = %v; want nil", err)
	}
	if output != input {
		t.Fatalf("Generate() = %q; want %q", output, input)
	}
}

func TestGenerateRejectsUnstampedLine(t *testing.T) {
	doc := &lyric.Document{
		Timing: lyric.TimingLine,
		Lyrics: []lyric.Line{{Content: lyric.Text("floating")}},
	}
	_, err := Generate(doc)
	if !errors.Is(err, lyric.ErrUnsupportedTarget) {
		t.Fatalf("Generate() err = %v; want ErrUnsupportedTarget", err)
	}
}
