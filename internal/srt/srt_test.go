package srt

import (
	"errors"
	"strings"
	"testing"

	"lrxy/internal/lyric"
)

func millis(v lyric.Millis) *lyric.Millis {
	return &v
}

const sample = `1
00:00:01,000 --> 00:00:03,000
First cue

2
00:00:03,500 --> 00:00:05,000
Second cue
with a second row

3
00:00:05,500 --> 00:00:07,000
Third cue
`

func TestParse(t *testing.T) {
	doc, err := Parse(sample, ParseOptions{})
	if err != nil {
		t.Fatalf("Parse() err = %v; want nil", err)
	}
	if doc.Timing != lyric.TimingLine {
		t.Fatalf("Timing = %s; want Line", doc.Timing)
	}
	if len(doc.Lyrics) != 3 {
		t.Fatalf("len(Lyrics) = %d; want 3", len(doc.Lyrics))
	}
	if *doc.Lyrics[0].Begin != 1000 || *doc.Lyrics[0].End != 3000 {
		t.Errorf("first span = %d-%d; want 1000-3000", *doc.Lyrics[0].Begin, *doc.Lyrics[0].End)
	}
	if got := doc.Lyrics[1].Content.(lyric.Text); got != "Second cue\nwith a second row" {
		t.Errorf("second cue text = %q; want both rows joined", got)
	}
}

func TestParseCRLF(t *testing.T) {
	doc, err := Parse(strings.ReplaceAll(sample, "\n", "\r\n"), ParseOptions{})
	if err != nil {
		t.Fatalf("Parse() err = %v; want nil", err)
	}
	if len(doc.Lyrics) != 3 {
		t.Fatalf("len(Lyrics) = %d; want 3", len(doc.Lyrics))
	}
}

func TestParseRejectsIndexGap(t *testing.T) {
	input := "1\n00:00:01,000 --> 00:00:02,000\nOne\n\n3\n00:00:03,000 --> 00:00:04,000\nThree\n"
	_, err := Parse(input, ParseOptions{})
	if !errors.Is(err, lyric.ErrParse) {
		t.Fatalf("Parse() err = %v; want ErrParse", err)
	}
	if !strings.Contains(err.Error(), "out of sequence") {
		t.Fatalf("Parse() err = %v; want sequence complaint", err)
	}
}

func TestParseRejectsMalformedBlock(t *testing.T) {
	input := "1\n00:00:01,000 --> 00:00:02,000\nOne\n\nnot a cue\n\n2\n00:00:03,000 --> 00:00:04,000\nTwo\n"
	_, err := Parse(input, ParseOptions{})
	if !errors.Is(err, lyric.ErrParse) {
		t.Fatalf("Parse() err = %v; want ErrParse", err)
	}
}

func TestParseLenientSkipsMalformedBlock(t *testing.T) {
	input := "1\n00:00:01,000 --> 00:00:02,000\nOne\n\nnot a cue\n\n2\n00:00:03,000 --> 00:00:04,000\nTwo\n"
	doc, err := Parse(input, ParseOptions{LenientBlocks: true})
	if err != nil {
		t.Fatalf("Parse() err = %v; want nil in lenient mode", err)
	}
	if len(doc.Lyrics) != 2 {
		t.Fatalf("len(Lyrics) = %d; want the two well-formed cues", len(doc.Lyrics))
	}
}

func TestParseLenientStillChecksSequence(t *testing.T) {
	input := "1\n00:00:01,000 --> 00:00:02,000\nOne\n\n3\n00:00:03,000 --> 00:00:04,000\nThree\n"
	_, err := Parse(input, ParseOptions{LenientBlocks: true})
	if !errors.Is(err, lyric.ErrParse) {
		t.Fatalf("Parse() err = %v; want ErrParse on index gap", err)
	}
}

func TestGenerateRenumbers(t *testing.T) {
	doc := &lyric.Document{
		Timing: lyric.TimingLine,
		Lyrics: []lyric.Line{
			{Begin: millis(1000), End: millis(3000), Content: lyric.Text("One")},
			{Begin: millis(3500), End: millis(5000), Content: lyric.Text("Two")},
		},
	}
	output, err := Generate(doc)
	if err != nil {
		t.Fatalf("Generate() err = %v; want nil", err)
	}
	want := "1\n00:00:01,000 --> 00:00:03,000\nOne\n\n2\n00:00:03,500 --> 00:00:05,000\nTwo\n\n"
	if output != want {
		t.Fatalf("Generate() = %q; want %q", output, want)
	}
}

func TestGenerateFlattensWords(t *testing.T) {
	doc := &lyric.Document{
		Timing: lyric.TimingLine,
		Lyrics: []lyric.Line{
			{
				Begin: millis(1000),
				End:   millis(2000),
				Content: lyric.Words{
					{Part: true, Text: "Hel"},
					{Part: false, Text: "lo"},
					{Part: true, Text: "world"},
				},
			},
		},
	}
	output, err := Generate(doc)
	if err != nil {
		t.Fatalf("Generate() err = %v; want nil", err)
	}
	if !strings.Contains(output, "\nHello world\n") {
		t.Fatalf("Generate() = %q; want flattened cue text", output)
	}
}

func TestGenerateRejectsUntimedDocument(t *testing.T) {
	doc := &lyric.Document{
		Timing: lyric.TimingNone,
		Lyrics: []lyric.Line{{Content: lyric.Text("text")}},
	}
	_, err := Generate(doc)
	if !errors.Is(err, lyric.ErrUnsupportedTarget) {
		t.Fatalf("Generate() err = %v; want ErrUnsupportedTarget", err)
	}
}

func TestGenerateRejectsUnstampedLine(t *testing.T) {
	doc := &lyric.Document{
		Timing: lyric.TimingLine,
		Lyrics: []lyric.Line{{Begin: millis(1000), Content: lyric.Text("open ended")}},
	}
	_, err := Generate(doc)
	if !errors.Is(err, lyric.ErrUnsupportedTarget) {
		t.Fatalf("Generate() err = %v; want ErrUnsupportedTarget", err)
	}
}

func TestParseGenerateRoundTrip(t *testing.T) {
	doc, err := Parse(sample, ParseOptions{})
	if err != nil {
		t.Fatalf("Parse() err = %v; want nil", err)
	}
	output, err := Generate(doc)
	if err != nil {
		t.Fatalf("Generate() err = %v; want nil", err)
	}
	if output != sample+"\n" {
		t.Fatalf("round trip = %q; want %q", output, sample+"\n")
	}
}
