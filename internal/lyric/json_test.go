package lyric

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func millis(v Millis) *Millis {
	return &v
}

func TestJSONRoundTrip(t *testing.T) {
	doc := &Document{
		Timing: TimingWord,
		Lyrics: []Line{
			{
				Begin: millis(1000),
				End:   millis(1800),
				Agent: "v1",
				Content: Words{
					{Begin: millis(1000), End: millis(1200), Part: true, Text: "Hel"},
					{Begin: millis(1200), End: millis(1400), Text: "lo"},
					{Begin: millis(1600), End: millis(1800), Text: "world"},
				},
			},
			{
				Begin:      millis(1000),
				End:        millis(1400),
				Background: true,
				Content:    Words{{Begin: millis(1000), End: millis(1400), Text: "Echo"}},
			},
		},
	}

	data, err := EncodeDocument(doc)
	if err != nil {
		t.Fatalf("EncodeDocument() err = %v; want nil", err)
	}
	decoded, err := DecodeDocument(data)
	if err != nil {
		t.Fatalf("DecodeDocument() err = %v; want nil", err)
	}
	if !reflect.DeepEqual(doc, decoded) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", decoded, doc)
	}
}

func TestJSONEncodesAbsentValuesAsNull(t *testing.T) {
	doc := &Document{
		Timing: TimingLine,
		Lyrics: []Line{{Begin: millis(5000), Content: Text("Hello")}},
	}
	data, err := EncodeDocument(doc)
	if err != nil {
		t.Fatalf("EncodeDocument() err = %v; want nil", err)
	}
	out := string(data)
	for _, want := range []string{`"timing":"Line"`, `"end":null`, `"agent":null`, `"content":"Hello"`} {
		if !strings.Contains(out, want) {
			t.Errorf("EncodeDocument() = %s; missing %s", out, want)
		}
	}
}

func TestJSONRejectsMixedShape(t *testing.T) {
	data := `{"timing":"Line","lyrics":[
		{"begin":0,"end":1000,"agent":null,"background":false,"content":"fine"},
		{"begin":1000,"end":2000,"agent":null,"background":false,"content":[]}
	]}`
	_, err := DecodeDocument([]byte(data))
	if !errors.Is(err, ErrInconsistentTiming) {
		t.Fatalf("DecodeDocument() err = %v; want ErrInconsistentTiming", err)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("DecodeDocument() err = %v; want line number 2", err)
	}
}

func TestJSONRejectsUnknownTiming(t *testing.T) {
	_, err := DecodeDocument([]byte(`{"timing":"Sometimes","lyrics":[]}`))
	if !errors.Is(err, ErrParse) {
		t.Fatalf("DecodeDocument() err = %v; want ErrParse", err)
	}
}

func TestErrorfTagsMarker(t *testing.T) {
	err := Errorf(ErrUnsupportedTarget, "srt: line %d", 3)
	if !errors.Is(err, ErrUnsupportedTarget) {
		t.Fatalf("errors.Is() = false; want true")
	}
	if got := err.Error(); !strings.Contains(got, "srt: line 3") {
		t.Fatalf("Error() = %q; want detail included", got)
	}
}
