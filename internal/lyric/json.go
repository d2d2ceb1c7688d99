package lyric

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// The neutral JSON representation mirrors the model one to one: content is a
// string under Line/None timing and an array of word objects under Word
// timing, and absent timestamps and agents serialize as null.

type jsonWord struct {
	Begin *Millis `json:"begin"`
	End   *Millis `json:"end"`
	Part  bool    `json:"part"`
	Text  string  `json:"text"`
}

type jsonLine struct {
	Begin      *Millis         `json:"begin"`
	End        *Millis         `json:"end"`
	Agent      *string         `json:"agent"`
	Background bool            `json:"background"`
	Content    json.RawMessage `json:"content"`
}

type jsonDocument struct {
	Timing Timing     `json:"timing"`
	Lyrics []jsonLine `json:"lyrics"`
}

// EncodeDocument serializes a document into the neutral JSON shape.
func EncodeDocument(doc *Document) ([]byte, error) {
	out := jsonDocument{Timing: doc.Timing, Lyrics: make([]jsonLine, 0, len(doc.Lyrics))}
	for _, line := range doc.Lyrics {
		jl := jsonLine{
			Begin:      line.Begin,
			End:        line.End,
			Background: line.Background,
		}
		if line.Agent != "" {
			agent := line.Agent
			jl.Agent = &agent
		}
		var content any
		switch c := line.Content.(type) {
		case Text:
			content = string(c)
		case Words:
			words := make([]jsonWord, len(c))
			for i, w := range c {
				words[i] = jsonWord(w)
			}
			content = words
		case nil:
			content = ""
		}
		raw, err := json.Marshal(content)
		if err != nil {
			return nil, fmt.Errorf("encode line content: %w", err)
		}
		jl.Content = raw
		out.Lyrics = append(out.Lyrics, jl)
	}
	return json.Marshal(out)
}

// DecodeDocument parses the neutral JSON shape back into a document. The
// content union is resolved by inspecting the JSON value: a string becomes
// Text, an array becomes Words.
func DecodeDocument(data []byte) (*Document, error) {
	var in jsonDocument
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, Errorf(ErrParse, "json: %v", err)
	}
	if !in.Timing.Valid() {
		return nil, Errorf(ErrParse, "json: unknown timing %q", in.Timing)
	}
	doc := &Document{Timing: in.Timing, Lyrics: make([]Line, 0, len(in.Lyrics))}
	for i, jl := range in.Lyrics {
		line := Line{
			Begin:      jl.Begin,
			End:        jl.End,
			Background: jl.Background,
		}
		if jl.Agent != nil {
			line.Agent = *jl.Agent
		}
		content := bytes.TrimSpace(jl.Content)
		switch {
		case len(content) == 0 || bytes.Equal(content, []byte("null")):
			line.Content = Text("")
		case content[0] == '"':
			var text string
			if err := json.Unmarshal(content, &text); err != nil {
				return nil, Errorf(ErrParse, "json: line %d content: %v", i+1, err)
			}
			line.Content = Text(text)
		case content[0] == '[':
			var jws []jsonWord
			if err := json.Unmarshal(content, &jws); err != nil {
				return nil, Errorf(ErrParse, "json: line %d content: %v", i+1, err)
			}
			words := make(Words, len(jws))
			for j, jw := range jws {
				words[j] = Word(jw)
			}
			line.Content = words
		default:
			return nil, Errorf(ErrParse, "json: line %d content is neither text nor a word list", i+1)
		}
		if err := checkShape(in.Timing, line.Content, i+1); err != nil {
			return nil, err
		}
		doc.Lyrics = append(doc.Lyrics, line)
	}
	return doc, nil
}

// checkShape enforces the document-level timing invariant: Word timing
// requires word-list content, Line and None timing require plain text.
func checkShape(timing Timing, content LineContent, lineNo int) error {
	_, isWords := content.(Words)
	if (timing == TimingWord) != isWords {
		return Errorf(ErrInconsistentTiming, "json: line %d does not match document timing %s", lineNo, timing)
	}
	return nil
}
