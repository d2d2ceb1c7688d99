// Package convert dispatches lyric conversions: it maps a (from, to, text)
// triple onto parse → Document → generate through the codec matching each
// format tag. Codecs never call each other; the canonical document is the
// only coupling point.
package convert

import (
	"path/filepath"
	"strings"

	"lrxy/internal/lrc"
	"lrxy/internal/lyric"
	"lrxy/internal/srt"
	"lrxy/internal/ttml"
)

// Format tags the four recognized lyric representations.
type Format string

const (
	FormatLRC  Format = "lrc"
	FormatTTML Format = "ttml"
	FormatSRT  Format = "srt"
	FormatJSON Format = "json"
)

// Formats lists every supported format tag.
func Formats() []Format {
	return []Format{FormatLRC, FormatTTML, FormatSRT, FormatJSON}
}

// ParseFormat validates a format tag.
func ParseFormat(tag string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(tag))); f {
	case FormatLRC, FormatTTML, FormatSRT, FormatJSON:
		return f, nil
	default:
		return "", lyric.Errorf(lyric.ErrUnsupportedFormat, "%q", tag)
	}
}

// FormatForPath derives a format tag from a file extension.
func FormatForPath(path string) (Format, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	f, err := ParseFormat(ext)
	if err != nil {
		return "", lyric.Errorf(lyric.ErrUnsupportedFormat, "no format for path %q", path)
	}
	return f, nil
}

// Options carries cross-format conversion policy.
type Options struct {
	SRT          srt.ParseOptions
	TTMLLanguage string
}

// Convert turns content from one format into another. Identical formats are
// an identity fast path: the input is returned unchanged without a
// parse/generate round trip. Advisories report successful conversions with
// reduced fidelity; on error no partial output is returned.
func Convert(from, to Format, content string, opts Options) (string, []lyric.Advisory, error) {
	if from == to {
		return content, nil, nil
	}

	doc, err := parse(from, content, opts)
	if err != nil {
		return "", nil, err
	}

	var advisories []lyric.Advisory
	var out string
	switch to {
	case FormatLRC:
		out, err = lrc.Generate(doc)
	case FormatTTML:
		out, err = ttml.Generate(doc, opts.TTMLLanguage)
	case FormatSRT:
		if doc.Timing == lyric.TimingNone {
			return "", nil, lyric.Errorf(lyric.ErrUnsupportedTarget, "srt: the lyric lacks timing information")
		}
		if doc.Timing == lyric.TimingWord {
			advisories = append(advisories, lyric.Advisory{
				Code:    lyric.AdvisoryWordDowngrade,
				Message: "word-level syncing is not representable in srt; downgrading to line-level syncing",
			})
		}
		out, err = srt.Generate(doc)
	case FormatJSON:
		var data []byte
		data, err = lyric.EncodeDocument(doc)
		out = string(data)
	default:
		return "", nil, lyric.Errorf(lyric.ErrUnsupportedFormat, "%q", to)
	}
	if err != nil {
		return "", nil, err
	}
	return out, advisories, nil
}

// Parse reads content in the given format into a canonical document.
func Parse(from Format, content string, opts Options) (*lyric.Document, error) {
	return parse(from, content, opts)
}

func parse(from Format, content string, opts Options) (*lyric.Document, error) {
	switch from {
	case FormatLRC:
		return lrc.Parse(content)
	case FormatTTML:
		return ttml.Parse(content)
	case FormatSRT:
		return srt.Parse(content, opts.SRT)
	case FormatJSON:
		return lyric.DecodeDocument([]byte(content))
	default:
		return nil, lyric.Errorf(lyric.ErrUnsupportedFormat, "%q", from)
	}
}
