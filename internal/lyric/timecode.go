package lyric

import (
	"fmt"
	"strconv"
	"strings"
)

// DecodeTime converts a textual timestamp into milliseconds. The accepted
// shape is one or more colon-separated groups with a fractional part on the
// final (seconds) group, for example "01:23.456" or "00:01:23.456". Some TTML
// authors append a literal "s" suffix; it is tolerated. alt selects the comma
// sub-second separator used by SRT instead of the dot.
func DecodeTime(text string, alt bool) (Millis, error) {
	text = strings.TrimSpace(text)
	if len(text) > 1 && strings.HasSuffix(text, "s") && isDigit(text[len(text)-2]) {
		text = strings.TrimSuffix(text, "s")
	}
	if text == "" {
		return 0, fmt.Errorf("empty timestamp")
	}

	sep := "."
	if alt {
		sep = ","
	}

	groups := strings.Split(text, ":")
	var total Millis
	scale := Millis(1)
	for i := len(groups) - 1; i >= 0; i-- {
		group := groups[i]
		if i == len(groups)-1 {
			ms, err := decodeSeconds(group, sep)
			if err != nil {
				return 0, fmt.Errorf("invalid timestamp %q: %w", text, err)
			}
			total = ms
			continue
		}
		n, err := strconv.ParseInt(group, 10, 64)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid timestamp %q", text)
		}
		scale *= 60
		total += Millis(n) * scale * 1000
	}
	return total, nil
}

// decodeSeconds parses the least-significant group, "SS" optionally followed
// by sep and a fraction of any width, into milliseconds.
func decodeSeconds(group, sep string) (Millis, error) {
	whole, frac, found := strings.Cut(group, sep)
	secs, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || secs < 0 {
		return 0, fmt.Errorf("invalid seconds %q", group)
	}
	ms := Millis(secs) * 1000
	if !found {
		return ms, nil
	}
	// Normalize the fraction to exactly three digits: ".5" is 500ms,
	// ".4567" truncates to 456ms.
	if frac == "" {
		return 0, fmt.Errorf("invalid seconds %q", group)
	}
	for len(frac) < 3 {
		frac += "0"
	}
	frac = frac[:3]
	n, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid seconds %q", group)
	}
	return ms + Millis(n), nil
}

// EncodeTime is the inverse of DecodeTime. colonGroups controls how many
// groups precede the seconds group: 1 yields "MM:SS.mmm" (the LRC and TTML
// convention), 2 yields "HH:MM:SS,mmm" when combined with alt. Every group is
// zero-padded to two digits and the sub-second part to three; the
// most-significant group absorbs any overflow so the encoding round-trips.
func EncodeTime(ms Millis, colonGroups int, alt bool) string {
	sep := "."
	if alt {
		sep = ","
	}
	frac := ms % 1000
	rest := int64(ms / 1000)

	groups := make([]int64, colonGroups+1)
	for i := colonGroups; i >= 1; i-- {
		groups[i] = rest % 60
		rest /= 60
	}
	groups[0] = rest

	var b strings.Builder
	for i, g := range groups {
		if i > 0 {
			b.WriteByte(':')
		}
		fmt.Fprintf(&b, "%02d", g)
	}
	fmt.Fprintf(&b, "%s%03d", sep, frac)
	return b.String()
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
