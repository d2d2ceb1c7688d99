package lyric

import (
	"errors"
	"fmt"
)

// Sentinel error kinds surfaced by parsers, generators, and the dispatcher.
// Call sites wrap them with detail via Errorf so callers can classify with
// errors.Is while still seeing the full context.
var (
	ErrUnsupportedFormat  = errors.New("unsupported format")
	ErrParse              = errors.New("parse error")
	ErrInconsistentTiming = errors.New("inconsistent timing")
	ErrUnsupportedTarget  = errors.New("unsupported target")
)

// Errorf tags a formatted message with the given marker so the result
// satisfies errors.Is(err, marker).
func Errorf(marker error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", marker, fmt.Sprintf(format, args...))
}

// Advisory is a non-fatal, caller-visible warning produced by a conversion
// that succeeded with reduced fidelity. It is distinct from an error: the
// converted output is complete and valid.
type Advisory struct {
	Code    string
	Message string
}

// AdvisoryWordDowngrade is reported when word-synced content is collapsed to
// line granularity because the target format cannot represent word timing.
const AdvisoryWordDowngrade = "word-timing-downgrade"

func (a Advisory) String() string {
	return a.Message
}
