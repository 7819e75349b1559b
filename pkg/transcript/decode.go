package transcript

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/gogs/chardet"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrDecode is returned when uploaded bytes are not UTF-8 text.
var ErrDecode = errors.New("transcript is not valid UTF-8 text")

// Decode turns uploaded bytes into text. A byte order mark selects UTF-8 or
// UTF-16 decoding and is stripped; anything else must already be UTF-8.
func Decode(raw []byte) (string, error) {
	out, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if !utf8.Valid(out) {
		return "", decodeError(raw)
	}
	return string(out), nil
}

func decodeError(raw []byte) error {
	best, err := chardet.NewTextDetector().DetectBest(raw)
	if err != nil || best == nil {
		return ErrDecode
	}
	return fmt.Errorf("%w: looks like %s (confidence %d%%), re-export the chat as UTF-8",
		ErrDecode, best.Charset, best.Confidence)
}
