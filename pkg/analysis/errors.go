package analysis

import (
	"errors"

	"github.com/OFFIS-RIT/chatlens/pkg/cluster"
	"github.com/OFFIS-RIT/chatlens/pkg/transcript"
)

// ErrInvalidConfig marks errors caused by the caller's options rather than
// by the transcript.
var ErrInvalidConfig = errors.New("invalid analysis configuration")

// IsInputError reports whether err was caused by an unreadable or empty
// transcript.
func IsInputError(err error) bool {
	return errors.Is(err, transcript.ErrNoMessages) || errors.Is(err, transcript.ErrDecode)
}

// IsConfigError reports whether err was caused by invalid options, such as
// asking for more clusters than there are authors.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidConfig) ||
		errors.Is(err, cluster.ErrTooFewAuthors) ||
		errors.Is(err, cluster.ErrInvalidK) ||
		errors.Is(err, cluster.ErrInvalidSeed) ||
		errors.Is(err, cluster.ErrNoFeatures)
}
