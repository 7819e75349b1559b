package transcript

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Layouts are tried in order; day-first wins for ambiguous dates such as
// 03/04/2024. Single-digit days, months and hours are accepted.
var timestampLayouts = []string{
	"2/1/2006, 3:04 PM",
	"2/1/06, 3:04 PM",
	"1/2/2006, 3:04 PM",
	"1/2/06, 3:04 PM",
	"2006-01-02, 15:04",
	"2/1/2006, 15:04",
	"1/2/2006, 15:04",
}

var meridiemRe = regexp.MustCompile(`\s*([AP]M)$`)

func normalizeClock(clock string) string {
	clock = strings.Join(strings.Fields(clock), " ")
	return meridiemRe.ReplaceAllString(clock, " $1")
}

// resolveTimestamp converts the date and clock tokens of a record into a
// naive timestamp. The final fallback is a lenient day-first parse.
func resolveTimestamp(date, clock string) (time.Time, bool) {
	clock = normalizeClock(clock)
	value := date + ", " + clock
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return naive(t), true
		}
	}

	t, err := dateparse.ParseAny(
		date+" "+clock,
		dateparse.PreferMonthFirst(false),
		dateparse.RetryAmbiguousDateWithSwap(true),
	)
	if err != nil {
		return time.Time{}, false
	}
	return naive(t), true
}

func naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}
