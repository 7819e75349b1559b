package transcript

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoMessages is returned when a transcript yields zero message records.
var ErrNoMessages = errors.New(
	"No messages found in chat file. Please check the file format. " +
		"Supported formats: DD/MM/YYYY or MM/DD/YYYY with AM/PM, or YYYY-MM-DD with 24-hour time.",
)

var recordRe = regexp.MustCompile(
	`^(\d{1,2}/\d{1,2}/\d{2,4}|\d{4}-\d{2}-\d{2}),?\s*(\d{1,2}:\d{2}(?:\s?[AP]M)?)\s*-\s*(.*?):\s(.*)$`,
)

// Exports from some phones put narrow or non-breaking spaces around the clock.
var spaceReplacer = strings.NewReplacer("\u202f", " ", "\u00a0", " ")

// Parse extracts message records from raw transcript text in source order.
func Parse(raw string) ([]Message, error) {
	res, err := ParseDetailed(raw)
	if err != nil {
		return nil, err
	}
	return res.Messages, nil
}

// ParseDetailed is Parse plus line statistics. It fails with ErrNoMessages
// when nothing could be parsed.
func ParseDetailed(raw string) (ParseResult, error) {
	res := ParseResult{}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		res.Lines++

		m := recordRe.FindStringSubmatch(spaceReplacer.Replace(line))
		if m == nil {
			res.Unmatched++
			continue
		}

		author := strings.TrimSpace(m[3])
		text := strings.TrimSpace(m[4])
		if author == "" || text == "" {
			res.Dropped++
			continue
		}
		ts, ok := resolveTimestamp(m[1], m[2])
		if !ok {
			res.Dropped++
			continue
		}

		res.Messages = append(res.Messages, Message{
			Timestamp: ts,
			Author:    author,
			Text:      text,
		})
	}

	if len(res.Messages) == 0 {
		return res, ErrNoMessages
	}
	return res, nil
}
