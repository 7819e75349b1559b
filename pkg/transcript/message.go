// Package transcript turns an exported group-chat log into message records.
//
// Only the line-oriented export format is understood: one message per
// physical line, prefixed with a date, a time and the author name:
//
//	12/01/2024, 9:15 PM - Alice: see you tomorrow
//	2024-01-12, 21:15 - Bob: ok
//
// Lines that do not have this shape (system notices, wrapped continuations)
// are skipped and counted.
package transcript

import "time"

// Message is one parsed chat message. Timestamps are naive wall-clock times
// as written in the export; they are stored in time.UTC without conversion.
type Message struct {
	Timestamp time.Time `json:"timestamp"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
}

// Date returns the calendar day of the message.
func (m Message) Date() time.Time {
	y, mo, d := m.Timestamp.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

// ParseResult carries the parsed messages together with line statistics.
type ParseResult struct {
	Messages []Message
	// Lines is the number of non-blank input lines.
	Lines int
	// Unmatched lines do not look like a message record at all.
	Unmatched int
	// Dropped lines looked like a record but had an unresolvable timestamp
	// or an empty author or text.
	Dropped int
}
