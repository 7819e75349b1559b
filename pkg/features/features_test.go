package features

import (
	"math"
	"testing"
	"time"

	"github.com/OFFIS-RIT/chatlens/pkg/transcript"
)

var base = time.Date(2024, 1, 12, 10, 0, 0, 0, time.UTC)

func msg(author string, offset time.Duration, text string) transcript.Message {
	return transcript.Message{Timestamp: base.Add(offset), Author: author, Text: text}
}

func almost(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func mustLookup(t *testing.T, table Table, author string) Vector {
	t.Helper()
	v, ok := table.Lookup(author)
	if !ok {
		t.Fatalf("author %q missing from table %v", author, table.Authors())
	}
	return v
}

func TestExtractEveryAuthorPresent(t *testing.T) {
	msgs := []transcript.Message{
		msg("zoe", 0, "hi"),
		msg("Alice", time.Minute, "hello"),
		msg("alice", 2*time.Minute, "case matters"),
	}
	table := Extract(msgs)
	if len(table) != 3 {
		t.Fatalf("expected 3 authors, got %v", table.Authors())
	}
	want := []string{"Alice", "alice", "zoe"}
	for i, a := range table.Authors() {
		if a != want[i] {
			t.Fatalf("expected sorted authors %v, got %v", want, table.Authors())
		}
	}
}

func TestExtractLengths(t *testing.T) {
	table := Extract([]transcript.Message{
		msg("a", 0, "ab"),
		msg("a", time.Minute, "abcd"),
		msg("a", 2*time.Minute, "abcdef"),
		msg("a", 3*time.Minute, "héllo wörld 😀"),
	})
	v := mustLookup(t, table, "a")
	// rune lengths 2, 4, 6, 13
	if !almost(v.AvgLength, 6.25) {
		t.Fatalf("expected avg 6.25, got %v", v.AvgLength)
	}
	if !almost(v.MedianLength, 5) {
		t.Fatalf("expected median 5, got %v", v.MedianLength)
	}
	if v.TotalChars != 25 {
		t.Fatalf("expected 25 chars, got %d", v.TotalChars)
	}
}

func TestExtractTemporal(t *testing.T) {
	day := 24 * time.Hour
	table := Extract([]transcript.Message{
		msg("a", 2*time.Hour, "third"),
		msg("a", 0, "first"),
		msg("a", time.Hour, "second"),
		msg("a", day, "next day"),
		msg("b", 0, "only"),
	})

	a := mustLookup(t, table, "a")
	if !almost(a.MessagesPerDay, 2) {
		t.Fatalf("expected mean of [3 1] = 2, got %v", a.MessagesPerDay)
	}
	// gaps sorted chronologically: 1h, 1h, 22h
	if !almost(a.AvgResponseTimeHours, 8) {
		t.Fatalf("expected 8h, got %v", a.AvgResponseTimeHours)
	}

	b := mustLookup(t, table, "b")
	if b.AvgResponseTimeHours != 0 {
		t.Fatalf("single-message author must have 0 response time, got %v", b.AvgResponseTimeHours)
	}
	if b.MessagesPerDay != 1 {
		t.Fatalf("expected 1 message per day, got %v", b.MessagesPerDay)
	}
}

func TestExtractNightActivity(t *testing.T) {
	at := func(h int) transcript.Message {
		return transcript.Message{Timestamp: time.Date(2024, 1, 12, h, 30, 0, 0, time.UTC), Author: "owl", Text: "x"}
	}
	table := Extract([]transcript.Message{at(21), at(22), at(23), at(0), at(5), at(6), at(12), at(17)})
	v := mustLookup(t, table, "owl")
	if !almost(v.NightActivityRatio, 0.5) {
		t.Fatalf("expected 4/8 night messages, got %v", v.NightActivityRatio)
	}
}

func TestExtractNightActivityBoundaries(t *testing.T) {
	at := func(author string, h, m int) transcript.Message {
		return transcript.Message{Timestamp: time.Date(2024, 1, 12, h, m, 0, 0, time.UTC), Author: author, Text: "x"}
	}
	tests := []struct {
		author string
		hour   int
		minute int
		night  bool
	}{
		{"ten", 22, 0, true},
		{"six", 6, 0, false},
		{"dawn", 5, 59, true},
		{"late", 21, 59, false},
	}

	msgs := make([]transcript.Message, 0, len(tests))
	for _, tt := range tests {
		msgs = append(msgs, at(tt.author, tt.hour, tt.minute))
	}
	table := Extract(msgs)
	for _, tt := range tests {
		want := 0.0
		if tt.night {
			want = 1
		}
		if v := mustLookup(t, table, tt.author); !almost(v.NightActivityRatio, want) {
			t.Fatalf("%02d:%02d: expected night ratio %v, got %v", tt.hour, tt.minute, want, v.NightActivityRatio)
		}
	}
}

func TestExtractEmojiRuns(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"go 🇩🇪", 1},
		{"yay 🎉🎉🎉", 1},
		{"😀 and 😀", 2},
		{"no emoji here", 0},
	}

	for _, tt := range tests {
		table := Extract([]transcript.Message{msg("a", 0, tt.text)})
		if v := mustLookup(t, table, "a"); !almost(v.AvgEmojis, tt.want) {
			t.Fatalf("%q: expected %v emojis, got %v", tt.text, tt.want, v.AvgEmojis)
		}
		if got := len(EmojiRuns(tt.text)); float64(got) != tt.want {
			t.Fatalf("%q: expected %v runs, got %d", tt.text, tt.want, got)
		}
	}
}

func TestExtractEmotional(t *testing.T) {
	table := Extract([]transcript.Message{
		msg("a", 0, "WOW!!"),
		msg("a", time.Minute, "really? 😀😀 ✂"),
	})
	v := mustLookup(t, table, "a")
	if !almost(v.AvgExclamations, 1) {
		t.Fatalf("expected 1 exclamation per message, got %v", v.AvgExclamations)
	}
	if !almost(v.AvgQuestions, 0.5) {
		t.Fatalf("expected 0.5 questions per message, got %v", v.AvgQuestions)
	}
	// "😀😀" and "✂" are two runs
	if !almost(v.AvgEmojis, 1) {
		t.Fatalf("expected 1 emoji run per message, got %v", v.AvgEmojis)
	}
	// "WOW!!" 3/5, second message 0
	if !almost(v.UppercaseRatio, 0.3) {
		t.Fatalf("expected uppercase ratio 0.3, got %v", v.UppercaseRatio)
	}
}

func TestExtractLinks(t *testing.T) {
	table := Extract([]transcript.Message{
		msg("a", 0, "see https://example.com/a and http://example.org"),
		msg("a", time.Minute, "no link here"),
		msg("a", 2*time.Minute, "ftp://not.counted"),
		msg("a", 3*time.Minute, "http://x.io"),
	})
	v := mustLookup(t, table, "a")
	if v.TotalLinks != 2 {
		t.Fatalf("expected 2 messages with links, got %d", v.TotalLinks)
	}
	if !almost(v.LinkSharingRatio, 0.5) {
		t.Fatalf("expected ratio 0.5, got %v", v.LinkSharingRatio)
	}
}

func TestExtractInitiation(t *testing.T) {
	table := Extract([]transcript.Message{
		msg("B", 0, "first of transcript"),
		msg("B", 30*time.Minute, "quick follow up"),
		msg("A", 3*time.Hour, "new topic"),
		msg("A", 5*time.Hour, "another topic"),
		msg("A", 7*time.Hour, "and another"),
	})

	a := mustLookup(t, table, "A")
	if a.Initiations != 3 || !almost(a.InitiationRatio, 1) {
		t.Fatalf("expected A to initiate every message, got %d (%v)", a.Initiations, a.InitiationRatio)
	}
	b := mustLookup(t, table, "B")
	if b.Initiations != 1 || !almost(b.InitiationRatio, 0.5) {
		t.Fatalf("expected B ratio 0.5, got %d (%v)", b.Initiations, b.InitiationRatio)
	}
	if b.TotalMessages != 2 {
		t.Fatalf("expected 2 messages, got %d", b.TotalMessages)
	}
}

func TestExtractInitiationGapIsStrict(t *testing.T) {
	table := Extract([]transcript.Message{
		msg("a", 0, "x"),
		msg("b", time.Hour, "exactly one hour later"),
	})
	if v := mustLookup(t, table, "b"); v.Initiations != 0 {
		t.Fatalf("a gap of exactly one hour does not start a conversation, got %d", v.Initiations)
	}
}

func TestExtractDoesNotReorderInput(t *testing.T) {
	msgs := []transcript.Message{
		msg("a", time.Hour, "later"),
		msg("b", 0, "earlier"),
	}
	Extract(msgs)
	if msgs[0].Author != "a" {
		t.Fatal("input slice was modified")
	}
}

func TestExtractEmpty(t *testing.T) {
	if table := Extract(nil); len(table) != 0 {
		t.Fatalf("expected empty table, got %v", table)
	}
}
