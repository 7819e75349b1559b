// Package features derives per-author behavioural metrics from parsed
// chat messages.
package features

import (
	"sort"

	"github.com/OFFIS-RIT/chatlens/pkg/transcript"
)

// Vector is the fixed feature schema for one author. Every field is always
// populated; an author that contributes nothing to a metric gets zero.
type Vector struct {
	Author string `json:"user"`

	AvgLength    float64 `json:"avg_length"`
	MedianLength float64 `json:"median_length"`
	TotalChars   int     `json:"total_chars"`

	MessagesPerDay       float64 `json:"messages_per_day"`
	AvgResponseTimeHours float64 `json:"avg_response_time_hours"`
	NightActivityRatio   float64 `json:"night_activity_ratio"`

	AvgExclamations float64 `json:"avg_exclamations"`
	AvgQuestions    float64 `json:"avg_questions"`
	AvgEmojis       float64 `json:"avg_emojis"`
	UppercaseRatio  float64 `json:"uppercase_ratio"`

	TotalLinks       int     `json:"total_links"`
	LinkSharingRatio float64 `json:"link_sharing_ratio"`

	Initiations     int     `json:"initiations"`
	TotalMessages   int     `json:"total_messages"`
	InitiationRatio float64 `json:"initiation_ratio"`
}

// Table holds one Vector per author, sorted by author name.
type Table []Vector

// Lookup returns the vector of the given author.
func (t Table) Lookup(author string) (Vector, bool) {
	i := sort.Search(len(t), func(i int) bool { return t[i].Author >= author })
	if i < len(t) && t[i].Author == author {
		return t[i], true
	}
	return Vector{}, false
}

// Authors returns the author names in table order.
func (t Table) Authors() []string {
	out := make([]string, len(t))
	for i, v := range t {
		out[i] = v.Author
	}
	return out
}

// stage computes one group of metrics. Stages only write the fields they
// own, so the rows map acts as an outer join on author.
type stage func(msgs []transcript.Message, row func(author string) *Vector)

var stages = []stage{
	lengthStage,
	temporalStage,
	emotionalStage,
	linkStage,
	initiationStage,
}

// Extract computes the feature table for the given messages. The input is
// not modified.
func Extract(messages []transcript.Message) Table {
	rows := make(map[string]*Vector)
	row := func(author string) *Vector {
		v, ok := rows[author]
		if !ok {
			v = &Vector{Author: author}
			rows[author] = v
		}
		return v
	}

	for _, s := range stages {
		s(messages, row)
	}

	table := make(Table, 0, len(rows))
	for _, v := range rows {
		table = append(table, *v)
	}
	sort.Slice(table, func(i, j int) bool { return table[i].Author < table[j].Author })
	return table
}

func groupByAuthor(msgs []transcript.Message) map[string][]transcript.Message {
	out := make(map[string][]transcript.Message)
	for _, m := range msgs {
		out[m.Author] = append(out[m.Author], m)
	}
	return out
}

// chronological returns a copy of msgs sorted by timestamp. Equal
// timestamps keep their source order.
func chronological(msgs []transcript.Message) []transcript.Message {
	out := make([]transcript.Message, len(msgs))
	copy(out, msgs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	s := make([]float64, len(xs))
	copy(s, xs)
	sort.Float64s(s)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return s[mid]
	}
	return (s[mid-1] + s[mid]) / 2
}
