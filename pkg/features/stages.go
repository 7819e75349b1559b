package features

import (
	"time"
	"unicode/utf8"

	"github.com/OFFIS-RIT/chatlens/pkg/transcript"
)

// ConversationGap is the silence after which a message starts a new
// conversation.
const ConversationGap = time.Hour

func lengthStage(msgs []transcript.Message, row func(string) *Vector) {
	for author, own := range groupByAuthor(msgs) {
		lengths := make([]float64, len(own))
		total := 0
		for i, m := range own {
			n := utf8.RuneCountInString(m.Text)
			lengths[i] = float64(n)
			total += n
		}
		v := row(author)
		v.AvgLength = mean(lengths)
		v.MedianLength = median(lengths)
		v.TotalChars = total
	}
}

func temporalStage(msgs []transcript.Message, row func(string) *Vector) {
	for author, own := range groupByAuthor(chronological(msgs)) {
		days := make(map[time.Time]int)
		night := 0
		for _, m := range own {
			days[m.Date()]++
			if isNight(m.Timestamp) {
				night++
			}
		}

		gaps := make([]float64, 0, len(own))
		for i := 1; i < len(own); i++ {
			gaps = append(gaps, own[i].Timestamp.Sub(own[i-1].Timestamp).Hours())
		}

		v := row(author)
		v.MessagesPerDay = float64(len(own)) / float64(len(days))
		v.AvgResponseTimeHours = mean(gaps)
		v.NightActivityRatio = float64(night) / float64(len(own))
	}
}

func isNight(t time.Time) bool {
	h := t.Hour()
	return h >= 22 || h < 6
}

func emotionalStage(msgs []transcript.Message, row func(string) *Vector) {
	for author, own := range groupByAuthor(msgs) {
		excl := make([]float64, len(own))
		quest := make([]float64, len(own))
		emoji := make([]float64, len(own))
		upper := make([]float64, len(own))
		for i, m := range own {
			s := scanText(m.Text)
			excl[i] = float64(s.exclamations)
			quest[i] = float64(s.questions)
			emoji[i] = float64(s.emojis)
			upper[i] = float64(s.uppercase) / float64(max(s.runes, 1))
		}
		v := row(author)
		v.AvgExclamations = mean(excl)
		v.AvgQuestions = mean(quest)
		v.AvgEmojis = mean(emoji)
		v.UppercaseRatio = mean(upper)
	}
}

func linkStage(msgs []transcript.Message, row func(string) *Vector) {
	for author, own := range groupByAuthor(msgs) {
		links := 0
		for _, m := range own {
			if HasLink(m.Text) {
				links++
			}
		}
		v := row(author)
		v.TotalLinks = links
		v.LinkSharingRatio = float64(links) / float64(len(own))
	}
}

// initiationStage marks the first message of the transcript and every
// message that follows a silence longer than ConversationGap, regardless of
// who wrote the previous message.
func initiationStage(msgs []transcript.Message, row func(string) *Vector) {
	timeline := chronological(msgs)
	seen := make(map[string]*Vector)
	for i, m := range timeline {
		v := row(m.Author)
		seen[m.Author] = v
		v.TotalMessages++
		if i == 0 || m.Timestamp.Sub(timeline[i-1].Timestamp) > ConversationGap {
			v.Initiations++
		}
	}
	for _, v := range seen {
		v.InitiationRatio = float64(v.Initiations) / float64(v.TotalMessages)
	}
}
