// Package sample generates synthetic group-chat exports with recognisable
// behavioural archetypes. The output is meant for demos and tests; all
// names are invented.
package sample

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"time"
)

var userNames = []string{
	"Alex Chen", "Sam Johnson", "Jordan Lee", "Taylor Smith", "Morgan Brown",
	"Casey Davis", "Riley Wilson", "Avery Martinez", "Quinn Anderson", "Blake Taylor",
	"Cameron White", "Dakota Harris", "Emery Clark", "Finley Lewis", "Harper Walker",
}

var (
	shortMessages = []string{
		"Okay", "Sure", "Thanks", "Got it", "Sounds good", "Agreed", "Yes", "No",
		"Maybe", "I see", "Interesting", "Cool", "Nice", "Haha", "Lol",
	}
	mediumMessages = []string{
		"That makes sense to me", "I think we should consider this option",
		"Let me check and get back to you", "We could try a different approach",
		"Has anyone looked into this yet?", "I'll follow up on that",
		"Good point, we should discuss this", "What do others think about this?",
		"I have some thoughts on this topic", "Let's schedule a meeting to discuss",
	}
	longMessages = []string{
		"I've been thinking about this issue and I believe we need to take a comprehensive approach. " +
			"There are several factors to consider including timing, resources, and potential impact on the team. What do you all think?",
		"Based on my research, I found some interesting information that might be relevant. " +
			"The key points are: first, we need to understand the context better; second, we should evaluate all options; " +
			"and third, we need stakeholder buy-in before proceeding.",
		"I wanted to share an update on the project. We've made good progress but there are a few challenges we need to address. " +
			"The main concern is around timeline and we might need to adjust our expectations. Let me know your thoughts.",
	}
	linkMessages = []string{
		"Check this out: https://example.com/article",
		"Found this interesting: https://example.com/resource",
		"This might be useful: https://example.com/reference",
		"Worth reading: https://example.com/guide",
		"Shared a link: https://example.com/tutorial",
	}
	emojiMessages = []string{
		"That's great! 😊", "Awesome! 🎉", "Love it! ❤️", "So excited! 🚀",
		"Amazing work! 👏", "Perfect! ✅", "Well done! 🎊", "Fantastic! 🌟",
		"This is cool! 😎", "Nice one! 👍", "Haha that's funny! 😂", "Wow! 🤩",
	}
	nightMessages = []string{
		"Still working on this", "Late night thoughts", "Anyone else up?",
		"Just finished reviewing", "Working late tonight", "Can't sleep, thinking about this",
	}
)

type length int

const (
	short length = iota
	medium
	long
)

// archetype describes how often a synthetic user writes and what.
type archetype struct {
	name   string
	prob   float64
	length length
	emoji  float64
	links  float64
	night  float64
}

var archetypes = []archetype{
	{"silent", 0.05, short, 0.1, 0.0, 0.1},
	{"dominant", 0.25, long, 0.2, 0.3, 0.2},
	{"night_owl", 0.15, medium, 0.3, 0.1, 0.7},
	{"link_sharer", 0.12, medium, 0.1, 0.6, 0.2},
	{"emoji_heavy", 0.18, short, 0.8, 0.0, 0.3},
	{"regular", 0.10, medium, 0.3, 0.1, 0.2},
}

// Options configures Generate.
type Options struct {
	// Messages is the number of messages to produce. Defaults to 550.
	Messages int
	// Users is the number of participants, at most 15. Zero picks 10 to 15.
	Users int
	Seed  uint64
	// Start is the time of the first possible message. Defaults to 30 days
	// before now.
	Start time.Time
}

type line struct {
	at   time.Time
	text string
}

// Generate returns a transcript in the day-first, 12-hour export format.
// The same options always produce the same transcript.
func Generate(opts Options) string {
	if opts.Messages <= 0 {
		opts.Messages = 550
	}
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x5851f42d4c957f2d))

	users := opts.Users
	if users <= 0 {
		users = 10 + rng.IntN(6)
	}
	users = min(users, len(userNames))
	selected := make([]string, len(userNames))
	copy(selected, userNames)
	rng.Shuffle(len(selected), func(i, j int) { selected[i], selected[j] = selected[j], selected[i] })
	selected = selected[:users]

	now := opts.Start
	if now.IsZero() {
		now = time.Now().AddDate(0, 0, -30)
	}
	now = now.Truncate(time.Minute)

	lines := make([]line, 0, opts.Messages)
	for len(lines) < opts.Messages {
		now = now.Add(time.Duration(5+rng.IntN(236)) * time.Minute)
		if rng.Float64() < 0.1 {
			now = now.Add(time.Duration(2+rng.IntN(11)) * time.Hour)
		}

		user := selected[rng.IntN(len(selected))]
		if text, ok := message(rng, archetypeOf(user), now); ok {
			lines = append(lines, line{at: now, text: format(now, user, text)})
		}
	}
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].at.Before(lines[j].at) })

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l.text)
		b.WriteByte('\n')
	}
	return b.String()
}

// archetypeOf assigns archetypes round-robin over the fixed name list so a
// given name always behaves the same way.
func archetypeOf(user string) archetype {
	for i, n := range userNames {
		if n == user {
			return archetypes[i%len(archetypes)]
		}
	}
	return archetypes[0]
}

func message(rng *rand.Rand, a archetype, at time.Time) (string, bool) {
	if rng.Float64() > a.prob {
		return "", false
	}
	choose := func(pool []string) string { return pool[rng.IntN(len(pool))] }

	r := rng.Float64()
	switch {
	case r < a.links:
		return choose(linkMessages), true
	case r < a.links+a.emoji:
		return choose(emojiMessages), true
	case a.night > 0.5 && (at.Hour() >= 22 || at.Hour() < 6):
		return choose(nightMessages), true
	}
	switch a.length {
	case short:
		return choose(shortMessages), true
	case long:
		return choose(longMessages), true
	default:
		return choose(mediumMessages), true
	}
}

func format(at time.Time, user, text string) string {
	return fmt.Sprintf("%s - %s: %s", at.Format("02/01/2006, 03:04 PM"), user, text)
}
