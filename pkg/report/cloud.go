package report

import (
	"regexp"
	"sort"
	"strings"

	"github.com/OFFIS-RIT/chatlens/pkg/analysis"
	"github.com/OFFIS-RIT/chatlens/pkg/features"
)

const (
	maxCloudEmojis  = 20
	maxCloudWords   = 30
	maxEmojiRepeats = 10
	maxWordRepeats  = 5
)

var cloudWordRe = regexp.MustCompile(`\b[a-z]{4,}\b`)

var cloudStopWords = map[string]struct{}{
	"this": {}, "user": {}, "belongs": {}, "group": {}, "that": {}, "with": {},
	"from": {}, "their": {}, "they": {}, "them": {}, "have": {}, "been": {},
	"more": {}, "than": {}, "less": {}, "often": {}, "frequently": {},
	"responds": {}, "writes": {}, "prefers": {}, "shares": {}, "active": {},
	"reserved": {}, "expressive": {},
}

// Term is one word-cloud entry. Weight is Count capped per term kind.
type Term struct {
	Text   string `json:"text"`
	Count  int    `json:"count"`
	Weight int    `json:"weight"`
}

// Cloud is the input for a word-cloud renderer.
type Cloud struct {
	Emojis []Term `json:"emojis"`
	Words  []Term `json:"words"`
}

// Text joins every term repeated Weight times, emojis first.
func (c Cloud) Text() string {
	var parts []string
	for _, terms := range [][]Term{c.Emojis, c.Words} {
		for _, t := range terms {
			for i := 0; i < t.Weight; i++ {
				parts = append(parts, t.Text)
			}
		}
	}
	return strings.Join(parts, " ")
}

// ProfileCloud builds the word cloud from the behaviour profiles of res.
func ProfileCloud(res *analysis.Result) Cloud {
	profiles := make([]string, len(res.Authors))
	for i, a := range res.Authors {
		profiles[i] = a.BehaviorProfile
	}
	return CloudTerms(profiles)
}

// CloudTerms counts emoji runs and meaningful words across texts. Terms are
// ordered by count, ties by first appearance.
func CloudTerms(texts []string) Cloud {
	emojis := newCounter()
	words := newCounter()
	for _, text := range texts {
		for _, run := range features.EmojiRuns(text) {
			emojis.add(run)
		}
		for _, w := range cloudWordRe.FindAllString(strings.ToLower(text), -1) {
			if _, stop := cloudStopWords[w]; !stop {
				words.add(w)
			}
		}
	}
	return Cloud{
		Emojis: emojis.top(maxCloudEmojis, maxEmojiRepeats),
		Words:  words.top(maxCloudWords, maxWordRepeats),
	}
}

type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(term string) {
	if _, ok := c.counts[term]; !ok {
		c.order = append(c.order, term)
	}
	c.counts[term]++
}

func (c *counter) top(n, maxRepeats int) []Term {
	terms := make([]Term, len(c.order))
	for i, t := range c.order {
		terms[i] = Term{Text: t, Count: c.counts[t], Weight: min(c.counts[t], maxRepeats)}
	}
	sort.SliceStable(terms, func(i, j int) bool { return terms[i].Count > terms[j].Count })
	if len(terms) > n {
		terms = terms[:n]
	}
	return terms
}
