package features

import (
	"regexp"
	"strings"
	"unicode"
)

var linkRe = regexp.MustCompile(`https?://(?:[a-zA-Z0-9$-_@.&+!*(),]|%[0-9a-fA-F]{2})+`)

// HasLink reports whether text contains an http or https URL.
func HasLink(text string) bool {
	return linkRe.MatchString(text)
}

// emojiRanges are the Unicode blocks counted as emoji: emoticons, misc
// symbols and pictographs, transport and map symbols, regional indicators
// and dingbats.
var emojiRanges = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x2702, Hi: 0x27B0, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x1F1E0, Hi: 0x1F1FF, Stride: 1},
		{Lo: 0x1F300, Hi: 0x1F5FF, Stride: 1},
		{Lo: 0x1F600, Hi: 0x1F64F, Stride: 1},
		{Lo: 0x1F680, Hi: 0x1F6FF, Stride: 1},
	},
}

// IsEmoji reports whether r falls in one of the counted emoji blocks.
func IsEmoji(r rune) bool {
	return unicode.Is(emojiRanges, r)
}

// EmojiRuns returns the maximal sequences of consecutive emoji in s. A flag
// or "🎉🎉🎉" is a single run.
func EmojiRuns(s string) []string {
	var runs []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			runs = append(runs, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		if IsEmoji(r) {
			cur.WriteRune(r)
			continue
		}
		flush()
	}
	flush()
	return runs
}

type textStats struct {
	runes        int
	uppercase    int
	exclamations int
	questions    int
	// emojis counts runs of consecutive emoji, not code points.
	emojis int
}

func scanText(s string) textStats {
	var st textStats
	inEmoji := false
	for _, r := range s {
		st.runes++
		emoji := IsEmoji(r)
		if emoji && !inEmoji {
			st.emojis++
		}
		inEmoji = emoji
		switch {
		case r == '!':
			st.exclamations++
		case r == '?':
			st.questions++
		case unicode.IsUpper(r):
			st.uppercase++
		}
	}
	return st
}
