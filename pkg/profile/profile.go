// Package profile scores authors and renders their behaviour as a short,
// deterministic English description.
package profile

import (
	"fmt"
	"strings"

	"github.com/OFFIS-RIT/chatlens/pkg/features"
)

// Profile is the generated description of one author.
type Profile struct {
	ClusterName string  `json:"cluster_name"`
	Influence   float64 `json:"influence_score"`
	Text        string  `json:"behavior_profile"`
}

// Generator renders profiles using a fixed cluster name mapping.
type Generator struct {
	Names Names
}

// NewGenerator returns a Generator using names, or DefaultNames when names
// is nil. A non-nil mapping replaces the defaults entirely.
func NewGenerator(names Names) Generator {
	if names == nil {
		names = DefaultNames()
	}
	return Generator{Names: names.Clone()}
}

// subject bundles what the clauses are evaluated against.
type subject struct {
	v         features.Vector
	name      string
	influence float64
}

type clause struct {
	when func(s subject) bool
	text func(s subject) string
}

func always(subject) bool { return true }

func fixed(text string) func(subject) string {
	return func(subject) string { return text }
}

func pick(cond func(subject) bool, yes, no string) func(subject) string {
	return func(s subject) string {
		if cond(s) {
			return yes
		}
		return no
	}
}

func activityLevel(s subject) string {
	switch {
	case s.v.MessagesPerDay >= 4 || s.v.TotalMessages >= 500:
		return "highly active"
	case s.v.MessagesPerDay >= 2 || s.v.TotalMessages >= 100:
		return "moderately active"
	default:
		return "low activity"
	}
}

func expressive(s subject) bool {
	return s.v.AvgEmojis+0.5*s.v.AvgExclamations+10*s.v.UppercaseRatio >= 2
}

func initiator(s subject) bool {
	return s.v.InitiationRatio > 0.1 || s.influence > 0.95
}

// template is evaluated top to bottom; every clause but the first ends in a
// comma until the closing clause decides how the sentence ends.
var template = []clause{
	{always, func(s subject) string { return fmt.Sprintf("This user belongs to the '%s' group.", s.name) }},
	{always, func(s subject) string { return fmt.Sprintf("This user is %s,", activityLevel(s)) }},
	{always, pick(func(s subject) bool { return s.v.AvgLength >= 100 }, "writes long, detailed messages,", "prefers short messages,")},
	{always, pick(expressive, "emotionally expressive,", "emotionally reserved,")},
	{always, pick(func(s subject) bool { return s.v.AvgResponseTimeHours < 2 }, "responds quickly,", "responds slowly,")},
	{func(s subject) bool { return s.v.LinkSharingRatio > 0.1 }, fixed("often shares links or resources,")},
	{func(s subject) bool { return s.v.NightActivityRatio > 0.3 }, fixed("more active at night,")},
	{initiator, fixed("frequently initiates conversations and influences group flow.")},
}

// tidy collapses punctuation left over from joining clauses. The
// replacements run in order, each over the whole string.
func tidy(s string) string {
	for _, r := range [][2]string{{" ,", ","}, {"..", "."}, {",.", "."}} {
		s = strings.ReplaceAll(s, r[0], r[1])
	}
	return s
}

// Profile scores v and renders its description for the given cluster label.
// Identical inputs always produce byte-identical text.
func (g Generator) Profile(v features.Vector, label int) Profile {
	s := subject{v: v, name: g.Names.Name(label), influence: Influence(v)}

	parts := make([]string, 0, len(template))
	for _, c := range template {
		if c.when(s) {
			parts = append(parts, c.text(s))
		}
	}
	if last := parts[len(parts)-1]; strings.HasSuffix(last, ",") {
		parts[len(parts)-1] = strings.TrimSuffix(last, ",") + "."
	}

	return Profile{
		ClusterName: s.name,
		Influence:   s.influence,
		Text:        tidy(strings.Join(parts, " ")),
	}
}
