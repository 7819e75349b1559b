package profile

import (
	"math"
	"testing"

	"github.com/OFFIS-RIT/chatlens/pkg/features"
)

func TestInfluence(t *testing.T) {
	tests := []struct {
		name string
		v    features.Vector
		want float64
	}{
		{"capped components", features.Vector{MessagesPerDay: 12, AvgResponseTimeHours: 0, InitiationRatio: 0.5}, 1},
		{"mixed", features.Vector{MessagesPerDay: 5, AvgResponseTimeHours: 1, InitiationRatio: 0.2}, 0.9875},
		{"slow responder", features.Vector{MessagesPerDay: 1, AvgResponseTimeHours: 30, InitiationRatio: 0.05}, 0.23},
		{"single message", features.Vector{}, 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Influence(tt.v)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			if got < 0 || got > 1 {
				t.Fatalf("influence out of range: %v", got)
			}
		})
	}
}

func TestProfileText(t *testing.T) {
	g := NewGenerator(nil)
	tests := []struct {
		name  string
		v     features.Vector
		label int
		want  string
	}{
		{
			name:  "initiator",
			v:     features.Vector{MessagesPerDay: 5, AvgResponseTimeHours: 1, InitiationRatio: 0.2, AvgLength: 20},
			label: 0,
			want: "This user belongs to the 'Regular Participants' group. This user is highly active, " +
				"prefers short messages, emotionally reserved, responds quickly, " +
				"frequently initiates conversations and influences group flow.",
		},
		{
			name: "night link sharer",
			v: features.Vector{
				MessagesPerDay: 1, TotalMessages: 10, AvgResponseTimeHours: 30, InitiationRatio: 0.05,
				AvgLength: 150, AvgEmojis: 3, LinkSharingRatio: 0.5, NightActivityRatio: 0.4,
			},
			label: 4,
			want: "This user belongs to the 'Night Owls' group. This user is low activity, " +
				"writes long, detailed messages, emotionally expressive, responds slowly, " +
				"often shares links or resources, more active at night.",
		},
		{
			name:  "moderate by total",
			v:     features.Vector{MessagesPerDay: 1, TotalMessages: 150, AvgResponseTimeHours: 2},
			label: 7,
			want: "This user belongs to the 'Cluster 7' group. This user is moderately active, " +
				"prefers short messages, emotionally reserved, responds slowly.",
		},
		{
			name:  "expressive through uppercase and exclamations",
			v:     features.Vector{MessagesPerDay: 2, AvgExclamations: 2, UppercaseRatio: 0.1, AvgResponseTimeHours: 5},
			label: 1,
			want: "This user belongs to the 'Active Conversationalists' group. This user is moderately active, " +
				"prefers short messages, emotionally expressive, responds slowly.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := g.Profile(tt.v, tt.label)
			if p.Text != tt.want {
				t.Fatalf("unexpected text\n got: %s\nwant: %s", p.Text, tt.want)
			}
			if again := g.Profile(tt.v, tt.label); again != p {
				t.Fatalf("profile not deterministic: %+v vs %+v", p, again)
			}
		})
	}
}

func TestProfileHighInfluenceCountsAsInitiator(t *testing.T) {
	g := NewGenerator(nil)
	// influence 0.4 + 0.3 + 0.3*min(0.1*10, 1) = 1.0 but ratio is not > 0.1
	p := g.Profile(features.Vector{MessagesPerDay: 6, InitiationRatio: 0.1}, 0)
	if p.Influence <= 0.95 {
		t.Fatalf("expected influence above 0.95, got %v", p.Influence)
	}
	want := "This user belongs to the 'Regular Participants' group. This user is highly active, " +
		"prefers short messages, emotionally reserved, responds quickly, " +
		"frequently initiates conversations and influences group flow."
	if p.Text != want {
		t.Fatalf("unexpected text: %s", p.Text)
	}
}

func TestNames(t *testing.T) {
	custom := NewGenerator(Names{0: "Lurkers"})
	if got := custom.Names.Name(0); got != "Lurkers" {
		t.Fatalf("expected custom name, got %q", got)
	}
	if got := custom.Names.Name(3); got != "Cluster 3" {
		t.Fatalf("custom mapping must replace defaults, got %q", got)
	}
	if got := NewGenerator(nil).Names.Name(3); got != "Silent Observers" {
		t.Fatalf("expected default name, got %q", got)
	}
	if got := DefaultNames().Name(5); got != "Cluster 5" {
		t.Fatalf("expected fallback name, got %q", got)
	}
}

func TestNamesExplicitEmpty(t *testing.T) {
	names := Names{1: ""}
	if got := names.Name(1); got != "" {
		t.Fatalf("explicit entry must be returned as given, got %q", got)
	}
	if got := names.Name(2); got != "Cluster 2" {
		t.Fatalf("expected fallback name, got %q", got)
	}
}

func TestGeneratorCopiesNames(t *testing.T) {
	names := Names{0: "Lurkers"}
	g := NewGenerator(names)
	names[0] = "changed"
	if g.Names.Name(0) != "Lurkers" {
		t.Fatal("generator must not observe later changes to the caller's mapping")
	}
}
