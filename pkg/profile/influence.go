package profile

import "github.com/OFFIS-RIT/chatlens/pkg/features"

// Influence scores how much an author shapes the conversation, in [0, 1].
// Activity weighs 0.4, responsiveness 0.3 and initiation 0.3.
func Influence(v features.Vector) float64 {
	activity := min(v.MessagesPerDay/5, 1)
	responsiveness := 1 - min(v.AvgResponseTimeHours/24, 1)
	initiation := min(v.InitiationRatio*10, 1)

	score := 0.4*activity + 0.3*responsiveness + 0.3*initiation
	return max(0, min(score, 1))
}
