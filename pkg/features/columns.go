package features

// Column is one numeric feature used for clustering.
type Column struct {
	Name  string
	Value func(Vector) float64
}

// ClusterColumns lists the features fed to clustering, in order.
var ClusterColumns = []Column{
	{"avg_length", func(v Vector) float64 { return v.AvgLength }},
	{"median_length", func(v Vector) float64 { return v.MedianLength }},
	{"messages_per_day", func(v Vector) float64 { return v.MessagesPerDay }},
	{"avg_response_time_hours", func(v Vector) float64 { return v.AvgResponseTimeHours }},
	{"night_activity_ratio", func(v Vector) float64 { return v.NightActivityRatio }},
	{"avg_exclamations", func(v Vector) float64 { return v.AvgExclamations }},
	{"avg_questions", func(v Vector) float64 { return v.AvgQuestions }},
	{"avg_emojis", func(v Vector) float64 { return v.AvgEmojis }},
	{"uppercase_ratio", func(v Vector) float64 { return v.UppercaseRatio }},
	{"link_sharing_ratio", func(v Vector) float64 { return v.LinkSharingRatio }},
	{"initiation_ratio", func(v Vector) float64 { return v.InitiationRatio }},
}

// Matrix returns one row per author with the values of the given columns.
func (t Table) Matrix(columns []Column) [][]float64 {
	out := make([][]float64, len(t))
	for i, v := range t {
		row := make([]float64, len(columns))
		for j, c := range columns {
			row[j] = c.Value(v)
		}
		out[i] = row
	}
	return out
}
