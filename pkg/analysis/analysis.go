// Package analysis runs the full chat behaviour pipeline: parse, extract
// features, cluster and profile.
package analysis

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/OFFIS-RIT/chatlens/pkg/cluster"
	"github.com/OFFIS-RIT/chatlens/pkg/features"
	"github.com/OFFIS-RIT/chatlens/pkg/logger"
	"github.com/OFFIS-RIT/chatlens/pkg/profile"
	"github.com/OFFIS-RIT/chatlens/pkg/transcript"
)

// AuthorReport is one row of the per-author result table.
type AuthorReport struct {
	User            string          `json:"user"`
	Cluster         int             `json:"cluster"`
	ClusterName     string          `json:"cluster_name"`
	TotalMessages   int             `json:"total_messages"`
	MessagesPerDay  float64         `json:"messages_per_day"`
	InfluenceScore  float64         `json:"influence_score"`
	BehaviorProfile string          `json:"behavior_profile"`
	Features        features.Vector `json:"features"`
}

// ClusterSummary aggregates the authors of one cluster. Means are rounded
// to two decimals. Centroid holds the cluster center in feature units, keyed
// by feature column name.
type ClusterSummary struct {
	Cluster           int                `json:"cluster"`
	ClusterName       string             `json:"cluster_name"`
	UserCount         int                `json:"user_count"`
	AvgMessagesPerDay float64            `json:"avg_messages_per_day"`
	AvgInfluenceScore float64            `json:"avg_influence_score"`
	Centroid          map[string]float64 `json:"centroid,omitempty"`
}

type Stats struct {
	Messages  int       `json:"messages"`
	Authors   int       `json:"authors"`
	Lines     int       `json:"lines"`
	Unmatched int       `json:"unmatched_lines"`
	Dropped   int       `json:"dropped_lines"`
	First     time.Time `json:"first_message"`
	Last      time.Time `json:"last_message"`

	// Inertia is the within-cluster sum of squares in standardized space.
	Inertia    float64 `json:"inertia"`
	Iterations int     `json:"iterations"`
}

// Result is the complete outcome of one analysis.
type Result struct {
	Options  Options          `json:"options"`
	Authors  []AuthorReport   `json:"authors"`
	Clusters []ClusterSummary `json:"clusters"`
	Stats    Stats            `json:"stats"`
}

// AnalyzeBytes decodes raw upload bytes and analyzes them.
func AnalyzeBytes(raw []byte, opts Options) (*Result, error) {
	text, err := transcript.Decode(raw)
	if err != nil {
		return nil, err
	}
	return Analyze(text, opts)
}

// Analyze runs the pipeline over raw transcript text. It either returns a
// complete result or an error; there are no partial results.
func Analyze(raw string, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()

	parsed, err := transcript.ParseDetailed(raw)
	if err != nil {
		return nil, err
	}
	logger.Debug("Parsed transcript",
		"messages", len(parsed.Messages),
		"unmatched", parsed.Unmatched,
		"dropped", parsed.Dropped,
	)

	table := features.Extract(parsed.Messages)
	logger.Debug("Extracted features", "authors", len(table))

	assignment, err := cluster.Assign(table, opts.K, opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	logger.Debug("Clustered authors",
		"k", opts.K,
		"sizes", assignment.Sizes(),
		"inertia", assignment.Inertia,
		"iterations", assignment.Iterations,
	)

	gen := profile.NewGenerator(opts.ClusterNames)
	authors := make([]AuthorReport, 0, len(table))
	for _, v := range table {
		label, _ := assignment.Label(v.Author)
		p := gen.Profile(v, label)
		authors = append(authors, AuthorReport{
			User:            v.Author,
			Cluster:         label,
			ClusterName:     p.ClusterName,
			TotalMessages:   v.TotalMessages,
			MessagesPerDay:  v.MessagesPerDay,
			InfluenceScore:  p.Influence,
			BehaviorProfile: p.Text,
			Features:        v,
		})
	}
	sort.SliceStable(authors, func(i, j int) bool {
		return authors[i].InfluenceScore > authors[j].InfluenceScore
	})

	res := &Result{
		Options:  opts,
		Authors:  authors,
		Clusters: summarize(authors, opts.K, gen.Names),
		Stats:    stats(parsed, len(table)),
	}
	for l := range res.Clusters {
		res.Clusters[l].Centroid = centroid(assignment.Center(l))
	}
	res.Stats.Inertia = assignment.Inertia
	res.Stats.Iterations = assignment.Iterations
	logger.Info("Analyzed transcript",
		"messages", res.Stats.Messages,
		"authors", res.Stats.Authors,
		"k", opts.K,
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return res, nil
}

func summarize(authors []AuthorReport, k int, names profile.Names) []ClusterSummary {
	out := make([]ClusterSummary, k)
	for l := range out {
		out[l] = ClusterSummary{Cluster: l, ClusterName: names.Name(l)}
	}
	for _, a := range authors {
		s := &out[a.Cluster]
		s.UserCount++
		s.AvgMessagesPerDay += a.MessagesPerDay
		s.AvgInfluenceScore += a.InfluenceScore
	}
	for l := range out {
		s := &out[l]
		if s.UserCount == 0 {
			continue
		}
		s.AvgMessagesPerDay = Round2(s.AvgMessagesPerDay / float64(s.UserCount))
		s.AvgInfluenceScore = Round2(s.AvgInfluenceScore / float64(s.UserCount))
	}
	return out
}

func centroid(center []float64) map[string]float64 {
	out := make(map[string]float64, len(center))
	for j, c := range features.ClusterColumns {
		out[c.Name] = Round2(center[j])
	}
	return out
}

func stats(parsed transcript.ParseResult, authors int) Stats {
	s := Stats{
		Messages:  len(parsed.Messages),
		Authors:   authors,
		Lines:     parsed.Lines,
		Unmatched: parsed.Unmatched,
		Dropped:   parsed.Dropped,
	}
	for i, m := range parsed.Messages {
		if i == 0 || m.Timestamp.Before(s.First) {
			s.First = m.Timestamp
		}
		if i == 0 || m.Timestamp.After(s.Last) {
			s.Last = m.Timestamp
		}
	}
	return s
}

// Round2 rounds v to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
