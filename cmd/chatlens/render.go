package main

import (
	"strconv"
	"strings"
	"time"

	"github.com/OFFIS-RIT/chatlens/pkg/analysis"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func newTable(numeric ...int) *table.Table {
	right := make(map[int]bool, len(numeric))
	for _, c := range numeric {
		right[c] = true
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case right[col]:
				return numberStyle
			}
			return cellStyle
		})
}

func fixed(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func renderAuthors(res *analysis.Result) string {
	t := newTable(2, 3, 4).Headers("User", "Cluster", "Messages", "Msgs/Day", "Influence")
	for _, a := range res.Authors {
		t.Row(a.User, a.ClusterName, humanize.Comma(int64(a.TotalMessages)), fixed(a.MessagesPerDay), fixed(a.InfluenceScore))
	}
	return t.Render()
}

func renderClusters(res *analysis.Result) string {
	t := newTable(0, 2, 3, 4).Headers("#", "Cluster", "Users", "Avg Msgs/Day", "Avg Influence")
	for _, c := range res.Clusters {
		t.Row(strconv.Itoa(c.Cluster), c.ClusterName, strconv.Itoa(c.UserCount), fixed(c.AvgMessagesPerDay), fixed(c.AvgInfluenceScore))
	}
	return t.Render()
}

func renderStats(res *analysis.Result) string {
	s := res.Stats
	t := newTable(1).Headers("Stat", "Value")
	t.Row("Lines", humanize.Comma(int64(s.Lines)))
	t.Row("Unmatched lines", humanize.Comma(int64(s.Unmatched)))
	t.Row("Dropped lines", humanize.Comma(int64(s.Dropped)))
	t.Row("First message", s.First.Format(time.DateTime))
	t.Row("Last message", s.Last.Format(time.DateTime))
	t.Row("Span", strings.TrimSpace(humanize.RelTime(s.First, s.Last, "", "")))
	return t.Render()
}
