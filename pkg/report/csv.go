// Package report renders analysis results as CSV, PDF, JSON and word-cloud
// input.
package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/OFFIS-RIT/chatlens/pkg/analysis"
)

// CSVHeader is the column order of WriteCSV.
var CSVHeader = []string{"User", "Cluster", "Total Messages", "Messages/Day", "Influence Score", "Behavior Profile"}

func decimal(v float64) string {
	return strconv.FormatFloat(analysis.Round2(v), 'f', 2, 64)
}

// WriteCSV writes one row per author in the order of res.Authors, which is
// by influence descending. The cluster column holds the cluster name.
func WriteCSV(w io.Writer, res *analysis.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, a := range res.Authors {
		err := cw.Write([]string{
			a.User,
			a.ClusterName,
			strconv.Itoa(a.TotalMessages),
			decimal(a.MessagesPerDay),
			decimal(a.InfluenceScore),
			a.BehaviorProfile,
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
