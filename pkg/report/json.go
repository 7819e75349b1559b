package report

import (
	"encoding/json"
	"io"

	"github.com/OFFIS-RIT/chatlens/pkg/analysis"
)

// Document is the JSON representation of an analysis.
type Document struct {
	*analysis.Result
	Cloud Cloud `json:"cloud"`
}

// NewDocument wraps res together with its profile word cloud.
func NewDocument(res *analysis.Result) Document {
	return Document{Result: res, Cloud: ProfileCloud(res)}
}

func WriteJSON(w io.Writer, res *analysis.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(res))
}
