package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/OFFIS-RIT/chatlens/pkg/analysis"

	"github.com/go-pdf/fpdf"
)

const DefaultTitle = "WhatsApp User Behavior Analysis Report"

const (
	fontFamily = "Helvetica"
	lineHeight = 6.0
)

// WritePDF renders a paginated report with one section per author, in the
// order of res.Authors. An empty title falls back to DefaultTitle.
func WritePDF(w io.Writer, res *analysis.Result, title string) error {
	if title == "" {
		title = DefaultTitle
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(title, true)
	pdf.SetCreator("chatlens", true)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont(fontFamily, "B", 18)
	pdf.SetTextColor(0x1a, 0x1a, 0x1a)
	pdf.CellFormat(0, 12, tr(title), "", 1, "C", false, 0, "")
	pdf.Ln(8)

	field := func(label, value string) {
		pdf.SetFont(fontFamily, "B", 10)
		pdf.Write(lineHeight, tr(label+": "))
		pdf.SetFont(fontFamily, "", 10)
		pdf.Write(lineHeight, tr(value))
		pdf.Ln(lineHeight)
	}

	for _, a := range res.Authors {
		pdf.SetFont(fontFamily, "B", 14)
		pdf.SetTextColor(0x2c, 0x3e, 0x50)
		pdf.Ln(3)
		pdf.Write(8, tr("User: "+a.User))
		pdf.Ln(10)

		pdf.SetTextColor(0x33, 0x33, 0x33)
		field("Cluster", a.ClusterName)
		field("Total Messages", strconv.Itoa(a.TotalMessages))
		field("Messages/Day", decimal(a.MessagesPerDay))
		field("Influence Score", decimal(a.InfluenceScore))
		pdf.Ln(2)
		field("Behavior Profile", a.BehaviorProfile)
		pdf.Ln(4)

		pdf.SetFont(fontFamily, "", 10)
		pdf.CellFormat(0, lineHeight, "---", "", 1, "L", false, 0, "")
		pdf.Ln(4)
	}

	return pdf.Output(w)
}
