package routes

import (
	"bytes"
	"net/http"

	"github.com/OFFIS-RIT/chatlens/pkg/analysis"
	"github.com/OFFIS-RIT/chatlens/pkg/logger"
	"github.com/OFFIS-RIT/chatlens/pkg/report"

	"github.com/labstack/echo/v4"
)

type errorResponse struct {
	Message string `json:"message"`
}

// analysisError maps a failed analysis to a status code. Unreadable
// transcripts are 422, bad parameters 400.
func analysisError(c echo.Context, err error) error {
	switch {
	case analysis.IsInputError(err):
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Message: err.Error()})
	case analysis.IsConfigError(err):
		return c.JSON(http.StatusBadRequest, errorResponse{Message: err.Error()})
	}
	logger.Error("[Server] Analysis failed", "err", err)
	return c.JSON(http.StatusInternalServerError, errorResponse{Message: "Internal server error"})
}

// AnalyzeHandler analyses an uploaded transcript synchronously and returns
// the result as JSON or as a CSV or PDF attachment.
func AnalyzeHandler(c echo.Context) error {
	data, opts, err := bindAnalyzeBody(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "Invalid request body"})
	}

	raw, err := readUpload(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "A transcript file is required"})
	}

	res, err := analysis.AnalyzeBytes(raw, opts)
	if err != nil {
		return analysisError(c, err)
	}

	var buf bytes.Buffer
	switch data.Format {
	case "csv":
		if err := report.WriteCSV(&buf, res); err != nil {
			return analysisError(c, err)
		}
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="user_analysis.csv"`)
		return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
	case "pdf":
		if err := report.WritePDF(&buf, res, data.Title); err != nil {
			return analysisError(c, err)
		}
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="user_behavior_report.pdf"`)
		return c.Blob(http.StatusOK, "application/pdf", buf.Bytes())
	default:
		return c.JSON(http.StatusOK, report.NewDocument(res))
	}
}
