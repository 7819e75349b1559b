package routes

import (
	"errors"
	"fmt"
	"io"

	"github.com/OFFIS-RIT/chatlens/internal/server/middleware"
	"github.com/OFFIS-RIT/chatlens/pkg/analysis"

	"github.com/labstack/echo/v4"
)

var errMissingFile = errors.New("missing file")

// analyzeBody holds the form fields shared by the analysis endpoints. Fields
// absent from the form keep the server defaults.
type analyzeBody struct {
	K      int    `form:"k" validate:"min=2,max=20"`
	Seed   int64  `form:"seed" validate:"min=0"`
	Format string `form:"format" validate:"omitempty,oneof=json csv pdf"`
	Title  string `form:"title" validate:"max=200"`
}

func bindAnalyzeBody(c echo.Context) (*analyzeBody, analysis.Options, error) {
	defaults := c.(*middleware.AppContext).App.Defaults
	data := &analyzeBody{K: defaults.K, Seed: defaults.Seed}
	if err := c.Bind(data); err != nil {
		return nil, defaults, err
	}
	if err := c.Validate(data); err != nil {
		return nil, defaults, err
	}

	opts := defaults
	opts.K = data.K
	opts.Seed = data.Seed
	return data, opts, nil
}

// readUpload returns the content of the multipart field "file".
func readUpload(c echo.Context) ([]byte, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return nil, errMissingFile
	}
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()
	return io.ReadAll(src)
}
