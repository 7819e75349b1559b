package routes

import (
	"errors"
	"net/http"

	"github.com/OFFIS-RIT/chatlens/internal/queue"
	"github.com/OFFIS-RIT/chatlens/internal/server/middleware"
	"github.com/OFFIS-RIT/chatlens/internal/storage"
	"github.com/OFFIS-RIT/chatlens/pkg/logger"

	"github.com/labstack/echo/v4"
)

// GetJobHandler returns the state of a job and, once it is done, presigned
// links to its reports.
func GetJobHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App
	if !app.Jobs() {
		return c.JSON(http.StatusServiceUnavailable, jobResponse{Message: "Jobs are not available"})
	}

	ctx := c.Request().Context()
	id := c.Param("id")
	job, err := queue.GetJob(ctx, app.S3, id)
	if errors.Is(err, queue.ErrJobNotFound) {
		return c.JSON(http.StatusNotFound, jobResponse{Message: "Job not found"})
	}
	if err != nil {
		logger.Error("[Server] Failed to read job", "job_id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, jobResponse{Message: "Internal server error"})
	}

	resp := jobResponse{ID: job.ID, Status: job.Status, Error: job.Error}
	if job.Status == queue.StatusDone {
		resp.Links = make(map[string]string, 3)
		for name, file := range map[string]string{
			"json": storage.ResultFile,
			"csv":  storage.CSVFile,
			"pdf":  storage.PDFFile,
		} {
			link, err := storage.GenerateDownloadLink(ctx, app.S3, storage.ReportKey(id, file))
			if err != nil {
				logger.Error("[Server] Failed to sign report link", "job_id", id, "err", err)
				return c.JSON(http.StatusInternalServerError, jobResponse{Message: "Internal server error"})
			}
			resp.Links[name] = link
		}
	}
	return c.JSON(http.StatusOK, resp)
}
