package routes

import (
	"errors"
	"net/http"

	"github.com/OFFIS-RIT/chatlens/internal/queue"
	"github.com/OFFIS-RIT/chatlens/internal/server/middleware"
	"github.com/OFFIS-RIT/chatlens/pkg/logger"

	"github.com/labstack/echo/v4"
)

func DeleteJobHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App
	if !app.Jobs() {
		return c.JSON(http.StatusServiceUnavailable, jobResponse{Message: "Jobs are not available"})
	}

	ctx := c.Request().Context()
	id := c.Param("id")
	if _, err := queue.GetJob(ctx, app.S3, id); err != nil {
		if errors.Is(err, queue.ErrJobNotFound) {
			return c.JSON(http.StatusNotFound, jobResponse{Message: "Job not found"})
		}
		logger.Error("[Server] Failed to read job", "job_id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, jobResponse{Message: "Internal server error"})
	}

	if err := queue.DeleteJob(ctx, app.S3, id); err != nil {
		logger.Error("[Server] Failed to delete job", "job_id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, jobResponse{Message: "Internal server error"})
	}
	return c.JSON(http.StatusOK, jobResponse{Message: "Job deleted", ID: id})
}
