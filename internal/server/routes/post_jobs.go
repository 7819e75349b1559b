package routes

import (
	"encoding/json"
	"net/http"

	"github.com/OFFIS-RIT/chatlens/internal/queue"
	"github.com/OFFIS-RIT/chatlens/internal/server/middleware"
	"github.com/OFFIS-RIT/chatlens/internal/storage"
	"github.com/OFFIS-RIT/chatlens/pkg/logger"

	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type jobResponse struct {
	Message string            `json:"message,omitempty"`
	ID      string            `json:"id,omitempty"`
	Status  queue.JobStatus   `json:"status,omitempty"`
	Error   *queue.JobError   `json:"error,omitempty"`
	Links   map[string]string `json:"links,omitempty"`
}

// CreateJobHandler stores the uploaded transcript and queues its analysis.
func CreateJobHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App
	if !app.Jobs() {
		return c.JSON(http.StatusServiceUnavailable, jobResponse{Message: "Jobs are not available"})
	}

	data, opts, err := bindAnalyzeBody(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, jobResponse{Message: "Invalid request body"})
	}
	if err := opts.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, jobResponse{Message: err.Error()})
	}

	raw, err := readUpload(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, jobResponse{Message: "A transcript file is required"})
	}

	id, err := gonanoid.New()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, jobResponse{Message: "Internal server error"})
	}

	ctx := c.Request().Context()
	key := storage.TranscriptKey(id)
	if err := storage.PutFile(ctx, app.S3, key, "text/plain; charset=utf-8", raw); err != nil {
		logger.Error("[Server] Failed to upload transcript", "job_id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, jobResponse{Message: "Internal server error"})
	}

	msg, err := json.Marshal(queue.AnalyzeJobMsg{
		JobID:         id,
		TranscriptKey: key,
		K:             opts.K,
		Seed:          opts.Seed,
		ClusterNames:  opts.ClusterNames,
		Title:         data.Title,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, jobResponse{Message: "Internal server error"})
	}
	if err := queue.PublishFIFO(ctx, app.Queue, queue.AnalyzeQueue, msg); err != nil {
		logger.Error("[Server] Failed to queue job", "job_id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, jobResponse{Message: "Internal server error"})
	}

	logger.Info("[Server] Queued analysis job", "job_id", id, "bytes", len(raw))
	return c.JSON(http.StatusAccepted, jobResponse{
		Message: "Job queued",
		ID:      id,
		Status:  queue.StatusPending,
	})
}
