package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/OFFIS-RIT/chatlens/internal/storage"
)

type JobStatus string

const (
	StatusPending JobStatus = "pending"
	StatusFailed  JobStatus = "failed"
	StatusDone    JobStatus = "done"
)

var ErrJobNotFound = errors.New("job not found")

// Job is the state of an analysis job as derived from the bucket.
type Job struct {
	ID     string    `json:"id"`
	Status JobStatus `json:"status"`
	Error  *JobError `json:"error,omitempty"`
}

// GetJob reports whether a job is done, failed or still pending. A job
// without a stored transcript or any report is unknown.
func GetJob(ctx context.Context, client storage.Client, id string) (Job, error) {
	job := Job{ID: id}

	done, err := storage.Exists(ctx, client, storage.ReportKey(id, storage.ResultFile))
	if err != nil {
		return job, err
	}
	if done {
		job.Status = StatusDone
		return job, nil
	}

	failed, err := storage.Exists(ctx, client, storage.ReportKey(id, storage.ErrorFile))
	if err != nil {
		return job, err
	}
	if failed {
		b, err := storage.GetFile(ctx, client, storage.ReportKey(id, storage.ErrorFile))
		if err != nil {
			return job, err
		}
		jobErr := new(JobError)
		if err := json.Unmarshal(b, jobErr); err != nil {
			return job, fmt.Errorf("failed to decode error of job %s: %w", id, err)
		}
		job.Status = StatusFailed
		job.Error = jobErr
		return job, nil
	}

	pending, err := storage.Exists(ctx, client, storage.TranscriptKey(id))
	if err != nil {
		return job, err
	}
	if !pending {
		return job, ErrJobNotFound
	}
	job.Status = StatusPending
	return job, nil
}

// DeleteJob removes the transcript and all reports of a job.
func DeleteJob(ctx context.Context, client storage.Client, id string) error {
	if err := storage.DeleteFolder(ctx, client, storage.ReportPrefix(id)); err != nil {
		return err
	}
	return storage.DeleteFolder(ctx, client, storage.TranscriptKey(id))
}
