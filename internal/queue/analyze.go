package queue

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/OFFIS-RIT/chatlens/internal/storage"
	"github.com/OFFIS-RIT/chatlens/internal/util"
	"github.com/OFFIS-RIT/chatlens/pkg/analysis"
	"github.com/OFFIS-RIT/chatlens/pkg/loader"
	"github.com/OFFIS-RIT/chatlens/pkg/logger"
	"github.com/OFFIS-RIT/chatlens/pkg/report"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type forgetter interface {
	Forget(file loader.TranscriptFile)
}

// AnalyzeProcessor handles messages from AnalyzeQueue.
type AnalyzeProcessor struct {
	Storage storage.Client
	Loader  loader.TranscriptLoader
	// Events receives a JobEvent per handled job. May be nil.
	Events Channel
	Retry  util.RetryPolicy
}

func NewAnalyzeProcessor(client storage.Client, l loader.TranscriptLoader, events Channel) *AnalyzeProcessor {
	return &AnalyzeProcessor{
		Storage: client,
		Loader:  l,
		Events:  events,
		Retry:   util.DefaultRetryPolicy,
	}
}

// Process runs one analysis job. A returned error means the message should
// be retried, unless it wraps ErrPermanent. Transcripts that cannot be
// analysed are not errors: they produce error.json and the job is done.
func (p *AnalyzeProcessor) Process(ctx context.Context, msg string) error {
	var data AnalyzeJobMsg
	if err := json.Unmarshal([]byte(msg), &data); err != nil {
		return fmt.Errorf("%w: invalid message: %w", ErrPermanent, err)
	}
	if data.JobID == "" || data.TranscriptKey == "" {
		return fmt.Errorf("%w: message without job_id or transcript_key", ErrPermanent)
	}

	opts := analysis.DefaultOptions()
	if data.K != 0 {
		opts.K = data.K
	}
	opts.Seed = data.Seed
	opts.ClusterNames = data.ClusterNames

	file := loader.TranscriptFile{ID: data.JobID, Path: data.TranscriptKey, Loader: p.Loader}
	if f, ok := p.Loader.(forgetter); ok {
		defer f.Forget(file)
	}

	start := time.Now()
	raw, err := file.Load(ctx)
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return p.fail(ctx, data.JobID, JobError{Kind: ErrorKindInput, Message: "transcript not found"})
		}
		return fmt.Errorf("failed to load transcript %s: %w", data.TranscriptKey, err)
	}

	res, err := analysis.AnalyzeBytes(raw, opts)
	switch {
	case err == nil:
	case analysis.IsInputError(err):
		return p.fail(ctx, data.JobID, JobError{Kind: ErrorKindInput, Message: err.Error()})
	case analysis.IsConfigError(err):
		return p.fail(ctx, data.JobID, JobError{Kind: ErrorKindConfig, Message: err.Error()})
	default:
		return err
	}

	var csvBuf, pdfBuf, jsonBuf bytes.Buffer
	if err := report.WriteCSV(&csvBuf, res); err != nil {
		return fmt.Errorf("failed to render csv: %w", err)
	}
	if err := report.WritePDF(&pdfBuf, res, data.Title); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	if err := report.WriteJSON(&jsonBuf, res); err != nil {
		return fmt.Errorf("failed to render json: %w", err)
	}

	// result.json marks the job as done, so it goes last.
	uploads := []struct {
		name        string
		contentType string
		data        []byte
	}{
		{storage.CSVFile, "text/csv", csvBuf.Bytes()},
		{storage.PDFFile, "application/pdf", pdfBuf.Bytes()},
		{storage.ResultFile, "application/json", jsonBuf.Bytes()},
	}
	for _, u := range uploads {
		if err := p.put(ctx, storage.ReportKey(data.JobID, u.name), u.contentType, u.data); err != nil {
			return err
		}
	}

	logger.Info(
		"[Queue] Analysis job finished",
		"job_id", data.JobID,
		"authors", len(res.Authors),
		"messages", res.Stats.Messages,
		"duration", time.Since(start),
	)
	p.notify(ctx, TopicJobDone, JobEvent{JobID: data.JobID, Status: string(StatusDone)})
	return nil
}

func (p *AnalyzeProcessor) fail(ctx context.Context, jobID string, jobErr JobError) error {
	logger.Warn("[Queue] Analysis job failed", "job_id", jobID, "kind", jobErr.Kind, "err", jobErr.Message)

	b, err := json.Marshal(jobErr)
	if err != nil {
		return err
	}
	if err := p.put(ctx, storage.ReportKey(jobID, storage.ErrorFile), "application/json", b); err != nil {
		return err
	}
	p.notify(ctx, TopicJobFailed, JobEvent{JobID: jobID, Status: string(StatusFailed), Message: jobErr.Message})
	return nil
}

func (p *AnalyzeProcessor) put(ctx context.Context, key, contentType string, data []byte) error {
	return util.RetryErrWithPolicy(ctx, p.Retry, func(ctx context.Context) error {
		return storage.PutFile(ctx, p.Storage, key, contentType, data)
	})
}

func (p *AnalyzeProcessor) notify(ctx context.Context, topic string, ev JobEvent) {
	if p.Events == nil {
		return
	}
	b, err := json.Marshal(ev)
	if err != nil {
		return
	}
	if err := PublishTopic(ctx, p.Events, topic, b); err != nil {
		logger.Warn("[Queue] Failed to publish job event", "job_id", ev.JobID, "topic", topic, "err", err)
	}
}
