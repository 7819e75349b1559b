package queue

import (
	"errors"

	"github.com/OFFIS-RIT/chatlens/pkg/profile"
)

const AnalyzeQueue = "analyze_queue"

// Topics published on the topic exchange when a job finishes.
const (
	TopicJobDone   = "analysis.done"
	TopicJobFailed = "analysis.failed"
)

// ErrPermanent marks messages that can never be processed, such as a body
// that is not valid JSON. They go straight to the dead-letter queue.
var ErrPermanent = errors.New("permanent failure")

// AnalyzeJobMsg asks the worker to analyse the transcript stored under
// TranscriptKey and write its reports below reports/{JobID}/.
type AnalyzeJobMsg struct {
	JobID         string        `json:"job_id"`
	TranscriptKey string        `json:"transcript_key"`
	K             int           `json:"k"`
	Seed          int64         `json:"seed"`
	ClusterNames  profile.Names `json:"cluster_names,omitempty"`
	Title         string        `json:"title,omitempty"`
}

// JobEvent is published on the topic exchange after a job was handled.
type JobEvent struct {
	JobID   string `json:"job_id"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// JobError is the content of error.json for a job that failed permanently.
type JobError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

const (
	ErrorKindInput  = "input"
	ErrorKindConfig = "config"
)
