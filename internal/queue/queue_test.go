package queue

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/OFFIS-RIT/chatlens/internal/storage"
	"github.com/OFFIS-RIT/chatlens/internal/storage/storagetest"
	"github.com/OFFIS-RIT/chatlens/internal/util"
	loaders3 "github.com/OFFIS-RIT/chatlens/pkg/loader/s3"
	"github.com/OFFIS-RIT/chatlens/pkg/sample"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	exchange string
	key      string
	msg      amqp091.Publishing
}

type fakeChannel struct {
	mu         sync.Mutex
	queues     []string
	queueArgs  map[string]amqp091.Table
	exchanges  []string
	published  []published
	publishErr error
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{queueArgs: make(map[string]amqp091.Table)}
}

func (c *fakeChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp091.Table) (amqp091.Queue, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queues = append(c.queues, name)
	c.queueArgs[name] = args
	return amqp091.Queue{Name: name}, nil
}

func (c *fakeChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.exchanges = append(c.exchanges, name)
	return nil
}

func (c *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.publishErr != nil {
		return c.publishErr
	}
	c.published = append(c.published, published{exchange: exchange, key: key, msg: msg})
	return nil
}

type fakeAck struct {
	acked   int
	nacked  int
	requeue bool
}

func (a *fakeAck) Ack(tag uint64, multiple bool) error { a.acked++; return nil }
func (a *fakeAck) Nack(tag uint64, multiple, requeue bool) error {
	a.nacked++
	a.requeue = requeue
	return nil
}
func (a *fakeAck) Reject(tag uint64, requeue bool) error { return nil }

func TestSetupQueues(t *testing.T) {
	ch := newFakeChannel()
	require.NoError(t, SetupQueues(ch, []string{AnalyzeQueue}))

	assert.Equal(t, []string{"analyze_queue", "analyze_queue_dlq", "analyze_queue_retry"}, ch.queues)
	args := ch.queueArgs["analyze_queue_retry"]
	assert.Equal(t, int32(10000), args["x-message-ttl"])
	assert.Equal(t, "analyze_queue", args["x-dead-letter-routing-key"])
}

func TestPublishFIFO(t *testing.T) {
	ch := newFakeChannel()
	require.NoError(t, PublishFIFO(context.Background(), ch, AnalyzeQueue, []byte(`{}`)))
	require.Len(t, ch.published, 1)
	assert.Equal(t, "", ch.published[0].exchange)
	assert.Equal(t, AnalyzeQueue, ch.published[0].key)
	assert.Equal(t, amqp091.Persistent, ch.published[0].msg.DeliveryMode)
}

func TestHandleProcessingErrorRetries(t *testing.T) {
	ch := newFakeChannel()
	ack := &fakeAck{}
	msg := amqp091.Delivery{
		Acknowledger: ack,
		Body:         []byte("x"),
		DeliveryMode: amqp091.Persistent,
		Headers:      amqp091.Table{"x-retries": int64(3)},
	}

	HandleProcessingError(context.Background(), ch, msg, AnalyzeQueue, errors.New("boom"))

	require.Len(t, ch.published, 1)
	assert.Equal(t, "analyze_queue_retry", ch.published[0].key)
	assert.Equal(t, int32(4), ch.published[0].msg.Headers["x-retries"])
	assert.Equal(t, amqp091.Persistent, ch.published[0].msg.DeliveryMode)
	assert.Equal(t, 1, ack.acked)
}

func TestHandleProcessingErrorDeadLetters(t *testing.T) {
	tests := []struct {
		name    string
		headers amqp091.Table
		err     error
	}{
		{"retries exhausted", amqp091.Table{"x-retries": int32(MaxRetries)}, errors.New("boom")},
		{"permanent", nil, ErrPermanent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := newFakeChannel()
			ack := &fakeAck{}
			msg := amqp091.Delivery{Acknowledger: ack, Body: []byte("x"), DeliveryMode: amqp091.Persistent, Headers: tt.headers}

			HandleProcessingError(context.Background(), ch, msg, AnalyzeQueue, tt.err)

			require.Len(t, ch.published, 1)
			assert.Equal(t, "analyze_queue_dlq", ch.published[0].key)
			assert.Equal(t, amqp091.Persistent, ch.published[0].msg.DeliveryMode)
			assert.Equal(t, 1, ack.acked)
		})
	}
}

func TestHandleProcessingErrorRequeuesWhenPublishFails(t *testing.T) {
	ch := newFakeChannel()
	ch.publishErr = errors.New("closed")
	ack := &fakeAck{}

	HandleProcessingError(context.Background(), ch, amqp091.Delivery{Acknowledger: ack}, AnalyzeQueue, errors.New("boom"))

	assert.Equal(t, 0, ack.acked)
	assert.Equal(t, 1, ack.nacked)
	assert.True(t, ack.requeue)
}

func newProcessor(mem *storagetest.Memory, ch Channel) *AnalyzeProcessor {
	p := NewAnalyzeProcessor(mem, loaders3.NewS3TranscriptLoaderWithClient(storage.Bucket(), mem), ch)
	p.Retry = util.RetryPolicy{MaxTries: 2}
	return p
}

func jobMsg(t *testing.T, msg AnalyzeJobMsg) string {
	t.Helper()
	b, err := json.Marshal(msg)
	require.NoError(t, err)
	return string(b)
}

func TestProcessWritesReports(t *testing.T) {
	ctx := context.Background()
	mem := storagetest.New()
	mem.Set(storage.TranscriptKey("job1"), []byte(sample.Generate(sample.Options{
		Messages: 200,
		Users:    10,
		Seed:     3,
		Start:    time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
	})))
	ch := newFakeChannel()

	err := newProcessor(mem, ch).Process(ctx, jobMsg(t, AnalyzeJobMsg{
		JobID:         "job1",
		TranscriptKey: storage.TranscriptKey("job1"),
		K:             3,
		Seed:          42,
	}))
	require.NoError(t, err)

	for _, name := range []string{storage.CSVFile, storage.PDFFile, storage.ResultFile} {
		_, ok := mem.Get(storage.ReportKey("job1", name))
		assert.True(t, ok, name)
	}
	assert.Equal(t, "application/pdf", mem.ContentType(storage.ReportKey("job1", storage.PDFFile)))

	job, err := GetJob(ctx, mem, "job1")
	require.NoError(t, err)
	assert.Equal(t, StatusDone, job.Status)

	require.Len(t, ch.published, 1)
	assert.Equal(t, TopicJobDone, ch.published[0].key)
}

func TestProcessConfigErrorIsPermanent(t *testing.T) {
	ctx := context.Background()
	mem := storagetest.New()
	mem.Set(storage.TranscriptKey("job2"), []byte("12/01/2024, 10:00 AM - Alice: hi\n12/01/2024, 10:01 AM - Bob: hey"))

	err := newProcessor(mem, nil).Process(ctx, jobMsg(t, AnalyzeJobMsg{
		JobID:         "job2",
		TranscriptKey: storage.TranscriptKey("job2"),
		K:             5,
	}))
	require.NoError(t, err)

	job, err := GetJob(ctx, mem, "job2")
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, job.Status)
	require.NotNil(t, job.Error)
	assert.Equal(t, ErrorKindConfig, job.Error.Kind)
}

func TestProcessInputErrorIsPermanent(t *testing.T) {
	ctx := context.Background()
	mem := storagetest.New()
	mem.Set(storage.TranscriptKey("job3"), []byte("no timestamps in here"))

	err := newProcessor(mem, nil).Process(ctx, jobMsg(t, AnalyzeJobMsg{JobID: "job3", TranscriptKey: storage.TranscriptKey("job3")}))
	require.NoError(t, err)

	job, err := GetJob(ctx, mem, "job3")
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, job.Status)
	assert.Equal(t, ErrorKindInput, job.Error.Kind)
}

func TestProcessMissingTranscript(t *testing.T) {
	mem := storagetest.New()
	err := newProcessor(mem, nil).Process(context.Background(), jobMsg(t, AnalyzeJobMsg{JobID: "gone", TranscriptKey: "transcripts/gone.txt"}))
	require.NoError(t, err)

	_, ok := mem.Get(storage.ReportKey("gone", storage.ErrorFile))
	assert.True(t, ok)
}

func TestProcessMalformedMessage(t *testing.T) {
	err := newProcessor(storagetest.New(), nil).Process(context.Background(), "{not json")
	assert.ErrorIs(t, err, ErrPermanent)
}

func TestProcessUploadFailureIsRetried(t *testing.T) {
	mem := storagetest.New()
	mem.Set(storage.TranscriptKey("job4"), []byte("no timestamps in here"))
	mem.PutErr = errors.New("unavailable")

	err := newProcessor(mem, nil).Process(context.Background(), jobMsg(t, AnalyzeJobMsg{JobID: "job4", TranscriptKey: storage.TranscriptKey("job4")}))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPermanent)
	assert.Equal(t, 2, mem.Puts)
}

func TestGetJob(t *testing.T) {
	ctx := context.Background()
	mem := storagetest.New()

	_, err := GetJob(ctx, mem, "nope")
	assert.ErrorIs(t, err, ErrJobNotFound)

	mem.Set(storage.TranscriptKey("p"), []byte("x"))
	job, err := GetJob(ctx, mem, "p")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, job.Status)

	require.NoError(t, DeleteJob(ctx, mem, "p"))
	assert.Empty(t, mem.Keys())
}
