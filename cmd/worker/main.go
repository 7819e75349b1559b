package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/OFFIS-RIT/chatlens/internal/queue"
	"github.com/OFFIS-RIT/chatlens/internal/storage"
	"github.com/OFFIS-RIT/chatlens/internal/util"
	loaders3 "github.com/OFFIS-RIT/chatlens/pkg/loader/s3"
	"github.com/OFFIS-RIT/chatlens/pkg/logger"
	"github.com/OFFIS-RIT/chatlens/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// logger
	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug:  util.GetEnvBool("DEBUG", false),
		JSON:   util.GetEnv("LOG_FORMAT") == "json",
		Prefix: "worker",
	})
	logger.Init(consoleLogger)

	// Init s3 client
	client, err := storage.NewS3Client(ctx)
	if err != nil {
		logger.Fatal("Could not create S3 client", "err", err)
	}
	transcripts := loaders3.NewS3TranscriptLoaderWithClient(storage.Bucket(), client)

	// Init rabbitmq
	conn, err := queue.Init()
	if err != nil {
		logger.Fatal("Could not connect to broker", "err", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Fatal("Failed to open channel", "err", err)
	}
	defer ch.Close()

	if err := queue.SetupQueues(ch, []string{queue.AnalyzeQueue}); err != nil {
		logger.Fatal("Failed to declare queues", "err", err)
	}

	// Separate consumer channel with prefetch=1 so only one job runs at a time.
	consumerCh, err := conn.Channel()
	if err != nil {
		logger.Fatal("Failed to open consumer channel", "err", err)
	}
	defer consumerCh.Close()

	if err := consumerCh.Qos(1, 0, false); err != nil {
		logger.Fatal("Failed to set QoS", "err", err)
	}

	msgs, err := consumerCh.Consume(
		queue.AnalyzeQueue,
		"analyze_queue_consumer",
		false, // autoAck
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,   // args
	)
	if err != nil {
		logger.Fatal("Failed to start consuming", "queue", queue.AnalyzeQueue, "err", err)
	}

	processor := queue.NewAnalyzeProcessor(client, transcripts, ch)
	logger.Info("Listening for messages", "queue", queue.AnalyzeQueue)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Shutdown signal received, exiting...")
			return
		case msg, ok := <-msgs:
			if !ok {
				logger.Info("Message channel closed", "queue", queue.AnalyzeQueue)
				return
			}

			startTime := time.Now()
			logger.Info("Received message", "queue", queue.AnalyzeQueue)

			if err := processor.Process(ctx, string(msg.Body)); err != nil {
				logger.Error("Error processing message", "queue", queue.AnalyzeQueue, "err", err)
				queue.HandleProcessingError(ctx, ch, msg, queue.AnalyzeQueue, err)
			} else {
				if err := msg.Ack(false); err != nil {
					logger.Error("Failed to ack message", "err", err)
				}
				logger.Info("Message processed successfully", "queue", queue.AnalyzeQueue)
			}

			d := time.Since(startTime)
			logger.Info(
				"Processing time",
				"duration", fmt.Sprintf("%02d:%02d:%02d", int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60),
			)
			logger.Info("Waiting for next message")
		}
	}
}
