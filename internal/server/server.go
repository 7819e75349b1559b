package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/OFFIS-RIT/chatlens/internal/config"
	"github.com/OFFIS-RIT/chatlens/internal/queue"
	mid "github.com/OFFIS-RIT/chatlens/internal/server/middleware"
	"github.com/OFFIS-RIT/chatlens/internal/storage"
	"github.com/OFFIS-RIT/chatlens/internal/util"
	"github.com/OFFIS-RIT/chatlens/pkg/analysis"
	"github.com/OFFIS-RIT/chatlens/pkg/logger"

	"github.com/go-playground/validator"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

// Options configures the HTTP layer.
type Options struct {
	BodyLimit string
	// RateLimit is the allowed requests per second and client. Zero
	// disables rate limiting.
	RateLimit float64
}

// New builds the echo instance with middleware and routes.
func New(app *mid.App, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				logger.Error("[Server] Request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency, "request_id", v.RequestID, "err", v.Error)
				return nil
			}
			logger.Info("[Server] Request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency, "request_id", v.RequestID)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	if opts.BodyLimit != "" {
		e.Use(middleware.BodyLimit(opts.BodyLimit))
	}
	if opts.RateLimit > 0 {
		e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(opts.RateLimit))))
	}
	e.Use(mid.AppContextMiddleware(app))

	RegisterRoutes(e)
	return e
}

func Init() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	defaults := analysis.Options{
		K:    util.GetEnvInt("ANALYSIS_K", analysis.DefaultK),
		Seed: int64(util.GetEnvInt("ANALYSIS_SEED", analysis.DefaultSeed)),
	}
	if path := util.GetEnv("CLUSTER_NAMES_FILE"); path != "" {
		names, err := config.LoadClusterNames(path)
		if err != nil {
			logger.Fatal("Failed to load cluster names", "path", path, "err", err)
		}
		defaults.ClusterNames = names
	}
	if err := defaults.Validate(); err != nil {
		logger.Fatal("Invalid analysis defaults", "err", err)
	}

	app := &mid.App{Defaults: defaults}

	if storage.Enabled() {
		s3, err := storage.NewS3Client(ctx)
		if err != nil {
			logger.Fatal("Failed to create S3 client", "err", err)
		}
		app.S3 = s3
	}

	if queue.Enabled() {
		que, err := queue.Init()
		if err != nil {
			logger.Fatal("Failed to connect to broker", "err", err)
		}
		defer que.Close()
		ch, err := que.Channel()
		if err != nil {
			logger.Fatal("Failed to open channel", "err", err)
		}
		defer ch.Close()
		if err := queue.SetupQueues(ch, []string{queue.AnalyzeQueue}); err != nil {
			logger.Fatal("Failed to declare queues", "err", err)
		}
		app.Queue = ch
	}

	if !app.Jobs() {
		logger.Warn("Object storage or broker not configured, job endpoints are disabled")
	}

	e := New(app, Options{
		BodyLimit: util.GetEnvString("MAX_UPLOAD_SIZE", "20M"),
		RateLimit: util.GetEnvNumeric("RATE_LIMIT", 10),
	})

	go func() {
		port := util.GetEnvString("PORT", "8080")
		logger.Info("Starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}
