package middleware

import (
	"github.com/OFFIS-RIT/chatlens/internal/queue"
	"github.com/OFFIS-RIT/chatlens/internal/storage"
	"github.com/OFFIS-RIT/chatlens/pkg/analysis"

	"github.com/labstack/echo/v4"
)

// App holds the dependencies shared by all handlers. S3 and Queue are nil
// when object storage or the broker are not configured; only the
// synchronous analysis endpoint works then.
type App struct {
	S3       storage.Client
	Queue    queue.Channel
	Defaults analysis.Options
}

// Jobs reports whether asynchronous jobs are available.
func (a *App) Jobs() bool {
	return a.S3 != nil && a.Queue != nil
}

type AppContext struct {
	echo.Context
	App *App
}

func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app}
			return next(cc)
		}
	}
}
