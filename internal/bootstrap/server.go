package bootstrap

import (
	"net/http"
	"time"

	app "github.com/ekaterinavoj/validity-view/internal/application/trainingimport"
	"github.com/ekaterinavoj/validity-view/internal/config"
	infrafile "github.com/ekaterinavoj/validity-view/internal/infrastructure/file"
	"github.com/ekaterinavoj/validity-view/internal/infrastructure/metrics"
	"github.com/ekaterinavoj/validity-view/internal/infrastructure/repository"
	httpecho "github.com/ekaterinavoj/validity-view/internal/interfaces/http/echo"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SessionSweepInterval is how often expired import sessions are dropped.
const SessionSweepInterval = time.Minute

// Dependencies are the long-lived resources the HTTP server is built from.
type Dependencies struct {
	DB       *gorm.DB
	Pool     *pgxpool.Pool
	Config   config.Config
	Logger   *logrus.Logger
	Registry *prometheus.Registry
}

// Server is the echo instance plus the session store whose sweeper the
// caller runs for the lifetime of the process.
type Server struct {
	Echo     *echo.Echo
	Sessions *app.SessionStore
}

func NewHTTPServer(deps Dependencies) (*Server, error) {
	settings, err := deps.Config.Import.Settings()
	if err != nil {
		return nil, err
	}

	server := echo.New()
	server.HideBanner = true
	server.HidePort = true
	server.Validator = httpecho.NewValidator()

	server.Use(middleware.Recover())
	server.Use(middleware.RequestID())
	server.Use(middleware.BodyLimit(deps.Config.Import.MaxUpload))
	server.Use(requestLogger(deps.Logger))

	collector := metrics.NewCollector(deps.Registry)
	sessions := app.NewSessionStore(deps.Config.Import.SessionTTL)

	catalogue := repository.NewCatalogueRepository(deps.DB)
	trainings := repository.NewTrainingRepository(deps.Pool)
	runs := repository.NewImportRunRepository(deps.DB)
	committer := app.NewCommitter(trainings, app.CommitterConfig{ChunkSize: deps.Config.Import.ChunkSize}, deps.Logger)

	importHandler := httpecho.NewImportHandler(
		app.NewPreviewImport(catalogue, sessions, settings, collector, deps.Logger),
		app.NewReviewImport(sessions),
		app.NewCommitImport(sessions, committer, runs, collector, deps.Logger),
		app.NewSessionQueries(sessions),
		infrafile.Codec{},
		deps.Logger,
	)

	httpecho.RegisterRoutes(server, importHandler)

	server.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	server.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	return &Server{Echo: server, Sessions: sessions}, nil
}

func requestLogger(logger *logrus.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency_ms": v.Latency.Milliseconds(),
				"request_id": v.RequestID,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request failed")
				return nil
			}
			entry.Info("request")
			return nil
		},
	})
}
