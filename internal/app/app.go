package app

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
	swaggerfiles "github.com/swaggo/files"
	swagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "github.com/mkovalenko-dev/weather-search-api/docs"
	"github.com/mkovalenko-dev/weather-search-api/internal/config"
	exporthandler "github.com/mkovalenko-dev/weather-search-api/internal/handlers/export"
	historyhandler "github.com/mkovalenko-dev/weather-search-api/internal/handlers/history"
	weatherhandler "github.com/mkovalenko-dev/weather-search-api/internal/handlers/weather"
	"github.com/mkovalenko-dev/weather-search-api/internal/repository/sqlite"
	"github.com/mkovalenko-dev/weather-search-api/internal/services/export"
	"github.com/mkovalenko-dev/weather-search-api/internal/services/history"
	"github.com/mkovalenko-dev/weather-search-api/internal/services/logger"
	"github.com/mkovalenko-dev/weather-search-api/internal/services/metrics"
	serviceWeather "github.com/mkovalenko-dev/weather-search-api/internal/services/weather"
)

const (
	shutdownTimeout = 5 * time.Second

	logFileMode = 0o644
)

type App struct {
	cfg *config.Config
	log zerolog.Logger
	m   *metrics.Metrics
}

type ServiceContainer struct {
	WeatherService *serviceWeather.Service
	HistoryService *history.Service
	ExportService  *export.Service
	Repository     *sqlite.HistoryRepository

	Router *gin.Engine
	Srv    *http.Server
	Db     *sql.DB

	upstreamLog *zap.Logger
}

func New(cfg *config.Config, log zerolog.Logger, m *metrics.Metrics) *App {
	return &App{cfg: cfg, log: log, m: m}
}

func (a *App) Init() (ServiceContainer, error) {
	a.log.Info().Str("address", a.cfg.ServerAddress()).Msg("initializing application")

	db, err := CreateSqliteDb(a.cfg.DB.Source)
	if err != nil {
		return ServiceContainer{}, err
	}

	if err := InitSqliteDb(db, a.cfg.DB.MigrationsPath); err != nil {
		return ServiceContainer{}, err
	}

	upstreamLog, err := newFileLogger(a.cfg.UpstreamLogsPath)
	if err != nil {
		return ServiceContainer{}, err
	}

	httpLogClient := &http.Client{
		Transport: logger.NewRoundTripper(upstreamLog),
	}

	openWeatherClient := serviceWeather.NewClientOpenWeatherMap(
		a.cfg.OpenWeatherMap.APIKey,
		a.cfg.OpenWeatherMap.BaseURL,
		httpLogClient,
		a.log,
	)

	guardedProvider := serviceWeather.NewBreakerProvider(
		"openweathermap",
		serviceWeather.BreakerConfig{
			TimeInterval: time.Duration(a.cfg.Breaker.TimeInterval) * time.Second,
			TimeTimeOut:  time.Duration(a.cfg.Breaker.TimeTimeOut) * time.Second,
			RepeatNumber: a.cfg.Breaker.RepeatNumber,
		},
		openWeatherClient,
	)

	weatherService := serviceWeather.NewService(
		a.log,
		guardedProvider,
		time.Duration(a.cfg.OpenWeatherMap.Timeout)*time.Second,
	)

	repo := sqlite.NewHistoryRepository(db, a.log)
	historyService := history.NewService(repo, a.log, a.m)
	exportService := export.NewService(repo, a.log, a.m)

	router := gin.New()
	router.Use(gin.Recovery(), a.m.HTTPMiddleware())

	apiServer := &http.Server{
		Addr:        a.cfg.ServerAddress(),
		Handler:     router,
		ReadTimeout: time.Duration(a.cfg.Server.ReadTimeout) * time.Second,
	}

	return ServiceContainer{
		WeatherService: weatherService,
		HistoryService: historyService,
		ExportService:  exportService,
		Repository:     repo,

		Router: router,
		Srv:    apiServer,
		Db:     db,

		upstreamLog: upstreamLog,
	}, nil
}

// RegisterRoutes mounts the API surface on the container's router.
func (a *App) RegisterRoutes(c ServiceContainer) {
	weatherHandler := weatherhandler.NewHandler(c.WeatherService)
	historyHandler := historyhandler.NewHandler(c.HistoryService)
	exportHandler := exporthandler.NewHandler(c.ExportService)

	api := c.Router.Group("/api")
	{
		api.GET("/health", a.health)
		api.GET("/weather/current/:location", weatherHandler.GetCurrent)
		api.GET("/weather/forecast/:location", weatherHandler.GetForecast)
		api.POST("/weather/history", historyHandler.Save)
		api.GET("/weather/history", historyHandler.List)
		api.PUT("/weather/history/:id", historyHandler.Update)
		api.DELETE("/weather/history/:id", historyHandler.Delete)
		api.GET("/export/:format", exportHandler.Export)
	}
	c.Router.GET("/metrics", gin.WrapH(a.m.Handler()))
	c.Router.GET("/swagger/*any", swagger.WrapHandler(swaggerfiles.Handler))
	c.Router.NoRoute(func(gc *gin.Context) {
		gc.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
	})
}

// Start registers the routes, serves until ctx is cancelled, then shuts the
// container down.
func (a *App) Start(ctx context.Context, c ServiceContainer) error {
	a.RegisterRoutes(c)

	errCh := make(chan error, 1)
	go func() {
		if err := c.Srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	a.log.Info().Str("address", a.cfg.ServerAddress()).Msg("server started")

	select {
	case err := <-errCh:
		a.stop(c)
		return err
	case <-ctx.Done():
		a.log.Info().Msg("shutdown signal received")
		return a.stop(c)
	}
}

func (a *App) stop(c ServiceContainer) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var failed error

	if err := c.Srv.Shutdown(ctx); err != nil {
		a.log.Error().Err(err).Msg("HTTP shutdown error")
		failed = err
	} else {
		a.log.Info().Msg("HTTP server stopped")
	}

	if err := c.Db.Close(); err != nil {
		a.log.Error().Err(err).Msg("DB close error")
		failed = err
	} else {
		a.log.Info().Msg("database closed")
	}

	if err := c.upstreamLog.Sync(); err != nil {
		a.log.Warn().Err(err).Msg("failed to sync upstream log")
	}

	a.log.Info().Msg("shutdown complete")

	return failed
}

func (a *App) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func CreateSqliteDb(name string) (*sql.DB, error) {
	if name == "" {
		return nil, errors.New("database name cannot be empty")
	}

	db, err := sql.Open("sqlite", "file:"+name+"?cache=shared&mode=rwc")
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func InitSqliteDb(db *sql.DB, migrationsPath string) error {
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}

	return goose.Up(db, migrationsPath)
}

func newFileLogger(filePath string) (*zap.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(filepath.Clean(filePath)), 0o750); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(filepath.Clean(filePath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, logFileMode)
	if err != nil {
		return nil, err
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(file),
		zap.InfoLevel,
	)

	return zap.New(core), nil
}
