package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	_ "modernc.org/sqlite"

	"github.com/mkovalenko-dev/weather-search-api/internal/app"
	"github.com/mkovalenko-dev/weather-search-api/internal/config"
	"github.com/mkovalenko-dev/weather-search-api/internal/services/metrics"
	"github.com/mkovalenko-dev/weather-search-api/pkg/logger"
)

const serviceName = "weather-search-api"

// @title Weather Search API
// @version 1.0
// @description API for fetching, saving and exporting weather searches
// @host localhost:8080
// @BasePath /api/
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded:", err)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Panic(err)
	}

	l, err := logger.NewLogger(cfg.LogsPath, serviceName)
	if err != nil {
		log.Panic(err)
	}

	m := metrics.NewMetrics("weather_search_api")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application := app.New(cfg, l, m)

	container, err := application.Init()
	if err != nil {
		l.Fatal().Err(err).Msg("failed to initialize application")
	}

	if err := application.Start(ctx, container); err != nil {
		l.Fatal().Err(err).Msg("application terminated")
	}
}
