package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/yourorg/listings-proxy/internal/env"
	"github.com/yourorg/listings-proxy/internal/logger"
	"github.com/yourorg/listings-proxy/internal/metrics"
	"github.com/yourorg/listings-proxy/internal/photos"
	"github.com/yourorg/listings-proxy/internal/scrape"
	"github.com/yourorg/listings-proxy/realty"
)

func main() {
	_ = godotenv.Load()

	log := logger.New(slog.LevelInfo)
	slog.SetDefault(log)

	apiKey := env.Must("RAPIDAPI_KEY")
	port := env.GetInt("PORT", 4002)
	postal := env.Get("DEFAULT_POSTAL_CODE", "90004")

	m := metrics.New()
	client := realty.NewClient(apiKey)
	client.OnCall = m.ObserveUpstream

	resolver := &photos.Resolver{API: client, Scraper: scrape.New(), Log: log}

	router := BuildRouter(RouterDeps{
		Listings:   client,
		Resolver:   resolver,
		PostalCode: postal,
		Log:        log,
		Metrics:    m,
	})

	log.Info("listings-proxy listening", "port", port)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", port), router); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
