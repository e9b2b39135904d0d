package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	httpapi "github.com/yourorg/listings-proxy/http"
	"github.com/yourorg/listings-proxy/internal/logger"
	"github.com/yourorg/listings-proxy/internal/metrics"
)

type RouterDeps struct {
	Listings   httpapi.SearchAPI
	Resolver   httpapi.PhotoResolver
	PostalCode string
	Log        *slog.Logger
	Metrics    *metrics.Metrics
}

func BuildRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}))
	r.Use(logger.Middleware(deps.Log))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}
	r.Use(render.SetContentType(render.ContentTypeJSON))

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"ok":true}`)) })

	httpapi.RegisterListings(r, httpapi.ListingsDeps{API: deps.Listings, PostalCode: deps.PostalCode})
	httpapi.RegisterSearch(r, httpapi.SearchDeps{API: deps.Listings})
	httpapi.RegisterPhotos(r, httpapi.PhotosDeps{Resolver: deps.Resolver})

	return r
}
