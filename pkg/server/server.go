package server

import (
	"net/http"

	handlers "github.com/de-tools/top-users/pkg/handlers/usage"
	topusersmiddleware "github.com/de-tools/top-users/pkg/server/middleware"
	usagestore "github.com/de-tools/top-users/pkg/store/duckdb/usage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type Dependencies struct {
	UsageStore usagestore.Store
	Logger     zerolog.Logger
}

type Config struct {
	Dependencies Dependencies
}

// ConfigureRouter wires the usage archive read API.
func ConfigureRouter(config Config) http.Handler {
	usageHandler := handlers.NewHandler(config.Dependencies.UsageStore)

	router := chi.NewRouter()
	router.Use(topusersmiddleware.Logger(&config.Dependencies.Logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/months", usageHandler.ListMonths)
		r.Get("/months/{month}/usage", usageHandler.GetMonthUsage)
		r.Get("/usage/totals", usageHandler.GetTotals)
	})

	return router
}
