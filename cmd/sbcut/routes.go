package main

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	cutplanhandler "sbcut/http-server/cutplan"
	"sbcut/http-server/decompose"
	reporthandler "sbcut/http-server/report"
	reservehandler "sbcut/http-server/reserve"
	"sbcut/internal/config"
	"sbcut/internal/middleware/auth"
	"sbcut/internal/service/cutplan"
	"sbcut/internal/service/flatten"
	"sbcut/internal/service/report"
	"sbcut/internal/service/reserve"
)

func routes(
	cfg *config.Config,
	log *slog.Logger,
	flattener *flatten.Service,
	allocator *cutplan.Allocator,
	engine *reserve.Engine,
	reports *report.Service,
) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8081", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Post("/api/bom/decompose", decompose.Decompose(log, flattener))
	router.Post("/api/cutplan", cutplanhandler.Plan(log, flattener, allocator))
	router.Post("/api/report/excel", reporthandler.GenerateReportExcel(log, reports))

	// reservations mutate warehouse state, so they sit behind basic auth
	reserveRouter := chi.NewRouter()
	reserveRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))

	reserveRouter.Post("/", reservehandler.Reserve(log, flattener, engine))
	reserveRouter.Delete("/{runID}", reservehandler.Clear(log, engine))
	reserveRouter.Get("/{runID}/shortfall", reservehandler.Shortfall(log, engine))

	router.Mount("/api/reserve", reserveRouter)

	return router
}
