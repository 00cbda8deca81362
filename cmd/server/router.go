package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sikum-app/sikum-api/internal/api"
	apiMiddleware "github.com/sikum-app/sikum-api/internal/api/middleware"
	"github.com/sikum-app/sikum-api/internal/api/shared"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	sessionHandler := api.NewSessionHandler(
		app.studyService,
		app.loader,
		app.config.Server.MaxUploadBytes,
		app.logger,
	)

	r.Route("/api", sessionHandler.RegisterRoutes)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}
