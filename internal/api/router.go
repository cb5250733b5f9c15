package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/indic-translate/backend/internal/api/handlers"
	"github.com/indic-translate/backend/internal/api/middleware"
	"github.com/indic-translate/backend/internal/auth"
	"github.com/indic-translate/backend/internal/config"
	"github.com/indic-translate/backend/internal/db"
	"github.com/indic-translate/backend/internal/glossary"
	"github.com/indic-translate/backend/internal/job"
	"github.com/indic-translate/backend/internal/subtitle"
	"github.com/indic-translate/backend/internal/translate"
)

// jsonBodyLimit caps JSON request bodies; subtitle uploads carry their own limit.
const jsonBodyLimit = 2 << 20

func NewRouter(
	database *db.Database,
	jwtService *auth.JWTService,
	cfg *config.Config,
	orch *translate.Orchestrator,
	subTranslator *subtitle.Translator,
	glossaries *glossary.FileSource,
	jobQueue *job.JobQueue,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(cors.Handler(middleware.CORSHandler(cfg.CORSOrigins)))

	// Provider calls are the expensive resource; limit per IP per minute.
	translateLimiter := middleware.NewRateLimiter(60, time.Minute)

	// Handlers
	authHandler := handlers.NewAuthHandler(database, jwtService)
	translateHandler := handlers.NewTranslateHandler(orch, glossaries, database)
	subtitleHandler := handlers.NewSubtitleHandler(subTranslator, jobQueue, database)
	documentHandler := handlers.NewDocumentHandler(jobQueue, database)
	jobHandler := handlers.NewJobHandler(jobQueue)
	feedbackHandler := handlers.NewFeedbackHandler(database)
	settingsHandler := handlers.NewSettingsHandler(database)

	r.Route("/api", func(r chi.Router) {
		// Public
		r.Get("/health", handlers.Health)
		r.With(middleware.MaxBodySize(jsonBodyLimit)).Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(jwtService))

			// Auth
			r.Get("/auth/me", authHandler.Me)

			// Translation
			r.Group(func(r chi.Router) {
				r.Use(translateLimiter.Handler)
				r.With(middleware.MaxBodySize(jsonBodyLimit)).Post("/translate", translateHandler.Translate)
				r.With(middleware.MaxBodySize(jsonBodyLimit)).Post("/translate/batch", translateHandler.TranslateBatch)
				r.With(middleware.MaxBodySize(jsonBodyLimit)).Post("/translate/detect", translateHandler.Detect)
				r.Post("/subtitle/translate", subtitleHandler.Translate)
				r.With(middleware.MaxBodySize(jsonBodyLimit)).Post("/document/translate", documentHandler.Translate)
			})
			r.Get("/translate/languages", translateHandler.Languages)
			r.Get("/translate/regions", translateHandler.Regions)
			r.Get("/translate/domains", translateHandler.Domains)

			// Jobs
			r.Get("/jobs", jobHandler.ListJobs)
			r.Get("/jobs/active", jobHandler.ActiveJobs)
			r.Get("/jobs/{id}", jobHandler.GetJob)
			r.Delete("/jobs/{id}", jobHandler.CancelJob)
			r.Post("/jobs/{id}/retry", jobHandler.RetryJob)

			// Feedback and dashboard
			r.With(middleware.MaxBodySize(jsonBodyLimit)).Post("/feedback", feedbackHandler.Submit)
			r.Get("/dashboard/stats", feedbackHandler.Stats)

			// Settings (admin only)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole("admin"))
				r.Get("/settings", settingsHandler.GetSettings)
				r.With(middleware.MaxBodySize(jsonBodyLimit)).Put("/settings", settingsHandler.UpdateSettings)
			})
		})
	})

	return r
}
