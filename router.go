package main

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	httpSwagger "github.com/swaggo/http-swagger"
)

// routes wires middlewares and endpoints. Adjust CORS for your frontend hosts.
func (a *App) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:3000", "https://*.run.app"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/api/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=60")
		w.Write(openapiYAML)
	})

	r.Mount("/swagger", httpSwagger.Handler(
		httpSwagger.URL("/api/openapi.yaml"),
	))

	r.Get("/", a.handleRoot)
	r.Get("/health", a.handleHealth)

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/register", a.handleRegister)
		api.Post("/auth/login", a.handleLogin)

		api.Group(func(pr chi.Router) {
			pr.Use(a.authMiddleware)
			pr.Get("/me", a.handleMe)

			pr.Route("/v1/carbon", func(cr chi.Router) {
				cr.Post("/estimate", a.handleEstimate)
				cr.Post("/estimate/batch", a.handleEstimateBatch)
				cr.Get("/estimate/{projectID}/history", a.handleEstimateHistory)
			})

			pr.Route("/v1/models", func(mr chi.Router) {
				mr.Get("/info", a.handleModelInfo)
				mr.Get("/performance", a.handleModelPerformance)
				mr.Post("/retrain", a.handleRetrain)
				mr.Post("/predict", a.handleModelPredict)
				mr.Post("/validate", a.handleModelValidate)
			})

			pr.Route("/v1/satellite", func(sr chi.Router) {
				sr.Post("/retrieve", a.handleSatelliteRetrieve)
				sr.Post("/indices", a.handleSatelliteIndices)
				sr.Post("/trends", a.handleSatelliteTrends)
			})
		})
	})

	return r
}

func (a *App) handleRoot(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(map[string]string{
		"service": "Blue Carbon Estimation API",
		"version": "1.0.0",
		"status":  "running",
	})
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status": "healthy",
		"services": map[string]any{
			"model_service":   a.estimator.Health(),
			"imagery_service": a.imagery.Health(r.Context()),
		},
	})
}
