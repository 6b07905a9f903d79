package health

import (
	"comandas_server/services"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HealthRoutesManager struct {
	healthService *services.HealthService
}

func NewHealthRoutesManager(healthService *services.HealthService) *HealthRoutesManager {
	return &HealthRoutesManager{
		healthService: healthService,
	}
}

func (hrm *HealthRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/health", func(r chi.Router) {
		r.Get("/server", hrm.GetServerHealth)
		r.Get("/database", hrm.GetDatabaseHealth)
		r.Get("/ready", hrm.GetReadiness)
	})

	r.Get("/metrics", promhttp.Handler().ServeHTTP)
}
