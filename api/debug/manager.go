package debug

import (
	"comandas_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type DebugRoutesManager struct {
	logger       *gecho.Logger
	cacheService *services.CacheService
	enabled      bool
}

func NewDebugRoutesManager(logger *gecho.Logger, cacheService *services.CacheService, enabled bool) *DebugRoutesManager {
	return &DebugRoutesManager{
		logger:       logger,
		cacheService: cacheService,
		enabled:      enabled,
	}
}

// RegisterRoutes is a no-op unless enabled; production builds pass false.
func (drm *DebugRoutesManager) RegisterRoutes(r chi.Router) {
	if !drm.enabled {
		return
	}
	r.Route("/debug/cache", func(r chi.Router) {
		r.Get("/", drm.CacheStatus)
		r.Post("/clear", drm.ClearCache)
	})
}
