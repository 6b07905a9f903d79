package debug

import (
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (drm *DebugRoutesManager) CacheStatus(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{"enabled": drm.cacheService.Enabled(), "reachable": false}
	if drm.cacheService.Enabled() {
		if err := drm.cacheService.Ping(r.Context()); err != nil {
			status["error"] = err.Error()
		} else {
			status["reachable"] = true
		}
	}
	gecho.Success(w, gecho.WithData(status), gecho.Send())
}

// ClearCache drops every cached catalog listing. Revoked tokens stay revoked.
func (drm *DebugRoutesManager) ClearCache(w http.ResponseWriter, r *http.Request) {
	if err := drm.cacheService.InvalidateCatalog(r.Context()); err != nil {
		drm.logger.Error("Failed to clear catalog cache", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Failed to clear cache"), gecho.Send())
		return
	}

	drm.logger.Info("Catalog cache cleared")
	gecho.Success(w, gecho.WithMessage("Catalog cache cleared"), gecho.Send())
}
