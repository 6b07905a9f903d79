package health

import (
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (hrm *HealthRoutesManager) GetServerHealth(w http.ResponseWriter, r *http.Request) {
	gecho.Success(w,
		gecho.WithData(hrm.healthService.GetServerHealthStatus()),
		gecho.Send(),
	)
}

// GetDatabaseHealth reports the ticket store and the cache. A failing store is a 503
// but the body still carries what was checked.
func (hrm *HealthRoutesManager) GetDatabaseHealth(w http.ResponseWriter, r *http.Request) {
	status, err := hrm.healthService.GetDatabaseHealthStatus(r.Context())
	if err != nil {
		gecho.ServiceUnavailable(w,
			gecho.WithMessage("Ticket store unreachable"),
			gecho.WithData(status),
			gecho.Send(),
		)
		return
	}
	gecho.Success(w, gecho.WithData(status), gecho.Send())
}

// GetReadiness is the load balancer probe. A cache outage does not make the
// service unready because every cached read falls back to the store.
func (hrm *HealthRoutesManager) GetReadiness(w http.ResponseWriter, r *http.Request) {
	if _, err := hrm.healthService.GetDatabaseHealthStatus(r.Context()); err != nil {
		gecho.ServiceUnavailable(w, gecho.WithMessage("Not ready"), gecho.Send())
		return
	}
	gecho.Success(w, gecho.WithMessage("Ready"), gecho.Send())
}
