package reports

import (
	"comandas_server/handling"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (rrm *ReportRoutesManager) GetDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := rrm.reportService.Dashboard(r.Context())
	if err != nil {
		handling.WriteError(err, "Failed to build dashboard", rrm.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(stats), gecho.Send())
}
