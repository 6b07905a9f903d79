package reports

import (
	"comandas_server/services"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type ReportRoutesManager struct {
	logger        *gecho.Logger
	reportService *services.ReportService
	now           func() time.Time
}

func NewReportRoutesManager(logger *gecho.Logger, reportService *services.ReportService) *ReportRoutesManager {
	return &ReportRoutesManager{
		logger:        logger,
		reportService: reportService,
		now:           time.Now,
	}
}

func (rrm *ReportRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/reports/sales", rrm.GetSalesReport)
	r.Get("/reports/sales.csv", rrm.ExportSalesCSV)
	r.Get("/dashboard", rrm.GetDashboard)
}
