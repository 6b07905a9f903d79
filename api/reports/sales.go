package reports

import (
	"comandas_server/handling"
	"comandas_server/lib"
	"fmt"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// GetSalesReport handles GET /reports/sales?from=YYYY-MM-DD&to=YYYY-MM-DD, both days inclusive
func (rrm *ReportRoutesManager) GetSalesReport(w http.ResponseWriter, r *http.Request) {
	from, to, err := lib.QueryDateRange(r, rrm.now(), rrm.reportService.Location())
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage(err.Error()), gecho.Send())
		return
	}

	report, err := rrm.reportService.Sales(r.Context(), from, to)
	if err != nil {
		handling.WriteError(err, "Failed to build sales report", rrm.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(report), gecho.Send())
}

func (rrm *ReportRoutesManager) ExportSalesCSV(w http.ResponseWriter, r *http.Request) {
	from, to, err := lib.QueryDateRange(r, rrm.now(), rrm.reportService.Location())
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage(err.Error()), gecho.Send())
		return
	}

	out := &csvResponse{
		w:        w,
		filename: fmt.Sprintf("vendas_%s_%s.csv", from.Format(lib.DateLayout), to.Format(lib.DateLayout)),
	}
	if err := rrm.reportService.WriteSalesCSV(r.Context(), out, from, to); err != nil {
		if !out.started {
			handling.WriteError(err, "Failed to export sales", rrm.logger, w)
			return
		}
		rrm.logger.Error("Sales export interrupted", gecho.Field("error", err))
	}
}

// csvResponse commits the CSV headers on the first write, so a failure before any
// row is produced can still be answered with a JSON error.
type csvResponse struct {
	w        http.ResponseWriter
	filename string
	started  bool
}

func (c *csvResponse) Write(p []byte) (int, error) {
	if !c.started {
		c.started = true
		c.w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		c.w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", c.filename))
		c.w.WriteHeader(http.StatusOK)
	}
	return c.w.Write(p)
}
