package handler

import (
	"net/http"

	reportdomain "expenses-app-go/internal/domain/report"
)

type reportView struct {
	Report reportdomain.Report
}

func (h *Handlers) generateReport(r *http.Request) (reportdomain.Report, error) {
	query := r.URL.Query()
	filter, err := reportdomain.ParseFilter(query.Get("category"), query.Get("date_start"), query.Get("date_end"))
	if err != nil {
		return reportdomain.Report{}, err
	}
	return h.Report.Generate(r.Context(), filter)
}

func (h *Handlers) ReportPage(w http.ResponseWriter, r *http.Request) {
	report, err := h.generateReport(r)
	if err != nil {
		h.fail(w, r, "report.generate", err, "query", r.URL.RawQuery)
		return
	}

	h.render(w, r, http.StatusOK, "report", reportView{Report: report})
}

func (h *Handlers) ReportJSON(w http.ResponseWriter, r *http.Request) {
	report, err := h.generateReport(r)
	if err != nil {
		h.failJSON(w, r, "report.generate", err, "query", r.URL.RawQuery)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
