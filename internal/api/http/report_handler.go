package http

import (
	"net/http"

	"tahseel-backend/internal/domain"
	"tahseel-backend/internal/service"
)

type reportHandler struct {
	reports service.ReportService
}

func (h *reportHandler) periodicFilter(w http.ResponseWriter, r *http.Request) (domain.PeriodicFilter, bool) {
	filter := domain.PeriodicFilter{
		Year:      queryInt(r, "year", 0),
		Month:     queryInt(r, "month", 0),
		FromCycle: queryInt(r, "from_cycle", 0),
		ToCycle:   queryInt(r, "to_cycle", 0),
	}
	if filter.Year == 0 || filter.Month == 0 {
		writeBadRequest(w, "year and month are required")
		return filter, false
	}

	collectorID, err := queryInt32Ptr(r, "collector_id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return filter, false
	}
	filter.CollectorID = scopeCollector(r, collectorID)

	if filter.FundID, err = queryInt32Ptr(r, "fund_id"); err != nil {
		writeBadRequest(w, err.Error())
		return filter, false
	}
	return filter, true
}

func (h *reportHandler) periodicSummary(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.periodicFilter(w, r)
	if !ok {
		return
	}

	reports, err := h.reports.PeriodicSummary(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reports)
}

func (h *reportHandler) fundPeriodicSummary(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.periodicFilter(w, r)
	if !ok {
		return
	}

	reports, err := h.reports.FundPeriodicSummary(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reports)
}

func (h *reportHandler) detailedPeriodic(w http.ResponseWriter, r *http.Request) {
	start, err := queryDate(r, "start_date")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	end, err := queryDate(r, "end_date")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if start == nil || end == nil {
		writeBadRequest(w, "start_date and end_date are required")
		return
	}

	collectorID, err := queryInt32Ptr(r, "collector_id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	rows, err := h.reports.DetailedPeriodic(r.Context(), domain.DetailedFilter{
		StartDate: *start,
		// The caller's end date is inclusive; the range is half-open.
		EndDate:     end.AddDate(0, 0, 1),
		CollectorID: scopeCollector(r, collectorID),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *reportHandler) annual(w http.ResponseWriter, r *http.Request) {
	year := queryInt(r, "year", 0)
	if year == 0 {
		writeBadRequest(w, "year is required")
		return
	}

	collectorID, err := queryInt32Ptr(r, "collector_id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	fundID, err := queryInt32Ptr(r, "fund_id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	report, err := h.reports.Annual(r.Context(), domain.AnnualFilter{
		Year:        year,
		CollectorID: scopeCollector(r, collectorID),
		FundID:      fundID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
