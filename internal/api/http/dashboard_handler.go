package http

import (
	"net/http"

	"tahseel-backend/internal/service"
)

type dashboardHandler struct {
	dashboard service.DashboardService
}

func (h *dashboardHandler) summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboard.Summary(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
