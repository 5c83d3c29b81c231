package http

import (
	"net/http"
	"strconv"

	"tahseel-backend/internal/domain"
	"tahseel-backend/internal/service"

	"github.com/gorilla/mux"
)

type notebookHandler struct {
	notebooks service.NotebookService
}

type syncRequest struct {
	Incremental bool   `json:"incremental"`
	Since       string `json:"since,omitempty"` // RFC 3339, only for incremental
}

func (h *notebookHandler) sync(w http.ResponseWriter, r *http.Request) {
	var req syncRequest
	if r.ContentLength > 0 && !decodeBody(w, r, &req) {
		return
	}

	opts := domain.SyncOptions{Incremental: req.Incremental}
	if req.Since != "" {
		since, err := parseRFC3339(req.Since)
		if err != nil {
			writeBadRequest(w, "invalid since timestamp")
			return
		}
		opts.Since = since
	}

	summary, err := h.notebooks.Sync(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *notebookHandler) list(w http.ResponseWriter, r *http.Request) {
	collectorID, err := queryInt32Ptr(r, "collector_id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	notebooks, err := h.notebooks.List(r.Context(), domain.NotebookFilter{
		CollectorID: scopeCollector(r, collectorID),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notebooks)
}

func (h *notebookHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	notebook, err := h.notebooks.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notebook)
}

type annotateRequest struct {
	Status domain.MissingReceiptStatus `json:"status"`
	Notes  string                      `json:"notes"`
}

func (h *notebookHandler) annotate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	number, err := strconv.ParseInt(mux.Vars(r)["number"], 10, 32)
	if err != nil || number <= 0 {
		writeBadRequest(w, "invalid receipt number")
		return
	}

	var req annotateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	notebook, err := h.notebooks.Annotate(r.Context(), id, int32(number), req.Status, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notebook)
}

func (h *notebookHandler) findReceipt(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.ParseInt(mux.Vars(r)["number"], 10, 32)
	if err != nil || number <= 0 {
		writeBadRequest(w, "invalid receipt number")
		return
	}
	collectorID, err := queryInt32Ptr(r, "collector_id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	lookup, err := h.notebooks.FindReceipt(r.Context(), int32(number), scopeCollector(r, collectorID))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lookup)
}

func (h *notebookHandler) overview(w http.ResponseWriter, r *http.Request) {
	rows, err := h.notebooks.Overview(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *notebookHandler) missing(w http.ResponseWriter, r *http.Request) {
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
	search := r.URL.Query().Get("q")

	details, err := h.notebooks.ListMissing(r.Context(), year, scopeCollector(r, collectorID), fundID, search)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}
