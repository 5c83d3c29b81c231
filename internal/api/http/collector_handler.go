package http

import (
	"net/http"

	"tahseel-backend/internal/domain"
	"tahseel-backend/internal/service"
)

type collectorHandler struct {
	collectors service.CollectorService
}

func (h *collectorHandler) list(w http.ResponseWriter, r *http.Request) {
	collectors, err := h.collectors.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, collectors)
}

func (h *collectorHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	collector, err := h.collectors.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, collector)
}

func (h *collectorHandler) create(w http.ResponseWriter, r *http.Request) {
	var collector domain.Collector
	if !decodeBody(w, r, &collector) {
		return
	}

	if err := h.collectors.Create(r.Context(), &collector); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, collector)
}

func (h *collectorHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	var collector domain.Collector
	if !decodeBody(w, r, &collector) {
		return
	}
	collector.ID = id

	if err := h.collectors.Update(r.Context(), &collector); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, collector)
}

func (h *collectorHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	if err := h.collectors.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
