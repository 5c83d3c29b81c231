package http

import (
	"net/http"

	"tahseel-backend/internal/domain"
	"tahseel-backend/internal/service"
)

type fundHandler struct {
	funds service.FundService
}

func (h *fundHandler) list(w http.ResponseWriter, r *http.Request) {
	funds, err := h.funds.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, funds)
}

func (h *fundHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	fund, err := h.funds.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fund)
}

func (h *fundHandler) create(w http.ResponseWriter, r *http.Request) {
	var fund domain.Fund
	if !decodeBody(w, r, &fund) {
		return
	}

	if err := h.funds.Create(r.Context(), &fund); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, fund)
}

func (h *fundHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	var fund domain.Fund
	if !decodeBody(w, r, &fund) {
		return
	}
	fund.ID = id

	if err := h.funds.Update(r.Context(), &fund); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fund)
}

func (h *fundHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	if err := h.funds.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
