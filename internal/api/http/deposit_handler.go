package http

import (
	"net/http"

	"tahseel-backend/internal/domain"
	"tahseel-backend/internal/service"
)

type depositHandler struct {
	deposits service.DepositService
}

func (h *depositHandler) list(w http.ResponseWriter, r *http.Request) {
	page := int32(queryInt(r, "page", 1))
	pageSize := int32(queryInt(r, "page_size", 50))

	deposits, total, err := h.deposits.List(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: deposits, Total: total})
}

func (h *depositHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	deposit, err := h.deposits.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deposit)
}

func (h *depositHandler) create(w http.ResponseWriter, r *http.Request) {
	var deposit domain.Deposit
	if !decodeBody(w, r, &deposit) {
		return
	}

	if err := h.deposits.Create(r.Context(), &deposit); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, deposit)
}

func (h *depositHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	var deposit domain.Deposit
	if !decodeBody(w, r, &deposit) {
		return
	}
	deposit.ID = id

	if err := h.deposits.Update(r.Context(), &deposit); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deposit)
}

func (h *depositHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	if err := h.deposits.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
