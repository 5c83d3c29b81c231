package http

import (
	"net/http"

	"tahseel-backend/internal/domain"
	"tahseel-backend/internal/service"
)

type receiptHandler struct {
	receipts service.ReceiptService
}

type listResponse struct {
	Items interface{} `json:"items"`
	Total int32       `json:"total"`
}

func (h *receiptHandler) list(w http.ResponseWriter, r *http.Request) {
	page := int32(queryInt(r, "page", 1))
	pageSize := int32(queryInt(r, "page_size", 50))

	receipts, total, err := h.receipts.List(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: receipts, Total: total})
}

func (h *receiptHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	receipt, err := h.receipts.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

func (h *receiptHandler) create(w http.ResponseWriter, r *http.Request) {
	var receipt domain.Receipt
	if !decodeBody(w, r, &receipt) {
		return
	}

	if err := h.receipts.Create(r.Context(), &receipt); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, receipt)
}

func (h *receiptHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	var receipt domain.Receipt
	if !decodeBody(w, r, &receipt) {
		return
	}
	receipt.ID = id

	if err := h.receipts.Update(r.Context(), &receipt); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

func (h *receiptHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	if err := h.receipts.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type importRequest struct {
	Rows []domain.ReceiptImportRow `json:"rows"`
}

func (h *receiptHandler) importBatch(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Rows) == 0 {
		writeBadRequest(w, "no rows to import")
		return
	}

	summary, err := h.receipts.ImportBatch(r.Context(), req.Rows)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
