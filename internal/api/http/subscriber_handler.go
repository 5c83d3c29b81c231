package http

import (
	"net/http"

	"tahseel-backend/internal/domain"
	"tahseel-backend/internal/service"
)

type subscriberHandler struct {
	subscribers service.SubscriberService
}

func (h *subscriberHandler) list(w http.ResponseWriter, r *http.Request) {
	page := int32(queryInt(r, "page", 1))
	pageSize := int32(queryInt(r, "page_size", 50))
	query := r.URL.Query().Get("q")

	subscribers, total, err := h.subscribers.List(r.Context(), query, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: subscribers, Total: total})
}

func (h *subscriberHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	subscriber, err := h.subscribers.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subscriber)
}

func (h *subscriberHandler) create(w http.ResponseWriter, r *http.Request) {
	var subscriber domain.Subscriber
	if !decodeBody(w, r, &subscriber) {
		return
	}

	if err := h.subscribers.Create(r.Context(), &subscriber); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, subscriber)
}

func (h *subscriberHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	var subscriber domain.Subscriber
	if !decodeBody(w, r, &subscriber) {
		return
	}
	subscriber.ID = id

	if err := h.subscribers.Update(r.Context(), &subscriber); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subscriber)
}

func (h *subscriberHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	if err := h.subscribers.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *subscriberHandler) latestPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.subscribers.LatestPayments(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

func (h *subscriberHandler) statement(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	from, err := queryDate(r, "from")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	to, err := queryDate(r, "to")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	statement, err := h.subscribers.Statement(r.Context(), id, from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statement)
}
