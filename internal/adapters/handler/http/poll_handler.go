package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollbooth/internal/core/domain"
	"github.com/vncsmyrnk/pollbooth/internal/core/ports"
)

type PollHandler struct {
	service ports.PollService
}

func NewPollHandler(service ports.PollService) *PollHandler {
	return &PollHandler{
		service: service,
	}
}

type createPollRequest struct {
	Title   string `json:"title"`
	Choices string `json:"choices"`
}

type createPollResponse struct {
	ID uuid.UUID `json:"id"`
}

// rejectedPollResponse echoes the submitted form so the client can present it
// again with the error.
type rejectedPollResponse struct {
	Error   string `json:"error"`
	Title   string `json:"title"`
	Choices string `json:"choices"`
}

func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	owner, ok := userIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing user context"})
		return
	}

	var req createPollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	id, err := h.service.Create(r.Context(), ports.CreatePollInput{
		Title:   req.Title,
		Owner:   owner,
		Choices: req.Choices,
	})
	if errors.Is(err, domain.ErrInvalidInput) {
		writeJSON(w, http.StatusBadRequest, rejectedPollResponse{
			Error:   err.Error(),
			Title:   req.Title,
			Choices: req.Choices,
		})
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, createPollResponse{ID: id})
}

func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: domain.ErrPollNotFound.Error()})
		return
	}

	poll, err := h.service.View(r.Context(), sessionIDFromContext(r.Context()), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, domain.NewPollView(poll))
}

func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, ports.PollFilter{})
}

func (h *PollHandler) ListMyPolls(w http.ResponseWriter, r *http.Request) {
	owner, ok := userIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing user context"})
		return
	}
	h.list(w, r, ports.PollFilter{Owner: &owner})
}

func (h *PollHandler) list(w http.ResponseWriter, r *http.Request, filter ports.PollFilter) {
	summaries, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	owner, ok := userIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing user context"})
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := h.service.Remove(r.Context(), id, owner); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
