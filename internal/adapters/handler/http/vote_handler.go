package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollbooth/internal/adapters/metrics"
	"github.com/vncsmyrnk/pollbooth/internal/core/domain"
	"github.com/vncsmyrnk/pollbooth/internal/core/ports"
)

// selectionFormField is the radio group name submitted by the voting form.
const selectionFormField = "optRadio"

type VoteHandler struct {
	service ports.VoteService
}

func NewVoteHandler(service ports.VoteService) *VoteHandler {
	return &VoteHandler{
		service: service,
	}
}

type voteRequest struct {
	Selection json.RawMessage `json:"selection"`
}

// Vote applies the selection to the session's current poll and redirects to
// its view. A rejected selection also redirects, leaving the poll unchanged.
func (h *VoteHandler) Vote(w http.ResponseWriter, r *http.Request) {
	selection, err := parseSelection(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	pollID, err := h.service.Vote(r.Context(), ports.VoteInput{
		SessionID: sessionIDFromContext(r.Context()),
		Selection: selection,
	})
	metrics.ObserveVote(err)

	if err == nil || errors.Is(err, domain.ErrInvalidSelection) {
		http.Redirect(w, r, pollPath(pollID), http.StatusSeeOther)
		return
	}
	writeError(w, r, err)
}

func pollPath(id uuid.UUID) string {
	return "/api/polls/" + id.String()
}

// parseSelection reads the selection from a JSON body or the voting form.
// A value that is not an integer yields -1, which no poll accepts.
func parseSelection(r *http.Request) (int, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req voteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return 0, err
		}
		return atoiOrInvalid(strings.Trim(string(req.Selection), `"`)), nil
	}

	if err := r.ParseForm(); err != nil {
		return 0, err
	}
	return atoiOrInvalid(r.FormValue(selectionFormField)), nil
}

func atoiOrInvalid(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return -1
	}
	return n
}
