package handler

import (
	"net/http"

	go_json "github.com/goccy/go-json"

	"github.com/vyrlabs/vyr/internal/apperr"
	"github.com/vyrlabs/vyr/internal/repository"
	"github.com/vyrlabs/vyr/internal/service/action"
	"github.com/vyrlabs/vyr/internal/vyr"
	"github.com/vyrlabs/vyr/internal/xcontext"
	"github.com/vyrlabs/vyr/internal/xhttp"
	"github.com/vyrlabs/vyr/internal/xslog"
)

type Actions struct {
	service *action.Service
}

func NewActions(service *action.Service) *Actions {
	return &Actions{service: service}
}

type recordActionRequest struct {
	Action     vyr.Phase `json:"action"`
	Transition bool      `json:"transition,omitempty"`
}

func (req recordActionRequest) Validate() map[string]string {
	switch req.Action {
	case vyr.PhaseBoot, vyr.PhaseHold, vyr.PhaseClear:
		return nil
	default:
		return map[string]string{"action": "must be BOOT, HOLD, or CLEAR"}
	}
}

// HandleRecord handles POST /api/actions requests.
func (h *Actions) HandleRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := xslog.FromContext(ctx)

	userID, ok := xcontext.GetUserID(ctx)
	if !ok {
		apperr.WriteError(w, apperr.Unauthorized("unauthorized", "missing user context"))
		return
	}

	var req recordActionRequest
	if err := go_json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.WriteError(w, apperr.BadRequest("invalid_request", "invalid JSON body"))
		return
	}
	if problems := req.Validate(); problems != nil {
		apperr.WriteError(w, apperr.Validation(problems))
		return
	}

	entry, err := h.service.Record(ctx, userID, req.Action, req.Transition)
	if err != nil {
		logger.ErrorContext(ctx, "failed to record action",
			xslog.Error(err),
			xslog.UserID(userID),
			xslog.Phase(string(req.Action)),
		)
		apperr.WriteError(w, apperr.Internal("internal_error", "failed to record action", err))
		return
	}

	logger.InfoContext(ctx, "action recorded",
		xslog.UserID(userID),
		xslog.Phase(string(entry.Action)),
	)

	xhttp.WriteJSON(w, http.StatusCreated, entry)
}

// HandleList handles GET /api/actions requests, returning today's log.
func (h *Actions) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := xslog.FromContext(ctx)

	userID, ok := xcontext.GetUserID(ctx)
	if !ok {
		apperr.WriteError(w, apperr.Unauthorized("unauthorized", "missing user context"))
		return
	}

	entries, err := h.service.ListToday(ctx, userID)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list actions",
			xslog.Error(err),
			xslog.UserID(userID),
		)
		apperr.WriteError(w, apperr.Internal("internal_error", "failed to list actions", err))
		return
	}
	if entries == nil {
		entries = []repository.ActionEntry{}
	}

	xhttp.WriteOK(w, entries)
}
