package handler

import (
	"net/http"
	"time"

	"github.com/vyrlabs/vyr/internal/apperr"
	"github.com/vyrlabs/vyr/internal/service/state"
	"github.com/vyrlabs/vyr/internal/xcontext"
	"github.com/vyrlabs/vyr/internal/xhttp"
	"github.com/vyrlabs/vyr/internal/xslog"
)

type State struct {
	service *state.Service
}

func NewState(service *state.Service) *State {
	return &State{service: service}
}

// HandleGet handles GET /api/state requests.
// Query params: day (YYYY-MM-DD, default today)
func (h *State) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := xslog.FromContext(ctx)

	userID, ok := xcontext.GetUserID(ctx)
	if !ok {
		apperr.WriteError(w, apperr.Unauthorized("unauthorized", "missing user context"))
		return
	}

	day, ok := dayParam(r, h.service.Today())
	if !ok {
		apperr.WriteError(w, apperr.BadRequest("invalid_request", "invalid day parameter (expected YYYY-MM-DD)"))
		return
	}

	result, err := h.service.Get(ctx, userID, day)
	if err != nil {
		logger.ErrorContext(ctx, "failed to get state",
			xslog.Error(err),
			xslog.UserID(userID),
			xslog.Day(day),
		)
		apperr.WriteError(w, apperr.Internal("internal_error", "failed to get state", err))
		return
	}

	xhttp.WriteOK(w, result)
}

// HandleInsight handles GET /api/insight requests.
// Query params: day (YYYY-MM-DD, default today)
func (h *State) HandleInsight(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := xslog.FromContext(ctx)

	userID, ok := xcontext.GetUserID(ctx)
	if !ok {
		apperr.WriteError(w, apperr.Unauthorized("unauthorized", "missing user context"))
		return
	}

	day, ok := dayParam(r, h.service.Today())
	if !ok {
		apperr.WriteError(w, apperr.BadRequest("invalid_request", "invalid day parameter (expected YYYY-MM-DD)"))
		return
	}

	result, err := h.service.Insight(ctx, userID, day)
	if err != nil {
		logger.ErrorContext(ctx, "failed to build insight",
			xslog.Error(err),
			xslog.UserID(userID),
			xslog.Day(day),
		)
		apperr.WriteError(w, apperr.Internal("internal_error", "failed to build insight", err))
		return
	}

	xhttp.WriteOK(w, result)
}

func dayParam(r *http.Request, fallback string) (string, bool) {
	day := r.URL.Query().Get("day")
	if day == "" {
		return fallback, true
	}
	if _, err := time.Parse(time.DateOnly, day); err != nil {
		return "", false
	}
	return day, true
}
