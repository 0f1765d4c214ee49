package handler

import (
	"net/http"
	"time"

	go_json "github.com/goccy/go-json"

	"github.com/vyrlabs/vyr/internal/apperr"
	"github.com/vyrlabs/vyr/internal/service/ingest"
	"github.com/vyrlabs/vyr/internal/validator"
	"github.com/vyrlabs/vyr/internal/vyr"
	"github.com/vyrlabs/vyr/internal/xcontext"
	"github.com/vyrlabs/vyr/internal/xhttp"
	"github.com/vyrlabs/vyr/internal/xslog"
)

type Sync struct {
	service *ingest.Service
}

func NewSync(service *ingest.Service) *Sync {
	return &Sync{service: service}
}

type syncRequest struct {
	Day    string              `json:"day,omitempty"`
	Source string              `json:"source,omitempty"`
	Sample vyr.BiometricSample `json:"sample"`
}

func (req syncRequest) Validate() map[string]string {
	problems := make(map[string]string)
	if req.Day != "" {
		if _, err := time.Parse(time.DateOnly, req.Day); err != nil {
			problems["day"] = "must be YYYY-MM-DD"
		}
	}
	if req.Sample == (vyr.BiometricSample{}) {
		problems["sample"] = "at least one reading is required"
	}
	if len(problems) == 0 {
		return nil
	}
	return problems
}

// HandleSync handles POST /api/sync requests: it lands one sample and
// returns the recomputed state for that day.
func (h *Sync) HandleSync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := xslog.FromContext(ctx)

	userID, ok := xcontext.GetUserID(ctx)
	if !ok {
		apperr.WriteError(w, apperr.Unauthorized("unauthorized", "missing user context"))
		return
	}

	var req syncRequest
	if err := go_json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.WriteError(w, apperr.BadRequest("invalid_request", "invalid JSON body"))
		return
	}
	if err := validator.Validate(req); err != nil {
		apperr.WriteError(w, err)
		return
	}

	state, err := h.service.Sync(ctx, userID, req.Day, req.Source, req.Sample)
	if err != nil {
		logger.ErrorContext(ctx, "sync failed",
			xslog.Error(err),
			xslog.UserID(userID),
			xslog.Day(req.Day),
		)
		apperr.WriteError(w, apperr.Internal("internal_error", "failed to process sync", err))
		return
	}

	logger.InfoContext(ctx, "sample synced",
		xslog.UserID(userID),
		xslog.Score(state.Score),
		xslog.Source(req.Source),
	)

	xhttp.WriteOK(w, state)
}
