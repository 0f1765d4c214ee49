package server

import (
	"log/slog"
	"net/http"

	"github.com/vyrlabs/vyr/internal/server/handler"
	"github.com/vyrlabs/vyr/internal/service/action"
	"github.com/vyrlabs/vyr/internal/service/ingest"
	"github.com/vyrlabs/vyr/internal/service/state"
	"github.com/vyrlabs/vyr/internal/service/user"
	"github.com/vyrlabs/vyr/internal/xhttp/middleware"
)

type Services struct {
	User   user.Service
	Ingest *ingest.Service
	State  *state.Service
	Action *action.Service
}

// Routes assembles the full HTTP surface: health unauthenticated,
// everything under /api/ behind API-key auth, and the ambient
// middleware stack outermost.
func Routes(services Services, logger *slog.Logger) http.Handler {
	syncHandler := handler.NewSync(services.Ingest)
	stateHandler := handler.NewState(services.State)
	actionsHandler := handler.NewActions(services.Action)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", handler.HandleHealth)

	apiMux := http.NewServeMux()
	apiMux.HandleFunc("POST /api/sync", syncHandler.HandleSync)
	apiMux.HandleFunc("GET /api/state", stateHandler.HandleGet)
	apiMux.HandleFunc("GET /api/insight", stateHandler.HandleInsight)
	apiMux.HandleFunc("POST /api/actions", actionsHandler.HandleRecord)
	apiMux.HandleFunc("GET /api/actions", actionsHandler.HandleList)
	mux.Handle("/api/", middleware.Chain(apiMux,
		APIKeyAuth(services.User),
	))

	return middleware.Chain(mux,
		middleware.Recovery,
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Logging,
		middleware.SecurityHeaders,
	)
}
