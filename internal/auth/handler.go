package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/boratech/exportdesk/pkg/handlers"
	"github.com/boratech/exportdesk/pkg/routes"
)

// Handler provides HTTP endpoints for authentication.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "auth"),
	}
}

// Routes returns the route group definition for auth endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/auth",
		Routes: []routes.Route{
			routes.Post("/login", h.Login),
		},
	}
}

// Login validates static per-region credentials and returns a session token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var cmd LoginCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	session, err := h.sys.Login(cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, session)
}
