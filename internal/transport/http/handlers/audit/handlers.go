package audithandler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"payrollhr/internal/domain/audit"
	"payrollhr/internal/domain/auth"
	"payrollhr/internal/transport/http/api"
	"payrollhr/internal/transport/http/middleware"
	"payrollhr/internal/transport/http/shared"
)

type Handler struct {
	Trail *audit.Trail
	Perms middleware.PermissionStore
}

func NewHandler(trail *audit.Trail, perms middleware.PermissionStore) *Handler {
	return &Handler{Trail: trail, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermSystemAdmin, h.Perms)).Get("/audit", h.HandleList)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	page := shared.ParsePagination(r, 50, 500)
	filter := audit.Filter{
		Action:     r.URL.Query().Get("action"),
		EntityType: r.URL.Query().Get("entityType"),
		ActorID:    r.URL.Query().Get("actorId"),
	}
	events, err := h.Trail.List(r.Context(), user.TenantID, filter, page.Limit, page.Offset)
	if err != nil {
		slog.Warn("audit list failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "list_failed", "unable to list audit events", requestID)
		return
	}
	api.Success(w, events, requestID)
}
