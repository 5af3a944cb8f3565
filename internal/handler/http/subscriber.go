package http

import (
	"log/slog"
	"net/http"

	"github.com/Quino300923/frontera-backend/internal/service"
	"github.com/Quino300923/frontera-backend/pkg/httputil"
	"github.com/Quino300923/frontera-backend/pkg/validator"
)

// SubscriberHandler handles newsletter signup endpoints.
type SubscriberHandler struct {
	service *service.SubscriberService
	logger  *slog.Logger
}

// NewSubscriberHandler creates a new subscriber HTTP handler.
func NewSubscriberHandler(svc *service.SubscriberService, logger *slog.Logger) *SubscriberHandler {
	return &SubscriberHandler{service: svc, logger: logger}
}

// SubscribeRequest is the JSON body for a newsletter signup.
type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Subscribe handles POST /api/suscribir
func (h *SubscriberHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req SubscribeRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	sub, err := h.service.Subscribe(r.Context(), req.Email)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{OK: true, Data: sub})
}

// List handles GET /api/suscriptores (admin)
func (h *SubscriberHandler) List(w http.ResponseWriter, r *http.Request) {
	subs, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, subs)
}

// Delete handles DELETE /api/suscriptores/{id} (admin)
func (h *SubscriberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, map[string]bool{"deleted": true})
}
