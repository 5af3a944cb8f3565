package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Quino300923/frontera-backend/internal/domain"
	"github.com/Quino300923/frontera-backend/internal/service"
	apperrors "github.com/Quino300923/frontera-backend/pkg/errors"
	"github.com/Quino300923/frontera-backend/pkg/httputil"
	"github.com/Quino300923/frontera-backend/pkg/validator"
)

// AppointmentHandler handles workshop booking endpoints.
type AppointmentHandler struct {
	service *service.AppointmentService
	logger  *slog.Logger
}

// NewAppointmentHandler creates a new appointment HTTP handler.
func NewAppointmentHandler(svc *service.AppointmentService, logger *slog.Logger) *AppointmentHandler {
	return &AppointmentHandler{service: svc, logger: logger}
}

// CreateAppointmentRequest is the JSON body for booking a workshop visit.
type CreateAppointmentRequest struct {
	Name    string `json:"nombre" validate:"required"`
	Phone   string `json:"telefono" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Brand   string `json:"marca"`
	Model   string `json:"modelo"`
	Problem string `json:"problema"`
	Date    string `json:"fecha_turno" validate:"required"`
	Time    string `json:"hora" validate:"required"`
}

// Create handles POST /api/turnos
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CreateAppointmentRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	created, err := h.service.Create(r.Context(), &domain.Appointment{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Brand:   req.Brand,
		Model:   req.Model,
		Problem: req.Problem,
		Date:    req.Date,
		Time:    req.Time,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{OK: true, Data: created})
}

// List handles GET /api/turnos (admin)
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, appointments)
}

// MarkAttended handles PUT /api/turnos/{id}/atendido (admin)
func (h *AppointmentHandler) MarkAttended(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.service.MarkAttended(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, map[string]string{"estado": domain.AppointmentAttended})
}

// Delete handles DELETE /api/turnos/{id} (admin)
func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

func parseID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		httputil.WriteError(w, r, apperrors.InvalidInput("id must be a positive integer"), logger)
		return 0, false
	}
	return id, true
}
