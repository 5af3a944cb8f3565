package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Quino300923/frontera-backend/internal/domain"
	"github.com/Quino300923/frontera-backend/internal/event"
	"github.com/Quino300923/frontera-backend/internal/repository"
	apperrors "github.com/Quino300923/frontera-backend/pkg/errors"
)

// AppointmentService manages workshop service bookings.
type AppointmentService struct {
	repo     repository.AppointmentRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewAppointmentService creates the appointment service.
func NewAppointmentService(repo repository.AppointmentRepository, producer *event.Producer, logger *slog.Logger) *AppointmentService {
	return &AppointmentService{repo: repo, producer: producer, logger: logger}
}

// Create stores a new appointment and announces it. A failed announcement
// never fails the booking; downstream consumers reconcile from the database.
func (s *AppointmentService) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	if a.Name == "" {
		return nil, apperrors.InvalidInput("nombre is required")
	}
	if a.Phone == "" {
		return nil, apperrors.InvalidInput("telefono is required")
	}
	if a.Date == "" || a.Time == "" {
		return nil, apperrors.InvalidInput("fecha_turno and hora are required")
	}

	a.Status = domain.AppointmentPending

	id, err := s.repo.Create(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	a.ID = id

	if err := s.producer.PublishAppointmentCreated(ctx, a); err != nil {
		s.logger.WarnContext(ctx, "announce appointment failed",
			slog.Int64("appointment_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "appointment created",
		slog.Int64("appointment_id", id),
		slog.String("fecha_turno", a.Date),
		slog.String("hora", a.Time),
	)

	return a, nil
}

// List returns every appointment, newest first.
func (s *AppointmentService) List(ctx context.Context) ([]domain.Appointment, error) {
	return s.repo.List(ctx)
}

// MarkAttended moves an appointment to Atendido.
func (s *AppointmentService) MarkAttended(ctx context.Context, id int64) error {
	return s.repo.MarkAttended(ctx, id)
}

// Delete removes an appointment.
func (s *AppointmentService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
