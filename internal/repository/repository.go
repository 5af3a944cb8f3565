package repository

import (
	"context"

	"github.com/Quino300923/frontera-backend/internal/domain"
)

// AppointmentRepository defines the interface for workshop appointment persistence.
type AppointmentRepository interface {
	// Create inserts a new appointment in Pendiente state and returns its id.
	Create(ctx context.Context, a *domain.Appointment) (int64, error)

	// List returns every appointment, newest first.
	List(ctx context.Context) ([]domain.Appointment, error)

	// MarkAttended moves an appointment to Atendido.
	MarkAttended(ctx context.Context, id int64) error

	// Delete removes an appointment.
	Delete(ctx context.Context, id int64) error
}

// SubscriberRepository defines the interface for newsletter signup persistence.
type SubscriberRepository interface {
	// Create stores a new subscriber and returns its id.
	Create(ctx context.Context, email string) (int64, error)

	// List returns every subscriber, newest first.
	List(ctx context.Context) ([]domain.Subscriber, error)

	// Delete removes a subscriber.
	Delete(ctx context.Context, id int64) error
}

// AdminRepository defines the interface for back-office account lookup.
type AdminRepository interface {
	// GetByUsername retrieves an admin account by its login name.
	GetByUsername(ctx context.Context, username string) (*domain.AdminUser, error)
}
