package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Quino300923/frontera-backend/internal/domain"
	"github.com/Quino300923/frontera-backend/internal/event"
	apperrors "github.com/Quino300923/frontera-backend/pkg/errors"
)

type stubAppointmentRepo struct {
	created *domain.Appointment
	nextID  int64
	err     error
}

func (r *stubAppointmentRepo) Create(ctx context.Context, a *domain.Appointment) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.created = a
	return r.nextID, nil
}

func (r *stubAppointmentRepo) List(ctx context.Context) ([]domain.Appointment, error) {
	return nil, nil
}

func (r *stubAppointmentRepo) MarkAttended(ctx context.Context, id int64) error { return nil }
func (r *stubAppointmentRepo) Delete(ctx context.Context, id int64) error       { return nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func validAppointment() *domain.Appointment {
	return &domain.Appointment{
		Name:  "Juan",
		Phone: "123456",
		Date:  "2026-09-01",
		Time:  "10:30",
	}
}

func TestAppointmentService_Create(t *testing.T) {
	repo := &stubAppointmentRepo{nextID: 5}
	// Nil kafka producer: announcing is a no-op.
	s := NewAppointmentService(repo, event.NewProducer(nil, testLogger()), testLogger())

	created, err := s.Create(context.Background(), validAppointment())
	require.NoError(t, err)
	assert.Equal(t, int64(5), created.ID)
	assert.Equal(t, domain.AppointmentPending, created.Status)
	assert.Equal(t, "Juan", repo.created.Name)
}

func TestAppointmentService_Create_Validation(t *testing.T) {
	s := NewAppointmentService(&stubAppointmentRepo{}, event.NewProducer(nil, testLogger()), testLogger())

	tests := []struct {
		name  string
		patch func(*domain.Appointment)
	}{
		{"missing name", func(a *domain.Appointment) { a.Name = "" }},
		{"missing phone", func(a *domain.Appointment) { a.Phone = "" }},
		{"missing date", func(a *domain.Appointment) { a.Date = "" }},
		{"missing time", func(a *domain.Appointment) { a.Time = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validAppointment()
			tt.patch(a)
			_, err := s.Create(context.Background(), a)
			require.Error(t, err)
			assert.Equal(t, 400, apperrors.HTTPStatus(err))
		})
	}
}
