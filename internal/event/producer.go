package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Quino300923/frontera-backend/internal/domain"
	pkgkafka "github.com/Quino300923/frontera-backend/pkg/kafka"
)

// Kafka topic constants for storefront domain events.
const (
	TopicAppointmentCreated   = "frontera.appointment.created"
	TopicNewsletterSubscribed = "frontera.newsletter.subscribed"
)

// Aggregate type constants.
const (
	AggregateTypeAppointment = "appointment"
	AggregateTypeSubscriber  = "subscriber"
)

// Source identifier for events originating from this service.
const SourceCatalogBackend = "frontera-backend"

// AppointmentCreatedData is the payload for an appointment.created event.
// Downstream consumers (calendar sync, workshop notifications) subscribe to it.
type AppointmentCreatedData struct {
	ID      int64  `json:"id"`
	Name    string `json:"nombre"`
	Phone   string `json:"telefono"`
	Email   string `json:"email"`
	Brand   string `json:"marca"`
	Model   string `json:"modelo"`
	Problem string `json:"problema"`
	Date    string `json:"fecha_turno"`
	Time    string `json:"hora"`
}

// NewsletterSubscribedData is the payload for a newsletter.subscribed event.
type NewsletterSubscribedData struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer. A nil kafka producer disables
// publishing, so the storefront keeps working without a broker.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishAppointmentCreated publishes an appointment.created event.
func (p *Producer) PublishAppointmentCreated(ctx context.Context, a *domain.Appointment) error {
	if p.kafka == nil {
		return nil
	}

	data := AppointmentCreatedData{
		ID:      a.ID,
		Name:    a.Name,
		Phone:   a.Phone,
		Email:   a.Email,
		Brand:   a.Brand,
		Model:   a.Model,
		Problem: a.Problem,
		Date:    a.Date,
		Time:    a.Time,
	}

	event, err := pkgkafka.NewEvent(TopicAppointmentCreated, fmt.Sprint(a.ID), AggregateTypeAppointment, SourceCatalogBackend, data)
	if err != nil {
		return fmt.Errorf("create appointment.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicAppointmentCreated, event); err != nil {
		return fmt.Errorf("publish appointment.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published appointment.created event",
		slog.Int64("appointment_id", a.ID),
	)

	return nil
}

// PublishNewsletterSubscribed publishes a newsletter.subscribed event.
func (p *Producer) PublishNewsletterSubscribed(ctx context.Context, s *domain.Subscriber) error {
	if p.kafka == nil {
		return nil
	}

	data := NewsletterSubscribedData{
		ID:    s.ID,
		Email: s.Email,
	}

	event, err := pkgkafka.NewEvent(TopicNewsletterSubscribed, fmt.Sprint(s.ID), AggregateTypeSubscriber, SourceCatalogBackend, data)
	if err != nil {
		return fmt.Errorf("create newsletter.subscribed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicNewsletterSubscribed, event); err != nil {
		return fmt.Errorf("publish newsletter.subscribed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published newsletter.subscribed event",
		slog.String("email", s.Email),
	)

	return nil
}
