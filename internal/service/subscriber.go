package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Quino300923/frontera-backend/internal/domain"
	"github.com/Quino300923/frontera-backend/internal/event"
	"github.com/Quino300923/frontera-backend/internal/repository"
	apperrors "github.com/Quino300923/frontera-backend/pkg/errors"
)

// SubscriberService manages newsletter signups.
type SubscriberService struct {
	repo     repository.SubscriberRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewSubscriberService creates the subscriber service.
func NewSubscriberService(repo repository.SubscriberRepository, producer *event.Producer, logger *slog.Logger) *SubscriberService {
	return &SubscriberService{repo: repo, producer: producer, logger: logger}
}

// Subscribe stores a new signup and announces it.
func (s *SubscriberService) Subscribe(ctx context.Context, email string) (*domain.Subscriber, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperrors.InvalidInput("email is required")
	}

	id, err := s.repo.Create(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("create subscriber: %w", err)
	}

	sub := &domain.Subscriber{ID: id, Email: email}

	if err := s.producer.PublishNewsletterSubscribed(ctx, sub); err != nil {
		s.logger.WarnContext(ctx, "announce subscriber failed",
			slog.Int64("subscriber_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "newsletter signup", slog.Int64("subscriber_id", id))

	return sub, nil
}

// List returns every subscriber, newest first.
func (s *SubscriberService) List(ctx context.Context) ([]domain.Subscriber, error) {
	return s.repo.List(ctx)
}

// Delete removes a subscriber.
func (s *SubscriberService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
