package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"portfolio/internal/ids"
	"portfolio/internal/models"
	"portfolio/internal/security"
)

type ContactStore interface {
	Create(ctx context.Context, m models.ContactMessage) error
	List(ctx context.Context, unreadOnly bool) ([]models.ContactMessage, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type ContactInput struct {
	Name    string
	Email   string
	Subject *string
	Message string
}

type ContactService struct {
	messages  ContactStore
	sanitizer *security.Sanitizer
	log       zerolog.Logger
	now       func() time.Time
}

func NewContactService(messages ContactStore, sanitizer *security.Sanitizer, log zerolog.Logger) *ContactService {
	return &ContactService{
		messages:  messages,
		sanitizer: sanitizer,
		log:       log,
		now:       time.Now,
	}
}

// Submit stores a visitor message with all markup removed.
func (s *ContactService) Submit(ctx context.Context, input ContactInput) (models.ContactMessage, error) {
	msg := models.ContactMessage{
		ID:        ids.New(),
		Name:      s.sanitizer.Text(input.Name),
		Email:     s.sanitizer.Text(input.Email),
		Subject:   s.sanitizer.OptionalText(input.Subject),
		Message:   s.sanitizer.Text(input.Message),
		CreatedAt: s.now().UTC(),
	}
	if err := requireText(msg.Name, msg.Email, msg.Message); err != nil {
		return models.ContactMessage{}, err
	}

	if err := s.messages.Create(ctx, msg); err != nil {
		return models.ContactMessage{}, fmt.Errorf("create contact message: %w", err)
	}
	s.log.Info().Str("message_id", msg.ID).Msg("contact message received")
	return msg, nil
}

func (s *ContactService) List(ctx context.Context, unreadOnly bool) ([]models.ContactMessage, error) {
	return s.messages.List(ctx, unreadOnly)
}

func (s *ContactService) MarkRead(ctx context.Context, id string) error {
	return s.messages.MarkRead(ctx, id)
}

func (s *ContactService) Delete(ctx context.Context, id string) error {
	return s.messages.Delete(ctx, id)
}

// PurgeRead deletes read messages older than retention.
func (s *ContactService) PurgeRead(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := s.now().UTC().Add(-retention)
	removed, err := s.messages.DeleteReadBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge contact messages: %w", err)
	}
	return removed, nil
}
