// Package tasks handles background work pulled off the task stream.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const TypeContactCleanup = "contact_cleanup"

var ErrMalformedTask = errors.New("malformed task")

type ContactPurger interface {
	PurgeRead(ctx context.Context, retention time.Duration) (int64, error)
}

type Processor struct {
	contacts  ContactPurger
	retention time.Duration
	logger    zerolog.Logger
}

func NewProcessor(contacts ContactPurger, retention time.Duration, logger zerolog.Logger) *Processor {
	return &Processor{
		contacts:  contacts,
		retention: retention,
		logger:    logger,
	}
}

func (p *Processor) Handle(ctx context.Context, msg redis.XMessage) error {
	taskType, ok := msg.Values["type"].(string)
	if !ok || taskType == "" {
		// untyped entries are acked and dropped
		p.logger.Warn().Str("message_id", msg.ID).Msg("task without type dropped")
		return nil
	}

	switch taskType {
	case TypeContactCleanup:
		return p.handleContactCleanup(ctx, msg)
	default:
		p.logger.Warn().Str("type", taskType).Str("message_id", msg.ID).Msg("unknown task type")
		return nil
	}
}

func (p *Processor) handleContactCleanup(ctx context.Context, msg redis.XMessage) error {
	retention := p.retention
	if raw, ok := msg.Values["retention"].(string); ok && raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			return fmt.Errorf("%w: retention %q", ErrMalformedTask, raw)
		}
		retention = parsed
	}

	removed, err := p.contacts.PurgeRead(ctx, retention)
	if err != nil {
		return err
	}

	p.logger.Info().
		Str("message_id", msg.ID).
		Int64("removed", removed).
		Dur("retention", retention).
		Msg("contact cleanup finished")
	return nil
}
