package events

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/simaogato/advisordesk-backend/internal/domain"
)

// LogPublisher records events in the log instead of shipping them.
// It is used when no brokers are configured.
type LogPublisher struct {
	log zerolog.Logger
}

// NewLogPublisher creates a new LogPublisher
func NewLogPublisher(log zerolog.Logger) *LogPublisher {
	return &LogPublisher{log: log.With().Str("component", "events").Logger()}
}

func (p *LogPublisher) Publish(_ context.Context, topic string, key string, event any) error {
	p.log.Debug().Str("topic", topic).Str("key", key).Interface("event", event).Msg("event")
	return nil
}

var _ domain.EventPublisher = (*LogPublisher)(nil)
