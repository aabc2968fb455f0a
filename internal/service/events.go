package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/fantabuste/envelope-server-go/internal/sse"
)

// EventPublisher delivers lobby notifications for a session code.
type EventPublisher interface {
	Publish(ctx context.Context, code string, event sse.Event) error
}

// notify is fire-and-forget: the state change already committed, so a
// delivery failure only costs watchers a live refresh.
func notify(ctx context.Context, events EventPublisher, code string, eventType sse.EventType, data any) {
	if events == nil {
		return
	}

	event, err := sse.NewEvent(eventType, data)
	if err != nil {
		log.Error().Err(err).Str("type", string(eventType)).Msg("failed to encode event")
		return
	}

	if err := events.Publish(ctx, code, event); err != nil {
		log.Warn().
			Err(err).
			Str("code", code).
			Str("type", string(eventType)).
			Msg("failed to publish event")
	}
}
