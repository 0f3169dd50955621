package handler

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/aniketdange3/dental-clinic-api/internal/model"
	"github.com/aniketdange3/dental-clinic-api/internal/repository"
)

// EnqueueEvent records a change event after a confirmed write. Enqueue
// failures are logged and never surfaced: the entity write already
// succeeded and the API response must reflect that.
func EnqueueEvent(ctx context.Context, outbox repository.OutboxRepository, eventType string, payload interface{}) {
	if outbox == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("event_type", eventType).Msg("failed to marshal event payload")
		return
	}

	if err := outbox.Create(ctx, &model.OutboxEvent{
		EventType: eventType,
		Payload:   data,
	}); err != nil {
		log.Error().Err(err).Str("event_type", eventType).Msg("failed to create outbox event")
	}
}
