package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aniketdange3/dental-clinic-api/internal/model"
	"github.com/aniketdange3/dental-clinic-api/internal/repository/memory"
	"github.com/aniketdange3/dental-clinic-api/pkg/logger"
	"github.com/aniketdange3/dental-clinic-api/pkg/messaging"
	"github.com/aniketdange3/dental-clinic-api/pkg/metrics"
)

type fakeBroker struct {
	mu        sync.Mutex
	published []messaging.Message
	fail      bool
}

func (b *fakeBroker) Publish(_ context.Context, _ string, message interface{}) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fail {
		return errors.New("broker unavailable")
	}
	b.published = append(b.published, message.(messaging.Message))
	return nil
}

func (b *fakeBroker) Subscribe(context.Context, string) (<-chan []byte, error) {
	return nil, errors.New("not implemented")
}

func (b *fakeBroker) Close() error { return nil }

func newProcessor(repo *memory.OutboxRepository, broker messaging.Broker, maxRetries int) *OutboxProcessor {
	return NewOutboxProcessor(repo, broker, OutboxProcessorConfig{
		Channel:      "clinic.records",
		BatchSize:    10,
		PollInterval: 1,
		MaxRetries:   maxRetries,
	}, logger.NewLogger(&logger.Config{Level: logger.ErrorLevel}), metrics.New("test", prometheus.NewRegistry()))
}

func enqueue(t *testing.T, repo *memory.OutboxRepository, eventType string) *model.OutboxEvent {
	t.Helper()
	payload, err := json.Marshal(map[string]string{"name": "Alice"})
	require.NoError(t, err)
	event := &model.OutboxEvent{EventType: eventType, Payload: payload}
	require.NoError(t, repo.Create(context.Background(), event))
	return event
}

func TestProcessEventsPublishesAndMarks(t *testing.T) {
	repo := memory.NewOutboxRepository()
	broker := &fakeBroker{}
	p := newProcessor(repo, broker, 3)

	enqueue(t, repo, model.EventPatientCreate)
	enqueue(t, repo, model.EventExpenseDelete)

	require.NoError(t, p.ProcessEvents(context.Background()))

	assert.Len(t, broker.published, 2)
	assert.Equal(t, model.EventPatientCreate, broker.published[0].Type)

	pending, err := repo.GetPendingEvents(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestProcessEventsRetriesThenDeadLetters(t *testing.T) {
	repo := memory.NewOutboxRepository()
	broker := &fakeBroker{fail: true}
	p := newProcessor(repo, broker, 2)

	enqueue(t, repo, model.EventInventoryUpdate)

	// first failure keeps the event pending
	require.NoError(t, p.ProcessEvents(context.Background()))
	pending, err := repo.GetPendingEvents(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, 1, pending[0].RetryCount)

	// second failure exhausts the retries and dead-letters the event
	require.NoError(t, p.ProcessEvents(context.Background()))
	pending, err = repo.GetPendingEvents(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestProcessEventsRecoversAfterBrokerReturns(t *testing.T) {
	repo := memory.NewOutboxRepository()
	broker := &fakeBroker{fail: true}
	p := newProcessor(repo, broker, 5)

	enqueue(t, repo, model.EventPatientUpdate)

	require.NoError(t, p.ProcessEvents(context.Background()))

	broker.mu.Lock()
	broker.fail = false
	broker.mu.Unlock()

	require.NoError(t, p.ProcessEvents(context.Background()))
	assert.Len(t, broker.published, 1)

	pending, err := repo.GetPendingEvents(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
