package audit

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "shoptrack/pkg/domain"
	"shoptrack/pkg/requestcontext"
)

func TestPublisher_EmitFillsDefaults(t *testing.T) {
	p := NewPublisher()
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), fixed)
	ctx = requestcontext.WithRequestID(ctx, "req-123")

	p.Emit(ctx, Event{Action: ActionShopCreated, ShopID: id.NewShopID()})

	event := <-p.Inbox()
	assert.Equal(t, fixed, event.Timestamp)
	assert.Equal(t, "req-123", event.RequestID)
}

func TestPublisher_DropsWhenFull(t *testing.T) {
	p := NewPublisher(
		WithBuffer(1),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	ctx := context.Background()

	// Second emit must not block even though nothing drains the inbox.
	p.Emit(ctx, Event{Action: ActionApplicantCreated})
	done := make(chan struct{})
	go func() {
		p.Emit(ctx, Event{Action: ActionApplicantCreated})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Emit blocked on a full inbox")
	}
}

func TestWorker_DeliversToSink(t *testing.T) {
	sink := NewMemorySink()
	p := NewPublisher()
	worker := NewWorker(sink, p.Inbox(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = worker.Run(ctx) }()

	shopID := id.NewShopID()
	p.Emit(ctx, Event{Action: ActionApplicantDeleted, ShopID: shopID})

	require.Eventually(t, func() bool {
		events, err := sink.ListByShop(ctx, shopID)
		return err == nil && len(events) == 1
	}, time.Second, 10*time.Millisecond)

	events, err := sink.ListByShop(ctx, shopID)
	require.NoError(t, err)
	assert.Equal(t, ActionApplicantDeleted, events[0].Action)
}

type failingSink struct{ calls atomic.Int32 }

func (f *failingSink) Append(context.Context, Event) error {
	f.calls.Add(1)
	return errors.New("broker unavailable")
}

func TestWorker_KeepsRunningAfterSinkFailure(t *testing.T) {
	sink := &failingSink{}
	inbox := make(chan Event, 2)
	worker := NewWorker(sink, inbox, slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = worker.Run(ctx) }()

	inbox <- Event{Action: ActionApplicantCreated}
	inbox <- Event{Action: ActionApplicantCreated}

	require.Eventually(t, func() bool { return sink.calls.Load() == 2 }, time.Second, 10*time.Millisecond)
}

type captureProducer struct {
	key, value []byte
}

func (c *captureProducer) Publish(_ context.Context, key, value []byte) error {
	c.key, c.value = key, value
	return nil
}

func TestKafkaSink_KeysByShop(t *testing.T) {
	producer := &captureProducer{}
	sink := NewKafkaSink(producer)
	shopID := id.NewShopID()

	err := sink.Append(context.Background(), Event{
		Action: ActionApplicantStatusChanged,
		ShopID: shopID,
		Detail: "Status changed from NEW to CONTACTED.",
	})
	require.NoError(t, err)

	assert.Equal(t, shopID.String(), string(producer.key))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(producer.value, &decoded))
	assert.Equal(t, string(ActionApplicantStatusChanged), decoded["action"])
	assert.Equal(t, shopID.String(), decoded["shop_id"])
}
