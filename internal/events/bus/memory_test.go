package bus

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/devdash/devdash/internal/common/logger"
)

func testBus(t *testing.T) *MemoryEventBus {
	t.Helper()
	return NewMemoryEventBus(logger.Default())
}

func waitFor(t *testing.T, ch <-chan *Event) *Event {
	t.Helper()
	select {
	case e := <-ch:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func TestPublishSubscribe(t *testing.T) {
	b := testBus(t)
	defer b.Close()

	received := make(chan *Event, 1)
	_, err := b.Subscribe("task.created", func(ctx context.Context, e *Event) error {
		received <- e
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	event := NewEvent("task.created", "test", map[string]interface{}{"user_id": "u1"})
	if err := b.Publish(context.Background(), "task.created", event); err != nil {
		t.Fatalf("publish: %v", err)
	}

	got := waitFor(t, received)
	if got.ID != event.ID {
		t.Errorf("expected event %s, got %s", event.ID, got.ID)
	}
	if got.UserID() != "u1" {
		t.Errorf("expected user_id u1, got %q", got.UserID())
	}
}

func TestWildcardSubscription(t *testing.T) {
	b := testBus(t)
	defer b.Close()

	received := make(chan *Event, 2)
	_, err := b.Subscribe("task.*", func(ctx context.Context, e *Event) error {
		received <- e
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	_ = b.Publish(context.Background(), "task.created", NewEvent("task.created", "test", nil))
	_ = b.Publish(context.Background(), "task.deleted", NewEvent("task.deleted", "test", nil))
	_ = b.Publish(context.Background(), "pomodoro.started", NewEvent("pomodoro.started", "test", nil))

	types := map[string]bool{}
	types[waitFor(t, received).Type] = true
	types[waitFor(t, received).Type] = true
	if !types["task.created"] || !types["task.deleted"] {
		t.Errorf("expected task.created and task.deleted, got %v", types)
	}

	select {
	case e := <-received:
		t.Errorf("unexpected event delivered: %s", e.Type)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestFullWildcardSubscription(t *testing.T) {
	b := testBus(t)
	defer b.Close()

	var mu sync.Mutex
	var seen []string
	done := make(chan struct{}, 3)
	_, err := b.Subscribe(">", func(ctx context.Context, e *Event) error {
		mu.Lock()
		seen = append(seen, e.Type)
		mu.Unlock()
		done <- struct{}{}
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	for _, subject := range []string{"task.created", "pomodoro.completed", "insight.generated"} {
		_ = b.Publish(context.Background(), subject, NewEvent(subject, "test", nil))
	}

	for i := 0; i < 3; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for events")
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 3 {
		t.Errorf("expected 3 events, got %d: %v", len(seen), seen)
	}
}

func TestUnsubscribe(t *testing.T) {
	b := testBus(t)
	defer b.Close()

	received := make(chan *Event, 1)
	sub, err := b.Subscribe("task.created", func(ctx context.Context, e *Event) error {
		received <- e
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if !sub.IsValid() {
		t.Error("expected subscription to be valid")
	}
	if err := sub.Unsubscribe(); err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}
	if sub.IsValid() {
		t.Error("expected subscription to be invalid after unsubscribe")
	}

	_ = b.Publish(context.Background(), "task.created", NewEvent("task.created", "test", nil))
	select {
	case <-received:
		t.Error("received event after unsubscribe")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestPublishAfterClose(t *testing.T) {
	b := testBus(t)
	b.Close()

	if b.IsConnected() {
		t.Error("expected closed bus to report not connected")
	}
	if err := b.Publish(context.Background(), "task.created", NewEvent("task.created", "test", nil)); err == nil {
		t.Error("expected publish on closed bus to fail")
	}
	if _, err := b.Subscribe("task.created", func(ctx context.Context, e *Event) error { return nil }); err == nil {
		t.Error("expected subscribe on closed bus to fail")
	}
}
