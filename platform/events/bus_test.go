package events

import (
	"context"
	"testing"
	"time"

	"printshop_backend/platform/logger"
)

func TestInMemoryBus_DeliversToSubscribers(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	received := make(chan Event, 1)
	bus.Subscribe("thing.happened", HandlerFunc(func(_ context.Context, ev Event) {
		received <- ev
	}))

	bus.Publish(context.Background(), NewBaseEvent("thing.happened"))

	select {
	case ev := <-received:
		if ev.Name() != "thing.happened" {
			t.Fatalf("expected thing.happened, got %s", ev.Name())
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("handler never invoked")
	}
}

func TestInMemoryBus_IgnoresUnsubscribedEvents(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	received := make(chan Event, 1)
	bus.Subscribe("thing.happened", HandlerFunc(func(_ context.Context, ev Event) {
		received <- ev
	}))

	bus.Publish(context.Background(), NewBaseEvent("other.happened"))

	select {
	case <-received:
		t.Fatalf("handler invoked for unrelated event")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestInMemoryBus_HandlerContextSurvivesCallerCancel(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	handlerErr := make(chan error, 1)
	started := make(chan struct{})
	proceed := make(chan struct{})
	bus.Subscribe("thing.happened", HandlerFunc(func(ctx context.Context, _ Event) {
		close(started)
		<-proceed
		handlerErr <- ctx.Err()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	bus.Publish(ctx, NewBaseEvent("thing.happened"))

	<-started
	cancel()
	close(proceed)

	select {
	case err := <-handlerErr:
		if err != nil {
			t.Fatalf("expected handler context to survive caller cancel, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("handler never finished")
	}
}

func TestInMemoryBus_RecoversFromPanickingHandler(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	received := make(chan struct{}, 1)
	bus.Subscribe("thing.happened", HandlerFunc(func(_ context.Context, _ Event) {
		panic("boom")
	}))
	bus.Subscribe("thing.happened", HandlerFunc(func(_ context.Context, _ Event) {
		received <- struct{}{}
	}))

	bus.Publish(context.Background(), NewBaseEvent("thing.happened"))

	select {
	case <-received:
	case <-time.After(2 * time.Second):
		t.Fatalf("second handler never invoked")
	}
}
