package realtime

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"printshop_backend/internal/realtime/sse"
	"printshop_backend/platform/httpkit"
	"printshop_backend/platform/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func testRedisURL(t *testing.T) string {
	t.Helper()
	mr := miniredis.RunT(t)
	return "redis://" + mr.Addr()
}

// streamClient connects one SSE client to the hub through the HTTP
// handler and returns the captured body after cancel is called.
func streamClient(t *testing.T, hub *sse.Service) (cancel func() string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.GET("/stream", func(c *gin.Context) {
		c.Set(httpkit.ContextUserIDKey, uuid.New())
	}, hub.Handler())

	ctx, stop := context.WithCancel(context.Background())
	req := httptest.NewRequest("GET", "/stream", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		engine.ServeHTTP(rec, req)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() == 0 {
		if time.Now().After(deadline) {
			stop()
			t.Fatalf("client never connected")
		}
		time.Sleep(5 * time.Millisecond)
	}

	return func() string {
		stop()
		<-done
		return rec.Body.String()
	}
}

func TestBridgePublish_CarriesOriginTableAndAction(t *testing.T) {
	url := testRedisURL(t)

	bridge, err := NewBridge(url, nil, logger.New("test"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer bridge.Close()

	sub := bridge.rdb.Subscribe(context.Background(), Channel)
	defer sub.Close()
	if _, err := sub.Receive(context.Background()); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	if err := bridge.Publish(context.Background(), sse.Notification{Table: "budgets", Action: "INSERT"}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	msg, err := sub.ReceiveMessage(context.Background())
	if err != nil {
		t.Fatalf("receive failed: %v", err)
	}

	var wire wireMessage
	if err := json.Unmarshal([]byte(msg.Payload), &wire); err != nil {
		t.Fatalf("malformed payload: %v", err)
	}
	if wire.Table != "budgets" || wire.Action != "INSERT" {
		t.Fatalf("expected budgets/INSERT, got %s/%s", wire.Table, wire.Action)
	}
	if wire.Origin != bridge.instanceID {
		t.Fatalf("expected origin %s, got %s", bridge.instanceID, wire.Origin)
	}
}

func TestBridgeRun_ForwardsForeignMessages(t *testing.T) {
	url := testRedisURL(t)
	log := logger.New("test")

	hub := sse.New(log)
	defer hub.Close()

	receiver, err := NewBridge(url, hub, log)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer receiver.Close()

	publisher, err := NewBridge(url, nil, log)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer publisher.Close()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go receiver.Run(ctx)

	finish := streamClient(t, hub)

	for i := 0; i < 5; i++ {
		if err := publisher.Publish(context.Background(), sse.Notification{Table: "materials", Action: "UPDATE"}); err != nil {
			t.Fatalf("publish failed: %v", err)
		}
		time.Sleep(100 * time.Millisecond)
	}

	body := finish()
	if !strings.Contains(body, "event:change") {
		t.Fatalf("expected change event in stream, got %q", body)
	}
	if !strings.Contains(body, `materials`) {
		t.Fatalf("expected materials notification in stream, got %q", body)
	}
}

func TestBridgeRun_SkipsOwnMessages(t *testing.T) {
	url := testRedisURL(t)
	log := logger.New("test")

	hub := sse.New(log)
	defer hub.Close()

	bridge, err := NewBridge(url, hub, log)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer bridge.Close()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go bridge.Run(ctx)

	finish := streamClient(t, hub)

	for i := 0; i < 5; i++ {
		if err := bridge.Publish(context.Background(), sse.Notification{Table: "printers", Action: "UPDATE"}); err != nil {
			t.Fatalf("publish failed: %v", err)
		}
		time.Sleep(100 * time.Millisecond)
	}

	body := finish()
	if strings.Contains(body, "event:change") {
		t.Fatalf("expected no change events from own messages, got %q", body)
	}
}
