package sse

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"printshop_backend/platform/httpkit"
	"printshop_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func TestHandler_RequiresAuthenticatedUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := New(logger.New("test"))

	engine := gin.New()
	engine.GET("/stream", svc.Handler())

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest("GET", "/stream", nil))

	if rec.Code != 401 {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestBroadcast_ReachesConnectedClient(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := New(logger.New("test"))
	defer svc.Close()

	engine := gin.New()
	engine.GET("/stream", func(c *gin.Context) {
		c.Set(httpkit.ContextUserIDKey, uuid.New())
	}, svc.Handler())

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest("GET", "/stream", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		engine.ServeHTTP(rec, req)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for svc.ClientCount() == 0 {
		if time.Now().After(deadline) {
			cancel()
			t.Fatalf("client never connected")
		}
		time.Sleep(5 * time.Millisecond)
	}

	svc.Broadcast(Notification{Table: "budgets", Action: "INSERT"})
	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	body := rec.Body.String()
	if !strings.Contains(body, "event:connected") {
		t.Fatalf("expected connected event, got %q", body)
	}
	if !strings.Contains(body, "event:change") || !strings.Contains(body, "budgets") {
		t.Fatalf("expected budgets change event, got %q", body)
	}
}

func TestBroadcast_NoClientsIsNoOp(t *testing.T) {
	svc := New(logger.New("test"))
	svc.Broadcast(Notification{Table: "printers", Action: "UPDATE"})

	if svc.ClientCount() != 0 {
		t.Fatalf("expected no clients, got %d", svc.ClientCount())
	}
}
