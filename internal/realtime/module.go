// Package realtime fans out data change notifications to connected
// clients: in-process events reach the SSE hub directly, and a Redis
// bridge relays them across processes.
package realtime

import (
	"context"

	domainevents "printshop_backend/internal/events"
	apphttp "printshop_backend/internal/http"
	"printshop_backend/internal/realtime/sse"
	"printshop_backend/platform/events"
	"printshop_backend/platform/logger"
)

// Module represents the realtime module.
type Module struct {
	hub    *sse.Service
	bridge *Bridge
	log    *logger.Logger
}

// NewModule creates the SSE hub and, when a Redis URL is configured,
// the cross-process bridge.
func NewModule(redisURL string, log *logger.Logger) (*Module, error) {
	hub := sse.New(log)

	var bridge *Bridge
	if redisURL != "" {
		var err error
		bridge, err = NewBridge(redisURL, hub, log)
		if err != nil {
			return nil, err
		}
	} else {
		log.Warn("REDIS_URL not configured; realtime limited to this process")
	}

	return &Module{hub: hub, bridge: bridge, log: log}, nil
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "realtime"
}

// Hub returns the SSE hub.
func (m *Module) Hub() *sse.Service {
	return m.hub
}

// RegisterHandlers subscribes the module to every data change event.
func (m *Module) RegisterHandlers(bus events.Bus) {
	handler := events.HandlerFunc(func(ctx context.Context, event events.Event) {
		change, ok := event.(domainevents.ChangeEvent)
		if !ok {
			return
		}
		n := sse.Notification{Table: change.Table, Action: change.Action}
		m.hub.Broadcast(n)
		if m.bridge != nil {
			if err := m.bridge.Publish(ctx, n); err != nil {
				m.log.Error("realtime bridge publish failed", "table", n.Table, "error", err)
			}
		}
	})

	bus.Subscribe(domainevents.PrintersChanged, handler)
	bus.Subscribe(domainevents.MaterialsChanged, handler)
	bus.Subscribe(domainevents.BudgetsChanged, handler)
}

// Run starts the bridge subscription loop. Blocks until ctx is done.
func (m *Module) Run(ctx context.Context) {
	if m.bridge != nil {
		m.bridge.Run(ctx)
	}
}

// Close shuts down the hub and bridge.
func (m *Module) Close() {
	m.hub.Close()
	if m.bridge != nil {
		_ = m.bridge.Close()
	}
}

// RegisterRoutes mounts the SSE stream endpoint.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/realtime/stream", m.hub.Handler())
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
