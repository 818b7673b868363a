package realtime

import (
	"context"
	"encoding/json"

	"printshop_backend/internal/realtime/sse"
	"printshop_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Channel is the Redis pub/sub channel change notifications travel on.
const Channel = "realtime:changes"

type wireMessage struct {
	Origin string `json:"origin"`
	Table  string `json:"table"`
	Action string `json:"action"`
}

// Bridge relays change notifications across processes over Redis
// pub/sub, so the worker and every API replica reach all connected
// SSE clients. Messages published by this instance are skipped when
// they come back around.
type Bridge struct {
	rdb        *redis.Client
	hub        *sse.Service
	log        *logger.Logger
	instanceID string
}

// NewBridge connects to Redis. The hub may be nil for publish-only
// processes such as the worker.
func NewBridge(redisURL string, hub *sse.Service, log *logger.Logger) (*Bridge, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	return &Bridge{
		rdb:        redis.NewClient(opt),
		hub:        hub,
		log:        log,
		instanceID: uuid.NewString(),
	}, nil
}

// Publish sends a notification to all subscribed processes.
func (b *Bridge) Publish(ctx context.Context, n sse.Notification) error {
	data, err := json.Marshal(wireMessage{
		Origin: b.instanceID,
		Table:  n.Table,
		Action: n.Action,
	})
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, Channel, data).Err()
}

// Run subscribes to the channel and forwards foreign notifications to
// the local hub. It blocks until the context is canceled.
func (b *Bridge) Run(ctx context.Context) {
	if b.hub == nil {
		return
	}

	sub := b.rdb.Subscribe(ctx, Channel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var wire wireMessage
			if err := json.Unmarshal([]byte(msg.Payload), &wire); err != nil {
				b.log.Warn("realtime bridge received malformed message", "error", err)
				continue
			}
			if wire.Origin == b.instanceID {
				continue
			}
			b.hub.Broadcast(sse.Notification{Table: wire.Table, Action: wire.Action})
		}
	}
}

// Close releases the Redis connection.
func (b *Bridge) Close() error {
	return b.rdb.Close()
}
