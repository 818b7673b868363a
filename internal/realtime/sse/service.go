// Package sse provides Server-Sent Events support for data change
// notifications.
package sse

import (
	"encoding/json"
	"net/http"
	"sync"

	"printshop_backend/platform/httpkit"
	"printshop_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Notification tells a client that rows in a table changed. The client
// is expected to refetch; no row data travels over the stream.
type Notification struct {
	Table  string `json:"table"`
	Action string `json:"action"`
}

// client represents a connected SSE client
type client struct {
	userID uuid.UUID
	events chan Notification
}

// Service manages SSE connections and event broadcasting
type Service struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	log     *logger.Logger
}

// New creates a new SSE service
func New(log *logger.Logger) *Service {
	return &Service{
		clients: make(map[*client]struct{}),
		log:     log,
	}
}

func (s *Service) addClient(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c] = struct{}{}
}

func (s *Service) removeClient(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.events)
	}
}

// ClientCount returns the number of connected clients.
func (s *Service) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Broadcast sends a notification to every connected client. Slow
// clients with a full buffer are skipped rather than blocked on.
func (s *Service) Broadcast(n Notification) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for c := range s.clients {
		select {
		case c.events <- n:
		default:
			s.log.Warn("sse buffer full, dropping notification", "user_id", c.userID.String(), "table", n.Table)
		}
	}
}

// Handler returns a Gin handler for SSE connections. The auth
// middleware must run first; EventSource clients pass the token as a
// query parameter.
func (s *Service) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := httpkit.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")
		c.Writer.Header().Set("X-Accel-Buffering", "no")

		cl := &client{
			userID: userID,
			events: make(chan Notification, 32),
		}
		s.addClient(cl)
		defer s.removeClient(cl)

		c.SSEvent("connected", gin.H{"userId": userID})
		c.Writer.Flush()

		clientGone := c.Request.Context().Done()
		for {
			select {
			case <-clientGone:
				return
			case n, ok := <-cl.events:
				if !ok {
					return
				}
				data, _ := json.Marshal(n)
				c.SSEvent("change", string(data))
				c.Writer.Flush()
			}
		}
	}
}

// Close shuts down the SSE service
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for c := range s.clients {
		close(c.events)
	}
	s.clients = make(map[*client]struct{})
}
