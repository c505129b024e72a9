// Package websocket streams committed client events to organization
// members over websocket connections.
package websocket

import (
	"context"
	"strings"
	"sync"

	"github.com/anjiri1684/tutor_orm/client"
	"github.com/anjiri1684/tutor_orm/logger"
	"github.com/anjiri1684/tutor_orm/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Subscriber receives the events of one organization, optionally limited to
// some models.
type Subscriber struct {
	OrgID  uuid.UUID
	Models map[string]bool
	Conn   Conn
}

func (s *Subscriber) wants(e client.Event) bool {
	if e.OrgID == nil || *e.OrgID != s.OrgID {
		return false
	}
	return len(s.Models) == 0 || s.Models[e.Model]
}

type Hub struct {
	register   chan *Subscriber
	unregister chan *Subscriber
	broadcast  chan client.Event
	done       chan struct{}

	mu   sync.RWMutex
	subs map[*Subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Subscriber),
		unregister: make(chan *Subscriber),
		broadcast:  make(chan client.Event, 256),
		done:       make(chan struct{}),
		subs:       make(map[*Subscriber]struct{}),
	}
}

// Register adds s to the hub. Once the hub has stopped the connection is
// closed instead.
func (h *Hub) Register(s *Subscriber) {
	select {
	case h.register <- s:
	case <-h.done:
		s.Conn.Close()
	}
}

func (h *Hub) Unregister(s *Subscriber) {
	select {
	case h.unregister <- s:
	case <-h.done:
	}
}

// Len returns the number of connected subscribers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Listener feeds client events into the hub. Events are dropped when the
// hub falls behind so writers are never blocked.
func (h *Hub) Listener() client.Listener {
	return func(_ context.Context, e client.Event) {
		select {
		case h.broadcast <- e:
		default:
			logger.Warn().Str("model", e.Model).Str("action", string(e.Action)).Msg("change feed full, event dropped")
		}
	}
}

// Run serves the hub until ctx is done. It must be called once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for s := range h.subs {
				s.Conn.Close()
				delete(h.subs, s)
			}
			h.mu.Unlock()
			return
		case s := <-h.register:
			h.mu.Lock()
			h.subs[s] = struct{}{}
			h.mu.Unlock()
			logger.Debug().Str("org", s.OrgID.String()).Msg("change feed subscriber registered")
		case s := <-h.unregister:
			h.mu.Lock()
			delete(h.subs, s)
			h.mu.Unlock()
		case e := <-h.broadcast:
			h.deliver(e)
		}
	}
}

func (h *Hub) deliver(e client.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs {
		if !s.wants(e) {
			continue
		}
		if err := s.Conn.WriteJSON(e); err != nil {
			logger.Warn().Err(err).Str("org", s.OrgID.String()).Msg("change feed write failed, dropping subscriber")
			s.Conn.Close()
			delete(h.subs, s)
		}
	}
}

// Upgrade rejects plain HTTP requests and authenticates the token passed in
// the token query parameter.
func Upgrade(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		claims, err := middleware.ParseToken(secret, c.Query("token"))
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired JWT")
		}
		org, err := middleware.OrgFromClaims(claims)
		if err != nil {
			return fiber.NewError(fiber.StatusForbidden, err.Error())
		}
		c.Locals(middleware.OrgLocal, org)
		return c.Next()
	}
}

// Handler subscribes the connection to its organization's events. The
// models query parameter takes a comma separated list of model names.
func (h *Hub) Handler() fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		org, ok := c.Locals(middleware.OrgLocal).(uuid.UUID)
		if !ok {
			_ = c.WriteJSON(fiber.Map{"error": "missing organization"})
			c.Close()
			return
		}
		s := &Subscriber{OrgID: org, Models: parseModels(c.Query("models")), Conn: c}
		h.Register(s)
		defer func() {
			h.Unregister(s)
			c.Close()
		}()

		// Clients only listen; reading detects the close.
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				if !websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					logger.Debug().Err(err).Msg("change feed read error")
				}
				return
			}
		}
	})
}

func parseModels(raw string) map[string]bool {
	if raw == "" {
		return nil
	}
	out := make(map[string]bool)
	for _, m := range strings.Split(raw, ",") {
		if m = strings.TrimSpace(m); m != "" {
			out[m] = true
		}
	}
	return out
}
