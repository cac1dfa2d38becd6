// Package hub fans published events out to every open subscriber
// connection. Delivery is best effort and at most once per connection.
package hub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"device-telemetry-hub/internal/metrics"
	"device-telemetry-hub/internal/registry"

	"github.com/gorilla/websocket"
)

var (
	ErrMarshalEvent     = errors.New("event marshal failed")
	ErrConnectionClosed = errors.New("connection closed")
	ErrQueueFull        = errors.New("outbound queue full")
)

const (
	defaultQueueSize    = 16
	defaultWriteTimeout = 5 * time.Second
	defaultPingInterval = 30 * time.Second
	defaultPongTimeout  = 60 * time.Second
)

// Conn is one subscriber as seen by the hub.
type Conn interface {
	registry.Member
	Ready() bool
	Send(payload []byte) error
	Close() error
}

// Tap observes every published event after fan-out. Tap must not block.
type Tap interface {
	Tap(ctx context.Context, event Event, payload []byte)
}

type Config struct {
	QueueSize    int
	WriteTimeout time.Duration
	PingInterval time.Duration
	PongTimeout  time.Duration
	Taps         []Tap
}

type Hub struct {
	cfg       Config
	registry  *registry.Registry[Conn]
	publishMu sync.Mutex
	closed    atomic.Bool
}

func New(cfg Config) *Hub {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaultWriteTimeout
	}
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = defaultPingInterval
	}
	if cfg.PongTimeout <= 0 {
		cfg.PongTimeout = defaultPongTimeout
	}
	return &Hub{
		cfg:      cfg,
		registry: registry.New[Conn](),
	}
}

func (h *Hub) Register(c Conn) {
	h.registry.Register(c)
	metrics.HubConnectedClients.Set(float64(h.registry.Len()))
	slog.Debug("Subscriber registered", "conn_id", c.ID(), "total_clients", h.registry.Len())
}

func (h *Hub) Unregister(c Conn) {
	if !h.registry.Unregister(c) {
		return
	}
	metrics.HubConnectedClients.Set(float64(h.registry.Len()))
	slog.Debug("Subscriber unregistered", "conn_id", c.ID(), "remaining_clients", h.registry.Len())
}

func (h *Hub) Len() int {
	return h.registry.Len()
}

// Publish serializes event once and hands it to every ready connection in
// the registry at call time. A connection whose send fails is unregistered
// and closed; delivery to the others continues. Concurrent Publish calls are
// serialized so each connection sees events in publish order. Sends only
// enqueue, so the lock is never held across network writes.
func (h *Hub) Publish(ctx context.Context, event Event) error {
	const fn = "Hub:Publish"
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrMarshalEvent, err)
	}

	h.publishMu.Lock()
	defer h.publishMu.Unlock()

	start := time.Now()
	delivered := 0
	for _, c := range h.registry.Snapshot() {
		if !c.Ready() {
			metrics.HubSkippedNotReadyTotal.Inc()
			continue
		}
		if err := c.Send(payload); err != nil {
			h.drop(ctx, c, err)
			continue
		}
		delivered++
	}
	metrics.HubPublishDuration.Observe(time.Since(start).Seconds())
	metrics.HubEventsPublishedTotal.WithLabelValues(string(event.Type)).Inc()
	metrics.HubMessagesEnqueuedTotal.Add(float64(delivered))

	for _, tap := range h.cfg.Taps {
		tap.Tap(ctx, event, payload)
	}

	slog.DebugContext(ctx, "Event published",
		"type", event.Type,
		"device_id", event.DeviceID,
		"delivered", delivered,
	)
	return nil
}

func (h *Hub) drop(ctx context.Context, c Conn, err error) {
	h.Unregister(c)
	_ = c.Close()

	reason := "write"
	switch {
	case errors.Is(err, ErrQueueFull):
		reason = "queue_full"
	case errors.Is(err, ErrConnectionClosed):
		reason = "closed"
	}
	metrics.HubDeliveryFailuresTotal.WithLabelValues(reason).Inc()
	slog.WarnContext(ctx, "Dropping subscriber after failed send", "conn_id", c.ID(), "reason", reason, "error", err)
}

// Serve attaches an upgraded websocket to the hub and blocks until the
// connection is closed by either side.
func (h *Hub) Serve(ctx context.Context, ws *websocket.Conn) {
	c := newClient(ws, h.cfg, h.onClientClosed)
	if h.closed.Load() {
		c.closeGraceful("server shutting down")
		return
	}

	h.Register(c)
	c.open()
	// Close may have taken its snapshot between the check above and Register.
	if h.closed.Load() {
		c.closeGraceful("server shutting down")
	}
	slog.InfoContext(ctx, "Subscriber connected", "conn_id", c.ID(), "remote_addr", ws.RemoteAddr().String())

	<-c.Done()
	c.wait()
	h.Unregister(c)
	slog.InfoContext(ctx, "Subscriber disconnected", "conn_id", c.ID())
}

func (h *Hub) onClientClosed(c *Client) {
	h.Unregister(c)
}

// Close disconnects every subscriber with a close frame and rejects new
// ones. Subscribers are unregistered under the publish lock; the close
// frames are written afterwards and in parallel, so an unresponsive peer
// neither blocks Publish nor delays the others.
func (h *Hub) Close() {
	h.closed.Store(true)

	h.publishMu.Lock()
	members := h.registry.Snapshot()
	for _, c := range members {
		h.Unregister(c)
	}
	h.publishMu.Unlock()

	slog.Info("Hub shutting down", "total_clients", len(members))
	var wg sync.WaitGroup
	for _, c := range members {
		wg.Go(func() {
			if cl, ok := c.(*Client); ok {
				cl.closeGraceful("server shutting down")
				return
			}
			_ = c.Close()
		})
	}
	wg.Wait()
	metrics.HubConnectedClients.Set(0)
}
