package hub

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"device-telemetry-hub/internal/metrics"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	maxInboundMessageSize = 4096
	closeWriteTimeout     = time.Second
)

type connState int32

const (
	stateConnecting connState = iota
	stateOpen
	stateClosed
)

// Client is a websocket subscriber with a bounded outbound queue. A full
// queue closes the connection instead of blocking the publisher.
type Client struct {
	id        string
	conn      *websocket.Conn
	cfg       Config
	sendCh    chan []byte
	done      chan struct{}
	state     atomic.Int32
	closeOnce sync.Once
	onClose   func(*Client)
	wg        sync.WaitGroup
}

func newClient(conn *websocket.Conn, cfg Config, onClose func(*Client)) *Client {
	c := &Client{
		id:      uuid.NewString(),
		conn:    conn,
		cfg:     cfg,
		sendCh:  make(chan []byte, cfg.QueueSize),
		done:    make(chan struct{}),
		onClose: onClose,
	}
	c.state.Store(int32(stateConnecting))
	return c
}

func (c *Client) ID() string {
	return c.id
}

func (c *Client) Ready() bool {
	return connState(c.state.Load()) == stateOpen
}

// Send enqueues payload without blocking.
func (c *Client) Send(payload []byte) error {
	if !c.Ready() {
		return ErrConnectionClosed
	}
	select {
	case c.sendCh <- payload:
		return nil
	default:
		return ErrQueueFull
	}
}

func (c *Client) Close() error {
	c.shutdown(nil)
	return nil
}

func (c *Client) Done() <-chan struct{} {
	return c.done
}

func (c *Client) open() {
	c.state.Store(int32(stateOpen))
	c.wg.Go(c.writePump)
	c.wg.Go(c.readPump)
}

func (c *Client) wait() {
	c.wg.Wait()
}

// shutdown moves the client to Closed exactly once. The hub callback runs
// before the socket is closed so the registry never holds a closed client.
func (c *Client) shutdown(cause error) {
	c.closeOnce.Do(func() {
		c.state.Store(int32(stateClosed))
		if c.onClose != nil {
			c.onClose(c)
		}
		close(c.done)
		_ = c.conn.Close()
		if cause != nil {
			slog.Debug("Subscriber connection closed", "conn_id", c.id, "error", cause)
		}
	})
}

func (c *Client) closeGraceful(reason string) {
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, reason)
	_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeWriteTimeout))
	c.shutdown(nil)
}

func (c *Client) writePump() {
	ticker := time.NewTicker(c.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case msg := <-c.sendCh:
			start := time.Now()
			_ = c.conn.SetWriteDeadline(start.Add(c.cfg.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				metrics.HubDeliveryFailuresTotal.WithLabelValues("write").Inc()
				c.shutdown(err)
				return
			}
			metrics.WebSocketMessageSendDuration.Observe(time.Since(start).Seconds())
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.shutdown(err)
				return
			}
		case <-c.done:
			return
		}
	}
}

// readPump discards inbound frames; the channel is push only. It exists to
// process control frames and to notice the remote side going away.
func (c *Client) readPump() {
	c.conn.SetReadLimit(maxInboundMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongTimeout))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			c.shutdown(err)
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongTimeout))
	}
}
