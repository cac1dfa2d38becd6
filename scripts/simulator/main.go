package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/viper"
)

type TelemetrySample struct {
	DeviceID    string  `json:"deviceId"`
	Timestamp   string  `json:"timestamp"`
	Temperature float64 `json:"temperature"`
	Vibration   float64 `json:"vibration"`
	Status      string  `json:"status"`
}

type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type CommandPayload struct {
	DeviceID string `json:"deviceId"`
	Action   string `json:"action"`
}

type Config struct {
	TelemetryURL string
	WSURL        string
	DeviceID     string
	Interval     time.Duration
}

func loadConfig() Config {
	v := viper.New()
	v.SetDefault("backend_url", "http://localhost:4000/telemetry")
	v.SetDefault("ws_url", "ws://localhost:4000/ws")
	v.SetDefault("device_id", "device-01")
	v.SetDefault("interval", 2*time.Second)
	v.AutomaticEnv()
	return Config{
		TelemetryURL: v.GetString("backend_url"),
		WSURL:        v.GetString("ws_url"),
		DeviceID:     v.GetString("device_id"),
		Interval:     v.GetDuration("interval"),
	}
}

// Simulator posts random samples for one device and obeys start/stop
// commands addressed to it.
type Simulator struct {
	cfg    Config
	client *http.Client
	paused atomic.Bool
}

func NewSimulator(cfg Config) *Simulator {
	return &Simulator{
		cfg:    cfg,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

func (s *Simulator) Paused() bool {
	return s.paused.Load()
}

func (s *Simulator) HandleMessage(data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		slog.Error("Error parsing websocket message", "error", err)
		return
	}
	if msg.Type != "command" {
		return
	}
	var cmd CommandPayload
	if err := json.Unmarshal(msg.Payload, &cmd); err != nil {
		slog.Error("Error parsing command payload", "error", err)
		return
	}
	if cmd.DeviceID != s.cfg.DeviceID {
		return
	}
	switch cmd.Action {
	case "stop":
		s.paused.Store(true)
	case "start":
		s.paused.Store(false)
	}
	slog.Info("Command received", "device_id", cmd.DeviceID, "action", cmd.Action)
}

func (s *Simulator) SendTelemetry(ctx context.Context) error {
	if s.Paused() {
		return nil
	}
	sample := TelemetrySample{
		DeviceID:    s.cfg.DeviceID,
		Timestamp:   time.Now().UTC().Format(time.RFC3339Nano),
		Temperature: 40 + rand.Float64()*10,
		Vibration:   rand.Float64() * 5,
		Status:      "OK",
	}
	body, err := json.Marshal(sample)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.TelemetryURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	slog.Info("Sent telemetry", "device_id", sample.DeviceID, "temperature", sample.Temperature, "vibration", sample.Vibration)
	return nil
}

// Listen reads commands until the connection drops or ctx ends.
func (s *Simulator) Listen(ctx context.Context) {
	for ctx.Err() == nil {
		ws, _, err := websocket.DefaultDialer.DialContext(ctx, s.cfg.WSURL, nil)
		if err != nil {
			slog.Error("Websocket dial failed", "url", s.cfg.WSURL, "error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.cfg.Interval):
			}
			continue
		}
		s.readCommands(ctx, ws)
	}
}

// readCommands handles messages until the connection fails. Cancelling ctx
// closes the socket; the hook is released once the connection is done.
func (s *Simulator) readCommands(ctx context.Context, ws *websocket.Conn) {
	stop := context.AfterFunc(ctx, func() {
		ws.Close()
	})
	defer stop()
	defer ws.Close()

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			slog.Error("Websocket read failed", "error", err)
			return
		}
		s.HandleMessage(data)
	}
}

func (s *Simulator) Run(ctx context.Context) {
	go s.Listen(ctx)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()
	for {
		if err := s.SendTelemetry(ctx); err != nil {
			slog.Error("Send failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := loadConfig()
	slog.Info("Simulator starting", "device_id", cfg.DeviceID, "backend", cfg.TelemetryURL, "ws", cfg.WSURL)
	NewSimulator(cfg).Run(ctx)
}
