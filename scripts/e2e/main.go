package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	k "device-telemetry-hub/internal/kafka"

	"github.com/gorilla/websocket"
	"github.com/segmentio/kafka-go"
)

// Smoke test against a running backend.
// Steps:
// 1. Subscribe to the websocket channel
// 2. POST a sample for a fresh device id and wait for its broadcast
// 3. Check the device shows up in GET /devices
// 4. Check a sample without deviceId is rejected
// 5. POST a stop command and wait for its broadcast
// 6. When KAFKA_BROKERS is set, read both events back from the mirror topic

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var failures int

func check(ok bool, format string, args ...any) {
	if ok {
		fmt.Printf("PASS: "+format+"\n", args...)
		return
	}
	failures++
	fmt.Printf("FAIL: "+format+"\n", args...)
}

func post(url, body string) (int, string) {
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	if err != nil {
		panic(fmt.Errorf("POST %s: %w", url, err))
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, strings.TrimSpace(string(data))
}

func readEvent(ws *websocket.Conn, eventType, deviceID string) bool {
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		_ = ws.SetReadDeadline(deadline)
		_, data, err := ws.ReadMessage()
		if err != nil {
			fmt.Printf("websocket read failed: %v\n", err)
			return false
		}
		var msg struct {
			Type    string `json:"type"`
			Payload struct {
				DeviceID string `json:"deviceId"`
			} `json:"payload"`
		}
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		if msg.Type == eventType && msg.Payload.DeviceID == deviceID {
			return true
		}
	}
	return false
}

func main() {
	baseURL := env("BACKEND_URL", "http://localhost:4000")
	wsURL := env("WS_URL", "ws://localhost:4000/ws")
	deviceID := fmt.Sprintf("e2e-%d", time.Now().UnixNano())

	ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		panic(fmt.Errorf("failed to dial %s: %w", wsURL, err))
	}
	defer ws.Close()
	// give the hub a moment to register the connection
	time.Sleep(200 * time.Millisecond)

	status, body := post(baseURL+"/telemetry", fmt.Sprintf(`{"deviceId":%q,"temperature":72.5}`, deviceID))
	check(status == http.StatusAccepted, "POST /telemetry -> %d %s", status, body)
	check(readEvent(ws, "telemetry", deviceID), "telemetry broadcast received for %s", deviceID)

	resp, err := http.Get(baseURL + "/devices")
	if err != nil {
		panic(err)
	}
	var devices []struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&devices); err != nil {
		panic(err)
	}
	resp.Body.Close()
	found := false
	for _, d := range devices {
		found = found || d.ID == deviceID
	}
	check(found, "GET /devices lists %s", deviceID)

	status, body = post(baseURL+"/telemetry", `{"temperature":72.5}`)
	check(status == http.StatusBadRequest && body == `{"error":"deviceId required"}`, "POST /telemetry without deviceId -> %d %s", status, body)

	status, body = post(baseURL+"/devices/"+deviceID+"/command", `{"action":"stop"}`)
	check(status == http.StatusAccepted, "POST /devices/%s/command -> %d %s", deviceID, status, body)
	check(readEvent(ws, "command", deviceID), "command broadcast received for %s", deviceID)

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		check(readMirror(brokers, env("KAFKA_TOPIC", "device-events"), deviceID) == 2, "mirror topic holds both events for %s", deviceID)
	}

	if failures > 0 {
		fmt.Printf("E2E test failed: %d check(s)\n", failures)
		os.Exit(1)
	}
	fmt.Println("E2E test completed")
}

func readMirror(brokers, topic, deviceID string) int {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     k.SplitBrokers(brokers),
		Topic:       topic,
		StartOffset: kafka.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	seen := 0
	for seen < 2 {
		m, err := reader.ReadMessage(ctx)
		if err != nil {
			fmt.Printf("mirror read stopped: %v\n", err)
			break
		}
		if string(m.Key) == deviceID {
			seen++
		}
	}
	return seen
}
