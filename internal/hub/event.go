package hub

import "encoding/json"

type EventType string

const (
	TypeTelemetry EventType = "telemetry"
	TypeCommand   EventType = "command"
)

// Event is what the hub fans out. DeviceID is routing metadata and is not
// part of the wire message; the payload carries its own device id.
type Event struct {
	Type     EventType
	DeviceID string
	Payload  any
}

type CommandPayload struct {
	DeviceID string `json:"deviceId"`
	Action   string `json:"action"`
}

type wireEvent struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload"`
}

func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireEvent{Type: e.Type, Payload: e.Payload})
}

func TelemetryEvent(deviceID string, sample any) Event {
	return Event{Type: TypeTelemetry, DeviceID: deviceID, Payload: sample}
}

func CommandEvent(deviceID, action string) Event {
	return Event{
		Type:     TypeCommand,
		DeviceID: deviceID,
		Payload:  CommandPayload{DeviceID: deviceID, Action: action},
	}
}
