package api

// TelemetryRequest is the body of POST /telemetry. Only DeviceID is
// required; the rest is stored as given.
type TelemetryRequest struct {
	DeviceID    string   `json:"deviceId"`
	Timestamp   *string  `json:"timestamp,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	Vibration   *float64 `json:"vibration,omitempty"`
	Status      *string  `json:"status,omitempty"`
}

type CommandRequest struct {
	Action string `json:"action"`
}

type Device struct {
	ID string `json:"id"`
}

type AcceptedResponse struct {
	Accepted bool `json:"accepted"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
