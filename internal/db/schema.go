package db

import "time"

// TelemetrySample is one persisted measurement. Optional readings are nil
// when the device did not report them.
type TelemetrySample struct {
	ID          int64      `db:"id" json:"-"`
	DeviceID    string     `db:"device_id" json:"deviceId"`
	Timestamp   *time.Time `db:"ts" json:"timestamp,omitempty"`
	Temperature *float64   `db:"temperature" json:"temperature,omitempty"`
	Vibration   *float64   `db:"vibration" json:"vibration,omitempty"`
	Status      *string    `db:"status" json:"status,omitempty"`
}

// CommandRecord is one entry of the command audit trail.
type CommandRecord struct {
	ID        int64     `db:"id" json:"-"`
	DeviceID  string    `db:"device_id" json:"deviceId"`
	Action    string    `db:"action" json:"action"`
	Timestamp time.Time `db:"ts" json:"timestamp"`
}

// Device is derived from telemetry history and never stored on its own.
type Device struct {
	ID string `db:"device_id" json:"id"`
}
