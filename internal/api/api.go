package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"device-telemetry-hub/internal/db"
	"device-telemetry-hub/internal/hub"
	"device-telemetry-hub/internal/metrics"

	"github.com/go-chi/chi/v5"
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrDeviceIDRequired = errors.New(msgDeviceIDRequired)
	ErrInvalidTimestamp = errors.New(msgInvalidTimestamp)
)

type repository interface {
	InsertTelemetry(ctx context.Context, sample db.TelemetrySample) (db.TelemetrySample, error)
	InsertCommand(ctx context.Context, cmd db.CommandRecord) (db.CommandRecord, error)
	ListDevices(ctx context.Context) ([]db.Device, error)
}

type publisher interface {
	Publish(ctx context.Context, event hub.Event) error
}

type API struct {
	DB  repository
	Hub publisher
}

type Config struct {
	DB  repository
	Hub publisher
}

func New(cfg Config) *API {
	return &API{DB: cfg.DB, Hub: cfg.Hub}
}

// decodeBody treats an empty body as an empty object.
func decodeBody(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// timestampLayouts are the ISO-8601 forms accepted for a sample timestamp.
// A value without an offset is taken as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999Z07",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseTimestamp(value string) (time.Time, error) {
	var err error
	for _, layout := range timestampLayouts {
		var ts time.Time
		if ts, err = time.Parse(layout, value); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, err
}

func (req TelemetryRequest) toSample() (db.TelemetrySample, error) {
	const fn = "API:toSample"
	if req.DeviceID == "" {
		return db.TelemetrySample{}, fmt.Errorf("%s:%w:%w", fn, ErrValidation, ErrDeviceIDRequired)
	}
	sample := db.TelemetrySample{
		DeviceID:    req.DeviceID,
		Temperature: req.Temperature,
		Vibration:   req.Vibration,
		Status:      req.Status,
	}
	if req.Timestamp != nil && *req.Timestamp != "" {
		ts, err := parseTimestamp(*req.Timestamp)
		if err != nil {
			return db.TelemetrySample{}, fmt.Errorf("%s:%w:%w: %w", fn, ErrValidation, ErrInvalidTimestamp, err)
		}
		sample.Timestamp = &ts
	}
	return sample, nil
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, ErrDeviceIDRequired):
		return msgDeviceIDRequired
	case errors.Is(err, ErrInvalidTimestamp):
		return msgInvalidTimestamp
	default:
		return msgInvalidBody
	}
}

// PostTelemetry persists one sample and then publishes it. Nothing is
// published unless the insert succeeded.
func (a *API) PostTelemetry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req TelemetryRequest
	if err := decodeBody(r, &req); err != nil {
		metrics.RequestsRejectedTotal.WithLabelValues("telemetry", "validation").Inc()
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	sample, err := req.toSample()
	if err != nil {
		metrics.RequestsRejectedTotal.WithLabelValues("telemetry", "validation").Inc()
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	stored, err := a.DB.InsertTelemetry(ctx, sample)
	if err != nil {
		metrics.RequestsRejectedTotal.WithLabelValues("telemetry", "persistence").Inc()
		slog.ErrorContext(ctx, "Error persisting telemetry", "device_id", sample.DeviceID, "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	if err := a.Hub.Publish(ctx, hub.TelemetryEvent(stored.DeviceID, stored)); err != nil {
		slog.ErrorContext(ctx, "Error publishing telemetry", "device_id", stored.DeviceID, "error", err)
	}
	metrics.TelemetryAcceptedTotal.Inc()
	writeAccepted(w)
}

func (a *API) ListDevices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	devices, err := a.DB.ListDevices(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Error listing devices", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	resp := make([]Device, 0, len(devices))
	for _, d := range devices {
		resp = append(resp, Device{ID: d.ID})
	}
	writeJSON(w, http.StatusOK, resp)
}

// PostCommand records the command in the audit trail and publishes it so the
// target device, if connected, receives it. An offline device is not an
// error.
func (a *API) PostCommand(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	deviceID := chi.URLParam(r, "id")

	var req CommandRequest
	if err := decodeBody(r, &req); err != nil {
		metrics.RequestsRejectedTotal.WithLabelValues("command", "validation").Inc()
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if req.Action == "" {
		metrics.RequestsRejectedTotal.WithLabelValues("command", "validation").Inc()
		writeError(w, http.StatusBadRequest, msgActionRequired)
		return
	}
	if deviceID == "" {
		metrics.RequestsRejectedTotal.WithLabelValues("command", "validation").Inc()
		writeError(w, http.StatusBadRequest, msgDeviceIDRequired)
		return
	}

	record, err := a.DB.InsertCommand(ctx, db.CommandRecord{DeviceID: deviceID, Action: req.Action})
	if err != nil {
		metrics.RequestsRejectedTotal.WithLabelValues("command", "persistence").Inc()
		slog.ErrorContext(ctx, "Error persisting command", "device_id", deviceID, "action", req.Action, "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	if err := a.Hub.Publish(ctx, hub.CommandEvent(record.DeviceID, record.Action)); err != nil {
		slog.ErrorContext(ctx, "Error publishing command", "device_id", record.DeviceID, "error", err)
	}
	metrics.CommandsAcceptedTotal.Inc()
	slog.InfoContext(ctx, "Command accepted", "device_id", record.DeviceID, "action", record.Action)
	writeAccepted(w)
}
