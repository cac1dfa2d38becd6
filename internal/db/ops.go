package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/georgysavva/scany/pgxscan"
	"github.com/jackc/pgx/v4"
)

var (
	ErrInsertFailed   = errors.New("insert operation failed")
	ErrSelectFailed   = errors.New("select operation failed")
	ErrMissingDevice  = errors.New("device id is empty")
	ErrMissingCommand = errors.New("command action is empty")
)

// InsertTelemetry appends one sample. A nil timestamp is replaced by the
// database clock; the returned sample carries the stored id and timestamp.
func (db *DB) InsertTelemetry(ctx context.Context, sample TelemetrySample) (TelemetrySample, error) {
	const fn = "DB:InsertTelemetry"
	if sample.DeviceID == "" {
		return TelemetrySample{}, fmt.Errorf("%s:%w:%w", fn, ErrInsertFailed, ErrMissingDevice)
	}

	var (
		id int64
		ts time.Time
	)
	err := db.pool.QueryRow(ctx, `
		INSERT INTO telemetry (
			device_id,
			ts,
			temperature,
			vibration,
			status
		) VALUES ($1, COALESCE($2, NOW()), $3, $4, $5)
		RETURNING id, ts
	`, sample.DeviceID, sample.Timestamp, sample.Temperature, sample.Vibration, sample.Status).Scan(&id, &ts)
	if err != nil {
		return TelemetrySample{}, fmt.Errorf("%s:%w:%w", fn, ErrInsertFailed, err)
	}

	sample.ID = id
	stored := ts.UTC()
	sample.Timestamp = &stored
	return sample, nil
}

// InsertCommand appends one audit record. The timestamp is always assigned
// by the database.
func (db *DB) InsertCommand(ctx context.Context, cmd CommandRecord) (CommandRecord, error) {
	const fn = "DB:InsertCommand"
	if cmd.DeviceID == "" {
		return CommandRecord{}, fmt.Errorf("%s:%w:%w", fn, ErrInsertFailed, ErrMissingDevice)
	}
	if cmd.Action == "" {
		return CommandRecord{}, fmt.Errorf("%s:%w:%w", fn, ErrInsertFailed, ErrMissingCommand)
	}

	err := db.pool.QueryRow(ctx, `
		INSERT INTO commands (
			device_id,
			action
		) VALUES ($1, $2)
		RETURNING id, ts
	`, cmd.DeviceID, cmd.Action).Scan(&cmd.ID, &cmd.Timestamp)
	if err != nil {
		return CommandRecord{}, fmt.Errorf("%s:%w:%w", fn, ErrInsertFailed, err)
	}
	cmd.Timestamp = cmd.Timestamp.UTC()
	return cmd, nil
}

// ListDevices projects the distinct device ids found in telemetry history,
// sorted by byte order.
func (db *DB) ListDevices(ctx context.Context) ([]Device, error) {
	const fn = "DB:ListDevices"
	devices := []Device{}
	err := pgxscan.Select(ctx, db.pool, &devices, `
		SELECT DISTINCT device_id
		FROM telemetry
		ORDER BY device_id COLLATE "C"
	`)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []Device{}, nil
		}
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrSelectFailed, err)
	}
	return devices, nil
}
