package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

const (
	msgDeviceIDRequired = "deviceId required"
	msgActionRequired   = "action required"
	msgInvalidBody      = "invalid request body"
	msgInvalidTimestamp = "invalid timestamp"
	msgInternal         = "internal error"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func writeAccepted(w http.ResponseWriter) {
	writeJSON(w, http.StatusAccepted, AcceptedResponse{Accepted: true})
}
