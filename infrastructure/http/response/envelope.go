package response

import (
	"encoding/json"
	"net/http"

	pkgerr "github.com/fleettrack/fleettrack/pkg/error"
)

// Envelope wraps every API body. Data is set only on success; Error and Code only on failure.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, envelope Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(envelope)
}

func Success(w http.ResponseWriter, statusCode int, data interface{}) {
	WriteJSON(w, statusCode, Envelope{Success: true, Data: data})
}

func OK(w http.ResponseWriter, data interface{}) {
	Success(w, http.StatusOK, data)
}

func Created(w http.ResponseWriter, data interface{}) {
	Success(w, http.StatusCreated, data)
}

// FromError writes err in its client-facing form.
func FromError(w http.ResponseWriter, err error) {
	appErr := pkgerr.MapError(err)
	WriteJSON(w, appErr.Status, Envelope{Error: appErr.Message, Code: appErr.Code})
}
