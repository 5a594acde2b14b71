// Package respond writes the JSON envelope every endpoint returns.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Envelope is the wire shape shared by all responses:
// {success, count?, message?, required?, data?}.
type Envelope struct {
	Success  bool        `json:"success"`
	Count    *int        `json:"count,omitempty"`
	Message  string      `json:"message,omitempty"`
	Required []string    `json:"required,omitempty"`
	Data     interface{} `json:"data,omitempty"`
}

// WriteJSON writes any value as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// WriteData writes a success envelope carrying only data.
func WriteData(w http.ResponseWriter, statusCode int, data interface{}) {
	WriteJSON(w, statusCode, Envelope{Success: true, Data: data})
}

// WriteList writes a success envelope with a count and the listed data.
func WriteList(w http.ResponseWriter, count int, data interface{}) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Count: &count, Data: data})
}

// WriteMessage writes a success envelope with a message and data.
func WriteMessage(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	WriteJSON(w, statusCode, Envelope{Success: true, Message: message, Data: data})
}

// WriteError writes a failure envelope.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, Envelope{Success: false, Message: message})
}

// WriteMissingFields writes the 400 envelope for absent required fields.
func WriteMissingFields(w http.ResponseWriter, required []string) {
	WriteJSON(w, http.StatusBadRequest, Envelope{
		Success:  false,
		Message:  "Missing required fields",
		Required: required,
	})
}

// WriteBadRequest writes a 400 Bad Request response
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message)
}

// WriteNotFound writes a 404 Not Found response
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message)
}

// WriteInternalError writes a 500 Internal Server Error response
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message)
}
