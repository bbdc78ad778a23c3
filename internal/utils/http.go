package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-diary-keeper/models"
)

// WriteJSON serializes data to JSON and writes it with statusCode.
// If marshaling fails it responds with 500 and returns a wrapped error.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// WriteError writes a [models.ErrorResponse]. code may be empty.
func WriteError(w http.ResponseWriter, statusCode int, message, code string) {
	_, _ = WriteJSON(w, models.ErrorResponse{Error: message, Code: code}, statusCode)
}
