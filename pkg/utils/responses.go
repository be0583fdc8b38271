package utils

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the envelope for every failure.
type ErrorResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
}

// ResponseData writes a success payload as-is. Seat maps, booking records
// and lists go over the wire in the shape the clients already consume.
func ResponseData(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(data)
}

// returns 200 OK
func ResponseSuccess(w http.ResponseWriter, data any) {
	ResponseData(w, http.StatusOK, data)
}

// returns 201 Created
func ResponseCreated(w http.ResponseWriter, data any) {
	ResponseData(w, http.StatusCreated, data)
}

// ResponseError writes the error envelope with a custom status code.
func ResponseError(w http.ResponseWriter, code int, message string, errors any) {
	response := ErrorResponse{
		Status:  false,
		Message: message,
		Errors:  errors,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}

// returns 400 Bad Request
func ResponseBadRequest(w http.ResponseWriter, message string, errors any) {
	ResponseError(w, http.StatusBadRequest, message, errors)
}

// returns 401 Unauthorized
func ResponseUnauthorized(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusUnauthorized, message, nil)
}

// returns 403 Forbidden
func ResponseForbidden(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusForbidden, message, nil)
}

// returns 404 Not Found
func ResponseNotFound(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusNotFound, message, nil)
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusInternalServerError, message, nil)
}
