package errors

import (
	"encoding/json"
	"net/http"
)

// WriteError renders err as the JSON error envelope with the status carried by the AppError.
// Errors that are not AppErrors become INTERNAL_ERROR without exposing the cause.
func WriteError(w http.ResponseWriter, err error) error {
	appErr := AsAppError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())

	response := ErrorResponse{
		Code:    appErr.Code,
		Message: appErr.Message,
		Details: appErr.Details,
	}

	return json.NewEncoder(w).Encode(response)
}
