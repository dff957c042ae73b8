package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"locacar/internal/apperrors"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondError translates a service error to its HTTP status. Internal
// errors are logged with their cause and answered with a generic message so
// nothing about the failure leaks to the client.
func respondError(w http.ResponseWriter, log *logrus.Logger, err error) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) && appErr.Kind != apperrors.Internal {
		respondJSON(w, appErr.StatusCode(), map[string]string{"message": appErr.Message})
		return
	}
	log.WithError(err).Error("request failed")
	respondJSON(w, http.StatusInternalServerError, map[string]string{"message": "An internal server error occurred."})
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.New(apperrors.Validation, "Invalid request body")
	}
	return nil
}
