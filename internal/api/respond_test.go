package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locacar/internal/apperrors"
)

func silentLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestRespondError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantHidden bool
	}{
		{"validation maps to 400", apperrors.New(apperrors.Validation, "End date cannot be before start date."), 400, false},
		{"authentication maps to 401", apperrors.New(apperrors.Authentication, "Invalid username or password"), 401, false},
		{"authorization maps to 403", apperrors.New(apperrors.Authorization, "You cannot delete your own account."), 403, false},
		{"not found maps to 404", apperrors.NotFoundf("Car not found."), 404, false},
		{"conflict maps to 409", apperrors.Conflictf("Username already exists."), 409, false},
		{"internal kind is hidden", apperrors.Internalf("could not generate a unique reservation number"), 500, true},
		{"raw error is hidden", errors.New("pq: connection refused"), 500, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondError(rec, silentLogger(), tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			if tc.wantHidden {
				assert.Equal(t, "An internal server error occurred.", body["message"])
			} else {
				assert.NotEmpty(t, body["message"])
				assert.NotContains(t, body["message"], "pq:")
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/cars", nil)
	var dst struct{}
	err := decodeJSON(req, &dst)
	require.Error(t, err)
	assert.Equal(t, apperrors.Validation, apperrors.KindOf(err))
}
