package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"locacar/internal/apperrors"
	"locacar/internal/entities"
	"locacar/internal/service"
)

type AuditLogHandler struct {
	service *service.AuditService
	log     *logrus.Logger
}

func NewAuditLogHandler(svc *service.AuditService, log *logrus.Logger) *AuditLogHandler {
	return &AuditLogHandler{service: svc, log: log}
}

// parseTimestamp accepts RFC 3339 or a bare date.
func parseTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

func (h *AuditLogHandler) List(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	q := entities.AuditQuery{
		UserID:     params.Get("userId"),
		Username:   params.Get("userUsername"),
		Action:     params.Get("action"),
		EntityType: params.Get("entityType"),
		EntityID:   params.Get("entityId"),
	}
	if v := params.Get("page"); v != "" {
		q.Page, _ = strconv.Atoi(v)
	}
	if v := params.Get("per_page"); v != "" {
		q.PerPage, _ = strconv.Atoi(v)
	}
	if v := params.Get("startDate"); v != "" {
		t, err := parseTimestamp(v)
		if err != nil {
			respondError(w, h.log, apperrors.Validationf("Invalid startDate '%s'. Use RFC 3339 or YYYY-MM-DD.", v))
			return
		}
		q.StartDate = &t
	}
	if v := params.Get("endDate"); v != "" {
		t, err := parseTimestamp(v)
		if err != nil {
			respondError(w, h.log, apperrors.Validationf("Invalid endDate '%s'. Use RFC 3339 or YYYY-MM-DD.", v))
			return
		}
		q.EndDate = &t
	}

	page, err := h.service.List(q)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}
