package service

import (
	"time"

	"github.com/sirupsen/logrus"

	"locacar/internal/auth"
	"locacar/internal/db"
	"locacar/internal/entities"
)

// SystemActor is recorded when an action happens without a session actor.
const SystemActor = "system"

// AuditService appends a structured record of every state-changing action.
type AuditService struct {
	repo AuditStore
	log  *logrus.Logger
}

func NewAuditService(repo AuditStore, log *logrus.Logger) *AuditService {
	return &AuditService{repo: repo, log: log}
}

// Record appends one entry. A store failure is logged to the operational log
// and never propagated: a failure to audit must not abort the business
// operation that triggered it.
func (s *AuditService) Record(actor auth.Actor, action, entityType, entityID, status string, details map[string]interface{}) {
	entry := &db.AuditLogEntry{
		Timestamp:  time.Now().UTC(),
		Action:     action,
		EntityType: entityType,
		Status:     status,
		Details:    details,
	}
	if entityID != "" {
		entry.EntityID = &entityID
	}
	if actor.IsZero() {
		entry.Username = SystemActor
	} else {
		entry.Username = actor.Username
		if actor.ID != "" {
			id := actor.ID
			entry.UserID = &id
		}
	}

	if err := s.repo.Insert(entry); err != nil {
		s.log.WithFields(logrus.Fields{
			"action":     action,
			"entityType": entityType,
			"actor":      entry.Username,
		}).WithError(err).Error("failed to write audit entry")
		return
	}
	s.log.WithFields(logrus.Fields{
		"action":     action,
		"entityType": entityType,
		"actor":      entry.Username,
		"status":     status,
	}).Info("audit entry recorded")
}

// List is the administrative reporting query: filtered, paginated, newest
// first.
func (s *AuditService) List(q entities.AuditQuery) (*entities.AuditPage, error) {
	q.Normalize()
	logs, total, err := s.repo.List(q)
	if err != nil {
		return nil, err
	}
	page := &entities.AuditPage{
		Logs:    logs,
		Page:    q.Page,
		PerPage: q.PerPage,
		Total:   total,
	}
	if q.PerPage > 0 {
		page.TotalPages = (total + q.PerPage - 1) / q.PerPage
	}
	return page, nil
}
