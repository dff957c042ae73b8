package entities

import (
	"time"

	"locacar/internal/db"
)

// AuditQuery filters the administrative audit-log listing. Username, Action
// and EntityType match as case-insensitive substrings; EntityID matches
// exactly.
type AuditQuery struct {
	Page       int
	PerPage    int
	UserID     string
	Username   string
	Action     string
	EntityType string
	EntityID   string
	StartDate  *time.Time
	EndDate    *time.Time
}

// Normalize clamps pagination to the supported window.
func (q *AuditQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = 20
	}
	if q.PerPage > 100 {
		q.PerPage = 100
	}
}

type AuditPage struct {
	Logs       []db.AuditLogEntry `json:"logs"`
	Page       int                `json:"page"`
	PerPage    int                `json:"per_page"`
	Total      int                `json:"total"`
	TotalPages int                `json:"totalPages"`
}
