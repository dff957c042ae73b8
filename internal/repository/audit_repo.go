package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"locacar/internal/db"
	"locacar/internal/entities"
)

type AuditRepository struct {
	DB *sql.DB
}

func NewAuditRepository(database *sql.DB) *AuditRepository {
	return &AuditRepository{DB: database}
}

// Insert appends one entry. Rows are never updated or deleted by the
// application.
func (r *AuditRepository) Insert(e *db.AuditLogEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	var details []byte
	if e.Details != nil {
		var err error
		details, err = json.Marshal(e.Details)
		if err != nil {
			return fmt.Errorf("error encoding audit details: %w", err)
		}
	}
	query := `
		INSERT INTO audit_log (id, ts, action, entity_type, entity_id, status, user_id, username, details)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.DB.Exec(query,
		e.ID, e.Timestamp, e.Action, e.EntityType, e.EntityID, e.Status,
		e.UserID, e.Username, details,
	)
	if err != nil {
		return fmt.Errorf("error inserting audit entry: %w", err)
	}
	return nil
}

// List returns a filtered page of entries plus the total match count,
// ordered by timestamp descending.
func (r *AuditRepository) List(q entities.AuditQuery) ([]db.AuditLogEntry, int, error) {
	var conds []string
	var args []interface{}

	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if q.UserID != "" {
		add("user_id = $%d", q.UserID)
	}
	if q.Username != "" {
		add("username ILIKE $%d", "%"+q.Username+"%")
	}
	if q.Action != "" {
		add("action ILIKE $%d", "%"+q.Action+"%")
	}
	if q.EntityType != "" {
		add("entity_type ILIKE $%d", "%"+q.EntityType+"%")
	}
	if q.EntityID != "" {
		add("entity_id = $%d", q.EntityID)
	}
	if q.StartDate != nil {
		add("ts >= $%d", *q.StartDate)
	}
	if q.EndDate != nil {
		add("ts <= $%d", *q.EndDate)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM audit_log`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting audit entries: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT id, ts, action, entity_type, entity_id, status, user_id, username, details
		 FROM audit_log%s ORDER BY ts DESC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2,
	)
	args = append(args, q.PerPage, (q.Page-1)*q.PerPage)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying audit entries: %w", err)
	}
	defer rows.Close()

	var entries []db.AuditLogEntry
	for rows.Next() {
		var e db.AuditLogEntry
		var details []byte
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Action, &e.EntityType, &e.EntityID,
			&e.Status, &e.UserID, &e.Username, &details); err != nil {
			return nil, 0, fmt.Errorf("error scanning audit entry: %w", err)
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &e.Details); err != nil {
				return nil, 0, fmt.Errorf("error decoding audit details: %w", err)
			}
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error after iterating audit rows: %w", err)
	}
	return entries, total, nil
}
