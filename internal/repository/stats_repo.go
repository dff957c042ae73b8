package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"locacar/internal/entities"
)

type StatsRepository struct {
	DB *sql.DB
}

func NewStatsRepository(database *sql.DB) *StatsRepository {
	return &StatsRepository{DB: database}
}

func (r *StatsRepository) count(query string, args ...interface{}) (int, error) {
	var n int
	if err := r.DB.QueryRow(query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting: %w", err)
	}
	return n, nil
}

func (r *StatsRepository) CountUsers() (int, error) {
	return r.count(`SELECT COUNT(*) FROM users`)
}

func (r *StatsRepository) CountUsersByRole(role string) (int, error) {
	return r.count(`SELECT COUNT(*) FROM users WHERE role = $1`, role)
}

func (r *StatsRepository) CountCars() (int, error) {
	return r.count(`SELECT COUNT(*) FROM cars`)
}

func (r *StatsRepository) CountCarsByStatus(status string) (int, error) {
	return r.count(`SELECT COUNT(*) FROM cars WHERE status = $1`, status)
}

func (r *StatsRepository) CountClients() (int, error) {
	return r.count(`SELECT COUNT(*) FROM clients`)
}

func (r *StatsRepository) CountReservationsByStatus(statuses ...string) (int, error) {
	var n int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM reservations WHERE status = ANY($1)`, pq.Array(statuses)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("error counting reservations: %w", err)
	}
	return n, nil
}

// MonthlyRevenue sums finalTotalCost over reservations completed (returned)
// inside [start, end).
func (r *StatsRepository) MonthlyRevenue(start, end time.Time) (float64, error) {
	var revenue float64
	query := `
		SELECT COALESCE(SUM(final_total_cost), 0)
		FROM reservations
		WHERE status = 'completed'
		  AND final_total_cost IS NOT NULL
		  AND actual_return_date >= $1 AND actual_return_date < $2`
	if err := r.DB.QueryRow(query, start, end).Scan(&revenue); err != nil {
		return 0, fmt.Errorf("error summing monthly revenue: %w", err)
	}
	return revenue, nil
}

// RecentClients returns the latest registrations for the dashboard widget.
func (r *StatsRepository) RecentClients(limit int) ([]entities.RecentClient, error) {
	query := `
		SELECT id, first_name, last_name, email, registered_at
		FROM clients ORDER BY registered_at DESC LIMIT $1`
	rows, err := r.DB.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying recent clients: %w", err)
	}
	defer rows.Close()

	var clients []entities.RecentClient
	for rows.Next() {
		var c entities.RecentClient
		var first, last string
		if err := rows.Scan(&c.ID, &first, &last, &c.Email, &c.RegisteredAt); err != nil {
			return nil, fmt.Errorf("error scanning recent client: %w", err)
		}
		c.Name = first + " " + last
		clients = append(clients, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating recent clients: %w", err)
	}
	return clients, nil
}
