package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"locacar/internal/apperrors"
	"locacar/internal/db"
)

type ClientRepository struct {
	DB *sql.DB
}

func NewClientRepository(database *sql.DB) *ClientRepository {
	return &ClientRepository{DB: database}
}

const clientColumns = `id, first_name, last_name, phone, cin, email, driver_license_number, notes, registered_at, registered_by`

func scanClient(row interface{ Scan(...interface{}) error }) (*db.Client, error) {
	var c db.Client
	err := row.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Phone, &c.CIN, &c.Email,
		&c.DriverLicenseNumber, &c.Notes, &c.RegisteredAt, &c.RegisteredBy,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepository) List() ([]db.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY last_name ASC`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying clients: %w", err)
	}
	defer rows.Close()

	var clients []db.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning client: %w", err)
		}
		clients = append(clients, *c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating client rows: %w", err)
	}
	return clients, nil
}

func (r *ClientRepository) GetByID(id string) (*db.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	c, err := scanClient(r.DB.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.New(apperrors.NotFound, "Client not found.")
		}
		return nil, fmt.Errorf("error querying client: %w", err)
	}
	return c, nil
}

func (r *ClientRepository) Create(c *db.Client) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.DB.Exec(query,
		c.ID, c.FirstName, c.LastName, c.Phone, c.CIN, c.Email,
		c.DriverLicenseNumber, c.Notes, c.RegisteredAt, c.RegisteredBy,
	)
	return mapWriteError(err)
}

func (r *ClientRepository) Save(c *db.Client) error {
	query := `
		UPDATE clients
		SET first_name = $2, last_name = $3, phone = $4, cin = $5, email = $6,
		    driver_license_number = $7, notes = $8
		WHERE id = $1`
	res, err := r.DB.Exec(query,
		c.ID, c.FirstName, c.LastName, c.Phone, c.CIN, c.Email,
		c.DriverLicenseNumber, c.Notes,
	)
	if err != nil {
		return mapWriteError(err)
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return apperrors.New(apperrors.NotFound, "Client not found.")
	}
	return nil
}

func (r *ClientRepository) Delete(id string) error {
	res, err := r.DB.Exec(`DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting client: %w", err)
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return apperrors.New(apperrors.NotFound, "Client not found.")
	}
	return nil
}
