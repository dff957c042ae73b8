package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"locacar/internal/apperrors"
	"locacar/internal/db"
)

type CarRepository struct {
	DB *sql.DB
}

func NewCarRepository(database *sql.DB) *CarRepository {
	return &CarRepository{DB: database}
}

const carColumns = `id, make, model, year, license_plate, vin, color, daily_rate, status, description, image_url, added_at, added_by, updated_at, updated_by`

func scanCar(row interface{ Scan(...interface{}) error }) (*db.Car, error) {
	var c db.Car
	err := row.Scan(
		&c.ID, &c.Make, &c.Model, &c.Year, &c.LicensePlate, &c.VIN, &c.Color,
		&c.DailyRate, &c.Status, &c.Description, &c.ImageURL,
		&c.AddedAt, &c.AddedBy, &c.UpdatedAt, &c.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CarRepository) List() ([]db.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars ORDER BY added_at DESC`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying cars: %w", err)
	}
	defer rows.Close()

	var cars []db.Car
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning car: %w", err)
		}
		cars = append(cars, *c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating car rows: %w", err)
	}
	return cars, nil
}

func (r *CarRepository) GetByID(id string) (*db.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = $1`
	c, err := scanCar(r.DB.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.New(apperrors.NotFound, "Car not found.")
		}
		return nil, fmt.Errorf("error querying car: %w", err)
	}
	return c, nil
}

func (r *CarRepository) Create(c *db.Car) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	query := `
		INSERT INTO cars (` + carColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.DB.Exec(query,
		c.ID, c.Make, c.Model, c.Year, c.LicensePlate, c.VIN, c.Color,
		c.DailyRate, c.Status, c.Description, c.ImageURL,
		c.AddedAt, c.AddedBy, c.UpdatedAt, c.UpdatedBy,
	)
	return mapWriteError(err)
}

// Save writes every mutable column of the car row.
func (r *CarRepository) Save(c *db.Car) error {
	query := `
		UPDATE cars
		SET make = $2, model = $3, year = $4, license_plate = $5, vin = $6,
		    color = $7, daily_rate = $8, status = $9, description = $10,
		    image_url = $11, updated_at = $12, updated_by = $13
		WHERE id = $1`
	res, err := r.DB.Exec(query,
		c.ID, c.Make, c.Model, c.Year, c.LicensePlate, c.VIN, c.Color,
		c.DailyRate, c.Status, c.Description, c.ImageURL, c.UpdatedAt, c.UpdatedBy,
	)
	if err != nil {
		return mapWriteError(err)
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return apperrors.New(apperrors.NotFound, "Car not found.")
	}
	return nil
}

// SetStatus is the targeted write used by reservation side effects.
func (r *CarRepository) SetStatus(id, status string, byUserID *string) error {
	now := time.Now().UTC()
	query := `UPDATE cars SET status = $2, updated_at = $3, updated_by = $4 WHERE id = $1`
	res, err := r.DB.Exec(query, id, status, now, byUserID)
	if err != nil {
		return fmt.Errorf("error updating car status: %w", err)
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return apperrors.New(apperrors.NotFound, "Car not found.")
	}
	return nil
}

func (r *CarRepository) Delete(id string) error {
	res, err := r.DB.Exec(`DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting car: %w", err)
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return apperrors.New(apperrors.NotFound, "Car not found.")
	}
	return nil
}
