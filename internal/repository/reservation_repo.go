package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"locacar/internal/apperrors"
	"locacar/internal/db"
	"locacar/internal/entities"
)

type ReservationRepository struct {
	DB *sql.DB
}

func NewReservationRepository(database *sql.DB) *ReservationRepository {
	return &ReservationRepository{DB: database}
}

const reservationColumns = `id, reservation_number, car_id, client_id, start_date, end_date,
	actual_pickup_date, actual_return_date, status, estimated_total_cost, final_total_cost,
	amount_paid, remaining_balance, transaction_date, notes, reservation_date,
	created_by, last_modified_at, last_modified_by`

func scanReservation(row interface{ Scan(...interface{}) error }) (*db.Reservation, error) {
	var res db.Reservation
	err := row.Scan(
		&res.ID, &res.ReservationNumber, &res.CarID, &res.ClientID,
		&res.StartDate, &res.EndDate, &res.ActualPickupDate, &res.ActualReturnDate,
		&res.Status, &res.EstimatedTotalCost, &res.FinalTotalCost,
		&res.PaymentDetails.AmountPaid, &res.PaymentDetails.RemainingBalance,
		&res.PaymentDetails.TransactionDate, &res.Notes, &res.ReservationDate,
		&res.CreatedBy, &res.LastModifiedAt, &res.LastModifiedBy,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ReservationRepository) Create(res *db.Reservation) error {
	if res.ID == "" {
		res.ID = uuid.NewString()
	}
	query := `
		INSERT INTO reservations (` + reservationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.DB.Exec(query,
		res.ID, res.ReservationNumber, res.CarID, res.ClientID,
		res.StartDate, res.EndDate, res.ActualPickupDate, res.ActualReturnDate,
		res.Status, res.EstimatedTotalCost, res.FinalTotalCost,
		res.PaymentDetails.AmountPaid, res.PaymentDetails.RemainingBalance,
		res.PaymentDetails.TransactionDate, res.Notes, res.ReservationDate,
		res.CreatedBy, res.LastModifiedAt, res.LastModifiedBy,
	)
	return mapWriteError(err)
}

// Save writes every mutable column of the reservation row.
func (r *ReservationRepository) Save(res *db.Reservation) error {
	query := `
		UPDATE reservations
		SET car_id = $2, client_id = $3, start_date = $4, end_date = $5,
		    actual_pickup_date = $6, actual_return_date = $7, status = $8,
		    estimated_total_cost = $9, final_total_cost = $10, amount_paid = $11,
		    remaining_balance = $12, transaction_date = $13, notes = $14,
		    last_modified_at = $15, last_modified_by = $16
		WHERE id = $1`
	result, err := r.DB.Exec(query,
		res.ID, res.CarID, res.ClientID, res.StartDate, res.EndDate,
		res.ActualPickupDate, res.ActualReturnDate, res.Status,
		res.EstimatedTotalCost, res.FinalTotalCost,
		res.PaymentDetails.AmountPaid, res.PaymentDetails.RemainingBalance,
		res.PaymentDetails.TransactionDate, res.Notes,
		res.LastModifiedAt, res.LastModifiedBy,
	)
	if err != nil {
		return mapWriteError(err)
	}
	n, err := result.RowsAffected()
	if err == nil && n == 0 {
		return apperrors.New(apperrors.NotFound, "Reservation not found.")
	}
	return nil
}

func (r *ReservationRepository) GetByID(id string) (*db.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	res, err := scanReservation(r.DB.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.New(apperrors.NotFound, "Reservation not found.")
		}
		return nil, fmt.Errorf("error querying reservation: %w", err)
	}
	return res, nil
}

func (r *ReservationRepository) Delete(id string) error {
	result, err := r.DB.Exec(`DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting reservation: %w", err)
	}
	n, err := result.RowsAffected()
	if err == nil && n == 0 {
		return apperrors.New(apperrors.NotFound, "Reservation not found.")
	}
	return nil
}

// NumberExists backs the reservation-number generation retry loop. This is a
// best-effort check; the UNIQUE index is the final arbiter.
func (r *ReservationRepository) NumberExists(number string) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(`SELECT EXISTS (SELECT 1 FROM reservations WHERE reservation_number = $1)`, number).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking reservation number: %w", err)
	}
	return exists, nil
}

// CountForCar counts reservations referencing a car in any of the given
// statuses; with no statuses it counts all of them.
func (r *ReservationRepository) CountForCar(carID string, statuses ...string) (int, error) {
	var count int
	var err error
	if len(statuses) == 0 {
		err = r.DB.QueryRow(`SELECT COUNT(*) FROM reservations WHERE car_id = $1`, carID).Scan(&count)
	} else {
		err = r.DB.QueryRow(`SELECT COUNT(*) FROM reservations WHERE car_id = $1 AND status = ANY($2)`,
			carID, pq.Array(statuses)).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("error counting reservations for car: %w", err)
	}
	return count, nil
}

func (r *ReservationRepository) CountForClient(clientID string) (int, error) {
	var count int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM reservations WHERE client_id = $1`, clientID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting reservations for client: %w", err)
	}
	return count, nil
}

const detailedQuery = `
	SELECT r.id, r.reservation_number, r.car_id, r.client_id, r.start_date, r.end_date,
	       r.actual_pickup_date, r.actual_return_date, r.status, r.estimated_total_cost,
	       r.final_total_cost, r.amount_paid, r.remaining_balance, r.transaction_date,
	       r.notes, r.reservation_date, r.created_by, r.last_modified_at, r.last_modified_by,
	       c.id, c.make, c.model, c.license_plate, c.vin, c.status, c.image_url,
	       cl.id, cl.first_name, cl.last_name, cl.email, cl.phone,
	       cu.id, cu.username, cu.full_name,
	       mu.id, mu.username, mu.full_name
	FROM reservations r
	LEFT JOIN cars c ON c.id = r.car_id
	LEFT JOIN clients cl ON cl.id = r.client_id
	LEFT JOIN users cu ON cu.id = r.created_by
	LEFT JOIN users mu ON mu.id = r.last_modified_by`

func scanReservationDetail(row interface{ Scan(...interface{}) error }) (*entities.ReservationDetail, error) {
	var d entities.ReservationDetail
	var (
		carID, carMake, carModel, carPlate, carVIN, carStatus sql.NullString
		carImageURL                                           sql.NullString
		clID, clFirst, clLast, clPhone                        sql.NullString
		clEmail                                               sql.NullString
		cuID, cuUsername, cuFullName                          sql.NullString
		muID, muUsername, muFullName                          sql.NullString
	)
	err := row.Scan(
		&d.ID, &d.ReservationNumber, &d.CarID, &d.ClientID, &d.StartDate, &d.EndDate,
		&d.ActualPickupDate, &d.ActualReturnDate, &d.Status, &d.EstimatedTotalCost,
		&d.FinalTotalCost, &d.PaymentDetails.AmountPaid, &d.PaymentDetails.RemainingBalance,
		&d.PaymentDetails.TransactionDate, &d.Notes, &d.ReservationDate,
		&d.CreatedBy, &d.LastModifiedAt, &d.LastModifiedBy,
		&carID, &carMake, &carModel, &carPlate, &carVIN, &carStatus, &carImageURL,
		&clID, &clFirst, &clLast, &clEmail, &clPhone,
		&cuID, &cuUsername, &cuFullName,
		&muID, &muUsername, &muFullName,
	)
	if err != nil {
		return nil, err
	}

	// Missing referenced rows yield nil sub-objects, never an error.
	if carID.Valid {
		d.Car = &entities.CarSummary{
			ID:           carID.String,
			Make:         carMake.String,
			Model:        carModel.String,
			LicensePlate: carPlate.String,
			VIN:          carVIN.String,
			Status:       carStatus.String,
		}
		if carImageURL.Valid {
			d.Car.ImageURL = &carImageURL.String
		}
	}
	if clID.Valid {
		d.Client = &entities.ClientSummary{
			ID:        clID.String,
			FirstName: clFirst.String,
			LastName:  clLast.String,
			Phone:     clPhone.String,
		}
		if clEmail.Valid {
			d.Client.Email = &clEmail.String
		}
	}
	if cuID.Valid {
		d.CreatedByUser = &entities.UserSummary{ID: cuID.String, Username: cuUsername.String, FullName: cuFullName.String}
	}
	if muID.Valid {
		d.LastModifiedByUser = &entities.UserSummary{ID: muID.String, Username: muUsername.String, FullName: muFullName.String}
	}
	return &d, nil
}

// GetDetailed resolves a reservation joined with its car/client/user
// summaries for display. Every read hits the store; nothing is cached.
func (r *ReservationRepository) GetDetailed(id string) (*entities.ReservationDetail, error) {
	d, err := scanReservationDetail(r.DB.QueryRow(detailedQuery+` WHERE r.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.New(apperrors.NotFound, "Reservation not found.")
		}
		return nil, fmt.Errorf("error querying reservation detail: %w", err)
	}
	return d, nil
}

// ListDetailed returns all reservations, most recently created first.
func (r *ReservationRepository) ListDetailed() ([]entities.ReservationDetail, error) {
	rows, err := r.DB.Query(detailedQuery + ` ORDER BY r.reservation_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("error querying reservations: %w", err)
	}
	defer rows.Close()

	var list []entities.ReservationDetail
	for rows.Next() {
		d, err := scanReservationDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning reservation detail: %w", err)
		}
		list = append(list, *d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating reservation rows: %w", err)
	}
	return list, nil
}

// Recent returns the newest reservations for the dashboard widget.
func (r *ReservationRepository) Recent(limit int) ([]entities.ReservationDetail, error) {
	rows, err := r.DB.Query(detailedQuery+` ORDER BY r.reservation_date DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying recent reservations: %w", err)
	}
	defer rows.Close()

	var list []entities.ReservationDetail
	for rows.Next() {
		d, err := scanReservationDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning recent reservation: %w", err)
		}
		list = append(list, *d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating recent reservations: %w", err)
	}
	return list, nil
}
