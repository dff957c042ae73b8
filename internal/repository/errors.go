package repository

import (
	"errors"

	"github.com/lib/pq"

	"locacar/internal/apperrors"
)

// uniqueViolation is the Postgres error code for a UNIQUE constraint breach.
const uniqueViolation = "23505"

var constraintMessages = map[string]string{
	"users_username_key":                  "Username already exists.",
	"cars_license_plate_key":              "A car with this license plate already exists.",
	"cars_vin_key":                        "A car with this VIN already exists.",
	"clients_phone_key":                   "A client with this phone number already exists.",
	"clients_cin_key":                     "A client with this CIN already exists.",
	"clients_email_key":                   "A client with this email already exists.",
	"reservations_reservation_number_key": "Reservation number already exists.",
}

// mapWriteError turns unique-constraint violations into Conflict errors so
// the boundary answers 409 instead of a generic 500.
func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		msg, ok := constraintMessages[pqErr.Constraint]
		if !ok {
			msg = "Duplicate value violates a uniqueness constraint."
		}
		return apperrors.Wrap(apperrors.Conflict, msg, err)
	}
	return err
}
