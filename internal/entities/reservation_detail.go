package entities

import "locacar/internal/db"

// CarSummary is the projection embedded into denormalized reservation reads.
type CarSummary struct {
	ID           string  `json:"id"`
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	LicensePlate string  `json:"licensePlate"`
	VIN          string  `json:"vin"`
	Status       string  `json:"status"`
	ImageURL     *string `json:"imageUrl"`
}

type ClientSummary struct {
	ID        string  `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     *string `json:"email"`
	Phone     string  `json:"phone"`
}

type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
}

// ReservationDetail is a reservation joined with summaries of its car,
// client, and the users that created / last modified it. Missing referenced
// rows yield nil sub-objects, never an error.
type ReservationDetail struct {
	db.Reservation
	Car                *CarSummary    `json:"carDetails"`
	Client             *ClientSummary `json:"clientDetails"`
	CreatedByUser      *UserSummary   `json:"createdByUser"`
	LastModifiedByUser *UserSummary   `json:"lastModifiedByUser"`
}
