package entities

import "time"

// PaymentInput is the caller-supplied slice of payment details; the balance
// is always derived server-side.
type PaymentInput struct {
	AmountPaid      *float64   `json:"amountPaid"`
	TransactionDate *time.Time `json:"transactionDate"`
}

type CreateReservationRequest struct {
	CarID              string        `json:"carId"`
	ClientID           string        `json:"clientId"`
	StartDate          time.Time     `json:"startDate"`
	EndDate            time.Time     `json:"endDate"`
	Status             string        `json:"status"`
	EstimatedTotalCost *float64      `json:"estimatedTotalCost"`
	Notes              string        `json:"notes"`
	PaymentDetails     *PaymentInput `json:"paymentDetails"`
}

// ReservationUpdate is the typed partial update for PUT /reservations/{id}.
// Only fields listed here are mutable through that route; status and the
// lifecycle timestamps belong to the status-transition operation.
type ReservationUpdate struct {
	CarID              *string       `json:"carId"`
	ClientID           *string       `json:"clientId"`
	StartDate          *time.Time    `json:"startDate"`
	EndDate            *time.Time    `json:"endDate"`
	EstimatedTotalCost *float64      `json:"estimatedTotalCost"`
	Notes              *string       `json:"notes"`
	PaymentDetails     *PaymentInput `json:"paymentDetails"`
}

type StatusUpdateRequest struct {
	Status          string        `json:"status"`
	FinalTotalCost  *float64      `json:"finalTotalCost"`
	CompletionNotes *string       `json:"completionNotes"`
	PaymentDetails  *PaymentInput `json:"paymentDetails"`
}
