package db

import "time"

// Car status values.
const (
	CarStatusAvailable   = "available"
	CarStatusRented      = "rented"
	CarStatusMaintenance = "maintenance"
)

// Reservation status values.
const (
	StatusPendingConfirmation = "pending_confirmation"
	StatusConfirmed           = "confirmed"
	StatusActive              = "active"
	StatusCompleted           = "completed"
	StatusCancelledByClient   = "cancelled_by_client"
	StatusCancelledByAgency   = "cancelled_by_agency"
	StatusNoShow              = "no_show"
)

// ValidReservationStatuses lists every status a reservation may hold. Any
// member may be set from any other; no transition table is enforced.
var ValidReservationStatuses = []string{
	StatusPendingConfirmation,
	StatusConfirmed,
	StatusActive,
	StatusCompleted,
	StatusCancelledByClient,
	StatusCancelledByAgency,
	StatusNoShow,
}

func IsValidReservationStatus(s string) bool {
	for _, v := range ValidReservationStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func IsValidCarStatus(s string) bool {
	return s == CarStatusAvailable || s == CarStatusRented || s == CarStatusMaintenance
}

type Car struct {
	ID           string     `json:"id"`
	Make         string     `json:"make"`
	Model        string     `json:"model"`
	Year         int        `json:"year"`
	LicensePlate string     `json:"licensePlate"`
	VIN          string     `json:"vin"`
	Color        string     `json:"color"`
	DailyRate    float64    `json:"dailyRate"`
	Status       string     `json:"status"`
	Description  string     `json:"description"`
	ImageURL     *string    `json:"imageUrl"`
	AddedAt      time.Time  `json:"addedAt"`
	AddedBy      *string    `json:"addedBy"`
	UpdatedAt    *time.Time `json:"updatedAt"`
	UpdatedBy    *string    `json:"updatedBy"`
}

type Client struct {
	ID                  string    `json:"id"`
	FirstName           string    `json:"firstName"`
	LastName            string    `json:"lastName"`
	Phone               string    `json:"phone"`
	CIN                 string    `json:"cin"`
	Email               *string   `json:"email"`
	DriverLicenseNumber string    `json:"driverLicenseNumber"`
	Notes               string    `json:"notes"`
	RegisteredAt        time.Time `json:"registeredAt"`
	RegisteredBy        *string   `json:"registeredBy"`
}

// User is a back-office account (manager or admin). The password hash never
// leaves the server.
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	FullName     string     `json:"fullName"`
	IsActive     bool       `json:"isActive"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt"`
}

type PaymentDetails struct {
	AmountPaid       float64    `json:"amountPaid"`
	RemainingBalance float64    `json:"remainingBalance"`
	TransactionDate  *time.Time `json:"transactionDate"`
}

type Reservation struct {
	ID                 string         `json:"id"`
	ReservationNumber  string         `json:"reservationNumber"`
	CarID              string         `json:"carId"`
	ClientID           string         `json:"clientId"`
	StartDate          time.Time      `json:"startDate"`
	EndDate            time.Time      `json:"endDate"`
	ActualPickupDate   *time.Time     `json:"actualPickupDate"`
	ActualReturnDate   *time.Time     `json:"actualReturnDate"`
	Status             string         `json:"status"`
	EstimatedTotalCost float64        `json:"estimatedTotalCost"`
	FinalTotalCost     *float64       `json:"finalTotalCost"`
	PaymentDetails     PaymentDetails `json:"paymentDetails"`
	Notes              string         `json:"notes"`
	ReservationDate    time.Time      `json:"reservationDate"`
	CreatedBy          *string        `json:"createdBy"`
	LastModifiedAt     time.Time      `json:"lastModifiedAt"`
	LastModifiedBy     *string        `json:"lastModifiedBy"`
}

// Audit entry status values.
const (
	AuditSuccess = "success"
	AuditFailure = "failure"
	AuditWarning = "warning"
	AuditInfo    = "info"
)

// AuditLogEntry is append-only; the application never mutates or deletes
// rows once written.
type AuditLogEntry struct {
	ID         string                 `json:"id"`
	Timestamp  time.Time              `json:"timestamp"`
	Action     string                 `json:"action"`
	EntityType string                 `json:"entityType"`
	EntityID   *string                `json:"entityId"`
	Status     string                 `json:"status"`
	UserID     *string                `json:"userId"`
	Username   string                 `json:"userUsername"`
	Details    map[string]interface{} `json:"details,omitempty"`
}
