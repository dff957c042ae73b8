package entities

// Create requests carry required fields as values; updates are typed partial
// structs with pointer fields so an absent JSON key means "leave unchanged".

type CreateCarRequest struct {
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	LicensePlate string  `json:"licensePlate"`
	VIN          string  `json:"vin"`
	Color        string  `json:"color"`
	DailyRate    float64 `json:"dailyRate"`
	Status       string  `json:"status"`
	Description  string  `json:"description"`
	ImageURL     *string `json:"imageUrl"`
}

type CarUpdate struct {
	Make         *string  `json:"make"`
	Model        *string  `json:"model"`
	Year         *int     `json:"year"`
	LicensePlate *string  `json:"licensePlate"`
	VIN          *string  `json:"vin"`
	Color        *string  `json:"color"`
	DailyRate    *float64 `json:"dailyRate"`
	Status       *string  `json:"status"`
	Description  *string  `json:"description"`
	ImageURL     *string  `json:"imageUrl"`
}

type CreateClientRequest struct {
	FirstName           string  `json:"firstName"`
	LastName            string  `json:"lastName"`
	Phone               string  `json:"phone"`
	CIN                 string  `json:"cin"`
	Email               *string `json:"email"`
	DriverLicenseNumber string  `json:"driverLicenseNumber"`
	Notes               string  `json:"notes"`
}

type ClientUpdate struct {
	FirstName           *string `json:"firstName"`
	LastName            *string `json:"lastName"`
	Phone               *string `json:"phone"`
	CIN                 *string `json:"cin"`
	Email               *string `json:"email"`
	DriverLicenseNumber *string `json:"driverLicenseNumber"`
	Notes               *string `json:"notes"`
}

type CreateManagerRequest struct {
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Password string `json:"password"`
	IsActive *bool  `json:"isActive"`
}

type ManagerUpdate struct {
	Username *string `json:"username"`
	FullName *string `json:"fullName"`
	Password *string `json:"password"`
	IsActive *bool   `json:"isActive"`
}
