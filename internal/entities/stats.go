package entities

import "time"

type AdminStats struct {
	TotalManagers    int `json:"totalManagers"`
	TotalSystemUsers int `json:"totalSystemUsers"`
}

type ManagerDashboardStats struct {
	TotalCars           int     `json:"totalCars"`
	AvailableCars       int     `json:"availableCars"`
	RentedCars          int     `json:"rentedCars"`
	MaintenanceCars     int     `json:"maintenanceCars"`
	TotalClients        int     `json:"totalClients"`
	ActiveReservations  int     `json:"activeReservations"`
	PendingReservations int     `json:"pendingReservations"`
	MonthlyRevenue      float64 `json:"monthlyRevenue"`
}

type RecentClient struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        *string   `json:"email"`
	RegisteredAt time.Time `json:"registeredAt"`
}

type RecentReservation struct {
	ID         string    `json:"id"`
	ClientName string    `json:"clientName"`
	CarModel   string    `json:"carModel"`
	StartDate  time.Time `json:"startDate"`
	Status     string    `json:"status"`
}
