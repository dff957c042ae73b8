package service

import (
	"time"

	"locacar/internal/db"
	"locacar/internal/entities"
)

// Store interfaces consumed by the services. The repository package provides
// the Postgres implementations; tests substitute in-memory fakes.

type CarStore interface {
	List() ([]db.Car, error)
	GetByID(id string) (*db.Car, error)
	Create(c *db.Car) error
	Save(c *db.Car) error
	SetStatus(id, status string, byUserID *string) error
	Delete(id string) error
}

type ClientStore interface {
	List() ([]db.Client, error)
	GetByID(id string) (*db.Client, error)
	Create(c *db.Client) error
	Save(c *db.Client) error
	Delete(id string) error
}

type UserStore interface {
	GetByUsername(username string) (*db.User, error)
	ListManagers() ([]db.User, error)
	GetManagerByID(id string) (*db.User, error)
	Create(u *db.User) error
	Save(u *db.User) error
	DeleteManager(id string) error
}

type ReservationStore interface {
	Create(res *db.Reservation) error
	Save(res *db.Reservation) error
	GetByID(id string) (*db.Reservation, error)
	Delete(id string) error
	NumberExists(number string) (bool, error)
	CountForCar(carID string, statuses ...string) (int, error)
	CountForClient(clientID string) (int, error)
	GetDetailed(id string) (*entities.ReservationDetail, error)
	ListDetailed() ([]entities.ReservationDetail, error)
	Recent(limit int) ([]entities.ReservationDetail, error)
}

type AuditStore interface {
	Insert(e *db.AuditLogEntry) error
	List(q entities.AuditQuery) ([]db.AuditLogEntry, int, error)
}

type StatsStore interface {
	CountUsers() (int, error)
	CountUsersByRole(role string) (int, error)
	CountCars() (int, error)
	CountCarsByStatus(status string) (int, error)
	CountClients() (int, error)
	CountReservationsByStatus(statuses ...string) (int, error)
	MonthlyRevenue(start, end time.Time) (float64, error)
	RecentClients(limit int) ([]entities.RecentClient, error)
}
