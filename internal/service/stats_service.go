package service

import (
	"time"

	"locacar/internal/auth"
	"locacar/internal/db"
	"locacar/internal/entities"
)

// StatsService aggregates the dashboard figures. All counts are computed on
// demand; nothing is cached.
type StatsService struct {
	stats        StatsStore
	reservations ReservationStore
}

func NewStatsService(stats StatsStore, reservations ReservationStore) *StatsService {
	return &StatsService{stats: stats, reservations: reservations}
}

func (s *StatsService) AdminStats() (*entities.AdminStats, error) {
	managers, err := s.stats.CountUsersByRole(auth.RoleManager)
	if err != nil {
		return nil, err
	}
	total, err := s.stats.CountUsers()
	if err != nil {
		return nil, err
	}
	return &entities.AdminStats{TotalManagers: managers, TotalSystemUsers: total}, nil
}

// ManagerDashboard returns the fleet, client and reservation counters plus
// the revenue realized from reservations completed in the current calendar
// month.
func (s *StatsService) ManagerDashboard() (*entities.ManagerDashboardStats, error) {
	out := &entities.ManagerDashboardStats{}
	var err error

	if out.TotalCars, err = s.stats.CountCars(); err != nil {
		return nil, err
	}
	if out.AvailableCars, err = s.stats.CountCarsByStatus(db.CarStatusAvailable); err != nil {
		return nil, err
	}
	if out.RentedCars, err = s.stats.CountCarsByStatus(db.CarStatusRented); err != nil {
		return nil, err
	}
	if out.MaintenanceCars, err = s.stats.CountCarsByStatus(db.CarStatusMaintenance); err != nil {
		return nil, err
	}
	if out.TotalClients, err = s.stats.CountClients(); err != nil {
		return nil, err
	}
	if out.ActiveReservations, err = s.stats.CountReservationsByStatus(db.StatusActive); err != nil {
		return nil, err
	}
	if out.PendingReservations, err = s.stats.CountReservationsByStatus(db.StatusPendingConfirmation); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)
	if out.MonthlyRevenue, err = s.stats.MonthlyRevenue(monthStart, monthEnd); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *StatsService) RecentClients(limit int) ([]entities.RecentClient, error) {
	return s.stats.RecentClients(limit)
}

// RecentReservations projects the latest bookings into the compact shape
// the dashboard renders.
func (s *StatsService) RecentReservations(limit int) ([]entities.RecentReservation, error) {
	details, err := s.reservations.Recent(limit)
	if err != nil {
		return nil, err
	}
	out := make([]entities.RecentReservation, 0, len(details))
	for _, d := range details {
		r := entities.RecentReservation{
			ID:         d.ID,
			ClientName: "Unknown client",
			CarModel:   "Unknown car",
			StartDate:  d.StartDate,
			Status:     d.Status,
		}
		if d.Client != nil {
			r.ClientName = d.Client.FirstName + " " + d.Client.LastName
		}
		if d.Car != nil {
			r.CarModel = d.Car.Make + " " + d.Car.Model
		}
		out = append(out, r)
	}
	return out, nil
}
