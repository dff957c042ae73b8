package service

import (
	"time"

	"locacar/internal/apperrors"
	"locacar/internal/auth"
	"locacar/internal/db"
	"locacar/internal/entities"
)

type CarService struct {
	repo         CarStore
	reservations ReservationStore
	audit        *AuditService
}

func NewCarService(repo CarStore, reservations ReservationStore, audit *AuditService) *CarService {
	return &CarService{repo: repo, reservations: reservations, audit: audit}
}

func (s *CarService) List() ([]db.Car, error) {
	return s.repo.List()
}

func (s *CarService) Get(id string) (*db.Car, error) {
	return s.repo.GetByID(id)
}

func (s *CarService) Create(actor auth.Actor, req entities.CreateCarRequest) (*db.Car, error) {
	if req.Make == "" || req.Model == "" || req.LicensePlate == "" {
		return nil, apperrors.New(apperrors.Validation, "Missing required fields: make, model, licensePlate")
	}
	if req.DailyRate <= 0 {
		return nil, apperrors.New(apperrors.Validation, "dailyRate must be greater than zero.")
	}
	status := db.CarStatusAvailable
	if req.Status != "" {
		if !db.IsValidCarStatus(req.Status) {
			return nil, apperrors.Validationf("Invalid car status '%s'.", req.Status)
		}
		status = req.Status
	}

	car := &db.Car{
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		LicensePlate: req.LicensePlate,
		VIN:          req.VIN,
		Color:        req.Color,
		DailyRate:    req.DailyRate,
		Status:       status,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		AddedAt:      time.Now().UTC(),
		AddedBy:      actorIDPtr(actor),
	}
	if err := s.repo.Create(car); err != nil {
		s.audit.Record(actor, "create_car", "car", "", db.AuditFailure,
			map[string]interface{}{"error": err.Error(), "licensePlate": req.LicensePlate})
		return nil, err
	}
	s.audit.Record(actor, "create_car", "car", car.ID, db.AuditSuccess,
		map[string]interface{}{"licensePlate": car.LicensePlate, "make": car.Make, "model": car.Model})
	return car, nil
}

func (s *CarService) Update(actor auth.Actor, id string, upd entities.CarUpdate) (*db.Car, error) {
	car, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	var changed []string
	if upd.Make != nil {
		car.Make = *upd.Make
		changed = append(changed, "make")
	}
	if upd.Model != nil {
		car.Model = *upd.Model
		changed = append(changed, "model")
	}
	if upd.Year != nil {
		car.Year = *upd.Year
		changed = append(changed, "year")
	}
	if upd.LicensePlate != nil {
		car.LicensePlate = *upd.LicensePlate
		changed = append(changed, "licensePlate")
	}
	if upd.VIN != nil {
		car.VIN = *upd.VIN
		changed = append(changed, "vin")
	}
	if upd.Color != nil {
		car.Color = *upd.Color
		changed = append(changed, "color")
	}
	if upd.DailyRate != nil {
		if *upd.DailyRate <= 0 {
			return nil, apperrors.New(apperrors.Validation, "dailyRate must be greater than zero.")
		}
		car.DailyRate = *upd.DailyRate
		changed = append(changed, "dailyRate")
	}
	if upd.Status != nil {
		if !db.IsValidCarStatus(*upd.Status) {
			return nil, apperrors.Validationf("Invalid car status '%s'.", *upd.Status)
		}
		car.Status = *upd.Status
		changed = append(changed, "status")
	}
	if upd.Description != nil {
		car.Description = *upd.Description
		changed = append(changed, "description")
	}
	if upd.ImageURL != nil {
		car.ImageURL = upd.ImageURL
		changed = append(changed, "imageUrl")
	}
	if len(changed) == 0 {
		return nil, apperrors.New(apperrors.Validation, "No valid fields provided for update.")
	}

	now := time.Now().UTC()
	car.UpdatedAt = &now
	car.UpdatedBy = actorIDPtr(actor)

	if err := s.repo.Save(car); err != nil {
		s.audit.Record(actor, "update_car", "car", id, db.AuditFailure,
			map[string]interface{}{"error": err.Error()})
		return nil, err
	}
	s.audit.Record(actor, "update_car", "car", id, db.AuditSuccess,
		map[string]interface{}{"updated_fields": changed})
	return car, nil
}

// Delete refuses to remove a car that still has an active or confirmed
// reservation pointing at it.
func (s *CarService) Delete(actor auth.Actor, id string) error {
	car, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	inUse, err := s.reservations.CountForCar(id, db.StatusActive, db.StatusConfirmed)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return apperrors.Conflictf("Cannot delete car: it has %d active or confirmed reservation(s).", inUse)
	}
	if err := s.repo.Delete(id); err != nil {
		s.audit.Record(actor, "delete_car", "car", id, db.AuditFailure,
			map[string]interface{}{"error": err.Error()})
		return err
	}
	s.audit.Record(actor, "delete_car", "car", id, db.AuditSuccess,
		map[string]interface{}{"licensePlate": car.LicensePlate})
	return nil
}
