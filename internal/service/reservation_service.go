package service

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"locacar/internal/apperrors"
	"locacar/internal/auth"
	"locacar/internal/db"
	"locacar/internal/entities"
)

// reservationNumberAttempts bounds the regenerate-on-collision loop. The
// token space is large enough that more than one retry is already unusual.
const reservationNumberAttempts = 10

// ReservationService owns the reservation lifecycle: cost computation,
// number generation, status transitions, and the car-status side effects
// they trigger.
type ReservationService struct {
	repo    ReservationStore
	cars    CarStore
	clients ClientStore
	audit   *AuditService
	notify  *NotifyService
}

func NewReservationService(repo ReservationStore, cars CarStore, clients ClientStore, audit *AuditService, notify *NotifyService) *ReservationService {
	return &ReservationService{repo: repo, cars: cars, clients: clients, audit: audit, notify: notify}
}

// inclusiveDays counts both the pickup and the return day.
func inclusiveDays(start, end time.Time) int {
	return int(end.Sub(start)/(24*time.Hour)) + 1
}

func estimateCost(car *db.Car, start, end time.Time) (float64, error) {
	if car.DailyRate <= 0 {
		return 0, apperrors.New(apperrors.Validation, "Car daily rate is not set or invalid.")
	}
	return car.DailyRate * float64(inclusiveDays(start, end)), nil
}

func effectiveTotalCost(res *db.Reservation) float64 {
	if res.FinalTotalCost != nil {
		return *res.FinalTotalCost
	}
	return res.EstimatedTotalCost
}

func newReservationNumber() string {
	u := uuid.New()
	return strings.ToUpper(hex.EncodeToString(u[:]))[:10]
}

func actorIDPtr(actor auth.Actor) *string {
	if actor.ID == "" {
		return nil
	}
	id := actor.ID
	return &id
}

func (s *ReservationService) generateNumber() (string, error) {
	for i := 0; i < reservationNumberAttempts; i++ {
		number := newReservationNumber()
		exists, err := s.repo.NumberExists(number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
	}
	return "", apperrors.Internalf("could not generate a unique reservation number")
}

// Create books a reservation. Availability of the car for the requested
// dates is not checked here; car status is only consulted by transitions.
func (s *ReservationService) Create(actor auth.Actor, req entities.CreateReservationRequest) (*entities.ReservationDetail, error) {
	if req.CarID == "" || req.ClientID == "" || req.StartDate.IsZero() || req.EndDate.IsZero() {
		return nil, apperrors.New(apperrors.Validation, "Missing required fields: carId, clientId, startDate, endDate")
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, apperrors.New(apperrors.Validation, "End date cannot be before start date.")
	}

	car, err := s.cars.GetByID(req.CarID)
	if err != nil {
		return nil, err
	}
	client, err := s.clients.GetByID(req.ClientID)
	if err != nil {
		return nil, err
	}

	estimate, err := estimateCost(car, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	if req.EstimatedTotalCost != nil && *req.EstimatedTotalCost > 0 {
		estimate = *req.EstimatedTotalCost
	}

	status := db.StatusPendingConfirmation
	if req.Status != "" {
		if !db.IsValidReservationStatus(req.Status) {
			return nil, apperrors.Validationf("Invalid status value. Must be one of: %s",
				strings.Join(db.ValidReservationStatuses, ", "))
		}
		status = req.Status
	}

	number, err := s.generateNumber()
	if err != nil {
		return nil, err
	}

	var amountPaid float64
	var transactionDate *time.Time
	if req.PaymentDetails != nil {
		if req.PaymentDetails.AmountPaid != nil {
			amountPaid = *req.PaymentDetails.AmountPaid
		}
		transactionDate = req.PaymentDetails.TransactionDate
	}

	now := time.Now().UTC()
	res := &db.Reservation{
		ReservationNumber:  number,
		CarID:              car.ID,
		ClientID:           client.ID,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		Status:             status,
		EstimatedTotalCost: estimate,
		Notes:              req.Notes,
		ReservationDate:    now,
		CreatedBy:          actorIDPtr(actor),
		LastModifiedAt:     now,
		LastModifiedBy:     actorIDPtr(actor),
		PaymentDetails: db.PaymentDetails{
			AmountPaid:       amountPaid,
			RemainingBalance: estimate - amountPaid,
			TransactionDate:  transactionDate,
		},
	}

	if err := s.repo.Create(res); err != nil {
		s.audit.Record(actor, "create_reservation", "reservation", "", db.AuditFailure,
			map[string]interface{}{"error": err.Error(), "carId": car.ID, "clientId": client.ID})
		return nil, err
	}
	s.audit.Record(actor, "create_reservation", "reservation", res.ID, db.AuditSuccess,
		map[string]interface{}{"reservationNumber": number, "carId": car.ID, "clientId": client.ID})

	return s.repo.GetDetailed(res.ID)
}

// Update applies the direct-edit allow-list. Status, the actual pickup and
// return timestamps, and finalTotalCost belong to TransitionStatus only.
func (s *ReservationService) Update(actor auth.Actor, id string, upd entities.ReservationUpdate) (*entities.ReservationDetail, error) {
	res, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	var changed []string
	recalc := false

	if upd.CarID != nil {
		if _, err := s.cars.GetByID(*upd.CarID); err != nil {
			return nil, err
		}
		res.CarID = *upd.CarID
		changed = append(changed, "carId")
		recalc = true
	}
	if upd.ClientID != nil {
		if _, err := s.clients.GetByID(*upd.ClientID); err != nil {
			return nil, err
		}
		res.ClientID = *upd.ClientID
		changed = append(changed, "clientId")
	}
	if upd.StartDate != nil {
		res.StartDate = *upd.StartDate
		changed = append(changed, "startDate")
		recalc = true
	}
	if upd.EndDate != nil {
		res.EndDate = *upd.EndDate
		changed = append(changed, "endDate")
		recalc = true
	}
	if upd.StartDate != nil || upd.EndDate != nil {
		if res.EndDate.Before(res.StartDate) {
			return nil, apperrors.New(apperrors.Validation, "End date cannot be before start date.")
		}
	}
	if upd.Notes != nil {
		res.Notes = *upd.Notes
		changed = append(changed, "notes")
	}

	costChanged := false
	if upd.EstimatedTotalCost != nil {
		res.EstimatedTotalCost = *upd.EstimatedTotalCost
		changed = append(changed, "estimatedTotalCost")
		costChanged = true
	} else if recalc {
		car, err := s.cars.GetByID(res.CarID)
		if err != nil {
			return nil, err
		}
		estimate, err := estimateCost(car, res.StartDate, res.EndDate)
		if err != nil {
			return nil, err
		}
		res.EstimatedTotalCost = estimate
		changed = append(changed, "estimatedTotalCost")
		costChanged = true
	}

	paymentChanged := false
	if upd.PaymentDetails != nil {
		if upd.PaymentDetails.AmountPaid != nil {
			res.PaymentDetails.AmountPaid = *upd.PaymentDetails.AmountPaid
			paymentChanged = true
		}
		if upd.PaymentDetails.TransactionDate != nil {
			res.PaymentDetails.TransactionDate = upd.PaymentDetails.TransactionDate
			paymentChanged = true
		}
		if paymentChanged {
			changed = append(changed, "paymentDetails")
		}
	}
	if costChanged || paymentChanged {
		res.PaymentDetails.RemainingBalance = effectiveTotalCost(res) - res.PaymentDetails.AmountPaid
	}

	if len(changed) == 0 {
		return nil, apperrors.New(apperrors.Validation, "No valid fields provided for update.")
	}

	res.LastModifiedAt = time.Now().UTC()
	res.LastModifiedBy = actorIDPtr(actor)

	if err := s.repo.Save(res); err != nil {
		s.audit.Record(actor, "update_reservation", "reservation", id, db.AuditFailure,
			map[string]interface{}{"error": err.Error()})
		return nil, err
	}
	s.audit.Record(actor, "update_reservation", "reservation", id, db.AuditSuccess,
		map[string]interface{}{"updated_fields": changed})

	return s.repo.GetDetailed(id)
}

// TransitionStatus moves a reservation to any member of the valid status
// set. Transition legality beyond membership is deliberately not enforced.
func (s *ReservationService) TransitionStatus(actor auth.Actor, id string, req entities.StatusUpdateRequest) (*entities.ReservationDetail, error) {
	if !db.IsValidReservationStatus(req.Status) {
		return nil, apperrors.Validationf("Invalid status value. Must be one of: %s",
			strings.Join(db.ValidReservationStatuses, ", "))
	}
	res, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	details := map[string]interface{}{
		"old_status": res.Status,
		"new_status": req.Status,
		"carId":      res.CarID,
	}
	res.Status = req.Status

	switch req.Status {
	case db.StatusActive:
		pickup := now
		res.ActualPickupDate = &pickup
		if err := s.setCarStatus(actor, res, db.CarStatusRented,
			fmt.Sprintf("Reservation %s active", res.ReservationNumber)); err != nil {
			return nil, err
		}

	case db.StatusCompleted:
		ret := now
		res.ActualReturnDate = &ret
		if err := s.setCarStatus(actor, res, db.CarStatusAvailable,
			fmt.Sprintf("Reservation %s completed", res.ReservationNumber)); err != nil {
			return nil, err
		}
		final := res.EstimatedTotalCost
		if req.FinalTotalCost != nil {
			final = *req.FinalTotalCost
		}
		res.FinalTotalCost = &final
		if req.PaymentDetails != nil {
			if req.PaymentDetails.AmountPaid != nil {
				res.PaymentDetails.AmountPaid = *req.PaymentDetails.AmountPaid
			}
			if req.PaymentDetails.TransactionDate != nil {
				res.PaymentDetails.TransactionDate = req.PaymentDetails.TransactionDate
			}
		}
		res.PaymentDetails.RemainingBalance = final - res.PaymentDetails.AmountPaid
		if req.CompletionNotes != nil {
			res.Notes = *req.CompletionNotes
		}
		details["finalTotalCost"] = final

	case db.StatusCancelledByClient, db.StatusCancelledByAgency, db.StatusNoShow:
		if err := s.releaseCar(actor, res,
			fmt.Sprintf("Reservation %s cancelled/no-show", res.ReservationNumber)); err != nil {
			return nil, err
		}
	}

	res.LastModifiedAt = now
	res.LastModifiedBy = actorIDPtr(actor)

	if err := s.repo.Save(res); err != nil {
		s.audit.Record(actor, "update_reservation_status", "reservation", id, db.AuditFailure,
			map[string]interface{}{"error": err.Error()})
		return nil, err
	}
	s.audit.Record(actor, "update_reservation_status", "reservation", id, db.AuditSuccess, details)

	detail, err := s.repo.GetDetailed(id)
	if err != nil {
		return nil, err
	}
	s.notifyStatusChange(detail, req.Status)
	return detail, nil
}

// Delete removes the reservation, releasing the car first the same way a
// cancellation would. The audit entry captures the reservation number and
// car id so the action stays traceable after the row is gone.
func (s *ReservationService) Delete(actor auth.Actor, id string) error {
	res, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	details := map[string]interface{}{
		"reservationNumber": res.ReservationNumber,
		"carId":             res.CarID,
	}
	if err := s.releaseCar(actor, res,
		fmt.Sprintf("Reservation %s deleted", res.ReservationNumber)); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		s.audit.Record(actor, "delete_reservation", "reservation", id, db.AuditFailure,
			map[string]interface{}{"error": err.Error()})
		return err
	}
	s.audit.Record(actor, "delete_reservation", "reservation", id, db.AuditSuccess, details)
	return nil
}

func (s *ReservationService) Get(id string) (*entities.ReservationDetail, error) {
	return s.repo.GetDetailed(id)
}

func (s *ReservationService) List() ([]entities.ReservationDetail, error) {
	return s.repo.ListDetailed()
}

// setCarStatus applies a car side effect and records it as its own audit
// entry. A missing car is tolerated: referential integrity is assumed, not
// enforced, by the store.
func (s *ReservationService) setCarStatus(actor auth.Actor, res *db.Reservation, status, reason string) error {
	if err := s.cars.SetStatus(res.CarID, status, actorIDPtr(actor)); err != nil {
		if apperrors.IsNotFound(err) {
			return nil
		}
		s.audit.Record(actor, "update_car_status", "car", res.CarID, db.AuditFailure,
			map[string]interface{}{"error": err.Error()})
		return err
	}
	s.audit.Record(actor, "update_car_status", "car", res.CarID, db.AuditSuccess,
		map[string]interface{}{"new_status": status, "reason": reason})
	return nil
}

// releaseCar frees the car unless it is already available or parked in
// maintenance; no prior-state bookkeeping is needed.
func (s *ReservationService) releaseCar(actor auth.Actor, res *db.Reservation, reason string) error {
	car, err := s.cars.GetByID(res.CarID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil
		}
		return err
	}
	if car.Status == db.CarStatusAvailable || car.Status == db.CarStatusMaintenance {
		return nil
	}
	return s.setCarStatus(actor, res, db.CarStatusAvailable, reason)
}

func (s *ReservationService) notifyStatusChange(detail *entities.ReservationDetail, status string) {
	if s.notify == nil {
		return
	}
	switch status {
	case db.StatusConfirmed, db.StatusCompleted, db.StatusCancelledByClient, db.StatusCancelledByAgency:
		s.notify.ReservationStatusChanged(*detail)
	}
}
