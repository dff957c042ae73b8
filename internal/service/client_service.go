package service

import (
	"time"

	"locacar/internal/apperrors"
	"locacar/internal/auth"
	"locacar/internal/db"
	"locacar/internal/entities"
)

type ClientService struct {
	repo         ClientStore
	reservations ReservationStore
	audit        *AuditService
}

func NewClientService(repo ClientStore, reservations ReservationStore, audit *AuditService) *ClientService {
	return &ClientService{repo: repo, reservations: reservations, audit: audit}
}

func (s *ClientService) List() ([]db.Client, error) {
	return s.repo.List()
}

func (s *ClientService) Get(id string) (*db.Client, error) {
	return s.repo.GetByID(id)
}

func (s *ClientService) Create(actor auth.Actor, req entities.CreateClientRequest) (*db.Client, error) {
	if req.FirstName == "" || req.LastName == "" || req.Phone == "" {
		return nil, apperrors.New(apperrors.Validation, "Missing required fields: firstName, lastName, phone")
	}

	client := &db.Client{
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		Phone:               req.Phone,
		CIN:                 req.CIN,
		Email:               req.Email,
		DriverLicenseNumber: req.DriverLicenseNumber,
		Notes:               req.Notes,
		RegisteredAt:        time.Now().UTC(),
		RegisteredBy:        actorIDPtr(actor),
	}
	if err := s.repo.Create(client); err != nil {
		s.audit.Record(actor, "create_client", "client", "", db.AuditFailure,
			map[string]interface{}{"error": err.Error(), "phone": req.Phone})
		return nil, err
	}
	s.audit.Record(actor, "create_client", "client", client.ID, db.AuditSuccess,
		map[string]interface{}{"firstName": client.FirstName, "lastName": client.LastName})
	return client, nil
}

func (s *ClientService) Update(actor auth.Actor, id string, upd entities.ClientUpdate) (*db.Client, error) {
	client, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	var changed []string
	if upd.FirstName != nil {
		client.FirstName = *upd.FirstName
		changed = append(changed, "firstName")
	}
	if upd.LastName != nil {
		client.LastName = *upd.LastName
		changed = append(changed, "lastName")
	}
	if upd.Phone != nil {
		client.Phone = *upd.Phone
		changed = append(changed, "phone")
	}
	if upd.CIN != nil {
		client.CIN = *upd.CIN
		changed = append(changed, "cin")
	}
	if upd.Email != nil {
		client.Email = upd.Email
		changed = append(changed, "email")
	}
	if upd.DriverLicenseNumber != nil {
		client.DriverLicenseNumber = *upd.DriverLicenseNumber
		changed = append(changed, "driverLicenseNumber")
	}
	if upd.Notes != nil {
		client.Notes = *upd.Notes
		changed = append(changed, "notes")
	}
	if len(changed) == 0 {
		return nil, apperrors.New(apperrors.Validation, "No valid fields provided for update.")
	}

	if err := s.repo.Save(client); err != nil {
		s.audit.Record(actor, "update_client", "client", id, db.AuditFailure,
			map[string]interface{}{"error": err.Error()})
		return nil, err
	}
	s.audit.Record(actor, "update_client", "client", id, db.AuditSuccess,
		map[string]interface{}{"updated_fields": changed})
	return client, nil
}

// Delete refuses to remove a client with any reservation history, so past
// bookings never lose their counterpart record.
func (s *ClientService) Delete(actor auth.Actor, id string) error {
	client, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	count, err := s.reservations.CountForClient(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.Conflictf("Cannot delete client: %d reservation(s) reference this client.", count)
	}
	if err := s.repo.Delete(id); err != nil {
		s.audit.Record(actor, "delete_client", "client", id, db.AuditFailure,
			map[string]interface{}{"error": err.Error()})
		return err
	}
	s.audit.Record(actor, "delete_client", "client", id, db.AuditSuccess,
		map[string]interface{}{"firstName": client.FirstName, "lastName": client.LastName})
	return nil
}
