package service

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"locacar/internal/apperrors"
	"locacar/internal/auth"
	"locacar/internal/db"
	"locacar/internal/entities"
)

const minPasswordLength = 8

// UserService administers manager accounts. Admin accounts are provisioned
// out of band and are never created or deleted through this surface.
type UserService struct {
	repo  UserStore
	audit *AuditService
}

func NewUserService(repo UserStore, audit *AuditService) *UserService {
	return &UserService{repo: repo, audit: audit}
}

func (s *UserService) ListManagers() ([]db.User, error) {
	return s.repo.ListManagers()
}

func (s *UserService) GetManager(id string) (*db.User, error) {
	return s.repo.GetManagerByID(id)
}

func (s *UserService) CreateManager(actor auth.Actor, req entities.CreateManagerRequest) (*db.User, error) {
	if req.Username == "" || req.Password == "" || req.FullName == "" {
		return nil, apperrors.New(apperrors.Validation, "Missing required fields: username, password, fullName")
	}
	if len(req.Password) < minPasswordLength {
		return nil, apperrors.Validationf("Password must be at least %d characters long.", minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, "hashing password", err)
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	user := &db.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         auth.RoleManager,
		FullName:     req.FullName,
		IsActive:     active,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(user); err != nil {
		s.audit.Record(actor, "create_manager", "user", "", db.AuditFailure,
			map[string]interface{}{"error": err.Error(), "username": req.Username})
		return nil, err
	}
	s.audit.Record(actor, "create_manager", "user", user.ID, db.AuditSuccess,
		map[string]interface{}{"username": user.Username})
	return user, nil
}

func (s *UserService) UpdateManager(actor auth.Actor, id string, upd entities.ManagerUpdate) (*db.User, error) {
	user, err := s.repo.GetManagerByID(id)
	if err != nil {
		return nil, err
	}

	var changed []string
	if upd.Username != nil {
		user.Username = *upd.Username
		changed = append(changed, "username")
	}
	if upd.FullName != nil {
		user.FullName = *upd.FullName
		changed = append(changed, "fullName")
	}
	if upd.Password != nil {
		if len(*upd.Password) < minPasswordLength {
			return nil, apperrors.Validationf("Password must be at least %d characters long.", minPasswordLength)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.Internal, "hashing password", err)
		}
		user.PasswordHash = string(hash)
		changed = append(changed, "password")
	}
	if upd.IsActive != nil {
		user.IsActive = *upd.IsActive
		changed = append(changed, "isActive")
	}
	if len(changed) == 0 {
		return nil, apperrors.New(apperrors.Validation, "No valid fields provided for update.")
	}

	now := time.Now().UTC()
	user.UpdatedAt = &now

	if err := s.repo.Save(user); err != nil {
		s.audit.Record(actor, "update_manager", "user", id, db.AuditFailure,
			map[string]interface{}{"error": err.Error()})
		return nil, err
	}
	s.audit.Record(actor, "update_manager", "user", id, db.AuditSuccess,
		map[string]interface{}{"updated_fields": changed})
	return user, nil
}

// DeleteManager removes a manager account. An admin deleting its own
// account is rejected so the system cannot lock itself out.
func (s *UserService) DeleteManager(actor auth.Actor, id string) error {
	if actor.ID == id {
		return apperrors.New(apperrors.Authorization, "You cannot delete your own account.")
	}
	user, err := s.repo.GetManagerByID(id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteManager(id); err != nil {
		s.audit.Record(actor, "delete_manager", "user", id, db.AuditFailure,
			map[string]interface{}{"error": err.Error()})
		return err
	}
	s.audit.Record(actor, "delete_manager", "user", id, db.AuditSuccess,
		map[string]interface{}{"username": user.Username})
	return nil
}
