package service

import (
	"golang.org/x/crypto/bcrypt"

	"locacar/internal/apperrors"
	"locacar/internal/auth"
	"locacar/internal/db"
)

type AuthService struct {
	users UserStore
	audit *AuditService
}

func NewAuthService(users UserStore, audit *AuditService) *AuthService {
	return &AuthService{users: users, audit: audit}
}

// Login verifies the credentials and returns the account. The unknown-user
// and wrong-password paths return the same message so usernames cannot be
// probed.
func (s *AuthService) Login(username, password string) (*db.User, error) {
	if username == "" || password == "" {
		return nil, apperrors.New(apperrors.Validation, "Username and password are required.")
	}

	user, err := s.users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.audit.Record(auth.Actor{}, "login_failed", "user", "", db.AuditWarning,
			map[string]interface{}{"username": username})
		return nil, apperrors.New(apperrors.Authentication, "Invalid username or password")
	}
	if !user.IsActive {
		s.audit.Record(auth.Actor{}, "login_failed", "user", user.ID, db.AuditWarning,
			map[string]interface{}{"username": username, "reason": "account deactivated"})
		return nil, apperrors.New(apperrors.Authorization, "Account is deactivated. Please contact an administrator.")
	}

	actor := auth.Actor{ID: user.ID, Username: user.Username, Role: user.Role}
	s.audit.Record(actor, "login_success", "user", user.ID, db.AuditSuccess, nil)
	return user, nil
}

// Logout only records the event; session invalidation is the cookie clear
// done by the handler.
func (s *AuthService) Logout(actor auth.Actor) {
	s.audit.Record(actor, "logout", "user", actor.ID, db.AuditSuccess, nil)
}
