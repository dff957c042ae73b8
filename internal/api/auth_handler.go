package api

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"locacar/internal/auth"
	"locacar/internal/service"
)

type AuthHandler struct {
	service    *service.AuthService
	sessions   *auth.Sessions
	sessionTTL time.Duration
	log        *logrus.Logger
}

func NewAuthHandler(svc *service.AuthService, sessions *auth.Sessions, sessionTTL time.Duration, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{service: svc, sessions: sessions, sessionTTL: sessionTTL, log: log}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	FullName string `json:"fullName,omitempty"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.log, err)
		return
	}

	user, err := h.service.Login(req.Username, req.Password)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	actor := auth.Actor{ID: user.ID, Username: user.Username, Role: user.Role}
	token, err := h.sessions.Issue(actor)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	auth.SetCookie(w, token, h.sessionTTL)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"user": sessionUser{
			ID:       user.ID,
			Username: user.Username,
			Role:     user.Role,
			FullName: user.FullName,
		},
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	actor := h.sessions.ActorFromRequest(r)
	if !actor.IsZero() {
		h.service.Logout(actor)
	}
	auth.ClearCookie(w)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully."})
}

// Status reports whether the caller holds a valid session. It never errors:
// an anonymous caller gets a null user.
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	actor := h.sessions.ActorFromRequest(r)
	if actor.IsZero() {
		respondJSON(w, http.StatusOK, map[string]interface{}{"user": nil})
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"user": sessionUser{ID: actor.ID, Username: actor.Username, Role: actor.Role},
	})
}
