package auth

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

// RequireRole gates a subrouter behind an authenticated session with the
// given role. An empty role requires only a valid session.
func (s *Sessions) RequireRole(role string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(CookieName)
			if err != nil || c.Value == "" {
				writeAuthError(w, http.StatusUnauthorized, "Authentication required. Please log in.")
				return
			}
			actor, err := s.Parse(c.Value)
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "Authentication required. Please log in.")
				return
			}
			if !RoleSatisfies(actor.Role, role) {
				writeAuthError(w, http.StatusForbidden, fmt.Sprintf("Authorization failed. '%s' role required.", role))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

func writeAuthError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
