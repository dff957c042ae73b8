package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the session cookie set on login and cleared on logout.
const CookieName = "locacar_session"

// Sessions issues and verifies the signed session tokens carried by the
// cookie. Claims: user_id, username, role, exp.
type Sessions struct {
	secret []byte
	ttl    time.Duration
}

func NewSessions(secret string, ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &Sessions{secret: []byte(secret), ttl: ttl}
}

func (s *Sessions) Issue(a Actor) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  a.ID,
		"username": a.Username,
		"role":     a.Role,
		"exp":      time.Now().Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Sessions) Parse(tokenString string) (Actor, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return Actor{}, err
	}
	if !token.Valid {
		return Actor{}, errors.New("invalid session token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Actor{}, errors.New("invalid session claims")
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return Actor{}, errors.New("user_id not found in session")
	}
	username, ok := claims["username"].(string)
	if !ok {
		return Actor{}, errors.New("username not found in session")
	}
	role, ok := claims["role"].(string)
	if !ok {
		return Actor{}, errors.New("role not found in session")
	}
	return Actor{ID: userID, Username: username, Role: role}, nil
}

// ActorFromRequest resolves the actor from the request cookie. A missing or
// invalid cookie yields a zero actor, not an error; callers that require a
// session use the middleware instead.
func (s *Sessions) ActorFromRequest(r *http.Request) Actor {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return Actor{}
	}
	a, err := s.Parse(c.Value)
	if err != nil {
		return Actor{}
	}
	return a
}

// SetCookie writes the session cookie on login.
func SetCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(ttl.Seconds()),
	})
}

// ClearCookie expires the session cookie on logout.
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
