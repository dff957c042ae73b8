package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedRouter(t *testing.T, sessions *Sessions, role string) (*mux.Router, *Actor) {
	t.Helper()
	var seen Actor
	r := mux.NewRouter()
	r.Use(sessions.RequireRole(role))
	r.HandleFunc("/cars", func(w http.ResponseWriter, req *http.Request) {
		seen = ActorFrom(req.Context())
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")
	return r, &seen
}

func requestWithSession(t *testing.T, sessions *Sessions, actor Actor) *http.Request {
	t.Helper()
	token, err := sessions.Issue(actor)
	require.NoError(t, err)
	req := httptest.NewRequest("GET", "/cars", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	return req
}

func TestRequireRole(t *testing.T) {
	sessions := NewSessions("test-secret", time.Hour)

	t.Run("no cookie is unauthorized", func(t *testing.T) {
		router, _ := protectedRouter(t, sessions, RoleManager)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/cars", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token is unauthorized", func(t *testing.T) {
		router, _ := protectedRouter(t, sessions, RoleManager)
		req := httptest.NewRequest("GET", "/cars", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "not-a-token"})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with another secret is unauthorized", func(t *testing.T) {
		other := NewSessions("other-secret", time.Hour)
		router, _ := protectedRouter(t, sessions, RoleManager)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, requestWithSession(t, other, Actor{ID: "u1", Username: "fatima", Role: RoleManager}))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("manager passes the manager gate and reaches the handler", func(t *testing.T) {
		router, seen := protectedRouter(t, sessions, RoleManager)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, requestWithSession(t, sessions, Actor{ID: "u1", Username: "fatima", Role: RoleManager}))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "fatima", seen.Username)
	})

	t.Run("admin passes the manager gate", func(t *testing.T) {
		router, _ := protectedRouter(t, sessions, RoleManager)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, requestWithSession(t, sessions, Actor{ID: "a1", Username: "root", Role: RoleAdmin}))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("manager is forbidden at the admin gate", func(t *testing.T) {
		router, _ := protectedRouter(t, sessions, RoleAdmin)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, requestWithSession(t, sessions, Actor{ID: "u1", Username: "fatima", Role: RoleManager}))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("expired session is unauthorized", func(t *testing.T) {
		expired := &Sessions{secret: []byte("test-secret"), ttl: -time.Hour}
		router, _ := protectedRouter(t, sessions, RoleManager)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, requestWithSession(t, expired, Actor{ID: "u1", Username: "fatima", Role: RoleManager}))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestParseRejectsForeignSigningMethod(t *testing.T) {
	sessions := NewSessions("test-secret", time.Hour)
	claims := jwt.MapClaims{
		"user_id":  "u1",
		"username": "fatima",
		"role":     RoleAdmin,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = sessions.Parse(unsigned)
	assert.Error(t, err)
}

func TestSessionRoundTrip(t *testing.T) {
	sessions := NewSessions("test-secret", time.Hour)
	actor := Actor{ID: "u1", Username: "fatima", Role: RoleManager}

	token, err := sessions.Issue(actor)
	require.NoError(t, err)

	parsed, err := sessions.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, actor, parsed)
}

func TestRoleSatisfies(t *testing.T) {
	assert.True(t, RoleSatisfies(RoleManager, RoleManager))
	assert.True(t, RoleSatisfies(RoleAdmin, RoleManager))
	assert.True(t, RoleSatisfies(RoleAdmin, RoleAdmin))
	assert.False(t, RoleSatisfies(RoleManager, RoleAdmin))
	assert.False(t, RoleSatisfies("", RoleManager))
}
