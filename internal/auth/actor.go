package auth

import "context"

// Roles recognized by the capability gate.
const (
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

// Actor is the authenticated identity attributed to an operation. Core
// services receive it explicitly; only the HTTP layer touches the cookie.
type Actor struct {
	ID       string
	Username string
	Role     string
}

func (a Actor) IsZero() bool {
	return a.ID == "" && a.Username == ""
}

type contextKey string

const actorContextKey contextKey = "actor"

// WithActor returns a context carrying the actor.
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorContextKey, a)
}

// ActorFrom extracts the actor set by the session middleware. Outside a
// gated route it returns the zero actor.
func ActorFrom(ctx context.Context) Actor {
	a, _ := ctx.Value(actorContextKey).(Actor)
	return a
}

// RoleSatisfies reports whether an actor role satisfies a required role.
// Admin implicitly satisfies any manager-gated endpoint.
func RoleSatisfies(actorRole, required string) bool {
	if required == "" {
		return true
	}
	if actorRole == required {
		return true
	}
	return required == RoleManager && actorRole == RoleAdmin
}
