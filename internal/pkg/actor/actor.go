// Package actor carries the authenticated caller through a request context.
// The HTTP adapter authenticates and authorizes; the application layer only
// reads the actor for logging.
package actor

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// Role is a coarse permission group.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleSeller  Role = "seller"
	RoleCarrier Role = "carrier"
)

// ParseRole normalizes raw and checks it is a known role.
func ParseRole(raw string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(raw)))
	switch r {
	case RoleAdmin, RoleSeller, RoleCarrier:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

// Actor is the identity on whose behalf an operation runs.
type Actor struct {
	Subject string
	Roles   []Role
}

// System is the actor used by background jobs and startup seeding.
func System() Actor {
	return Actor{Subject: "system", Roles: []Role{RoleAdmin}}
}

// HasAnyRole reports whether the actor holds at least one of roles.
func (a Actor) HasAnyRole(roles ...Role) bool {
	for _, r := range roles {
		if slices.Contains(a.Roles, r) {
			return true
		}
	}
	return false
}

type contextKey struct{}

// WithActor returns a copy of ctx carrying a.
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, contextKey{}, a)
}

// FromContext returns the actor stored in ctx.
func FromContext(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(contextKey{}).(Actor)
	return a, ok
}

// SubjectOf returns the subject of the actor in ctx, or "anonymous".
func SubjectOf(ctx context.Context) string {
	if a, ok := FromContext(ctx); ok && a.Subject != "" {
		return a.Subject
	}
	return "anonymous"
}
