package actor_test

import (
	"context"
	"testing"

	"logistics/internal/pkg/actor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextRoundTrip(t *testing.T) {
	ctx := actor.WithActor(context.Background(), actor.Actor{Subject: "u-1", Roles: []actor.Role{actor.RoleSeller}})

	got, ok := actor.FromContext(ctx)

	require.True(t, ok)
	assert.Equal(t, "u-1", got.Subject)
	assert.Equal(t, "u-1", actor.SubjectOf(ctx))
	assert.Equal(t, "anonymous", actor.SubjectOf(context.Background()))
}

func TestHasAnyRole(t *testing.T) {
	a := actor.Actor{Roles: []actor.Role{actor.RoleCarrier}}

	assert.True(t, a.HasAnyRole(actor.RoleAdmin, actor.RoleCarrier))
	assert.False(t, a.HasAnyRole(actor.RoleAdmin, actor.RoleSeller))
	assert.False(t, a.HasAnyRole())
	assert.True(t, actor.System().HasAnyRole(actor.RoleAdmin))
}

func TestParseRole(t *testing.T) {
	r, err := actor.ParseRole(" Admin ")
	require.NoError(t, err)
	assert.Equal(t, actor.RoleAdmin, r)

	_, err = actor.ParseRole("root")
	require.Error(t, err)
}
