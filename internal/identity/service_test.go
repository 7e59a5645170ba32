// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

package identity

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/milkbar/internal/config"
	"github.com/tomtom215/milkbar/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	s, err := store.Open(config.DatabaseConfig{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})

	return NewService(s, bcrypt.MinCost)
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "anna@example.com", NormalizeEmail("  Anna@Example.COM "))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestRegister(t *testing.T) {
	svc := newTestService(t)

	user, err := svc.Register(context.Background(), " Anna@Example.com ", "sekret1")
	require.NoError(t, err)

	assert.Equal(t, "anna@example.com", user.Email)
	assert.Regexp(t, regexp.MustCompile(`^[1-9]\d{5}$`), user.MilkID)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "sekret1")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = svc.Register(ctx, "no-at-sign", "sekret1")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = svc.Register(ctx, "anna@example.com", "short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestRegisterEmailTaken(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "anna@example.com", "sekret1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "ANNA@example.com", "inny-sekret")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "anna@example.com", "sekret1")
	require.NoError(t, err)

	user, points, err := svc.Login(ctx, "Anna@example.com ", "sekret1")
	require.NoError(t, err)

	assert.Equal(t, registered.MilkID, user.MilkID)
	assert.Equal(t, 0, points.Points)
	assert.Empty(t, points.History)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "anna@example.com", "sekret1")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "anna@example.com", "zle-haslo")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestService(t)

	// Same error as a wrong password so the endpoint does not leak
	// which emails have accounts.
	_, _, err := svc.Login(context.Background(), "ghost@example.com", "cokolwiek")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLookupMilkID(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "anna@example.com", "sekret1")
	require.NoError(t, err)

	mapping, err := svc.LookupMilkID(ctx, user.MilkID)
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", mapping.Email)

	_, err = svc.LookupMilkID(ctx, "000000")
	assert.ErrorIs(t, err, ErrMilkIDNotFound)

	_, err = svc.LookupMilkID(ctx, "12345")
	assert.ErrorIs(t, err, ErrInvalidMilkID)
}

func TestMilkIDsAreUnique(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	seen := map[string]bool{}
	emails := []string{"a@x.pl", "b@x.pl", "c@x.pl", "d@x.pl", "e@x.pl"}
	for _, email := range emails {
		user, err := svc.Register(ctx, email, "sekret1")
		require.NoError(t, err)
		assert.False(t, seen[user.MilkID], "duplicate milk ID %s", user.MilkID)
		seen[user.MilkID] = true
	}
}
