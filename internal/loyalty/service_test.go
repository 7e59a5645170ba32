// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

package loyalty

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/milkbar/internal/config"
	"github.com/tomtom215/milkbar/internal/identity"
	"github.com/tomtom215/milkbar/internal/models"
	"github.com/tomtom215/milkbar/internal/store"
)

func newTestService(t *testing.T) (*Service, *identity.Service) {
	t.Helper()

	s, err := store.Open(config.DatabaseConfig{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})

	return NewService(s), identity.NewService(s, bcrypt.MinCost)
}

func registerUser(t *testing.T, ids *identity.Service, email string) *models.User {
	t.Helper()

	user, err := ids.Register(context.Background(), email, "sekret1")
	require.NoError(t, err)
	return user
}

func TestPointsForAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		amount float64
		want   int
	}{
		{0, 0},
		{-50, 0},
		{9.99, 0},
		{10, 1},
		{19.99, 1},
		{45, 4},
		{120, 12},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PointsForAmount(tt.amount), "amount %v", tt.amount)
	}
}

func TestCatalog(t *testing.T) {
	t.Parallel()

	rewards := Catalog()
	require.Len(t, rewards, 3)

	shake, ok := FindReward("milkshake_30")
	require.True(t, ok)
	assert.Equal(t, 25, shake.Cost)
	assert.Equal(t, "Milkshake do 30 PLN", shake.Title)

	_, ok = FindReward("free_lunch")
	assert.False(t, ok)
}

func TestRandomCode(t *testing.T) {
	t.Parallel()

	re := regexp.MustCompile(`^MSB-[A-HJ-NP-Z2-9]{6}$`)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := randomCode()
		require.NoError(t, err)
		assert.Regexp(t, re, code)
		seen[code] = true
	}
	// 50 draws from a 32^6 space colliding would point at a broken generator.
	assert.Greater(t, len(seen), 45)
}

func TestNormalizeCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "MSB-ABC234", NormalizeCode("  msb-abc234 "))
}

func TestCredit(t *testing.T) {
	svc, ids := newTestService(t)
	ctx := context.Background()
	user := registerUser(t, ids, "anna@example.com")

	res, err := svc.Credit(ctx, user.MilkID, 45, "Kasia")
	require.NoError(t, err)

	assert.Equal(t, "anna@example.com", res.Email)
	assert.Equal(t, 4, res.AddedPoints)
	assert.Equal(t, 4, res.Points.Points)
	require.Len(t, res.Points.History, 1)
	assert.Contains(t, res.Points.History[0].Text, "Naliczenie: +4 pkt")
	assert.Contains(t, res.Points.History[0].Text, "Milk ID "+user.MilkID)
	assert.Contains(t, res.Points.History[0].Text, "Kasia")
}

func TestCreditErrors(t *testing.T) {
	svc, ids := newTestService(t)
	ctx := context.Background()
	user := registerUser(t, ids, "anna@example.com")

	_, err := svc.Credit(ctx, "999999", 45, "")
	assert.ErrorIs(t, err, ErrMilkIDNotFound)

	_, err = svc.Credit(ctx, user.MilkID, 9.99, "")
	assert.ErrorIs(t, err, ErrAmountTooSmall)

	_, err = svc.Credit(ctx, user.MilkID, -10, "")
	assert.ErrorIs(t, err, ErrAmountTooSmall)
}

func TestRedeemLifecycle(t *testing.T) {
	svc, ids := newTestService(t)
	ctx := context.Background()
	user := registerUser(t, ids, "anna@example.com")

	// 45 PLN earns 4 points, not enough for any reward.
	_, err := svc.Credit(ctx, user.MilkID, 45, "")
	require.NoError(t, err)

	_, err = svc.Redeem(ctx, user.Email, user.MilkID, "milkshake_30")
	assert.ErrorIs(t, err, ErrInsufficientPoints)

	// Balance untouched by the failed redemption.
	snap, err := svc.Snapshot(ctx, user.Email)
	require.NoError(t, err)
	assert.Equal(t, 4, snap.Points)

	_, err = svc.Credit(ctx, user.MilkID, 300, "")
	require.NoError(t, err)

	res, err := svc.Redeem(ctx, user.Email, user.MilkID, "milkshake_30")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(res.Code.Code, CodePrefix))
	assert.Equal(t, models.CodeStatusIssued, res.Code.Status)
	assert.Equal(t, 25, res.Reward.Cost)
	assert.Equal(t, 9, res.Points.Points)
	assert.Contains(t, res.Points.History[0].Text, "Wymieniono: -25 pkt")

	doc, err := svc.CheckCode(ctx, strings.ToLower(res.Code.Code))
	require.NoError(t, err)
	assert.Equal(t, models.CodeStatusIssued, doc.Status)
	assert.Equal(t, user.Email, doc.Email)

	used, err := svc.UseCode(ctx, res.Code.Code, "Kasa 1")
	require.NoError(t, err)
	assert.Equal(t, models.CodeStatusUsed, used.Status)
	assert.Equal(t, "Kasa 1", used.UsedBy)
	require.NotNil(t, used.UsedAt)

	// Second use conflicts and reports who burned it.
	again, err := svc.UseCode(ctx, res.Code.Code, "Kasa 2")
	assert.ErrorIs(t, err, ErrCodeUsed)
	require.NotNil(t, again)
	assert.Equal(t, "Kasa 1", again.UsedBy)
}

func TestRedeemUnknownReward(t *testing.T) {
	svc, ids := newTestService(t)
	user := registerUser(t, ids, "anna@example.com")

	_, err := svc.Redeem(context.Background(), user.Email, user.MilkID, "free_lunch")
	assert.ErrorIs(t, err, ErrUnknownReward)
}

func TestCodeNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CheckCode(ctx, "MSB-XXXXXX")
	assert.ErrorIs(t, err, ErrCodeNotFound)

	_, err = svc.UseCode(ctx, "MSB-XXXXXX", "")
	assert.ErrorIs(t, err, ErrCodeNotFound)
}
