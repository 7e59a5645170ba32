// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/milkbar/internal/config"
	"github.com/tomtom215/milkbar/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(config.DatabaseConfig{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})

	return s
}

func testUser(email, milkID string) *models.StoredUser {
	now := time.Now()
	return &models.StoredUser{
		Email:        email,
		PasswordHash: "$2a$10$fakehashfakehashfakehash",
		MilkID:       milkID,
		CreatedAt:    now,
		LastLoginAt:  now,
	}
}

func TestPing(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.Ping())
}

func TestCreateAndGetUser(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.CreateUser(testUser("anna@example.com", "123456")))

	user, err := s.GetUser("anna@example.com")
	require.NoError(t, err)
	assert.Equal(t, "123456", user.MilkID)
	assert.NotEmpty(t, user.PasswordHash)

	// Account creation also allocates the mapping and an empty points doc.
	mapping, err := s.GetMilkIDMapping("123456")
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", mapping.Email)

	points, err := s.EnsurePoints("anna@example.com")
	require.NoError(t, err)
	assert.Equal(t, 0, points.Points)
	assert.Empty(t, points.History)
}

func TestCreateUserEmailTaken(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.CreateUser(testUser("anna@example.com", "123456")))

	err := s.CreateUser(testUser("anna@example.com", "654321"))
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestCreateUserMilkIDTaken(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.CreateUser(testUser("anna@example.com", "123456")))

	err := s.CreateUser(testUser("borys@example.com", "123456"))
	assert.ErrorIs(t, err, ErrMilkIDTaken)
}

func TestGetUserNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetUser("ghost@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTouchLastLoginAttachesMilkID(t *testing.T) {
	s := newTestStore(t)

	// Simulate a legacy account without a Milk ID.
	legacy := testUser("old@example.com", "")
	require.NoError(t, s.CreateUser(legacy))

	user, err := s.TouchLastLogin("old@example.com", "777888", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "777888", user.MilkID)

	mapping, err := s.GetMilkIDMapping("777888")
	require.NoError(t, err)
	assert.Equal(t, "old@example.com", mapping.Email)
}

func TestMilkIDExists(t *testing.T) {
	s := newTestStore(t)

	exists, err := s.MilkIDExists("123456")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, s.CreateUser(testUser("anna@example.com", "123456")))

	exists, err = s.MilkIDExists("123456")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCreditPointsPrependsHistory(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.CreateUser(testUser("anna@example.com", "123456")))

	_, err := s.CreditPoints("anna@example.com", 4, models.HistoryEntry{Text: "first"})
	require.NoError(t, err)

	updated, err := s.CreditPoints("anna@example.com", 6, models.HistoryEntry{Text: "second"})
	require.NoError(t, err)

	assert.Equal(t, 10, updated.Points)
	require.Len(t, updated.History, 2)
	assert.Equal(t, "second", updated.History[0].Text)
	assert.Equal(t, "first", updated.History[1].Text)
}

func TestEnsurePointsCreatesDocument(t *testing.T) {
	s := newTestStore(t)

	points, err := s.EnsurePoints("fresh@example.com")
	require.NoError(t, err)
	assert.Equal(t, 0, points.Points)

	total, holders, err := s.PointsTotals()
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Equal(t, 0, holders)
}

func testCode(code, email string, cost int) *models.RewardCode {
	return &models.RewardCode{
		Code:     code,
		Email:    email,
		MilkID:   "123456",
		RewardID: "milkshake_30",
		Title:    "Milkshake do 30 PLN",
		Cost:     cost,
		Status:   models.CodeStatusIssued,
		IssuedAt: time.Now(),
	}
}

func testRecord(id, code, email string, cost int) *models.RewardRecord {
	return &models.RewardRecord{
		ID:        id,
		Email:     email,
		RewardID:  "milkshake_30",
		Title:     "Milkshake do 30 PLN",
		Cost:      cost,
		Code:      code,
		Status:    models.RewardStatusIssued,
		CreatedAt: time.Now(),
	}
}

func TestIssueRewardCode(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.CreateUser(testUser("anna@example.com", "123456")))
	_, err := s.CreditPoints("anna@example.com", 30, models.HistoryEntry{Text: "topup"})
	require.NoError(t, err)

	updated, err := s.IssueRewardCode(
		testCode("MSB-ABC234", "anna@example.com", 25),
		testRecord("rec-1", "MSB-ABC234", "anna@example.com", 25),
		models.HistoryEntry{Text: "redeemed"},
	)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Points)
	assert.Equal(t, "redeemed", updated.History[0].Text)

	doc, err := s.GetCode("MSB-ABC234")
	require.NoError(t, err)
	assert.Equal(t, models.CodeStatusIssued, doc.Status)
	assert.Equal(t, 25, doc.Cost)
}

func TestIssueRewardCodeInsufficientPoints(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.CreateUser(testUser("anna@example.com", "123456")))
	_, err := s.CreditPoints("anna@example.com", 10, models.HistoryEntry{Text: "topup"})
	require.NoError(t, err)

	_, err = s.IssueRewardCode(
		testCode("MSB-ABC234", "anna@example.com", 25),
		testRecord("rec-1", "MSB-ABC234", "anna@example.com", 25),
		models.HistoryEntry{Text: "redeemed"},
	)
	assert.ErrorIs(t, err, ErrInsufficientPoints)

	// The failed redemption must not touch balance or history.
	points, err := s.EnsurePoints("anna@example.com")
	require.NoError(t, err)
	assert.Equal(t, 10, points.Points)
	assert.Len(t, points.History, 1)

	_, err = s.GetCode("MSB-ABC234")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIssueRewardCodeDuplicate(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.CreateUser(testUser("anna@example.com", "123456")))
	_, err := s.CreditPoints("anna@example.com", 100, models.HistoryEntry{Text: "topup"})
	require.NoError(t, err)

	_, err = s.IssueRewardCode(
		testCode("MSB-ABC234", "anna@example.com", 25),
		testRecord("rec-1", "MSB-ABC234", "anna@example.com", 25),
		models.HistoryEntry{Text: "first"},
	)
	require.NoError(t, err)

	_, err = s.IssueRewardCode(
		testCode("MSB-ABC234", "anna@example.com", 25),
		testRecord("rec-2", "MSB-ABC234", "anna@example.com", 25),
		models.HistoryEntry{Text: "second"},
	)
	assert.ErrorIs(t, err, ErrCodeTaken)
}

func TestCodeExists(t *testing.T) {
	s := newTestStore(t)

	exists, err := s.CodeExists("MSB-ABC234")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, s.CreateUser(testUser("anna@example.com", "123456")))
	_, err = s.CreditPoints("anna@example.com", 30, models.HistoryEntry{Text: "topup"})
	require.NoError(t, err)
	_, err = s.IssueRewardCode(
		testCode("MSB-ABC234", "anna@example.com", 25),
		testRecord("rec-1", "MSB-ABC234", "anna@example.com", 25),
		models.HistoryEntry{Text: "redeemed"},
	)
	require.NoError(t, err)

	exists, err = s.CodeExists("MSB-ABC234")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUseCode(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.CreateUser(testUser("anna@example.com", "123456")))
	_, err := s.CreditPoints("anna@example.com", 30, models.HistoryEntry{Text: "topup"})
	require.NoError(t, err)
	_, err = s.IssueRewardCode(
		testCode("MSB-ABC234", "anna@example.com", 25),
		testRecord("rec-1", "MSB-ABC234", "anna@example.com", 25),
		models.HistoryEntry{Text: "redeemed"},
	)
	require.NoError(t, err)

	used, err := s.UseCode("MSB-ABC234", "kasa 1", time.Now())
	require.NoError(t, err)
	assert.Equal(t, models.CodeStatusUsed, used.Status)
	assert.Equal(t, "kasa 1", used.UsedBy)
	require.NotNil(t, used.UsedAt)

	// Second use conflicts but still returns the document.
	doc, err := s.UseCode("MSB-ABC234", "kasa 2", time.Now())
	assert.ErrorIs(t, err, ErrCodeUsed)
	require.NotNil(t, doc)
	assert.Equal(t, "kasa 1", doc.UsedBy)
}

func TestUseCodeNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.UseCode("MSB-MISSING", "", time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMarkRewardsRedeemed(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.CreateUser(testUser("anna@example.com", "123456")))
	_, err := s.CreditPoints("anna@example.com", 30, models.HistoryEntry{Text: "topup"})
	require.NoError(t, err)
	_, err = s.IssueRewardCode(
		testCode("MSB-ABC234", "anna@example.com", 25),
		testRecord("rec-1", "MSB-ABC234", "anna@example.com", 25),
		models.HistoryEntry{Text: "redeemed"},
	)
	require.NoError(t, err)

	require.NoError(t, s.MarkRewardsRedeemed("MSB-ABC234"))
	// Unknown codes are a silent no-op.
	require.NoError(t, s.MarkRewardsRedeemed("MSB-NOPE99"))
}

func TestReservationsRoundTrip(t *testing.T) {
	s := newTestStore(t)

	first := &models.Reservation{
		ID:        "res-1",
		Name:      "Anna",
		Phone:     "600100200",
		Date:      "2026-09-01",
		Time:      "18:00",
		Guests:    "4",
		Room:      "main",
		Email:     "anna@example.com",
		Source:    models.SourceApp,
		CreatedAt: time.Now().Add(-time.Hour),
	}
	second := &models.Reservation{
		ID:        "res-2",
		Name:      "Borys",
		Phone:     "600300400",
		Date:      "2026-09-02",
		Time:      "19:30",
		Guests:    "2",
		Room:      "terrace",
		Source:    models.SourceIndex,
		CreatedAt: time.Now(),
	}
	require.NoError(t, s.PutReservation(first))
	require.NoError(t, s.PutReservation(second))

	list, err := s.ListReservations("")
	require.NoError(t, err)
	require.Len(t, list, 2)
	// Newest first.
	assert.Equal(t, "res-2", list[0].ID)
	assert.Equal(t, "res-1", list[1].ID)

	mine, err := s.ListReservations("anna@example.com")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "res-1", mine[0].ID)

	got, err := s.GetReservation("res-1")
	require.NoError(t, err)
	assert.Equal(t, "Anna", got.Name)

	require.NoError(t, s.DeleteReservation("res-1"))
	_, err = s.GetReservation("res-1")
	assert.ErrorIs(t, err, ErrNotFound)

	// Idempotent delete.
	require.NoError(t, s.DeleteReservation("res-1"))
}

func TestAnnouncementUpsertAndLog(t *testing.T) {
	s := newTestStore(t)

	// Empty until first set.
	ann, err := s.GetAnnouncement()
	require.NoError(t, err)
	assert.Empty(t, ann.Text)

	_, err = s.SetAnnouncement("Happy hours 15-17", time.Now())
	require.NoError(t, err)
	_, err = s.SetAnnouncement("Dziś zamknięte od 22", time.Now().Add(time.Second))
	require.NoError(t, err)

	ann, err = s.GetAnnouncement()
	require.NoError(t, err)
	assert.Equal(t, "Dziś zamknięte od 22", ann.Text)

	log, err := s.AnnouncementLog()
	require.NoError(t, err)
	require.Len(t, log, 2)
	assert.Equal(t, "Happy hours 15-17", log[0].Text)
}

func TestCounts(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.CreateUser(testUser("anna@example.com", "123456")))
	require.NoError(t, s.CreateUser(testUser("borys@example.com", "234567")))
	_, err := s.CreditPoints("anna@example.com", 12, models.HistoryEntry{Text: "topup"})
	require.NoError(t, err)

	users, err := s.CountUsers()
	require.NoError(t, err)
	assert.Equal(t, 2, users)

	ids, err := s.CountMilkIDs()
	require.NoError(t, err)
	assert.Equal(t, 2, ids)

	total, holders, err := s.PointsTotals()
	require.NoError(t, err)
	assert.Equal(t, 12, total)
	assert.Equal(t, 1, holders)

	codes, err := s.CountCodes()
	require.NoError(t, err)
	assert.Equal(t, 0, codes)

	usedCodes, err := s.CountUsedCodes()
	require.NoError(t, err)
	assert.Equal(t, 0, usedCodes)
}
