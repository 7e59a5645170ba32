// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

// Package identity manages customer accounts: registration, password
// login and Milk ID resolution.
//
// Identity is password-based only. Every account carries exactly one
// 6-digit Milk ID allocated at registration (or attached on first login
// for accounts predating the loyalty program).
package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/milkbar/internal/logging"
	"github.com/tomtom215/milkbar/internal/models"
	"github.com/tomtom215/milkbar/internal/store"
)

// Errors returned by identity operations.
var (
	ErrInvalidEmail       = errors.New("invalid email")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrEmailTaken         = store.ErrEmailTaken
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidMilkID      = errors.New("malformed milk ID")
	ErrMilkIDNotFound     = errors.New("milk ID not found")
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 6

// Service implements account operations on top of the store.
type Service struct {
	store      *store.Store
	bcryptCost int
}

// NewService creates an identity service. bcryptCost falls back to the
// bcrypt default when zero.
func NewService(s *store.Store, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{store: s, bcryptCost: bcryptCost}
}

// NormalizeEmail trims and lowercases an email address. Every entry
// point normalizes before touching the store, so lookups never miss on
// case or stray whitespace.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account with a fresh Milk ID and an empty points
// document. The returned user is the client-safe view.
func (s *Service) Register(ctx context.Context, email, password string) (*models.User, error) {
	email = NormalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}
	if len(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	milkID, err := s.generateUniqueMilkID()
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	stored := &models.StoredUser{
		Email:        email,
		PasswordHash: string(hash),
		MilkID:       milkID,
		CreatedAt:    now,
		LastLoginAt:  now,
	}
	if err := s.store.CreateUser(stored); err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().
		Str("milk_id", milkID).
		Msg("Account registered")

	user := stored.Public()
	return &user, nil
}

// Login verifies the password and returns the account with its current
// points snapshot. Accounts without a Milk ID get one attached here.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, *models.Points, error) {
	email = NormalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, nil, ErrInvalidEmail
	}

	stored, err := s.store.GetUser(email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}

	milkID := stored.MilkID
	if milkID == "" {
		if milkID, err = s.generateUniqueMilkID(); err != nil {
			return nil, nil, err
		}
	}

	stored, err = s.store.TouchLastLogin(email, milkID, time.Now())
	if err != nil {
		return nil, nil, err
	}

	points, err := s.store.EnsurePoints(email)
	if err != nil {
		return nil, nil, err
	}

	logging.Ctx(ctx).Info().
		Str("milk_id", stored.MilkID).
		Msg("Login successful")

	user := stored.Public()
	return &user, points, nil
}

// LookupMilkID resolves a Milk ID to its mapping. Used by staff to find
// the account behind a card number.
func (s *Service) LookupMilkID(_ context.Context, milkID string) (*models.MilkIDMapping, error) {
	milkID = strings.TrimSpace(milkID)
	if len(milkID) != MilkIDLength {
		return nil, ErrInvalidMilkID
	}

	mapping, err := s.store.GetMilkIDMapping(milkID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrMilkIDNotFound
	}
	if err != nil {
		return nil, err
	}

	return mapping, nil
}
