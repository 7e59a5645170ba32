// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

package models

import "time"

// User is a customer account. The email is normalized (trimmed,
// lowercased) before it reaches this struct and is the primary key.
//
// PasswordHash is bcrypt and must never leave the server, hence json:"-".
type User struct {
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	MilkID       string    `json:"milkId"`
	CreatedAt    time.Time `json:"createdAt"`
	LastLoginAt  time.Time `json:"lastLoginAt"`
}

// StoredUser is the persisted form of User, including the password hash.
// It exists so the hash round-trips through the store without ever being
// part of an HTTP response.
type StoredUser struct {
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	MilkID       string    `json:"milkId"`
	CreatedAt    time.Time `json:"createdAt"`
	LastLoginAt  time.Time `json:"lastLoginAt"`
}

// Public returns the client-safe view of the stored user.
func (u *StoredUser) Public() User {
	return User{
		Email:       u.Email,
		MilkID:      u.MilkID,
		CreatedAt:   u.CreatedAt,
		LastLoginAt: u.LastLoginAt,
	}
}

// MilkIDMapping resolves a 6-digit Milk ID to the owning account.
type MilkIDMapping struct {
	MilkID    string    `json:"milkId"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}
