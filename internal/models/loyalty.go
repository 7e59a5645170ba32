// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

package models

import "time"

// HistoryEntry is one line in a customer's points history. Entries are
// immutable once written and ordered newest-first.
//
// Date is a pre-formatted local timestamp string ("2.01.2006, 15:04:05"),
// matching what the clients render directly. Meta carries free-form
// details such as amount, cashier or reward code.
type HistoryEntry struct {
	Text string         `json:"text"`
	Date string         `json:"date"`
	Meta map[string]any `json:"meta,omitempty"`
}

// Points is a customer's loyalty balance and history, keyed by email.
type Points struct {
	Email     string         `json:"email"`
	Points    int            `json:"points"`
	History   []HistoryEntry `json:"history"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// Reward code statuses.
const (
	CodeStatusIssued = "issued"
	CodeStatusUsed   = "used"
)

// RewardCode is a single-use redemption code issued when a customer
// exchanges points for a reward. The code itself is the key.
type RewardCode struct {
	Code   string `json:"code"`
	Email  string `json:"email"`
	MilkID string `json:"milkId"`

	RewardID string `json:"rewardId"`
	Title    string `json:"title"`
	Cost     int    `json:"cost"`

	Status   string     `json:"status"`
	IssuedAt time.Time  `json:"issuedAt"`
	UsedAt   *time.Time `json:"usedAt"`
	UsedBy   string     `json:"usedBy"`
}

// Reward record statuses.
const (
	RewardStatusIssued   = "issued"
	RewardStatusRedeemed = "redeemed"
)

// RewardRecord is the audit trail of issued rewards, kept separately from
// the codes so redemptions remain visible after a code is burned.
type RewardRecord struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	RewardID  string    `json:"rewardId"`
	Title     string    `json:"title"`
	Cost      int       `json:"cost"`
	Code      string    `json:"code"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
