// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

package api

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// flexString accepts both JSON strings and numbers. The booking forms
// historically sent the guest count either way.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = ""
		return nil
	}
	if len(s) > 0 && s[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*f = flexString(v)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(strconv.FormatFloat(n, 'f', -1, 64))
	return nil
}

func (f flexString) String() string { return string(f) }

// pinRequest is the admin login / clients unlock payload.
type pinRequest struct {
	Pin string `json:"pin"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// creditRequest adds points by milk ID at the counter.
type creditRequest struct {
	MilkID    string  `json:"milkId" validate:"required,len=6,numeric"`
	AmountPLN float64 `json:"amountPln"`
	Cashier   string  `json:"cashier" validate:"omitempty,max=80"`
}

type redeemRequest struct {
	Email    string `json:"email"`
	MilkID   string `json:"milkId"`
	RewardID string `json:"rewardId"`
}

type codeCheckRequest struct {
	Code string `json:"code"`
}

type codeUseRequest struct {
	Code   string `json:"code"`
	UsedBy string `json:"usedBy"`
	// Note is the field name the admin panel sends; it lands in the
	// same used-by slot.
	Note string `json:"note"`
}

type reservationCreateRequest struct {
	Name   string     `json:"name"`
	Phone  string     `json:"phone"`
	Date   string     `json:"date"`
	Time   string     `json:"time"`
	Guests flexString `json:"guests"`
	Room   string     `json:"room"`
	Notes  string     `json:"notes"`
	Email  string     `json:"email"`
	MilkID string     `json:"milkId"`
	Source string     `json:"source"`
}

// reservationUpdateRequest is a partial edit; absent fields keep their
// stored values.
type reservationUpdateRequest struct {
	Name   *string     `json:"name"`
	Phone  *string     `json:"phone"`
	Date   *string     `json:"date"`
	Time   *string     `json:"time"`
	Guests *flexString `json:"guests"`
	Room   *string     `json:"room"`
	Notes  *string     `json:"notes"`
}

// happyRequest updates the announcement bar. The app sends "happy",
// older clients send "text"; "happy" wins when both are present.
type happyRequest struct {
	Happy *string `json:"happy"`
	Text  *string `json:"text"`
}

func (r happyRequest) Value() string {
	if r.Happy != nil {
		return *r.Happy
	}
	if r.Text != nil {
		return *r.Text
	}
	return ""
}
