// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

package loyalty

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/milkbar/internal/identity"
	"github.com/tomtom215/milkbar/internal/logging"
	"github.com/tomtom215/milkbar/internal/models"
	"github.com/tomtom215/milkbar/internal/store"
)

// Service errors surfaced to the API layer.
var (
	ErrMilkIDNotFound     = errors.New("loyalty: milk ID not found")
	ErrAmountTooSmall     = errors.New("loyalty: amount too small to earn points")
	ErrUnknownReward      = errors.New("loyalty: unknown reward")
	ErrInsufficientPoints = store.ErrInsufficientPoints
	ErrCodeNotFound       = errors.New("loyalty: code not found")
	ErrCodeUsed           = store.ErrCodeUsed
)

// historyTimeLayout renders timestamps the way the clients display them.
const historyTimeLayout = "2.01.2006, 15:04:05"

// HistoryTimestamp formats t for a history entry.
func HistoryTimestamp(t time.Time) string {
	return t.Format(historyTimeLayout)
}

// Service implements the points ledger and reward redemption flows on
// top of the store.
type Service struct {
	store  *store.Store
	logger zerolog.Logger
}

// NewService creates a loyalty service.
func NewService(s *store.Store) *Service {
	return &Service{
		store:  s,
		logger: logging.WithComponent("loyalty"),
	}
}

// Snapshot returns the points document for email, creating an empty one
// if the account has never earned points.
func (s *Service) Snapshot(ctx context.Context, email string) (*models.Points, error) {
	return s.store.EnsurePoints(identity.NormalizeEmail(email))
}

// CreditResult is the outcome of a cashier credit.
type CreditResult struct {
	Email       string
	MilkID      string
	AddedPoints int
	Points      *models.Points
}

// Credit converts a purchase amount to points and credits them to the
// account behind milkID. The history entry records the amount, the milk
// ID and the cashier who rang the purchase up.
func (s *Service) Credit(ctx context.Context, milkID string, amountPLN float64, cashier string) (*CreditResult, error) {
	mapping, err := s.store.GetMilkIDMapping(milkID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMilkIDNotFound
		}
		return nil, err
	}

	pts := PointsForAmount(amountPLN)
	if pts <= 0 {
		return nil, ErrAmountTooSmall
	}

	now := time.Now()
	text := fmt.Sprintf("Naliczenie: +%d pkt (kwota %.2f zł) • Milk ID %s", pts, amountPLN, milkID)
	if cashier = strings.TrimSpace(cashier); cashier != "" {
		text += " • " + cashier
	}
	entry := models.HistoryEntry{
		Text: text,
		Date: HistoryTimestamp(now),
		Meta: map[string]any{
			"type":      "credit",
			"milkId":    milkID,
			"amountPln": amountPLN,
			"cashier":   cashier,
		},
	}

	updated, err := s.store.CreditPoints(mapping.Email, pts, entry)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("milk_id", milkID).
		Int("points", pts).
		Float64("amount_pln", amountPLN).
		Msg("points credited")

	return &CreditResult{
		Email:       mapping.Email,
		MilkID:      milkID,
		AddedPoints: pts,
		Points:      updated,
	}, nil
}

// RedeemResult is the outcome of a successful redemption.
type RedeemResult struct {
	Code   *models.RewardCode
	Reward Reward
	Points *models.Points
}

// Redeem exchanges points for the named reward. The debit, the code
// document and the reward record are written in one transaction, so a
// failed redemption never leaves the balance reduced.
func (s *Service) Redeem(ctx context.Context, email, milkID, rewardID string) (*RedeemResult, error) {
	email = identity.NormalizeEmail(email)
	reward, ok := FindReward(rewardID)
	if !ok {
		return nil, ErrUnknownReward
	}

	for attempt := 0; attempt < codeAttempts; attempt++ {
		code, err := randomCode()
		if err != nil {
			return nil, err
		}

		// Cheap read before the write transaction; the insert still
		// rejects a racing duplicate with ErrCodeTaken.
		taken, err := s.store.CodeExists(code)
		if err != nil {
			return nil, err
		}
		if taken {
			continue
		}

		now := time.Now()
		codeDoc := &models.RewardCode{
			Code:     code,
			Email:    email,
			MilkID:   milkID,
			RewardID: reward.ID,
			Title:    reward.Title,
			Cost:     reward.Cost,
			Status:   models.CodeStatusIssued,
			IssuedAt: now,
		}
		record := &models.RewardRecord{
			ID:        uuid.NewString(),
			Email:     email,
			RewardID:  reward.ID,
			Title:     reward.Title,
			Cost:      reward.Cost,
			Code:      code,
			Status:    models.RewardStatusIssued,
			CreatedAt: now,
		}
		entry := models.HistoryEntry{
			Text: fmt.Sprintf("Wymieniono: -%d pkt (%s) • Kod: %s", reward.Cost, reward.Title, code),
			Date: HistoryTimestamp(now),
			Meta: map[string]any{
				"type":     "redeem",
				"rewardId": reward.ID,
				"cost":     reward.Cost,
				"code":     code,
			},
		}

		updated, err := s.store.IssueRewardCode(codeDoc, record, entry)
		if err != nil {
			if errors.Is(err, store.ErrCodeTaken) {
				continue
			}
			return nil, err
		}

		s.logger.Info().
			Str("reward_id", reward.ID).
			Int("cost", reward.Cost).
			Msg("reward redeemed")

		return &RedeemResult{Code: codeDoc, Reward: reward, Points: updated}, nil
	}

	return nil, ErrCodeExhausted
}

// CheckCode looks a redemption code up without changing its state.
func (s *Service) CheckCode(ctx context.Context, code string) (*models.RewardCode, error) {
	doc, err := s.store.GetCode(NormalizeCode(code))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCodeNotFound
		}
		return nil, err
	}
	return doc, nil
}

// UseCode marks a code as used exactly once. A second use returns the
// stored document together with ErrCodeUsed so the caller can report
// when and by whom it was burned. Reward records referencing the code
// are flipped to redeemed on a best-effort basis.
func (s *Service) UseCode(ctx context.Context, code, usedBy string) (*models.RewardCode, error) {
	code = NormalizeCode(code)
	doc, err := s.store.UseCode(code, usedBy, time.Now())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCodeNotFound
		}
		// ErrCodeUsed carries the document for the conflict response.
		return doc, err
	}

	if mErr := s.store.MarkRewardsRedeemed(code); mErr != nil {
		s.logger.Warn().Err(mErr).Str("code", code).Msg("could not mark reward records redeemed")
	}

	return doc, nil
}
