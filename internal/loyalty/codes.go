// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

package loyalty

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

const (
	// codeAlphabet skips visually ambiguous characters (0/O, 1/I).
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	// CodePrefix is prepended to every generated redemption code.
	CodePrefix = "MSB-"

	codeBodyLength = 6
	codeAttempts   = 40
)

// ErrCodeExhausted is returned when code generation failed to find an
// unused code within the attempt budget.
var ErrCodeExhausted = errors.New("loyalty: could not generate a unique redemption code")

// randomCode returns a fresh redemption code like "MSB-7XK2QP".
func randomCode() (string, error) {
	var b strings.Builder
	b.Grow(len(CodePrefix) + codeBodyLength)
	b.WriteString(CodePrefix)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := 0; i < codeBodyLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("loyalty: random code: %w", err)
		}
		b.WriteByte(codeAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// NormalizeCode canonicalizes user-supplied code input for lookups.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
