package model

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Money is a signed amount in the ledger's single currency, held as whole
// cents to keep arithmetic exact. Display formatting belongs to callers.
type Money struct {
	Cents int64 `json:"cents"`
}

// parseCents parses an unsigned decimal string to cents. Both dot and comma
// work as the decimal separator and the third decimal place rounds half-up.
// Zero is a valid result; the sign policy belongs to the callers.
func parseCents(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	s = strings.ReplaceAll(s, ",", ".")

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("malformed amount %q", s)
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, fmt.Errorf("malformed amount %q", s)
		}
	}

	units, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed amount %q: %w", s, err)
	}
	const maxUnits = (1<<63 - 1) / 100
	if units > maxUnits {
		return 0, fmt.Errorf("amount %q out of range", s)
	}

	var frac int64
	if len(fracPart) > 0 {
		frac = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			frac += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				frac++
			}
		}
	}

	return units*100 + frac, nil
}

// ParseAmount converts user-entered transaction text to Money. Only strictly
// positive amounts parse: direction is always encoded by the transaction
// type, never by a sign on the amount.
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Money{}, fmt.Errorf("signed amount %q: direction is set by the transaction type", s)
	}

	cents, err := parseCents(s)
	if err != nil {
		return Money{}, err
	}
	if cents <= 0 {
		return Money{}, fmt.Errorf("amount must be positive, got %q", s)
	}
	return Money{Cents: cents}, nil
}

// ParseSignedAmount parses an account balance: same normalization as
// ParseAmount but zero and a leading minus are allowed, since debt accounts
// carry negative balances.
func ParseSignedAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	if strings.HasPrefix(s, "+") {
		return Money{}, fmt.Errorf("malformed amount %q", s)
	}

	cents, err := parseCents(s)
	if err != nil {
		return Money{}, err
	}
	if negative {
		cents = -cents
	}
	return Money{Cents: cents}, nil
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{Cents: m.Cents + other.Cents}
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return Money{Cents: m.Cents - other.Cents}
}

// Neg returns -m.
func (m Money) Neg() Money {
	return Money{Cents: -m.Cents}
}

// Abs returns the magnitude of m.
func (m Money) Abs() Money {
	if m.Cents < 0 {
		return Money{Cents: -m.Cents}
	}
	return m
}

// IsPositive reports whether m is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.Cents > 0
}

// IsZero reports whether m is exactly zero.
func (m Money) IsZero() bool {
	return m.Cents == 0
}

// Units returns the amount as a float for display only. Calculations must
// stay on cents.
func (m Money) Units() float64 {
	return float64(m.Cents) / 100.0
}

// String renders the amount with two decimals and no currency symbol.
func (m Money) String() string {
	sign := ""
	c := m.Cents
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}
