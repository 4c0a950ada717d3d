package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money is an amount in the smallest currency unit. Arithmetic is integer only.
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

func NewMoney(minor int64, currency string) Money {
	return Money{Amount: minor, Currency: strings.ToLower(currency)}
}

// ParseMoney parses a decimal string such as "50", "12.5" or "12.50" into
// minor units. More than two fractional digits is rejected.
func ParseMoney(s, currency string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, fmt.Errorf("money: empty amount")
	}
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	whole, frac, _ := strings.Cut(s, ".")
	if len(frac) > 2 {
		return Money{}, fmt.Errorf("money: %q has more than 2 decimal places", s)
	}
	if whole == "" {
		whole = "0"
	}
	if strings.ContainsAny(whole+frac, "+-") {
		return Money{}, fmt.Errorf("money: parse %q: misplaced sign", s)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	major, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return Money{}, fmt.Errorf("money: parse %q: %w", s, err)
	}
	minor, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return Money{}, fmt.Errorf("money: parse %q: %w", s, err)
	}

	if major > (math.MaxInt64-minor)/100 {
		return Money{}, fmt.Errorf("money: %q is out of range", s)
	}

	amount := major*100 + minor
	if neg {
		amount = -amount
	}
	return NewMoney(amount, currency), nil
}

func (m Money) IsPositive() bool { return m.Amount > 0 }

// FormatMajor renders the amount with two decimals, e.g. "49.00".
func (m Money) FormatMajor() string {
	abs := m.Amount
	sign := ""
	if abs < 0 {
		abs = -abs
		sign = "-"
	}
	return fmt.Sprintf("%s%d.%02d", sign, abs/100, abs%100)
}

func (m Money) String() string {
	return m.FormatMajor() + " " + strings.ToUpper(m.Currency)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
		Display  string `json:"display"`
	}{
		Amount:   m.Amount,
		Currency: m.Currency,
		Display:  m.FormatMajor(),
	})
}
