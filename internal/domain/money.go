package domain

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional decimal digits carried by Money.
const MoneyScale = 4

const moneyUnit = 10_000

// Money is a fixed-point amount stored as ten-thousandths of a unit.
// Money(12345) is 1.2345.
type Money int64

const (
	MaxMoney Money = math.MaxInt64
	MinMoney Money = math.MinInt64
)

// plainDecimal is an unsigned decimal without exponent notation.
var plainDecimal = regexp.MustCompile(`^\d+(\.\d+)?$`)

var maxMoneyDecimal = decimal.New(math.MaxInt64, -MoneyScale)

// ParseMoney parses a non-negative decimal string with at most four
// fractional digits.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: amount is empty", ErrInvalidAmount)
	}

	if !plainDecimal.MatchString(s) {
		if strings.HasPrefix(s, "-") {
			return 0, fmt.Errorf("%w: %q is negative", ErrInvalidAmount, s)
		}
		return 0, fmt.Errorf("%w: %q is not a plain decimal number", ErrInvalidAmount, s)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a decimal number", ErrInvalidAmount, s)
	}

	if d.IsNegative() {
		return 0, fmt.Errorf("%w: %q is negative", ErrInvalidAmount, s)
	}

	if d.Exponent() < -MoneyScale {
		return 0, fmt.Errorf("%w: %q has more than %d fractional digits", ErrInvalidAmount, s, MoneyScale)
	}

	if d.GreaterThan(maxMoneyDecimal) {
		return 0, fmt.Errorf("%w: %q exceeds maximum %s", ErrInvalidAmount, s, MaxMoney)
	}

	return Money(d.Shift(MoneyScale).IntPart()), nil
}

// Add returns m + o, or ErrOverflow if the result is out of range.
func (m Money) Add(o Money) (Money, error) {
	if (o > 0 && m > MaxMoney-o) || (o < 0 && m < MinMoney-o) {
		return 0, fmt.Errorf("%w: %s + %s", ErrOverflow, m, o)
	}
	return m + o, nil
}

// Sub returns m - o, or ErrOverflow if the result is out of range.
func (m Money) Sub(o Money) (Money, error) {
	if (o < 0 && m > MaxMoney+o) || (o > 0 && m < MinMoney+o) {
		return 0, fmt.Errorf("%w: %s - %s", ErrOverflow, m, o)
	}
	return m - o, nil
}

// IsNegative reports whether m is below zero.
func (m Money) IsNegative() bool {
	return m < 0
}

// Decimal returns the exact decimal value of m.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -MoneyScale)
}

// String renders m with exactly four fractional digits.
func (m Money) String() string {
	sign := ""
	u := uint64(m)
	if m < 0 {
		sign = "-"
		u = uint64(-(m + 1)) + 1
	}
	return fmt.Sprintf("%s%d.%04d", sign, u/moneyUnit, u%moneyUnit)
}
