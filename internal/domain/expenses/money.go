package expenses

import (
	"database/sql/driver"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a monetary amount in cents. Arithmetic that may leave the int64
// range goes through decimal.Decimal.
type Money int64

var (
	hundred  = decimal.NewFromInt(100)
	maxCents = decimal.NewFromInt(math.MaxInt64)
	minCents = decimal.NewFromInt(-math.MaxInt64)
)

// ParseMoney converts a decimal string to cents.
//
// Both "." and "," are accepted as the decimal separator and a leading "-" is
// allowed. Digits past the second decimal are rounded half away from zero:
//
//	ParseMoney("20.5")   -> 2050
//	ParseMoney("12,345") -> 1235
//	ParseMoney("-0.004") -> 0
//
// Amounts outside the int64 cent range are rejected.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	sign := ""
	switch {
	case strings.HasPrefix(s, "-"):
		sign = "-"
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	s = strings.ReplaceAll(s, ",", ".")
	intPart, fracPart, _ := strings.Cut(s, ".")
	if strings.Contains(fracPart, ".") || (intPart == "" && fracPart == "") {
		return 0, ErrInvalidAmount
	}
	if intPart == "" {
		intPart = "0"
	}
	if !isDigits(intPart) || !isDigits(fracPart) {
		return 0, ErrInvalidAmount
	}
	if fracPart == "" {
		fracPart = "0"
	}

	amount, err := decimal.NewFromString(sign + intPart + "." + fracPart)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	return moneyFromDecimal(amount)
}

func moneyFromDecimal(amount decimal.Decimal) (Money, error) {
	cents := amount.Round(2).Mul(hundred)
	if cents.GreaterThan(maxCents) || cents.LessThan(minCents) {
		return 0, ErrInvalidAmount
	}
	return Money(cents.IntPart()), nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Cents returns the raw amount.
func (m Money) Cents() int64 {
	return int64(m)
}

// Decimal returns the amount in currency units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// String formats the amount with two decimals, e.g. "20.50" or "-0.05".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// Add returns m + other, or ErrAmountOverflow when the total leaves the int64
// cent range.
func (m Money) Add(other Money) (Money, error) {
	sum := decimal.NewFromInt(int64(m)).Add(decimal.NewFromInt(int64(other)))
	if sum.GreaterThan(maxCents) || sum.LessThan(minCents) {
		return 0, ErrAmountOverflow
	}
	return Money(sum.IntPart()), nil
}

// DivRound divides m by n rounding half away from zero. n <= 0 yields 0.
func (m Money) DivRound(n int64) Money {
	if n <= 0 {
		return 0
	}
	return Money(decimal.NewFromInt(int64(m)).DivRound(decimal.NewFromInt(n), 0).IntPart())
}

// MarshalJSON encodes the amount as a JSON number with two decimals.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m Money) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *Money) Scan(src any) error {
	switch v := src.(type) {
	case int64:
		*m = Money(v)
	case int32:
		*m = Money(v)
	case nil:
		*m = 0
	case []byte:
		parsed, err := strconv.ParseInt(string(v), 10, 64)
		if err != nil {
			return fmt.Errorf("scan money: %w", err)
		}
		*m = Money(parsed)
	case string:
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("scan money: %w", err)
		}
		*m = Money(parsed)
	default:
		return fmt.Errorf("scan money: unsupported type %T", src)
	}
	return nil
}
