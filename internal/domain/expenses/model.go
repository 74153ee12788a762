package expenses

import (
	"strings"
	"time"
)

const (
	DateLayout         = "2006-01-02"
	maxCategoryNameLen = 100
)

type Category struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"size:100;not null"`
}

type Expense struct {
	ID           int64      `gorm:"primaryKey;autoIncrement"`
	Name         string     `gorm:"type:text"`
	Amount       Money      `gorm:"column:amount_cents;not null"`
	PurchaseDate *time.Time `gorm:"type:date"`
	CategoryID   *int64     `gorm:"index"`
}

// ExpenseWithCategory is an expense joined with its category name. The name is
// empty when the category no longer resolves.
type ExpenseWithCategory struct {
	Expense
	CategoryName string
}

// ExpenseInput carries raw, untyped form values for create and update.
type ExpenseInput struct {
	Name         string
	Amount       string
	PurchaseDate string
	CategoryID   string
}

// FormattedDate renders the purchase date as YYYY-MM-DD, or "" when unset.
func (e Expense) FormattedDate() string {
	return FormatDate(e.PurchaseDate)
}

func FormatDate(date *time.Time) string {
	if date == nil {
		return ""
	}
	return date.Format(DateLayout)
}

// ParseDate parses a strict YYYY-MM-DD value into UTC midnight.
func ParseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return parsed, nil
}

// ParseOptionalDate returns nil for an empty value.
func ParseOptionalDate(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	parsed, err := ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
