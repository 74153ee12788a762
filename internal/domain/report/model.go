package report

import (
	"time"

	expensesdomain "expenses-app-go/internal/domain/expenses"
)

// Filter narrows the selected expenses. Nil fields impose no constraint.
type Filter struct {
	CategoryID *int64
	DateStart  *time.Time
	DateEnd    *time.Time
}

// SelectedExpense is an expense picked by a Filter, joined with its category.
// CategoryName is nil when the category id does not resolve.
type SelectedExpense struct {
	ID           int64
	Name         string
	Amount       expensesdomain.Money
	PurchaseDate *time.Time
	CategoryID   *int64
	CategoryName *string
}

// Totals are the aggregates over the selected set.
type Totals struct {
	Count int64
	Sum   expensesdomain.Money
	Min   expensesdomain.Money
	Max   expensesdomain.Money
}

type CategoryTotal struct {
	CategoryName string               `json:"category_name"`
	Total        expensesdomain.Money `json:"total"`
}

type Summary struct {
	Count          int64                           `json:"total_exp"`
	Sum            expensesdomain.Money            `json:"total_amt"`
	Average        expensesdomain.Money            `json:"avg_amt"`
	Min            expensesdomain.Money            `json:"min_amt"`
	Max            expensesdomain.Money            `json:"max_amt"`
	ByCategory     map[string]expensesdomain.Money `json:"expenses_by_category"`
	CategoryTotals []CategoryTotal                 `json:"-"`
}

// Row is one selected expense. Every row carries the same Summary.
type Row struct {
	ExpenseID    int64                `json:"expense_id"`
	Name         string               `json:"name"`
	Amount       expensesdomain.Money `json:"amount"`
	PurchaseDate string               `json:"purchase_date"`
	CategoryName string               `json:"category_name"`
	Summary
}

type Report struct {
	Summary Summary `json:"summary"`
	Rows    []Row   `json:"rows"`
}
