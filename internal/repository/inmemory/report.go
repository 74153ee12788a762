package inmemory

import (
	"context"
	"sort"

	expensesdomain "expenses-app-go/internal/domain/expenses"
	reportdomain "expenses-app-go/internal/domain/report"
)

type ReportRepository struct {
	store *Store
	tx    *dataset
}

func NewReportRepository(store *Store) *ReportRepository {
	return &ReportRepository{store: store}
}

// Transaction holds the store lock for the whole of fn, so every query inside
// it sees the same data.
func (r *ReportRepository) Transaction(ctx context.Context, fn func(reportdomain.Repository) error) error {
	if r.tx != nil {
		return fn(r)
	}
	return r.store.view(func(data *dataset) error {
		return fn(&ReportRepository{store: r.store, tx: data})
	})
}

func (r *ReportRepository) read(fn func(*dataset) error) error {
	if r.tx != nil {
		return fn(r.tx)
	}
	return r.store.view(fn)
}

func (r *ReportRepository) SelectExpenses(ctx context.Context, filter reportdomain.Filter) ([]reportdomain.SelectedExpense, error) {
	var rows []reportdomain.SelectedExpense
	err := r.read(func(data *dataset) error {
		for _, expense := range selectExpenses(data, filter) {
			row := reportdomain.SelectedExpense{
				ID:           expense.ID,
				Name:         expense.Name,
				Amount:       expense.Amount,
				PurchaseDate: expense.PurchaseDate,
				CategoryID:   expense.CategoryID,
			}
			if name, ok := data.categoryName(expense.CategoryID); ok {
				row.CategoryName = &name
			}
			rows = append(rows, row)
		}
		return nil
	})
	return rows, err
}

func (r *ReportRepository) Totals(ctx context.Context, filter reportdomain.Filter) (reportdomain.Totals, error) {
	var totals reportdomain.Totals
	err := r.read(func(data *dataset) error {
		for i, expense := range selectExpenses(data, filter) {
			sum, err := totals.Sum.Add(expense.Amount)
			if err != nil {
				return err
			}
			totals.Count++
			totals.Sum = sum
			if i == 0 || expense.Amount < totals.Min {
				totals.Min = expense.Amount
			}
			if i == 0 || expense.Amount > totals.Max {
				totals.Max = expense.Amount
			}
		}
		return nil
	})
	return totals, err
}

// ByCategory sums per category id. Expenses whose category does not resolve
// are left out, like the inner join on the postgres side.
func (r *ReportRepository) ByCategory(ctx context.Context, filter reportdomain.Filter) ([]reportdomain.CategoryTotal, error) {
	var rows []reportdomain.CategoryTotal
	err := r.read(func(data *dataset) error {
		sums := make(map[int64]expensesdomain.Money)
		for _, expense := range selectExpenses(data, filter) {
			if _, ok := data.categoryName(expense.CategoryID); !ok {
				continue
			}
			sum, err := sums[*expense.CategoryID].Add(expense.Amount)
			if err != nil {
				return err
			}
			sums[*expense.CategoryID] = sum
		}

		ids := make([]int64, 0, len(sums))
		for id := range sums {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool {
			left, right := data.categories[ids[i]].Name, data.categories[ids[j]].Name
			if left != right {
				return left < right
			}
			return ids[i] < ids[j]
		})

		rows = make([]reportdomain.CategoryTotal, 0, len(ids))
		for _, id := range ids {
			rows = append(rows, reportdomain.CategoryTotal{
				CategoryName: data.categories[id].Name,
				Total:        sums[id],
			})
		}
		return nil
	})
	return rows, err
}

// selectExpenses applies filter in ascending id order. Bounds are inclusive
// and an expense without a purchase date never matches a date bound.
func selectExpenses(data *dataset, filter reportdomain.Filter) []expensesdomain.Expense {
	start := dateOnly(filter.DateStart)
	end := dateOnly(filter.DateEnd)

	var selected []expensesdomain.Expense
	for _, id := range data.sortedExpenseIDs() {
		expense := data.expenses[id]
		if filter.CategoryID != nil && (expense.CategoryID == nil || *expense.CategoryID != *filter.CategoryID) {
			continue
		}
		if start != nil && (expense.PurchaseDate == nil || expense.PurchaseDate.Before(*start)) {
			continue
		}
		if end != nil && (expense.PurchaseDate == nil || expense.PurchaseDate.After(*end)) {
			continue
		}
		selected = append(selected, cloneExpense(expense))
	}
	return selected
}
