package report

import (
	"context"
	"fmt"
	"sort"
	"strings"

	expensesdomain "expenses-app-go/internal/domain/expenses"
)

var ErrDanglingCategory = fmt.Errorf("%w: expense references a missing category", expensesdomain.ErrDataIntegrity)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ParseFilter converts raw query values. Empty values mean "no constraint";
// malformed values are rejected.
func ParseFilter(category, dateStart, dateEnd string) (Filter, error) {
	var filter Filter

	if strings.TrimSpace(category) != "" {
		categoryID, err := expensesdomain.ParseID(category)
		if err != nil {
			return Filter{}, expensesdomain.ErrInvalidCategory
		}
		filter.CategoryID = &categoryID
	}

	start, err := expensesdomain.ParseOptionalDate(dateStart)
	if err != nil {
		return Filter{}, fmt.Errorf("date_start: %w", err)
	}
	end, err := expensesdomain.ParseOptionalDate(dateEnd)
	if err != nil {
		return Filter{}, fmt.Errorf("date_end: %w", err)
	}
	filter.DateStart = start
	filter.DateEnd = end

	return filter, nil
}

func (s *Service) Generate(ctx context.Context, filter Filter) (Report, error) {
	var (
		selected   []SelectedExpense
		totals     Totals
		byCategory []CategoryTotal
	)

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		var err error
		if selected, err = tx.SelectExpenses(ctx, filter); err != nil {
			return err
		}
		if totals, err = tx.Totals(ctx, filter); err != nil {
			return err
		}
		byCategory, err = tx.ByCategory(ctx, filter)
		return err
	})
	if err != nil {
		return Report{}, err
	}

	summary, err := buildSummary(totals, byCategory)
	if err != nil {
		return Report{}, err
	}

	rows := make([]Row, 0, len(selected))
	for _, expense := range selected {
		if expense.CategoryName == nil {
			return Report{}, fmt.Errorf("expense %d: %w", expense.ID, ErrDanglingCategory)
		}
		rows = append(rows, Row{
			ExpenseID:    expense.ID,
			Name:         expense.Name,
			Amount:       expense.Amount,
			PurchaseDate: expensesdomain.FormatDate(expense.PurchaseDate),
			CategoryName: *expense.CategoryName,
			Summary:      summary,
		})
	}

	return Report{Summary: summary, Rows: rows}, nil
}

// buildSummary merges subtotals of categories sharing a name so the mapping
// always sums to the overall total.
func buildSummary(totals Totals, byCategory []CategoryTotal) (Summary, error) {
	summary := Summary{
		Count:      totals.Count,
		Sum:        totals.Sum,
		Average:    totals.Sum.DivRound(totals.Count),
		Min:        totals.Min,
		Max:        totals.Max,
		ByCategory: make(map[string]expensesdomain.Money, len(byCategory)),
	}
	if totals.Count == 0 {
		summary.Sum, summary.Average, summary.Min, summary.Max = 0, 0, 0, 0
	}

	for _, row := range byCategory {
		total, err := summary.ByCategory[row.CategoryName].Add(row.Total)
		if err != nil {
			return Summary{}, fmt.Errorf("category %q: %w", row.CategoryName, err)
		}
		summary.ByCategory[row.CategoryName] = total
	}

	summary.CategoryTotals = make([]CategoryTotal, 0, len(summary.ByCategory))
	for name, total := range summary.ByCategory {
		summary.CategoryTotals = append(summary.CategoryTotals, CategoryTotal{CategoryName: name, Total: total})
	}
	sort.Slice(summary.CategoryTotals, func(i, j int) bool {
		return summary.CategoryTotals[i].CategoryName < summary.CategoryTotals[j].CategoryName
	})

	return summary, nil
}
