package report

import (
	"context"
	"errors"
	"testing"
	"time"

	expensesdomain "expenses-app-go/internal/domain/expenses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReportRepo struct {
	categories map[int64]string
	expenses   []SelectedExpense
	txCalls    int
	failWith   error
}

func (f *fakeReportRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	f.txCalls++
	return fn(f)
}

func (f *fakeReportRepo) matching(filter Filter) []SelectedExpense {
	var out []SelectedExpense
	for _, expense := range f.expenses {
		if filter.CategoryID != nil && (expense.CategoryID == nil || *expense.CategoryID != *filter.CategoryID) {
			continue
		}
		if filter.DateStart != nil && (expense.PurchaseDate == nil || expense.PurchaseDate.Before(*filter.DateStart)) {
			continue
		}
		if filter.DateEnd != nil && (expense.PurchaseDate == nil || expense.PurchaseDate.After(*filter.DateEnd)) {
			continue
		}
		if expense.CategoryID != nil {
			if name, ok := f.categories[*expense.CategoryID]; ok {
				expense.CategoryName = &name
			}
		}
		out = append(out, expense)
	}
	return out
}

func (f *fakeReportRepo) SelectExpenses(ctx context.Context, filter Filter) ([]SelectedExpense, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.matching(filter), nil
}

func (f *fakeReportRepo) Totals(ctx context.Context, filter Filter) (Totals, error) {
	var totals Totals
	for i, expense := range f.matching(filter) {
		totals.Count++
		totals.Sum += expense.Amount
		if i == 0 || expense.Amount < totals.Min {
			totals.Min = expense.Amount
		}
		if i == 0 || expense.Amount > totals.Max {
			totals.Max = expense.Amount
		}
	}
	return totals, nil
}

func (f *fakeReportRepo) ByCategory(ctx context.Context, filter Filter) ([]CategoryTotal, error) {
	sums := make(map[int64]expensesdomain.Money)
	var order []int64
	for _, expense := range f.matching(filter) {
		if expense.CategoryName == nil {
			continue
		}
		if _, ok := sums[*expense.CategoryID]; !ok {
			order = append(order, *expense.CategoryID)
		}
		sums[*expense.CategoryID] += expense.Amount
	}
	rows := make([]CategoryTotal, 0, len(order))
	for _, id := range order {
		rows = append(rows, CategoryTotal{CategoryName: f.categories[id], Total: sums[id]})
	}
	return rows, nil
}

func ptr[T any](v T) *T {
	return &v
}

func day(value string) *time.Time {
	parsed, err := time.Parse(expensesdomain.DateLayout, value)
	if err != nil {
		panic(err)
	}
	return &parsed
}

// seededRepo mirrors the sample data: Food, Clothing, Entertainment and one
// expense in each.
func seededRepo() *fakeReportRepo {
	return &fakeReportRepo{
		categories: map[int64]string{1: "Food", 2: "Clothing", 3: "Entertainment"},
		expenses: []SelectedExpense{
			{ID: 1, Name: "Dominos Pizza", Amount: 2050, PurchaseDate: day("2024-04-20"), CategoryID: ptr[int64](1)},
			{ID: 2, Name: "Jeans", Amount: 1575, PurchaseDate: day("2024-04-21"), CategoryID: ptr[int64](2)},
			{ID: 3, Name: "Broadway Show", Amount: 10000, PurchaseDate: day("2024-04-22"), CategoryID: ptr[int64](3)},
		},
	}
}

func TestGenerateWithoutFilters(t *testing.T) {
	repo := seededRepo()
	svc := NewService(repo)

	report, err := svc.Generate(context.Background(), Filter{})
	require.NoError(t, err)

	assert.Equal(t, 1, repo.txCalls)
	assert.EqualValues(t, 3, report.Summary.Count)
	assert.Equal(t, expensesdomain.Money(13625), report.Summary.Sum)
	assert.Equal(t, expensesdomain.Money(4542), report.Summary.Average)
	assert.Equal(t, expensesdomain.Money(1575), report.Summary.Min)
	assert.Equal(t, expensesdomain.Money(10000), report.Summary.Max)

	var subtotal expensesdomain.Money
	for _, total := range report.Summary.ByCategory {
		subtotal += total
	}
	assert.Equal(t, report.Summary.Sum, subtotal)

	require.Len(t, report.Rows, 3)
	assert.Equal(t, "Dominos Pizza", report.Rows[0].Name)
	assert.Equal(t, "2024-04-20", report.Rows[0].PurchaseDate)
	assert.Equal(t, "Food", report.Rows[0].CategoryName)
	for _, row := range report.Rows {
		assert.Equal(t, report.Summary.Count, row.Count)
		assert.Equal(t, report.Summary.ByCategory, row.ByCategory)
	}
}

func TestGenerateByCategory(t *testing.T) {
	svc := NewService(seededRepo())

	report, err := svc.Generate(context.Background(), Filter{CategoryID: ptr[int64](3)})
	require.NoError(t, err)

	hundred := expensesdomain.Money(10000)
	assert.EqualValues(t, 1, report.Summary.Count)
	assert.Equal(t, hundred, report.Summary.Sum)
	assert.Equal(t, hundred, report.Summary.Min)
	assert.Equal(t, hundred, report.Summary.Max)
	assert.Equal(t, hundred, report.Summary.Average)
	assert.Equal(t, map[string]expensesdomain.Money{"Entertainment": hundred}, report.Summary.ByCategory)
}

func TestGenerateDateRangeIsInclusive(t *testing.T) {
	svc := NewService(seededRepo())

	report, err := svc.Generate(context.Background(), Filter{DateStart: day("2024-04-21")})
	require.NoError(t, err)
	require.Len(t, report.Rows, 2)
	assert.Equal(t, "Jeans", report.Rows[0].Name)
	assert.Equal(t, "Broadway Show", report.Rows[1].Name)

	report, err = svc.Generate(context.Background(), Filter{DateStart: day("2024-04-21"), DateEnd: day("2024-04-21")})
	require.NoError(t, err)
	require.Len(t, report.Rows, 1)
	assert.Equal(t, "Jeans", report.Rows[0].Name)
}

func TestGenerateEmptySelection(t *testing.T) {
	svc := NewService(seededRepo())

	report, err := svc.Generate(context.Background(), Filter{DateStart: day("2030-01-01")})
	require.NoError(t, err)

	assert.Empty(t, report.Rows)
	assert.Zero(t, report.Summary.Count)
	assert.Zero(t, report.Summary.Sum)
	assert.Zero(t, report.Summary.Average)
	assert.Zero(t, report.Summary.Min)
	assert.Zero(t, report.Summary.Max)
	assert.Empty(t, report.Summary.ByCategory)
}

func TestGenerateMergesCategoriesSharingAName(t *testing.T) {
	repo := seededRepo()
	repo.categories[4] = "Food"
	repo.expenses = append(repo.expenses, SelectedExpense{ID: 4, Name: "Bagel", Amount: 350, CategoryID: ptr[int64](4)})

	report, err := NewService(repo).Generate(context.Background(), Filter{})
	require.NoError(t, err)

	assert.Equal(t, expensesdomain.Money(2400), report.Summary.ByCategory["Food"])
	require.Len(t, report.Summary.CategoryTotals, 3)
	assert.Equal(t, "Clothing", report.Summary.CategoryTotals[0].CategoryName)
}

func TestGenerateDanglingCategory(t *testing.T) {
	repo := seededRepo()
	repo.expenses = append(repo.expenses, SelectedExpense{ID: 9, Name: "Orphan", Amount: 100, CategoryID: ptr[int64](77)})

	_, err := NewService(repo).Generate(context.Background(), Filter{})
	assert.ErrorIs(t, err, ErrDanglingCategory)
	assert.ErrorIs(t, err, expensesdomain.ErrDataIntegrity)
}

func TestGenerateExpenseWithoutCategory(t *testing.T) {
	repo := seededRepo()
	repo.expenses = append(repo.expenses, SelectedExpense{ID: 9, Name: "Uncategorized", Amount: 100, PurchaseDate: day("2024-04-20")})

	_, err := NewService(repo).Generate(context.Background(), Filter{})
	assert.ErrorIs(t, err, ErrDanglingCategory)
	assert.ErrorIs(t, err, expensesdomain.ErrDataIntegrity)

	report, err := NewService(repo).Generate(context.Background(), Filter{CategoryID: ptr[int64](1)})
	require.NoError(t, err)
	assert.Len(t, report.Rows, 1)
}

func TestBuildSummaryMergeOverflow(t *testing.T) {
	large := expensesdomain.Money(5_000_000_000_000_000_000)

	_, err := buildSummary(
		Totals{Count: 2, Sum: large, Min: large, Max: large},
		[]CategoryTotal{{CategoryName: "Food", Total: large}, {CategoryName: "Food", Total: large}},
	)
	assert.ErrorIs(t, err, expensesdomain.ErrAmountOverflow)
	assert.ErrorIs(t, err, expensesdomain.ErrDataIntegrity)
}

func TestGeneratePropagatesStorageError(t *testing.T) {
	repo := seededRepo()
	repo.failWith = errors.New("db down")

	_, err := NewService(repo).Generate(context.Background(), Filter{})
	assert.EqualError(t, err, "db down")
}

func TestParseFilter(t *testing.T) {
	filter, err := ParseFilter("", "", "")
	require.NoError(t, err)
	assert.Equal(t, Filter{}, filter)

	filter, err = ParseFilter("3", "2024-04-21", "2024-04-22")
	require.NoError(t, err)
	require.NotNil(t, filter.CategoryID)
	assert.EqualValues(t, 3, *filter.CategoryID)
	assert.Equal(t, "2024-04-21", filter.DateStart.Format(expensesdomain.DateLayout))
	assert.Equal(t, "2024-04-22", filter.DateEnd.Format(expensesdomain.DateLayout))
}

func TestParseFilterRejectsMalformedValues(t *testing.T) {
	_, err := ParseFilter("food", "", "")
	assert.ErrorIs(t, err, expensesdomain.ErrInvalidCategory)

	_, err = ParseFilter("", "21-04-2024", "")
	assert.ErrorIs(t, err, expensesdomain.ErrInvalidDate)
	assert.ErrorIs(t, err, expensesdomain.ErrValidation)

	_, err = ParseFilter("", "", "tomorrow")
	assert.ErrorIs(t, err, expensesdomain.ErrInvalidDate)
}
