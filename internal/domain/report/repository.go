package report

import "context"

type Repository interface {
	// Transaction runs fn against one consistent snapshot.
	Transaction(ctx context.Context, fn func(Repository) error) error
	SelectExpenses(ctx context.Context, filter Filter) ([]SelectedExpense, error)
	Totals(ctx context.Context, filter Filter) (Totals, error)
	ByCategory(ctx context.Context, filter Filter) ([]CategoryTotal, error)
}
