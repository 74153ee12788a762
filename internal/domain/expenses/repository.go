package expenses

import "context"

// Repository is the storage contract. Implementations report missing rows with
// ErrExpenseNotFound / ErrCategoryNotFound and deletes return whether a row
// was removed.
type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	ListExpenses(ctx context.Context) ([]ExpenseWithCategory, error)
	GetExpenseByID(ctx context.Context, expenseID int64) (*Expense, error)
	CreateExpense(ctx context.Context, expense *Expense) error
	UpdateExpense(ctx context.Context, expense *Expense) error
	DeleteExpense(ctx context.Context, expenseID int64) (bool, error)
	ListCategories(ctx context.Context) ([]Category, error)
	GetCategoryByID(ctx context.Context, categoryID int64) (*Category, error)
	CreateCategory(ctx context.Context, category *Category) error
	UpdateCategory(ctx context.Context, category *Category) error
	DeleteCategory(ctx context.Context, categoryID int64) (bool, error)
	CountExpensesByCategoryID(ctx context.Context, categoryID int64) (int64, error)
}
