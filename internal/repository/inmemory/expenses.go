package inmemory

import (
	"context"
	"sort"

	expensesdomain "expenses-app-go/internal/domain/expenses"
)

type ExpensesRepository struct {
	store *Store
	tx    *dataset
}

func NewExpensesRepository(store *Store) *ExpensesRepository {
	return &ExpensesRepository{store: store}
}

// Transaction gives fn a repository bound to a private copy of the data. The
// copy replaces the committed data only when fn returns nil.
func (r *ExpensesRepository) Transaction(ctx context.Context, fn func(expensesdomain.Repository) error) error {
	if r.tx != nil {
		return fn(r)
	}
	return r.store.update(func(data *dataset) error {
		return fn(&ExpensesRepository{store: r.store, tx: data})
	})
}

func (r *ExpensesRepository) read(fn func(*dataset) error) error {
	if r.tx != nil {
		return fn(r.tx)
	}
	return r.store.view(fn)
}

func (r *ExpensesRepository) write(fn func(*dataset) error) error {
	if r.tx != nil {
		return fn(r.tx)
	}
	return r.store.update(fn)
}

func (r *ExpensesRepository) ListExpenses(ctx context.Context) ([]expensesdomain.ExpenseWithCategory, error) {
	var items []expensesdomain.ExpenseWithCategory
	err := r.read(func(data *dataset) error {
		items = make([]expensesdomain.ExpenseWithCategory, 0, len(data.expenses))
		for _, id := range data.sortedExpenseIDs() {
			expense := data.expenses[id]
			name, _ := data.categoryName(expense.CategoryID)
			items = append(items, expensesdomain.ExpenseWithCategory{
				Expense:      cloneExpense(expense),
				CategoryName: name,
			})
		}
		return nil
	})
	return items, err
}

func (r *ExpensesRepository) GetExpenseByID(ctx context.Context, expenseID int64) (*expensesdomain.Expense, error) {
	var found expensesdomain.Expense
	err := r.read(func(data *dataset) error {
		expense, ok := data.expenses[expenseID]
		if !ok {
			return expensesdomain.ErrExpenseNotFound
		}
		found = cloneExpense(expense)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *ExpensesRepository) CreateExpense(ctx context.Context, expense *expensesdomain.Expense) error {
	return r.write(func(data *dataset) error {
		if err := checkCategoryReference(data, expense.CategoryID); err != nil {
			return err
		}
		expense.ID = data.nextExpenseID
		data.nextExpenseID++
		expense.PurchaseDate = dateOnly(expense.PurchaseDate)
		data.expenses[expense.ID] = cloneExpense(*expense)
		return nil
	})
}

func (r *ExpensesRepository) UpdateExpense(ctx context.Context, expense *expensesdomain.Expense) error {
	return r.write(func(data *dataset) error {
		if _, ok := data.expenses[expense.ID]; !ok {
			return expensesdomain.ErrExpenseNotFound
		}
		if err := checkCategoryReference(data, expense.CategoryID); err != nil {
			return err
		}
		expense.PurchaseDate = dateOnly(expense.PurchaseDate)
		data.expenses[expense.ID] = cloneExpense(*expense)
		return nil
	})
}

func (r *ExpensesRepository) DeleteExpense(ctx context.Context, expenseID int64) (bool, error) {
	var deleted bool
	err := r.write(func(data *dataset) error {
		_, deleted = data.expenses[expenseID]
		delete(data.expenses, expenseID)
		return nil
	})
	return deleted, err
}

func (r *ExpensesRepository) ListCategories(ctx context.Context) ([]expensesdomain.Category, error) {
	var categories []expensesdomain.Category
	err := r.read(func(data *dataset) error {
		categories = make([]expensesdomain.Category, 0, len(data.categories))
		for _, category := range data.categories {
			categories = append(categories, category)
		}
		return nil
	})
	sortCategories(categories)
	return categories, err
}

func (r *ExpensesRepository) GetCategoryByID(ctx context.Context, categoryID int64) (*expensesdomain.Category, error) {
	var found expensesdomain.Category
	err := r.read(func(data *dataset) error {
		category, ok := data.categories[categoryID]
		if !ok {
			return expensesdomain.ErrCategoryNotFound
		}
		found = category
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *ExpensesRepository) CreateCategory(ctx context.Context, category *expensesdomain.Category) error {
	return r.write(func(data *dataset) error {
		category.ID = data.nextCategoryID
		data.nextCategoryID++
		data.categories[category.ID] = *category
		return nil
	})
}

func (r *ExpensesRepository) UpdateCategory(ctx context.Context, category *expensesdomain.Category) error {
	return r.write(func(data *dataset) error {
		if _, ok := data.categories[category.ID]; !ok {
			return expensesdomain.ErrCategoryNotFound
		}
		data.categories[category.ID] = *category
		return nil
	})
}

// DeleteCategory fails with ErrCategoryInUse while any expense references the
// category, the same restriction the postgres foreign key enforces.
func (r *ExpensesRepository) DeleteCategory(ctx context.Context, categoryID int64) (bool, error) {
	var deleted bool
	err := r.write(func(data *dataset) error {
		if _, ok := data.categories[categoryID]; !ok {
			return nil
		}
		if countByCategory(data, categoryID) > 0 {
			return expensesdomain.ErrCategoryInUse
		}
		delete(data.categories, categoryID)
		deleted = true
		return nil
	})
	return deleted, err
}

func (r *ExpensesRepository) CountExpensesByCategoryID(ctx context.Context, categoryID int64) (int64, error) {
	var count int64
	err := r.read(func(data *dataset) error {
		count = countByCategory(data, categoryID)
		return nil
	})
	return count, err
}

func checkCategoryReference(data *dataset, categoryID *int64) error {
	if categoryID == nil {
		return nil
	}
	if _, ok := data.categories[*categoryID]; !ok {
		return expensesdomain.ErrCategoryNotFound
	}
	return nil
}

func countByCategory(data *dataset, categoryID int64) int64 {
	var count int64
	for _, expense := range data.expenses {
		if expense.CategoryID != nil && *expense.CategoryID == categoryID {
			count++
		}
	}
	return count
}

func sortCategories(categories []expensesdomain.Category) {
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
}
