package inmemory

import (
	"sort"
	"sync"
	"time"

	expensesdomain "expenses-app-go/internal/domain/expenses"
)

// Store keeps categories and expenses in process memory. It backs both the
// expenses and the report repositories so they observe the same data.
type Store struct {
	mu   sync.Mutex
	data *dataset
}

type dataset struct {
	categories     map[int64]expensesdomain.Category
	expenses       map[int64]expensesdomain.Expense
	nextCategoryID int64
	nextExpenseID  int64
}

func NewStore() *Store {
	return &Store{data: newDataset()}
}

func newDataset() *dataset {
	return &dataset{
		categories:     make(map[int64]expensesdomain.Category),
		expenses:       make(map[int64]expensesdomain.Expense),
		nextCategoryID: 1,
		nextExpenseID:  1,
	}
}

func (d *dataset) clone() *dataset {
	cloned := &dataset{
		categories:     make(map[int64]expensesdomain.Category, len(d.categories)),
		expenses:       make(map[int64]expensesdomain.Expense, len(d.expenses)),
		nextCategoryID: d.nextCategoryID,
		nextExpenseID:  d.nextExpenseID,
	}
	for id, category := range d.categories {
		cloned.categories[id] = category
	}
	for id, expense := range d.expenses {
		cloned.expenses[id] = cloneExpense(expense)
	}
	return cloned
}

// sortedExpenseIDs returns expense ids in ascending order.
func (d *dataset) sortedExpenseIDs() []int64 {
	ids := make([]int64, 0, len(d.expenses))
	for id := range d.expenses {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (d *dataset) categoryName(categoryID *int64) (string, bool) {
	if categoryID == nil {
		return "", false
	}
	category, ok := d.categories[*categoryID]
	return category.Name, ok
}

func cloneExpense(expense expensesdomain.Expense) expensesdomain.Expense {
	if expense.PurchaseDate != nil {
		date := *expense.PurchaseDate
		expense.PurchaseDate = &date
	}
	if expense.CategoryID != nil {
		categoryID := *expense.CategoryID
		expense.CategoryID = &categoryID
	}
	return expense
}

// view runs fn against the committed data under the store lock.
func (s *Store) view(fn func(*dataset) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

// update runs fn against a copy of the data and commits the copy only when fn
// succeeds.
func (s *Store) update(fn func(*dataset) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.data.clone()
	if err := fn(working); err != nil {
		return err
	}
	s.data = working
	return nil
}

func dateOnly(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	year, month, day := value.Date()
	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &date
}
