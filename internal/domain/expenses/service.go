package expenses

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"
)

type Service struct {
	repo          Repository
	categories    CategoriesCache
	categoriesTTL time.Duration

	// categoriesGen counts category writes. A list read while it changed is
	// not cached.
	categoriesMu  sync.Mutex
	categoriesGen uint64
}

func NewService(repo Repository) *Service {
	return NewServiceWithCache(repo, noopCategoriesCache{}, 0)
}

// NewServiceWithCache serves ListCategories from cache for ttl. Any category
// write drops the cached list.
func NewServiceWithCache(repo Repository, cache CategoriesCache, ttl time.Duration) *Service {
	if cache == nil || ttl <= 0 {
		cache = noopCategoriesCache{}
	}
	return &Service{repo: repo, categories: cache, categoriesTTL: ttl}
}

func (s *Service) ListExpenses(ctx context.Context) ([]ExpenseWithCategory, error) {
	items, err := s.repo.ListExpenses(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		return []ExpenseWithCategory{}, nil
	}
	return items, nil
}

func (s *Service) GetExpense(ctx context.Context, expenseID int64) (*Expense, error) {
	return s.repo.GetExpenseByID(ctx, expenseID)
}

func (s *Service) CreateExpense(ctx context.Context, input ExpenseInput) (*Expense, error) {
	expense, err := parseExpenseInput(input)
	if err != nil {
		return nil, err
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.GetCategoryByID(ctx, *expense.CategoryID); err != nil {
			return err
		}
		return tx.CreateExpense(ctx, &expense)
	})
	if err != nil {
		return nil, err
	}

	return &expense, nil
}

func (s *Service) UpdateExpense(ctx context.Context, expenseID int64, input ExpenseInput) (*Expense, error) {
	parsed, err := parseExpenseInput(input)
	if err != nil {
		return nil, err
	}

	var updated Expense
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		expense, err := tx.GetExpenseByID(ctx, expenseID)
		if err != nil {
			return err
		}
		if _, err := tx.GetCategoryByID(ctx, *parsed.CategoryID); err != nil {
			return err
		}

		expense.Name = parsed.Name
		expense.Amount = parsed.Amount
		expense.PurchaseDate = parsed.PurchaseDate
		expense.CategoryID = parsed.CategoryID

		if err := tx.UpdateExpense(ctx, expense); err != nil {
			return err
		}

		updated = *expense
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (s *Service) DeleteExpense(ctx context.Context, expenseID int64) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		deleted, err := tx.DeleteExpense(ctx, expenseID)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrExpenseNotFound
		}
		return nil
	})
}

func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	if cached, ok := s.categories.Get(); ok {
		return cached, nil
	}

	s.categoriesMu.Lock()
	gen := s.categoriesGen
	s.categoriesMu.Unlock()

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []Category{}
	}

	s.categoriesMu.Lock()
	if gen == s.categoriesGen {
		s.categories.Set(categories, s.categoriesTTL)
	}
	s.categoriesMu.Unlock()
	return categories, nil
}

func (s *Service) invalidateCategories() {
	s.categoriesMu.Lock()
	s.categoriesGen++
	s.categories.Delete()
	s.categoriesMu.Unlock()
}

func (s *Service) CreateCategory(ctx context.Context, name string) (*Category, error) {
	name, err := validateCategoryName(name)
	if err != nil {
		return nil, err
	}

	category := Category{Name: name}
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		return tx.CreateCategory(ctx, &category)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCategories()
	return &category, nil
}

func (s *Service) RenameCategory(ctx context.Context, categoryID int64, newName string) (*Category, error) {
	name, err := validateCategoryName(newName)
	if err != nil {
		return nil, err
	}

	var renamed Category
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		category, err := tx.GetCategoryByID(ctx, categoryID)
		if err != nil {
			return err
		}
		category.Name = name
		if err := tx.UpdateCategory(ctx, category); err != nil {
			return err
		}
		renamed = *category
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCategories()
	return &renamed, nil
}

// DeleteCategory refuses to remove a category that expenses still reference.
func (s *Service) DeleteCategory(ctx context.Context, categoryID int64) error {
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.GetCategoryByID(ctx, categoryID); err != nil {
			return err
		}

		inUse, err := tx.CountExpensesByCategoryID(ctx, categoryID)
		if err != nil {
			return err
		}
		if inUse > 0 {
			return ErrCategoryInUse
		}

		deleted, err := tx.DeleteCategory(ctx, categoryID)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrCategoryNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateCategories()
	return nil
}

func parseExpenseInput(input ExpenseInput) (Expense, error) {
	amount, err := ParseMoney(input.Amount)
	if err != nil {
		return Expense{}, err
	}

	purchaseDate, err := ParseOptionalDate(input.PurchaseDate)
	if err != nil {
		return Expense{}, err
	}

	categoryID, err := ParseID(input.CategoryID)
	if err != nil {
		return Expense{}, ErrInvalidCategory
	}

	return Expense{
		Name:         strings.TrimSpace(input.Name),
		Amount:       amount,
		PurchaseDate: purchaseDate,
		CategoryID:   &categoryID,
	}, nil
}

// ParseID parses a positive integer identifier.
func ParseID(value string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

func validateCategoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}
	if len([]rune(name)) > maxCategoryNameLen {
		return "", ErrNameTooLong
	}
	return name, nil
}
