package expenses

import (
	"context"
	"errors"
	"time"

	expensesdomain "expenses-app-go/internal/domain/expenses"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(expensesdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

type expenseRow struct {
	ID           int64                `gorm:"column:id"`
	Name         string               `gorm:"column:name"`
	Amount       expensesdomain.Money `gorm:"column:amount_cents"`
	PurchaseDate *time.Time           `gorm:"column:purchase_date"`
	CategoryID   *int64               `gorm:"column:category_id"`
	CategoryName *string              `gorm:"column:category_name"`
}

func (r *PostgresRepository) ListExpenses(ctx context.Context) ([]expensesdomain.ExpenseWithCategory, error) {
	var rows []expenseRow
	if err := r.db.WithContext(ctx).
		Table("expenses").
		Select("expenses.id, COALESCE(expenses.name, '') AS name, expenses.amount_cents, expenses.purchase_date, expenses.category_id, categories.name AS category_name").
		Joins("LEFT JOIN categories ON categories.id = expenses.category_id").
		Order("expenses.id asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]expensesdomain.ExpenseWithCategory, 0, len(rows))
	for _, row := range rows {
		item := expensesdomain.ExpenseWithCategory{
			Expense: expensesdomain.Expense{
				ID:           row.ID,
				Name:         row.Name,
				Amount:       row.Amount,
				PurchaseDate: row.PurchaseDate,
				CategoryID:   row.CategoryID,
			},
		}
		if row.CategoryName != nil {
			item.CategoryName = *row.CategoryName
		}
		items = append(items, item)
	}

	return items, nil
}

func (r *PostgresRepository) GetExpenseByID(ctx context.Context, expenseID int64) (*expensesdomain.Expense, error) {
	var expense expensesdomain.Expense
	if err := r.db.WithContext(ctx).
		Where("id = ?", expenseID).
		First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, expensesdomain.ErrExpenseNotFound
		}
		return nil, err
	}
	return &expense, nil
}

func (r *PostgresRepository) CreateExpense(ctx context.Context, expense *expensesdomain.Expense) error {
	return translateForeignKey(r.db.WithContext(ctx).Create(expense).Error, expensesdomain.ErrCategoryNotFound)
}

func (r *PostgresRepository) UpdateExpense(ctx context.Context, expense *expensesdomain.Expense) error {
	err := r.db.WithContext(ctx).
		Model(&expensesdomain.Expense{}).
		Where("id = ?", expense.ID).
		Updates(map[string]interface{}{
			"name":          expense.Name,
			"amount_cents":  expense.Amount,
			"purchase_date": expense.PurchaseDate,
			"category_id":   expense.CategoryID,
		}).Error
	return translateForeignKey(err, expensesdomain.ErrCategoryNotFound)
}

func (r *PostgresRepository) DeleteExpense(ctx context.Context, expenseID int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&expensesdomain.Expense{}, "id = ?", expenseID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) ListCategories(ctx context.Context) ([]expensesdomain.Category, error) {
	var categories []expensesdomain.Category
	if err := r.db.WithContext(ctx).
		Order("id asc").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *PostgresRepository) GetCategoryByID(ctx context.Context, categoryID int64) (*expensesdomain.Category, error) {
	var category expensesdomain.Category
	if err := r.db.WithContext(ctx).
		Where("id = ?", categoryID).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, expensesdomain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *PostgresRepository) CreateCategory(ctx context.Context, category *expensesdomain.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *PostgresRepository) UpdateCategory(ctx context.Context, category *expensesdomain.Category) error {
	return r.db.WithContext(ctx).
		Model(&expensesdomain.Category{}).
		Where("id = ?", category.ID).
		Update("name", category.Name).Error
}

func (r *PostgresRepository) DeleteCategory(ctx context.Context, categoryID int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&expensesdomain.Category{}, "id = ?", categoryID)
	if err := translateForeignKey(result.Error, expensesdomain.ErrCategoryInUse); err != nil {
		return false, err
	}
	return result.RowsAffected > 0, nil
}

func (r *PostgresRepository) CountExpensesByCategoryID(ctx context.Context, categoryID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&expensesdomain.Expense{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// translateForeignKey maps a foreign key violation (only reported when the
// connection runs with gorm's TranslateError) to a domain error.
func translateForeignKey(err error, domainErr error) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return domainErr
	}
	return err
}
