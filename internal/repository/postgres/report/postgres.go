package report

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	expensesdomain "expenses-app-go/internal/domain/expenses"
	reportdomain "expenses-app-go/internal/domain/report"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const numericOutOfRange = "22003"

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Transaction opens a read-only repeatable-read transaction so the selection
// and the aggregates see the same rows.
func (r *PostgresRepository) Transaction(ctx context.Context, fn func(reportdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
}

func (r *PostgresRepository) SelectExpenses(ctx context.Context, filter reportdomain.Filter) ([]reportdomain.SelectedExpense, error) {
	where, args := buildExpenseWhere(filter)
	query := "SELECT e.id, COALESCE(e.name, '') AS name, e.amount_cents AS amount, e.purchase_date, e.category_id, c.name AS category_name " +
		"FROM expenses e LEFT JOIN categories c ON c.id = e.category_id WHERE " + where + " ORDER BY e.id"

	var rows []reportdomain.SelectedExpense
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostgresRepository) Totals(ctx context.Context, filter reportdomain.Filter) (reportdomain.Totals, error) {
	where, args := buildExpenseWhere(filter)
	query := "SELECT COUNT(*) AS count, " +
		"COALESCE(SUM(e.amount_cents), 0)::bigint AS sum, " +
		"COALESCE(MIN(e.amount_cents), 0) AS min, " +
		"COALESCE(MAX(e.amount_cents), 0) AS max " +
		"FROM expenses e WHERE " + where

	var row reportdomain.Totals
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&row).Error; err != nil {
		return reportdomain.Totals{}, translateSumError(err)
	}
	return row, nil
}

func (r *PostgresRepository) ByCategory(ctx context.Context, filter reportdomain.Filter) ([]reportdomain.CategoryTotal, error) {
	where, args := buildExpenseWhere(filter)
	query := "SELECT c.name AS category_name, SUM(e.amount_cents)::bigint AS total " +
		"FROM expenses e JOIN categories c ON c.id = e.category_id WHERE " + where +
		" GROUP BY c.id, c.name ORDER BY c.name"

	var rows []reportdomain.CategoryTotal
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, translateSumError(err)
	}
	return rows, nil
}

// translateSumError maps a bigint overflow of SUM to the same error the
// in-memory store returns.
func translateSumError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == numericOutOfRange {
		return expensesdomain.ErrAmountOverflow
	}
	return err
}

func buildExpenseWhere(filter reportdomain.Filter) (string, []interface{}) {
	conditions := []string{"TRUE"}
	var args []interface{}

	if filter.CategoryID != nil {
		conditions = append(conditions, "e.category_id = ?")
		args = append(args, *filter.CategoryID)
	}
	if filter.DateStart != nil {
		conditions = append(conditions, "e.purchase_date >= ?")
		args = append(args, *filter.DateStart)
	}
	if filter.DateEnd != nil {
		conditions = append(conditions, "e.purchase_date <= ?")
		args = append(args, *filter.DateEnd)
	}

	return strings.Join(conditions, " AND "), args
}
