package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kasirapp/pos-backend-go/internal/domain/expense"
	"github.com/kasirapp/pos-backend-go/internal/pkg/database"
)

type expenseCategoryRepository struct {
	db *database.DB
}

func NewExpenseCategoryRepository(db *database.DB) expense.ExpenseCategoryRepository {
	return &expenseCategoryRepository{db: db}
}

func (r *expenseCategoryRepository) GetByCode(ctx context.Context, code string, tenantID string) (expense.ExpenseCategory, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, tenant_id, name, code, is_private, created_at, updated_at
		FROM expense_categories
		WHERE code = $1 AND tenant_id = $2
	`

	var c expense.ExpenseCategory
	err := q.QueryRow(ctx, query, code, tenantID).Scan(
		&c.ID, &c.TenantID, &c.Name, &c.Code, &c.IsPrivate, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return expense.ExpenseCategory{}, expense.ErrCategoryNotFound
		}
		return expense.ExpenseCategory{}, fmt.Errorf("failed to get expense category: %w", err)
	}

	return c, nil
}

func (r *expenseCategoryRepository) Create(ctx context.Context, category expense.ExpenseCategory) (expense.ExpenseCategory, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO expense_categories (tenant_id, name, code, is_private)
		VALUES ($1, $2, $3, $4)
		RETURNING id, tenant_id, name, code, is_private, created_at, updated_at
	`

	var c expense.ExpenseCategory
	err := q.QueryRow(ctx, query, category.TenantID, category.Name, category.Code, category.IsPrivate).Scan(
		&c.ID, &c.TenantID, &c.Name, &c.Code, &c.IsPrivate, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return expense.ExpenseCategory{}, fmt.Errorf("failed to create expense category: %w", err)
	}

	return c, nil
}

type expenseRepository struct {
	db *database.DB
}

func NewExpenseRepository(db *database.DB) expense.ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, exp expense.Expense) (expense.Expense, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO expenses (tenant_id, category_id, staff_id, description, amount, payment_type, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, tenant_id, category_id, staff_id, description, amount, payment_type, paid_at, created_at
	`

	var e expense.Expense
	err := q.QueryRow(ctx, query,
		exp.TenantID, exp.CategoryID, exp.StaffID, exp.Description, exp.Amount, exp.PaymentType, exp.PaidAt,
	).Scan(
		&e.ID, &e.TenantID, &e.CategoryID, &e.StaffID, &e.Description, &e.Amount, &e.PaymentType, &e.PaidAt, &e.CreatedAt,
	)
	if err != nil {
		return expense.Expense{}, fmt.Errorf("failed to create expense: %w", err)
	}

	return e, nil
}
