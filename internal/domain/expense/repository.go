package expense

import "context"

// ExpenseCategoryRepository defines data access methods for ledger
// categories. All methods include tenantID to prevent cross-tenant access.
type ExpenseCategoryRepository interface {
	GetByCode(ctx context.Context, code string, tenantID string) (ExpenseCategory, error)
	Create(ctx context.Context, category ExpenseCategory) (ExpenseCategory, error)
}

type ExpenseRepository interface {
	Create(ctx context.Context, exp Expense) (Expense, error)
}
