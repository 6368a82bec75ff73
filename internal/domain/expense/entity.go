package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// SalaryCategoryName/Code identify the ledger category payroll
	// expenses are booked under. The category is created per tenant on
	// first finalize.
	SalaryCategoryName = "Gaji"
	SalaryCategoryCode = "GAJI"

	PaymentTypeCash = "Cash"
)

type ExpenseCategory struct {
	ID        string
	TenantID  string
	Name      string
	Code      string
	IsPrivate bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Expense is an immutable ledger entry. Payroll finalization writes one
// per payroll detail and never updates or deletes them.
type Expense struct {
	ID          string
	TenantID    string
	CategoryID  string
	StaffID     *string
	Description string
	Amount      decimal.Decimal
	PaymentType string
	PaidAt      time.Time
	CreatedAt   time.Time
}
