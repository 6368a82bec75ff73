package staff

import (
	"time"

	"github.com/shopspring/decimal"
)

type Staff struct {
	ID        string
	TenantID  string
	Username  string
	FullName  *string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Salary holds the fixed monthly pay of one staff member. There is at
// most one row per staff.
type Salary struct {
	ID             string
	StaffID        string
	BasicSalary    decimal.Decimal
	FixedAllowance decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
