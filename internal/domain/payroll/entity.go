package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollSetting - Tenant payroll configuration. Overtime rates are
// multipliers applied to the hourly rate, never raw amounts.
type PayrollSetting struct {
	ID                      string
	TenantID                string
	NormalWorkHoursPerDay   decimal.Decimal
	NormalWorkHoursPerMonth decimal.Decimal
	OvertimeRate1           decimal.Decimal
	OvertimeRate2           decimal.Decimal
	OvertimeRateWeekend1    decimal.Decimal
	OvertimeRateWeekend2    decimal.Decimal
	OvertimeRateWeekend3    decimal.Decimal
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// DefaultSetting returns the pay rules used when a tenant has never
// stored its own.
func DefaultSetting(tenantID string) PayrollSetting {
	return PayrollSetting{
		TenantID:                tenantID,
		NormalWorkHoursPerDay:   decimal.NewFromInt(7),
		NormalWorkHoursPerMonth: decimal.NewFromInt(173),
		OvertimeRate1:           decimal.NewFromFloat(1.5),
		OvertimeRate2:           decimal.NewFromInt(2),
		OvertimeRateWeekend1:    decimal.NewFromInt(2),
		OvertimeRateWeekend2:    decimal.NewFromInt(3),
		OvertimeRateWeekend3:    decimal.NewFromInt(4),
	}
}

// PayrollPeriod - A tenant-defined date range over which attendance and
// pay are aggregated. Once finalized the period and its details are
// immutable; the flag never goes back to false.
type PayrollPeriod struct {
	ID          string
	TenantID    string
	PeriodStart time.Time
	PeriodEnd   time.Time
	IsFinalized bool
	FinalizedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PayrollDetail - Stored pay breakdown, unique per
// (tenant, period, staff). Recalculations overwrite it in place while
// the period is open.
type PayrollDetail struct {
	ID                   string
	TenantID             string
	PayrollPeriodID      string
	StaffID              string
	BasicSalaryAmount    decimal.Decimal
	FixedAllowanceAmount decimal.Decimal
	TotalHours           decimal.Decimal
	NormalWorkDays       int
	OvertimeHours        decimal.Decimal
	OvertimePay          decimal.Decimal
	BonusAmount          decimal.Decimal
	DeductionsAmount     decimal.Decimal
	TakeHomePay          decimal.Decimal
	IsPaid               bool
	PaidAt               *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time

	// Joined fields
	StaffUsername *string
}
