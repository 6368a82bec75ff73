package payroll

import (
	"context"
	"time"
)

// PayrollSettingRepository defines data access methods for tenant pay
// rules. All methods include tenantID to prevent cross-tenant access.
type PayrollSettingRepository interface {
	GetByTenantID(ctx context.Context, tenantID string) (PayrollSetting, error)
	Upsert(ctx context.Context, setting PayrollSetting) (PayrollSetting, error)
}

type PayrollPeriodRepository interface {
	Create(ctx context.Context, period PayrollPeriod) (PayrollPeriod, error)
	GetByID(ctx context.Context, id string, tenantID string) (PayrollPeriod, error)
	ListByTenantID(ctx context.Context, tenantID string) ([]PayrollPeriod, error)

	// MarkFinalized flips is_finalized to true only if it is still
	// false, in the same statement. A period that is already finalized
	// yields ErrPeriodFinalized so concurrent finalize calls cannot
	// both materialize expenses.
	MarkFinalized(ctx context.Context, id string, tenantID string, finalizedAt time.Time) (PayrollPeriod, error)
}

type PayrollDetailRepository interface {
	// Upsert creates the detail for (tenant, period, staff) or
	// overwrites every calculated field of the existing row. The bool
	// is true when a new row was created.
	Upsert(ctx context.Context, detail PayrollDetail) (PayrollDetail, bool, error)

	ListByPeriodID(ctx context.Context, periodID string, tenantID string) ([]PayrollDetail, error)

	// MarkPaid stamps every detail of the period as paid.
	MarkPaid(ctx context.Context, periodID string, tenantID string, paidAt time.Time) error
}
