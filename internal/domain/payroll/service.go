package payroll

import "context"

type PayrollService interface {
	// Settings
	GetSetting(ctx context.Context, tenantID string) (PayrollSettingResponse, error)
	UpdateSetting(ctx context.Context, tenantID string, req UpdatePayrollSettingRequest) (PayrollSettingResponse, error)

	// Periods
	CreatePeriod(ctx context.Context, tenantID string, req CreatePayrollPeriodRequest) (PayrollPeriodResponse, error)
	ListPeriods(ctx context.Context, tenantID string) ([]PayrollPeriodResponse, error)

	// Calculation
	Calculate(ctx context.Context, tenantID string, req CalculatePayrollRequest) (PayBreakdownResponse, error)

	// Details
	UpsertDetail(ctx context.Context, tenantID string, req UpsertPayrollDetailRequest) (PayrollDetailResponse, bool, error)
	ListDetails(ctx context.Context, tenantID string, periodID string) ([]PayrollDetailResponse, error)

	// Finalization
	Finalize(ctx context.Context, tenantID string, periodID string) (PayrollPeriodResponse, error)
}
