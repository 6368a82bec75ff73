package payroll

import (
	"github.com/kasirapp/pos-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== SETTING DTOs ==========

type PayrollSettingResponse struct {
	ID                      string          `json:"id,omitempty"`
	TenantID                string          `json:"tenant_id"`
	NormalWorkHoursPerDay   decimal.Decimal `json:"normal_work_hours_per_day"`
	NormalWorkHoursPerMonth decimal.Decimal `json:"normal_work_hours_per_month"`
	OvertimeRate1           decimal.Decimal `json:"overtime_rate_1"`
	OvertimeRate2           decimal.Decimal `json:"overtime_rate_2"`
	OvertimeRateWeekend1    decimal.Decimal `json:"overtime_rate_weekend_1"`
	OvertimeRateWeekend2    decimal.Decimal `json:"overtime_rate_weekend_2"`
	OvertimeRateWeekend3    decimal.Decimal `json:"overtime_rate_weekend_3"`
}

type UpdatePayrollSettingRequest struct {
	NormalWorkHoursPerDay   *decimal.Decimal `json:"normal_work_hours_per_day,omitempty"`
	NormalWorkHoursPerMonth *decimal.Decimal `json:"normal_work_hours_per_month,omitempty"`
	OvertimeRate1           *decimal.Decimal `json:"overtime_rate_1,omitempty"`
	OvertimeRate2           *decimal.Decimal `json:"overtime_rate_2,omitempty"`
	OvertimeRateWeekend1    *decimal.Decimal `json:"overtime_rate_weekend_1,omitempty"`
	OvertimeRateWeekend2    *decimal.Decimal `json:"overtime_rate_weekend_2,omitempty"`
	OvertimeRateWeekend3    *decimal.Decimal `json:"overtime_rate_weekend_3,omitempty"`
}

func (r *UpdatePayrollSettingRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.NormalWorkHoursPerDay != nil && !r.NormalWorkHoursPerDay.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "normal_work_hours_per_day", Message: "must be positive"})
	}
	if r.NormalWorkHoursPerMonth != nil && !r.NormalWorkHoursPerMonth.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "normal_work_hours_per_month", Message: "must be positive"})
	}

	one := decimal.NewFromInt(1)
	multipliers := map[string]*decimal.Decimal{
		"overtime_rate_1":         r.OvertimeRate1,
		"overtime_rate_2":         r.OvertimeRate2,
		"overtime_rate_weekend_1": r.OvertimeRateWeekend1,
		"overtime_rate_weekend_2": r.OvertimeRateWeekend2,
		"overtime_rate_weekend_3": r.OvertimeRateWeekend3,
	}
	for field, rate := range multipliers {
		if rate != nil && rate.LessThan(one) {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be a multiplier of at least 1"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== PERIOD DTOs ==========

type CreatePayrollPeriodRequest struct {
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
}

func (r *CreatePayrollPeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(r.PeriodStart)
	if r.PeriodStart == "" || !startOK {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "must be a date in YYYY-MM-DD format"})
	}
	end, endOK := validator.IsValidDate(r.PeriodEnd)
	if r.PeriodEnd == "" || !endOK {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must be a date in YYYY-MM-DD format"})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must not be before period_start"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayrollPeriodResponse struct {
	ID          string  `json:"id"`
	TenantID    string  `json:"tenant_id"`
	PeriodStart string  `json:"period_start"`
	PeriodEnd   string  `json:"period_end"`
	IsFinalized bool    `json:"is_finalized"`
	FinalizedAt *string `json:"finalized_at,omitempty"`
}

// ========== CALCULATION DTOs ==========

// CalculatePayrollRequest selects one of two calculation modes: a
// period id (actual attendance) or a manually supplied hour count.
type CalculatePayrollRequest struct {
	StaffID          string           `json:"staff_id"`
	PeriodID         *string          `json:"period_id,omitempty"`
	TotalHours       *decimal.Decimal `json:"total_hours,omitempty"`
	BonusAmount      decimal.Decimal  `json:"bonus_amount"`
	DeductionsAmount decimal.Decimal  `json:"deductions_amount"`
}

func (r *CalculatePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{Field: "staff_id", Message: "is required"})
	}
	if r.PeriodID == nil && r.TotalHours == nil {
		errs = append(errs, validator.ValidationError{Field: "period_id", Message: "either period_id or total_hours is required"})
	}
	if r.PeriodID != nil && r.TotalHours != nil {
		errs = append(errs, validator.ValidationError{Field: "total_hours", Message: "cannot be combined with period_id"})
	}
	if r.TotalHours != nil && r.TotalHours.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "total_hours", Message: "must be non-negative"})
	}
	if r.BonusAmount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "bonus_amount", Message: "must be non-negative"})
	}
	if r.DeductionsAmount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "deductions_amount", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayBreakdownResponse struct {
	StaffID          string          `json:"staff_id"`
	BasicSalary      decimal.Decimal `json:"basic_salary"`
	FixedAllowance   decimal.Decimal `json:"fixed_allowance"`
	HourlyRate       decimal.Decimal `json:"hourly_rate"`
	TotalHours       decimal.Decimal `json:"total_hours"`
	NormalWorkDays   int             `json:"normal_work_days"`
	OvertimeHours    decimal.Decimal `json:"overtime_hours"`
	OvertimePay      decimal.Decimal `json:"overtime_pay"`
	BonusAmount      decimal.Decimal `json:"bonus_amount"`
	DeductionsAmount decimal.Decimal `json:"deductions_amount"`
	TakeHomePay      decimal.Decimal `json:"take_home_pay"`
}

// ========== DETAIL DTOs ==========

type UpsertPayrollDetailRequest struct {
	PeriodID         string          `json:"-"`
	StaffID          string          `json:"-"`
	BonusAmount      decimal.Decimal `json:"bonus_amount"`
	DeductionsAmount decimal.Decimal `json:"deductions_amount"`
}

func (r *UpsertPayrollDetailRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PeriodID) {
		errs = append(errs, validator.ValidationError{Field: "period_id", Message: "is required"})
	}
	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{Field: "staff_id", Message: "is required"})
	}
	if r.BonusAmount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "bonus_amount", Message: "must be non-negative"})
	}
	if r.DeductionsAmount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "deductions_amount", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayrollDetailResponse struct {
	ID                   string          `json:"id"`
	PayrollPeriodID      string          `json:"payroll_period_id"`
	StaffID              string          `json:"staff_id"`
	StaffUsername        *string         `json:"staff_username,omitempty"`
	BasicSalaryAmount    decimal.Decimal `json:"basic_salary_amount"`
	FixedAllowanceAmount decimal.Decimal `json:"fixed_allowance_amount"`
	TotalHours           decimal.Decimal `json:"total_hours"`
	NormalWorkDays       int             `json:"normal_work_days"`
	OvertimeHours        decimal.Decimal `json:"overtime_hours"`
	OvertimePay          decimal.Decimal `json:"overtime_pay"`
	BonusAmount          decimal.Decimal `json:"bonus_amount"`
	DeductionsAmount     decimal.Decimal `json:"deductions_amount"`
	TakeHomePay          decimal.Decimal `json:"take_home_pay"`
	IsPaid               bool            `json:"is_paid"`
	PaidAt               *string         `json:"paid_at,omitempty"`
}
