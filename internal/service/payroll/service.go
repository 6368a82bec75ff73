package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kasirapp/pos-backend-go/internal/domain/attendance"
	"github.com/kasirapp/pos-backend-go/internal/domain/expense"
	"github.com/kasirapp/pos-backend-go/internal/domain/payroll"
	"github.com/kasirapp/pos-backend-go/internal/domain/staff"
	"github.com/kasirapp/pos-backend-go/internal/pkg/validator"
)

// TxRunner runs a function inside one storage transaction; every
// repository call made with the context it passes to fn joins that
// transaction. Satisfied by postgresql.TxManager.
type TxRunner interface {
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type PayrollServiceImpl struct {
	tx             TxRunner
	logger         *slog.Logger
	settingRepo    payroll.PayrollSettingRepository
	periodRepo     payroll.PayrollPeriodRepository
	detailRepo     payroll.PayrollDetailRepository
	staffRepo      staff.StaffRepository
	salaryRepo     staff.SalaryRepository
	attendanceRepo attendance.AttendanceRepository
	categoryRepo   expense.ExpenseCategoryRepository
	expenseRepo    expense.ExpenseRepository
}

func NewPayrollService(
	tx TxRunner,
	logger *slog.Logger,
	settingRepo payroll.PayrollSettingRepository,
	periodRepo payroll.PayrollPeriodRepository,
	detailRepo payroll.PayrollDetailRepository,
	staffRepo staff.StaffRepository,
	salaryRepo staff.SalaryRepository,
	attendanceRepo attendance.AttendanceRepository,
	categoryRepo expense.ExpenseCategoryRepository,
	expenseRepo expense.ExpenseRepository,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		tx:             tx,
		logger:         logger,
		settingRepo:    settingRepo,
		periodRepo:     periodRepo,
		detailRepo:     detailRepo,
		staffRepo:      staffRepo,
		salaryRepo:     salaryRepo,
		attendanceRepo: attendanceRepo,
		categoryRepo:   categoryRepo,
		expenseRepo:    expenseRepo,
	}
}

// ========== SETTINGS ==========

func (s *PayrollServiceImpl) GetSetting(ctx context.Context, tenantID string) (payroll.PayrollSettingResponse, error) {
	if err := requireIDs(map[string]string{"tenant_id": tenantID}); err != nil {
		return payroll.PayrollSettingResponse{}, err
	}

	setting, err := s.loadSetting(ctx, tenantID)
	if err != nil {
		return payroll.PayrollSettingResponse{}, err
	}

	return toSettingResponse(setting), nil
}

func (s *PayrollServiceImpl) UpdateSetting(ctx context.Context, tenantID string, req payroll.UpdatePayrollSettingRequest) (payroll.PayrollSettingResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollSettingResponse{}, err
	}
	if err := requireIDs(map[string]string{"tenant_id": tenantID}); err != nil {
		return payroll.PayrollSettingResponse{}, err
	}

	current, err := s.loadSetting(ctx, tenantID)
	if err != nil {
		return payroll.PayrollSettingResponse{}, err
	}

	if req.NormalWorkHoursPerDay != nil {
		current.NormalWorkHoursPerDay = *req.NormalWorkHoursPerDay
	}
	if req.NormalWorkHoursPerMonth != nil {
		current.NormalWorkHoursPerMonth = *req.NormalWorkHoursPerMonth
	}
	if req.OvertimeRate1 != nil {
		current.OvertimeRate1 = *req.OvertimeRate1
	}
	if req.OvertimeRate2 != nil {
		current.OvertimeRate2 = *req.OvertimeRate2
	}
	if req.OvertimeRateWeekend1 != nil {
		current.OvertimeRateWeekend1 = *req.OvertimeRateWeekend1
	}
	if req.OvertimeRateWeekend2 != nil {
		current.OvertimeRateWeekend2 = *req.OvertimeRateWeekend2
	}
	if req.OvertimeRateWeekend3 != nil {
		current.OvertimeRateWeekend3 = *req.OvertimeRateWeekend3
	}

	updated, err := s.settingRepo.Upsert(ctx, current)
	if err != nil {
		return payroll.PayrollSettingResponse{}, err
	}

	return toSettingResponse(updated), nil
}

// loadSetting returns the tenant's stored pay rules, falling back to
// the documented defaults when none exist yet.
func (s *PayrollServiceImpl) loadSetting(ctx context.Context, tenantID string) (payroll.PayrollSetting, error) {
	setting, err := s.settingRepo.GetByTenantID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, payroll.ErrSettingNotFound) {
			return payroll.DefaultSetting(tenantID), nil
		}
		return payroll.PayrollSetting{}, err
	}
	return setting, nil
}

// ========== PERIODS ==========

func (s *PayrollServiceImpl) CreatePeriod(ctx context.Context, tenantID string, req payroll.CreatePayrollPeriodRequest) (payroll.PayrollPeriodResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollPeriodResponse{}, err
	}
	if err := requireIDs(map[string]string{"tenant_id": tenantID}); err != nil {
		return payroll.PayrollPeriodResponse{}, err
	}

	start, _ := validator.IsValidDate(req.PeriodStart)
	end, _ := validator.IsValidDate(req.PeriodEnd)

	created, err := s.periodRepo.Create(ctx, payroll.PayrollPeriod{
		TenantID:    tenantID,
		PeriodStart: start,
		PeriodEnd:   end,
	})
	if err != nil {
		return payroll.PayrollPeriodResponse{}, err
	}

	return toPeriodResponse(created), nil
}

func (s *PayrollServiceImpl) ListPeriods(ctx context.Context, tenantID string) ([]payroll.PayrollPeriodResponse, error) {
	if err := requireIDs(map[string]string{"tenant_id": tenantID}); err != nil {
		return nil, err
	}

	periods, err := s.periodRepo.ListByTenantID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.PayrollPeriodResponse, 0, len(periods))
	for _, p := range periods {
		result = append(result, toPeriodResponse(p))
	}
	return result, nil
}

// ========== CALCULATION ==========

func (s *PayrollServiceImpl) Calculate(ctx context.Context, tenantID string, req payroll.CalculatePayrollRequest) (payroll.PayBreakdownResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayBreakdownResponse{}, err
	}
	if err := requireIDs(map[string]string{"tenant_id": tenantID}); err != nil {
		return payroll.PayBreakdownResponse{}, err
	}

	var breakdown payroll.PayBreakdown
	var err error
	if req.PeriodID != nil {
		breakdown, err = s.calculateForPeriod(ctx, tenantID, req.StaffID, *req.PeriodID, req)
	} else {
		breakdown, err = s.calculateManual(ctx, tenantID, req)
	}
	if err != nil {
		return payroll.PayBreakdownResponse{}, err
	}

	return toBreakdownResponse(req.StaffID, breakdown), nil
}

// calculateForPeriod runs the actual-attendance mode: worked hours come
// from the staff member's attendance rows inside the period, priced day
// by day.
func (s *PayrollServiceImpl) calculateForPeriod(ctx context.Context, tenantID, staffID, periodID string, req payroll.CalculatePayrollRequest) (payroll.PayBreakdown, error) {
	if _, err := s.staffRepo.GetByID(ctx, staffID, tenantID); err != nil {
		return payroll.PayBreakdown{}, err
	}

	salary, err := s.salaryRepo.GetByStaffID(ctx, staffID, tenantID)
	if err != nil {
		return payroll.PayBreakdown{}, err
	}

	period, err := s.periodRepo.GetByID(ctx, periodID, tenantID)
	if err != nil {
		return payroll.PayBreakdown{}, err
	}

	records, err := s.attendanceRepo.ListByStaffAndRange(ctx, staffID, period.PeriodStart, period.PeriodEnd, tenantID)
	if err != nil {
		return payroll.PayBreakdown{}, err
	}
	days, _ := attendance.AggregateDayHours(records)

	setting, err := s.loadSetting(ctx, tenantID)
	if err != nil {
		return payroll.PayBreakdown{}, err
	}

	rs := payroll.NewRateSchedule(setting)
	return payroll.CalculateFromAttendance(rs, salary.BasicSalary, salary.FixedAllowance, days, req.BonusAmount, req.DeductionsAmount), nil
}

// calculateManual runs the manual mode: the caller supplies a single
// total-hours figure and overtime is priced with weekday tiers only.
func (s *PayrollServiceImpl) calculateManual(ctx context.Context, tenantID string, req payroll.CalculatePayrollRequest) (payroll.PayBreakdown, error) {
	if _, err := s.staffRepo.GetByID(ctx, req.StaffID, tenantID); err != nil {
		return payroll.PayBreakdown{}, err
	}

	salary, err := s.salaryRepo.GetByStaffID(ctx, req.StaffID, tenantID)
	if err != nil {
		return payroll.PayBreakdown{}, err
	}

	setting, err := s.loadSetting(ctx, tenantID)
	if err != nil {
		return payroll.PayBreakdown{}, err
	}

	rs := payroll.NewRateSchedule(setting)
	return payroll.CalculateFromTotalHours(rs, salary.BasicSalary, salary.FixedAllowance, *req.TotalHours, req.BonusAmount, req.DeductionsAmount), nil
}

// ========== DETAILS ==========

func (s *PayrollServiceImpl) UpsertDetail(ctx context.Context, tenantID string, req payroll.UpsertPayrollDetailRequest) (payroll.PayrollDetailResponse, bool, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollDetailResponse{}, false, err
	}
	if err := requireIDs(map[string]string{"tenant_id": tenantID}); err != nil {
		return payroll.PayrollDetailResponse{}, false, err
	}

	period, err := s.periodRepo.GetByID(ctx, req.PeriodID, tenantID)
	if err != nil {
		return payroll.PayrollDetailResponse{}, false, err
	}
	if period.IsFinalized {
		return payroll.PayrollDetailResponse{}, false, payroll.ErrPeriodFinalized
	}

	breakdown, err := s.calculateForPeriod(ctx, tenantID, req.StaffID, req.PeriodID, payroll.CalculatePayrollRequest{
		StaffID:          req.StaffID,
		BonusAmount:      req.BonusAmount,
		DeductionsAmount: req.DeductionsAmount,
	})
	if err != nil {
		return payroll.PayrollDetailResponse{}, false, err
	}

	// Overtime pay is rounded to the currency's minor unit here and
	// nowhere earlier, and take-home pay is re-derived from the stored
	// components so the invariant holds exactly on the row.
	overtimePay := breakdown.OvertimePay.Round(2)
	takeHome := breakdown.BasicSalary.
		Add(breakdown.FixedAllowance).
		Add(overtimePay).
		Add(req.BonusAmount).
		Sub(req.DeductionsAmount)

	stored, created, err := s.detailRepo.Upsert(ctx, payroll.PayrollDetail{
		TenantID:             tenantID,
		PayrollPeriodID:      req.PeriodID,
		StaffID:              req.StaffID,
		BasicSalaryAmount:    breakdown.BasicSalary,
		FixedAllowanceAmount: breakdown.FixedAllowance,
		TotalHours:           breakdown.TotalHours,
		NormalWorkDays:       breakdown.NormalWorkDays,
		OvertimeHours:        breakdown.OvertimeHours,
		OvertimePay:          overtimePay,
		BonusAmount:          req.BonusAmount,
		DeductionsAmount:     req.DeductionsAmount,
		TakeHomePay:          takeHome,
	})
	if err != nil {
		return payroll.PayrollDetailResponse{}, false, err
	}

	return toDetailResponse(stored), created, nil
}

func (s *PayrollServiceImpl) ListDetails(ctx context.Context, tenantID string, periodID string) ([]payroll.PayrollDetailResponse, error) {
	if err := requireIDs(map[string]string{"tenant_id": tenantID, "period_id": periodID}); err != nil {
		return nil, err
	}

	if _, err := s.periodRepo.GetByID(ctx, periodID, tenantID); err != nil {
		return nil, err
	}

	details, err := s.detailRepo.ListByPeriodID(ctx, periodID, tenantID)
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, payroll.ErrNoDetails
	}

	result := make([]payroll.PayrollDetailResponse, 0, len(details))
	for _, d := range details {
		result = append(result, toDetailResponse(d))
	}
	return result, nil
}

// ========== FINALIZATION ==========

// Finalize converts every payroll detail of the period into a ledger
// expense entry and locks the period, all inside one transaction. The
// conditional OPEN -> FINALIZED update runs first, so a concurrent
// second call fails with a conflict instead of duplicating expenses.
func (s *PayrollServiceImpl) Finalize(ctx context.Context, tenantID string, periodID string) (payroll.PayrollPeriodResponse, error) {
	if err := requireIDs(map[string]string{"tenant_id": tenantID, "period_id": periodID}); err != nil {
		return payroll.PayrollPeriodResponse{}, err
	}

	if _, err := s.periodRepo.GetByID(ctx, periodID, tenantID); err != nil {
		return payroll.PayrollPeriodResponse{}, err
	}

	now := time.Now()
	var finalized payroll.PayrollPeriod

	err := s.tx.InTransaction(ctx, func(txCtx context.Context) error {
		var err error
		finalized, err = s.periodRepo.MarkFinalized(txCtx, periodID, tenantID, now)
		if err != nil {
			return err
		}

		category, err := s.findOrCreateSalaryCategory(txCtx, tenantID)
		if err != nil {
			return err
		}

		details, err := s.detailRepo.ListByPeriodID(txCtx, periodID, tenantID)
		if err != nil {
			return err
		}

		for _, d := range details {
			staffID := d.StaffID
			name := staffID
			if d.StaffUsername != nil {
				name = *d.StaffUsername
			}

			_, err := s.expenseRepo.Create(txCtx, expense.Expense{
				TenantID:    tenantID,
				CategoryID:  category.ID,
				StaffID:     &staffID,
				Description: fmt.Sprintf("%s - %s", expense.SalaryCategoryName, name),
				Amount:      d.TakeHomePay,
				PaymentType: expense.PaymentTypeCash,
				PaidAt:      now,
			})
			if err != nil {
				return err
			}
		}

		return s.detailRepo.MarkPaid(txCtx, periodID, tenantID, now)
	})
	if err != nil {
		if !errors.Is(err, payroll.ErrPeriodFinalized) && !errors.Is(err, payroll.ErrPeriodNotFound) {
			s.logger.Error("payroll finalize failed, transaction rolled back",
				slog.String("tenant_id", tenantID),
				slog.String("period_id", periodID),
				slog.Any("error", err),
			)
		}
		return payroll.PayrollPeriodResponse{}, err
	}

	return toPeriodResponse(finalized), nil
}

// findOrCreateSalaryCategory returns the tenant's "Gaji" ledger
// category, creating the private category on first use.
func (s *PayrollServiceImpl) findOrCreateSalaryCategory(ctx context.Context, tenantID string) (expense.ExpenseCategory, error) {
	category, err := s.categoryRepo.GetByCode(ctx, expense.SalaryCategoryCode, tenantID)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, expense.ErrCategoryNotFound) {
		return expense.ExpenseCategory{}, err
	}

	return s.categoryRepo.Create(ctx, expense.ExpenseCategory{
		TenantID:  tenantID,
		Name:      expense.SalaryCategoryName,
		Code:      expense.SalaryCategoryCode,
		IsPrivate: true,
	})
}

// ========== HELPERS ==========

func requireIDs(ids map[string]string) error {
	var errs validator.ValidationErrors
	for field, value := range ids {
		if validator.IsEmpty(value) {
			errs = append(errs, validator.ValidationError{Field: field, Message: "is required"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func toSettingResponse(s payroll.PayrollSetting) payroll.PayrollSettingResponse {
	return payroll.PayrollSettingResponse{
		ID:                      s.ID,
		TenantID:                s.TenantID,
		NormalWorkHoursPerDay:   s.NormalWorkHoursPerDay,
		NormalWorkHoursPerMonth: s.NormalWorkHoursPerMonth,
		OvertimeRate1:           s.OvertimeRate1,
		OvertimeRate2:           s.OvertimeRate2,
		OvertimeRateWeekend1:    s.OvertimeRateWeekend1,
		OvertimeRateWeekend2:    s.OvertimeRateWeekend2,
		OvertimeRateWeekend3:    s.OvertimeRateWeekend3,
	}
}

func toPeriodResponse(p payroll.PayrollPeriod) payroll.PayrollPeriodResponse {
	var finalizedAt *string
	if p.FinalizedAt != nil {
		str := p.FinalizedAt.Format(time.RFC3339)
		finalizedAt = &str
	}

	return payroll.PayrollPeriodResponse{
		ID:          p.ID,
		TenantID:    p.TenantID,
		PeriodStart: p.PeriodStart.Format("2006-01-02"),
		PeriodEnd:   p.PeriodEnd.Format("2006-01-02"),
		IsFinalized: p.IsFinalized,
		FinalizedAt: finalizedAt,
	}
}

func toBreakdownResponse(staffID string, b payroll.PayBreakdown) payroll.PayBreakdownResponse {
	return payroll.PayBreakdownResponse{
		StaffID:          staffID,
		BasicSalary:      b.BasicSalary,
		FixedAllowance:   b.FixedAllowance,
		HourlyRate:       b.HourlyRate,
		TotalHours:       b.TotalHours,
		NormalWorkDays:   b.NormalWorkDays,
		OvertimeHours:    b.OvertimeHours,
		OvertimePay:      b.OvertimePay,
		BonusAmount:      b.BonusAmount,
		DeductionsAmount: b.DeductionsAmount,
		TakeHomePay:      b.TakeHomePay,
	}
}

func toDetailResponse(d payroll.PayrollDetail) payroll.PayrollDetailResponse {
	var paidAt *string
	if d.PaidAt != nil {
		str := d.PaidAt.Format(time.RFC3339)
		paidAt = &str
	}

	return payroll.PayrollDetailResponse{
		ID:                   d.ID,
		PayrollPeriodID:      d.PayrollPeriodID,
		StaffID:              d.StaffID,
		StaffUsername:        d.StaffUsername,
		BasicSalaryAmount:    d.BasicSalaryAmount,
		FixedAllowanceAmount: d.FixedAllowanceAmount,
		TotalHours:           d.TotalHours,
		NormalWorkDays:       d.NormalWorkDays,
		OvertimeHours:        d.OvertimeHours,
		OvertimePay:          d.OvertimePay,
		BonusAmount:          d.BonusAmount,
		DeductionsAmount:     d.DeductionsAmount,
		TakeHomePay:          d.TakeHomePay,
		IsPaid:               d.IsPaid,
		PaidAt:               paidAt,
	}
}
