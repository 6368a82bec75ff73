package payroll

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kasirapp/pos-backend-go/internal/domain/attendance"
	"github.com/kasirapp/pos-backend-go/internal/domain/expense"
	"github.com/kasirapp/pos-backend-go/internal/domain/payroll"
	"github.com/kasirapp/pos-backend-go/internal/domain/staff"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTenant = "tenant-1"

// ========== IN-MEMORY FAKES ==========

type fakeSettingRepo struct {
	settings map[string]payroll.PayrollSetting
}

func (f *fakeSettingRepo) GetByTenantID(ctx context.Context, tenantID string) (payroll.PayrollSetting, error) {
	s, ok := f.settings[tenantID]
	if !ok {
		return payroll.PayrollSetting{}, payroll.ErrSettingNotFound
	}
	return s, nil
}

func (f *fakeSettingRepo) Upsert(ctx context.Context, setting payroll.PayrollSetting) (payroll.PayrollSetting, error) {
	if setting.ID == "" {
		setting.ID = uuid.NewString()
	}
	f.settings[setting.TenantID] = setting
	return setting, nil
}

type fakePeriodRepo struct {
	periods map[string]payroll.PayrollPeriod
}

func (f *fakePeriodRepo) Create(ctx context.Context, period payroll.PayrollPeriod) (payroll.PayrollPeriod, error) {
	period.ID = uuid.NewString()
	f.periods[period.ID] = period
	return period, nil
}

func (f *fakePeriodRepo) GetByID(ctx context.Context, id string, tenantID string) (payroll.PayrollPeriod, error) {
	p, ok := f.periods[id]
	if !ok || p.TenantID != tenantID {
		return payroll.PayrollPeriod{}, payroll.ErrPeriodNotFound
	}
	return p, nil
}

func (f *fakePeriodRepo) ListByTenantID(ctx context.Context, tenantID string) ([]payroll.PayrollPeriod, error) {
	var result []payroll.PayrollPeriod
	for _, p := range f.periods {
		if p.TenantID == tenantID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (f *fakePeriodRepo) MarkFinalized(ctx context.Context, id string, tenantID string, finalizedAt time.Time) (payroll.PayrollPeriod, error) {
	p, ok := f.periods[id]
	if !ok || p.TenantID != tenantID {
		return payroll.PayrollPeriod{}, payroll.ErrPeriodNotFound
	}
	if p.IsFinalized {
		return payroll.PayrollPeriod{}, payroll.ErrPeriodFinalized
	}
	p.IsFinalized = true
	p.FinalizedAt = &finalizedAt
	f.periods[id] = p
	return p, nil
}

type fakeDetailRepo struct {
	details map[string]payroll.PayrollDetail // keyed by periodID + "/" + staffID
}

func detailKey(periodID, staffID string) string {
	return periodID + "/" + staffID
}

func (f *fakeDetailRepo) Upsert(ctx context.Context, detail payroll.PayrollDetail) (payroll.PayrollDetail, bool, error) {
	key := detailKey(detail.PayrollPeriodID, detail.StaffID)
	existing, ok := f.details[key]
	if ok {
		detail.ID = existing.ID
		detail.IsPaid = existing.IsPaid
		detail.PaidAt = existing.PaidAt
		detail.StaffUsername = existing.StaffUsername
		f.details[key] = detail
		return detail, false, nil
	}
	detail.ID = uuid.NewString()
	f.details[key] = detail
	return detail, true, nil
}

func (f *fakeDetailRepo) ListByPeriodID(ctx context.Context, periodID string, tenantID string) ([]payroll.PayrollDetail, error) {
	var result []payroll.PayrollDetail
	for _, d := range f.details {
		if d.PayrollPeriodID == periodID && d.TenantID == tenantID {
			result = append(result, d)
		}
	}
	return result, nil
}

func (f *fakeDetailRepo) MarkPaid(ctx context.Context, periodID string, tenantID string, paidAt time.Time) error {
	for key, d := range f.details {
		if d.PayrollPeriodID == periodID && d.TenantID == tenantID {
			d.IsPaid = true
			d.PaidAt = &paidAt
			f.details[key] = d
		}
	}
	return nil
}

type fakeStaffRepo struct {
	staff map[string]staff.Staff
}

func (f *fakeStaffRepo) GetByID(ctx context.Context, id string, tenantID string) (staff.Staff, error) {
	s, ok := f.staff[id]
	if !ok || s.TenantID != tenantID {
		return staff.Staff{}, staff.ErrStaffNotFound
	}
	return s, nil
}

type fakeSalaryRepo struct {
	salaries map[string]staff.Salary
}

func (f *fakeSalaryRepo) GetByStaffID(ctx context.Context, staffID string, tenantID string) (staff.Salary, error) {
	s, ok := f.salaries[staffID]
	if !ok {
		return staff.Salary{}, staff.ErrSalaryNotFound
	}
	return s, nil
}

type fakeAttendanceRepo struct {
	records []attendance.AttendanceRecord
}

func (f *fakeAttendanceRepo) ListByStaffAndRange(ctx context.Context, staffID string, start, end time.Time, tenantID string) ([]attendance.AttendanceRecord, error) {
	var result []attendance.AttendanceRecord
	for _, r := range f.records {
		if r.StaffID != staffID || r.TenantID != tenantID {
			continue
		}
		if r.Date.Before(start) || r.Date.After(end) {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

type fakeCategoryRepo struct {
	categories map[string]expense.ExpenseCategory // keyed by code
}

func (f *fakeCategoryRepo) GetByCode(ctx context.Context, code string, tenantID string) (expense.ExpenseCategory, error) {
	c, ok := f.categories[code]
	if !ok || c.TenantID != tenantID {
		return expense.ExpenseCategory{}, expense.ErrCategoryNotFound
	}
	return c, nil
}

func (f *fakeCategoryRepo) Create(ctx context.Context, category expense.ExpenseCategory) (expense.ExpenseCategory, error) {
	category.ID = uuid.NewString()
	f.categories[category.Code] = category
	return category, nil
}

type fakeExpenseRepo struct {
	expenses []expense.Expense
	// failAfter makes Create fail once this many rows exist, simulating
	// a mid-transaction storage failure.
	failAfter int
}

func (f *fakeExpenseRepo) Create(ctx context.Context, exp expense.Expense) (expense.Expense, error) {
	if f.failAfter > 0 && len(f.expenses) >= f.failAfter {
		return expense.Expense{}, errors.New("storage failure")
	}
	exp.ID = uuid.NewString()
	f.expenses = append(f.expenses, exp)
	return exp, nil
}

// fakeTxRunner snapshots every store before running fn and restores the
// snapshots when fn fails, mimicking a rolled-back transaction.
type fakeTxRunner struct {
	fx *fixture
}

func (f *fakeTxRunner) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	periods := make(map[string]payroll.PayrollPeriod, len(f.fx.periods.periods))
	for k, v := range f.fx.periods.periods {
		periods[k] = v
	}
	details := make(map[string]payroll.PayrollDetail, len(f.fx.details.details))
	for k, v := range f.fx.details.details {
		details[k] = v
	}
	categories := make(map[string]expense.ExpenseCategory, len(f.fx.categories.categories))
	for k, v := range f.fx.categories.categories {
		categories[k] = v
	}
	expenses := make([]expense.Expense, len(f.fx.expenses.expenses))
	copy(expenses, f.fx.expenses.expenses)

	if err := fn(ctx); err != nil {
		f.fx.periods.periods = periods
		f.fx.details.details = details
		f.fx.categories.categories = categories
		f.fx.expenses.expenses = expenses
		return err
	}
	return nil
}

// ========== FIXTURE ==========

type fixture struct {
	settings   *fakeSettingRepo
	periods    *fakePeriodRepo
	details    *fakeDetailRepo
	staff      *fakeStaffRepo
	salaries   *fakeSalaryRepo
	attendance *fakeAttendanceRepo
	categories *fakeCategoryRepo
	expenses   *fakeExpenseRepo
	svc        payroll.PayrollService
}

func newFixture() *fixture {
	fx := &fixture{
		settings:   &fakeSettingRepo{settings: map[string]payroll.PayrollSetting{}},
		periods:    &fakePeriodRepo{periods: map[string]payroll.PayrollPeriod{}},
		details:    &fakeDetailRepo{details: map[string]payroll.PayrollDetail{}},
		staff:      &fakeStaffRepo{staff: map[string]staff.Staff{}},
		salaries:   &fakeSalaryRepo{salaries: map[string]staff.Salary{}},
		attendance: &fakeAttendanceRepo{},
		categories: &fakeCategoryRepo{categories: map[string]expense.ExpenseCategory{}},
		expenses:   &fakeExpenseRepo{},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	fx.svc = NewPayrollService(
		&fakeTxRunner{fx: fx},
		logger,
		fx.settings,
		fx.periods,
		fx.details,
		fx.staff,
		fx.salaries,
		fx.attendance,
		fx.categories,
		fx.expenses,
	)
	return fx
}

// seedSetting stores clean pay rules whose overtime threshold divides
// evenly: 8-hour days, 160 monthly hours.
func (fx *fixture) seedSetting() {
	fx.settings.settings[testTenant] = payroll.PayrollSetting{
		ID:                      uuid.NewString(),
		TenantID:                testTenant,
		NormalWorkHoursPerDay:   decimal.NewFromInt(8),
		NormalWorkHoursPerMonth: decimal.NewFromInt(160),
		OvertimeRate1:           decimal.NewFromFloat(1.5),
		OvertimeRate2:           decimal.NewFromInt(2),
		OvertimeRateWeekend1:    decimal.NewFromInt(2),
		OvertimeRateWeekend2:    decimal.NewFromInt(3),
		OvertimeRateWeekend3:    decimal.NewFromInt(4),
	}
}

func (fx *fixture) seedStaff(id, username string, basicSalary, allowance int64) {
	fx.staff.staff[id] = staff.Staff{
		ID:       id,
		TenantID: testTenant,
		Username: username,
		IsActive: true,
	}
	fx.salaries.salaries[id] = staff.Salary{
		ID:             uuid.NewString(),
		StaffID:        id,
		BasicSalary:    decimal.NewFromInt(basicSalary),
		FixedAllowance: decimal.NewFromInt(allowance),
	}
}

func (fx *fixture) seedPeriod(start, end string) string {
	startDate, _ := time.Parse("2006-01-02", start)
	endDate, _ := time.Parse("2006-01-02", end)
	id := uuid.NewString()
	fx.periods.periods[id] = payroll.PayrollPeriod{
		ID:          id,
		TenantID:    testTenant,
		PeriodStart: startDate,
		PeriodEnd:   endDate,
	}
	return id
}

func (fx *fixture) seedAttendance(staffID, date, totalHours string) {
	d, _ := time.Parse("2006-01-02", date)
	hours := decimal.RequireFromString(totalHours)
	fx.attendance.records = append(fx.attendance.records, attendance.AttendanceRecord{
		ID:         uuid.NewString(),
		TenantID:   testTenant,
		StaffID:    staffID,
		Date:       d,
		TotalHours: &hours,
	})
}

// ========== SETTINGS ==========

func TestPayrollService_GetSetting_Defaults(t *testing.T) {
	fx := newFixture()

	resp, err := fx.svc.GetSetting(context.Background(), testTenant)
	require.NoError(t, err)

	assert.Equal(t, testTenant, resp.TenantID)
	assert.True(t, resp.NormalWorkHoursPerDay.Equal(decimal.NewFromInt(7)))
	assert.True(t, resp.NormalWorkHoursPerMonth.Equal(decimal.NewFromInt(173)))
	assert.True(t, resp.OvertimeRate1.Equal(decimal.NewFromFloat(1.5)))
	assert.True(t, resp.OvertimeRateWeekend3.Equal(decimal.NewFromInt(4)))
}

func TestPayrollService_UpdateSetting_PartialMerge(t *testing.T) {
	fx := newFixture()
	newRate := decimal.NewFromFloat(1.75)

	resp, err := fx.svc.UpdateSetting(context.Background(), testTenant, payroll.UpdatePayrollSettingRequest{
		OvertimeRate1: &newRate,
	})
	require.NoError(t, err)

	// The changed field takes the new value, untouched fields keep the
	// defaults, and the merged result is persisted.
	assert.True(t, resp.OvertimeRate1.Equal(newRate))
	assert.True(t, resp.NormalWorkHoursPerDay.Equal(decimal.NewFromInt(7)))
	assert.True(t, resp.OvertimeRateWeekend2.Equal(decimal.NewFromInt(3)))

	stored, ok := fx.settings.settings[testTenant]
	require.True(t, ok)
	assert.True(t, stored.OvertimeRate1.Equal(newRate))
}

func TestPayrollService_UpdateSetting_Invalid(t *testing.T) {
	fx := newFixture()
	bad := decimal.NewFromFloat(0.5)

	_, err := fx.svc.UpdateSetting(context.Background(), testTenant, payroll.UpdatePayrollSettingRequest{
		OvertimeRate2: &bad,
	})
	assert.Error(t, err)
	assert.Empty(t, fx.settings.settings)
}

// ========== PERIODS ==========

func TestPayrollService_CreatePeriod(t *testing.T) {
	fx := newFixture()

	resp, err := fx.svc.CreatePeriod(context.Background(), testTenant, payroll.CreatePayrollPeriodRequest{
		PeriodStart: "2026-03-01",
		PeriodEnd:   "2026-03-31",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "2026-03-01", resp.PeriodStart)
	assert.Equal(t, "2026-03-31", resp.PeriodEnd)
	assert.False(t, resp.IsFinalized)
	assert.Nil(t, resp.FinalizedAt)
}

func TestPayrollService_CreatePeriod_InvalidRange(t *testing.T) {
	fx := newFixture()

	_, err := fx.svc.CreatePeriod(context.Background(), testTenant, payroll.CreatePayrollPeriodRequest{
		PeriodStart: "2026-03-31",
		PeriodEnd:   "2026-03-01",
	})
	assert.Error(t, err)
	assert.Empty(t, fx.periods.periods)
}

// ========== CALCULATION ==========

func TestPayrollService_Calculate_StaffNotFound(t *testing.T) {
	fx := newFixture()
	fx.seedSetting()
	hours := decimal.NewFromInt(170)

	_, err := fx.svc.Calculate(context.Background(), testTenant, payroll.CalculatePayrollRequest{
		StaffID:    "ghost",
		TotalHours: &hours,
	})
	assert.ErrorIs(t, err, staff.ErrStaffNotFound)
}

func TestPayrollService_Calculate_ManualMode(t *testing.T) {
	fx := newFixture()
	fx.seedSetting()
	fx.seedStaff("staff-1", "alice", 1600000, 0) // hourly rate 10000
	hours := decimal.NewFromInt(163)             // 3h over the 160h threshold

	resp, err := fx.svc.Calculate(context.Background(), testTenant, payroll.CalculatePayrollRequest{
		StaffID:     "staff-1",
		TotalHours:  &hours,
		BonusAmount: decimal.NewFromInt(100000),
	})
	require.NoError(t, err)

	assert.Equal(t, "staff-1", resp.StaffID)
	assert.Equal(t, 20, resp.NormalWorkDays)
	assert.True(t, resp.OvertimeHours.Equal(decimal.NewFromInt(3)), "overtime hours = %s", resp.OvertimeHours)
	// 1h x 10000 x 1.5 + 2h x 10000 x 2
	assert.True(t, resp.OvertimePay.Equal(decimal.NewFromInt(55000)), "overtime pay = %s", resp.OvertimePay)
	assert.True(t, resp.TakeHomePay.Equal(decimal.NewFromInt(1755000)), "take home = %s", resp.TakeHomePay)
}

func TestPayrollService_Calculate_PeriodMode(t *testing.T) {
	fx := newFixture()
	fx.seedSetting()
	fx.seedStaff("staff-1", "alice", 1600000, 0) // hourly rate 10000
	periodID := fx.seedPeriod("2026-03-01", "2026-03-31")

	fx.seedAttendance("staff-1", "2026-03-02", "8")    // Monday, no OT
	fx.seedAttendance("staff-1", "2026-03-03", "10")   // Tuesday, 2h OT -> 35000
	fx.seedAttendance("staff-1", "2026-03-07", "10.5") // Saturday, 2.5h OT -> 70000
	fx.seedAttendance("staff-1", "2026-04-01", "12")   // outside the period, ignored

	resp, err := fx.svc.Calculate(context.Background(), testTenant, payroll.CalculatePayrollRequest{
		StaffID:  "staff-1",
		PeriodID: &periodID,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.NormalWorkDays)
	assert.True(t, resp.TotalHours.Equal(decimal.RequireFromString("28.5")), "total hours = %s", resp.TotalHours)
	assert.True(t, resp.OvertimeHours.Equal(decimal.RequireFromString("4.5")), "overtime hours = %s", resp.OvertimeHours)
	// weekday: 15000 + 1h x 20000; weekend: 20000 + 30000 + 0.5h x 40000
	assert.True(t, resp.OvertimePay.Equal(decimal.NewFromInt(105000)), "overtime pay = %s", resp.OvertimePay)
}

// ========== DETAILS ==========

func TestPayrollService_UpsertDetail_CreateThenUpdate(t *testing.T) {
	fx := newFixture()
	fx.seedSetting()
	fx.seedStaff("staff-1", "alice", 1000000, 1) // hourly rate 6250.00625...
	periodID := fx.seedPeriod("2026-03-01", "2026-03-31")
	fx.seedAttendance("staff-1", "2026-03-02", "8.5") // 0.5h weekday OT

	resp, created, err := fx.svc.UpsertDetail(context.Background(), testTenant, payroll.UpsertPayrollDetailRequest{
		PeriodID:    periodID,
		StaffID:     "staff-1",
		BonusAmount: decimal.NewFromInt(25000),
	})
	require.NoError(t, err)
	assert.True(t, created)

	// Overtime pay lands rounded to 2 decimal places and take-home pay
	// decomposes exactly into the stored components.
	assert.GreaterOrEqual(t, resp.OvertimePay.Exponent(), int32(-2))
	wantTakeHome := resp.BasicSalaryAmount.
		Add(resp.FixedAllowanceAmount).
		Add(resp.OvertimePay).
		Add(resp.BonusAmount).
		Sub(resp.DeductionsAmount)
	assert.True(t, resp.TakeHomePay.Equal(wantTakeHome), "take home %s != components %s", resp.TakeHomePay, wantTakeHome)

	// A second upsert for the same staff and period overwrites in place.
	resp2, created, err := fx.svc.UpsertDetail(context.Background(), testTenant, payroll.UpsertPayrollDetailRequest{
		PeriodID:         periodID,
		StaffID:          "staff-1",
		DeductionsAmount: decimal.NewFromInt(10000),
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, resp.ID, resp2.ID)
	assert.True(t, resp2.BonusAmount.IsZero())
	assert.True(t, resp2.DeductionsAmount.Equal(decimal.NewFromInt(10000)))
	assert.Len(t, fx.details.details, 1)
}

func TestPayrollService_UpsertDetail_PeriodNotFound(t *testing.T) {
	fx := newFixture()
	fx.seedStaff("staff-1", "alice", 1000000, 0)

	_, _, err := fx.svc.UpsertDetail(context.Background(), testTenant, payroll.UpsertPayrollDetailRequest{
		PeriodID: uuid.NewString(),
		StaffID:  "staff-1",
	})
	assert.ErrorIs(t, err, payroll.ErrPeriodNotFound)
}

func TestPayrollService_UpsertDetail_FinalizedPeriod(t *testing.T) {
	fx := newFixture()
	fx.seedStaff("staff-1", "alice", 1000000, 0)
	periodID := fx.seedPeriod("2026-03-01", "2026-03-31")

	now := time.Now()
	p := fx.periods.periods[periodID]
	p.IsFinalized = true
	p.FinalizedAt = &now
	fx.periods.periods[periodID] = p

	_, _, err := fx.svc.UpsertDetail(context.Background(), testTenant, payroll.UpsertPayrollDetailRequest{
		PeriodID: periodID,
		StaffID:  "staff-1",
	})
	assert.ErrorIs(t, err, payroll.ErrPeriodFinalized)
	assert.Empty(t, fx.details.details)
}

func TestPayrollService_ListDetails_Empty(t *testing.T) {
	fx := newFixture()
	periodID := fx.seedPeriod("2026-03-01", "2026-03-31")

	_, err := fx.svc.ListDetails(context.Background(), testTenant, periodID)
	assert.ErrorIs(t, err, payroll.ErrNoDetails)
}

func TestPayrollService_ListDetails_PeriodNotFound(t *testing.T) {
	fx := newFixture()

	_, err := fx.svc.ListDetails(context.Background(), testTenant, uuid.NewString())
	assert.ErrorIs(t, err, payroll.ErrPeriodNotFound)
}

// ========== FINALIZATION ==========

func seedDetail(fx *fixture, periodID, staffID, username string, takeHome int64) {
	name := username
	fx.details.details[detailKey(periodID, staffID)] = payroll.PayrollDetail{
		ID:              uuid.NewString(),
		TenantID:        testTenant,
		PayrollPeriodID: periodID,
		StaffID:         staffID,
		TakeHomePay:     decimal.NewFromInt(takeHome),
		StaffUsername:   &name,
	}
}

func TestPayrollService_Finalize(t *testing.T) {
	fx := newFixture()
	periodID := fx.seedPeriod("2026-03-01", "2026-03-31")
	seedDetail(fx, periodID, "staff-1", "alice", 1755000)
	seedDetail(fx, periodID, "staff-2", "bob", 2100000)

	resp, err := fx.svc.Finalize(context.Background(), testTenant, periodID)
	require.NoError(t, err)

	assert.True(t, resp.IsFinalized)
	assert.NotNil(t, resp.FinalizedAt)

	// The salary category is created on first use, private to the tenant.
	category, ok := fx.categories.categories[expense.SalaryCategoryCode]
	require.True(t, ok)
	assert.Equal(t, expense.SalaryCategoryName, category.Name)
	assert.True(t, category.IsPrivate)

	// One ledger expense per detail, amount equal to the take-home pay.
	require.Len(t, fx.expenses.expenses, 2)
	byDescription := map[string]expense.Expense{}
	for _, e := range fx.expenses.expenses {
		byDescription[e.Description] = e
	}
	alice, ok := byDescription["Gaji - alice"]
	require.True(t, ok)
	assert.True(t, alice.Amount.Equal(decimal.NewFromInt(1755000)))
	assert.Equal(t, expense.PaymentTypeCash, alice.PaymentType)
	assert.Equal(t, category.ID, alice.CategoryID)

	bob, ok := byDescription["Gaji - bob"]
	require.True(t, ok)
	assert.True(t, bob.Amount.Equal(decimal.NewFromInt(2100000)))

	// Every detail of the period is stamped paid.
	for _, d := range fx.details.details {
		assert.True(t, d.IsPaid)
		assert.NotNil(t, d.PaidAt)
	}
}

func TestPayrollService_Finalize_ReusesCategory(t *testing.T) {
	fx := newFixture()
	existing := expense.ExpenseCategory{
		ID:        uuid.NewString(),
		TenantID:  testTenant,
		Name:      expense.SalaryCategoryName,
		Code:      expense.SalaryCategoryCode,
		IsPrivate: true,
	}
	fx.categories.categories[existing.Code] = existing

	periodID := fx.seedPeriod("2026-03-01", "2026-03-31")
	seedDetail(fx, periodID, "staff-1", "alice", 1000000)

	_, err := fx.svc.Finalize(context.Background(), testTenant, periodID)
	require.NoError(t, err)

	require.Len(t, fx.expenses.expenses, 1)
	assert.Equal(t, existing.ID, fx.expenses.expenses[0].CategoryID)
	assert.Len(t, fx.categories.categories, 1)
}

func TestPayrollService_Finalize_Twice(t *testing.T) {
	fx := newFixture()
	periodID := fx.seedPeriod("2026-03-01", "2026-03-31")
	seedDetail(fx, periodID, "staff-1", "alice", 1000000)

	_, err := fx.svc.Finalize(context.Background(), testTenant, periodID)
	require.NoError(t, err)

	_, err = fx.svc.Finalize(context.Background(), testTenant, periodID)
	assert.ErrorIs(t, err, payroll.ErrPeriodFinalized)

	// The second call must not duplicate ledger entries.
	assert.Len(t, fx.expenses.expenses, 1)
}

func TestPayrollService_Finalize_PeriodNotFound(t *testing.T) {
	fx := newFixture()

	_, err := fx.svc.Finalize(context.Background(), testTenant, uuid.NewString())
	assert.ErrorIs(t, err, payroll.ErrPeriodNotFound)
}

func TestPayrollService_Finalize_RollsBackOnFailure(t *testing.T) {
	fx := newFixture()
	periodID := fx.seedPeriod("2026-03-01", "2026-03-31")
	seedDetail(fx, periodID, "staff-1", "alice", 1000000)
	seedDetail(fx, periodID, "staff-2", "bob", 2000000)
	fx.expenses.failAfter = 1 // second expense insert fails

	_, err := fx.svc.Finalize(context.Background(), testTenant, periodID)
	require.Error(t, err)

	// Nothing from the failed run survives: the period stays open, no
	// expenses exist, and no detail is marked paid.
	period := fx.periods.periods[periodID]
	assert.False(t, period.IsFinalized)
	assert.Nil(t, period.FinalizedAt)
	assert.Empty(t, fx.expenses.expenses)
	for _, d := range fx.details.details {
		assert.False(t, d.IsPaid)
	}
}
