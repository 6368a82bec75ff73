package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/kasirapp/pos-backend-go/internal/domain/payroll"
	"github.com/kasirapp/pos-backend-go/internal/pkg/database"
)

type payrollDetailRepository struct {
	db *database.DB
}

func NewPayrollDetailRepository(db *database.DB) payroll.PayrollDetailRepository {
	return &payrollDetailRepository{db: db}
}

func (r *payrollDetailRepository) Upsert(ctx context.Context, detail payroll.PayrollDetail) (payroll.PayrollDetail, bool, error) {
	q := GetQuerier(ctx, r.db)

	// xmax = 0 distinguishes a fresh insert from a conflict-update so
	// the handler can answer 201 vs 200.
	query := `
		INSERT INTO payroll_details (
			tenant_id, payroll_period_id, staff_id,
			basic_salary_amount, fixed_allowance_amount, total_hours, normal_work_days,
			overtime_hours, overtime_pay, bonus_amount, deductions_amount, take_home_pay
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (tenant_id, payroll_period_id, staff_id) DO UPDATE SET
			basic_salary_amount = EXCLUDED.basic_salary_amount,
			fixed_allowance_amount = EXCLUDED.fixed_allowance_amount,
			total_hours = EXCLUDED.total_hours,
			normal_work_days = EXCLUDED.normal_work_days,
			overtime_hours = EXCLUDED.overtime_hours,
			overtime_pay = EXCLUDED.overtime_pay,
			bonus_amount = EXCLUDED.bonus_amount,
			deductions_amount = EXCLUDED.deductions_amount,
			take_home_pay = EXCLUDED.take_home_pay,
			updated_at = NOW()
		RETURNING id, tenant_id, payroll_period_id, staff_id,
			basic_salary_amount, fixed_allowance_amount, total_hours, normal_work_days,
			overtime_hours, overtime_pay, bonus_amount, deductions_amount, take_home_pay,
			is_paid, paid_at, created_at, updated_at, (xmax = 0) AS inserted
	`

	var d payroll.PayrollDetail
	var inserted bool
	err := q.QueryRow(ctx, query,
		detail.TenantID, detail.PayrollPeriodID, detail.StaffID,
		detail.BasicSalaryAmount, detail.FixedAllowanceAmount, detail.TotalHours, detail.NormalWorkDays,
		detail.OvertimeHours, detail.OvertimePay, detail.BonusAmount, detail.DeductionsAmount, detail.TakeHomePay,
	).Scan(
		&d.ID, &d.TenantID, &d.PayrollPeriodID, &d.StaffID,
		&d.BasicSalaryAmount, &d.FixedAllowanceAmount, &d.TotalHours, &d.NormalWorkDays,
		&d.OvertimeHours, &d.OvertimePay, &d.BonusAmount, &d.DeductionsAmount, &d.TakeHomePay,
		&d.IsPaid, &d.PaidAt, &d.CreatedAt, &d.UpdatedAt, &inserted,
	)
	if err != nil {
		return payroll.PayrollDetail{}, false, fmt.Errorf("failed to upsert payroll detail: %w", err)
	}

	return d, inserted, nil
}

func (r *payrollDetailRepository) ListByPeriodID(ctx context.Context, periodID string, tenantID string) ([]payroll.PayrollDetail, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT d.id, d.tenant_id, d.payroll_period_id, d.staff_id,
			   d.basic_salary_amount, d.fixed_allowance_amount, d.total_hours, d.normal_work_days,
			   d.overtime_hours, d.overtime_pay, d.bonus_amount, d.deductions_amount, d.take_home_pay,
			   d.is_paid, d.paid_at, d.created_at, d.updated_at,
			   s.username
		FROM payroll_details d
		JOIN staff s ON s.id = d.staff_id
		WHERE d.payroll_period_id = $1 AND d.tenant_id = $2
		ORDER BY s.username
	`

	rows, err := q.Query(ctx, query, periodID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll details: %w", err)
	}
	defer rows.Close()

	var details []payroll.PayrollDetail
	for rows.Next() {
		var d payroll.PayrollDetail
		if err := rows.Scan(
			&d.ID, &d.TenantID, &d.PayrollPeriodID, &d.StaffID,
			&d.BasicSalaryAmount, &d.FixedAllowanceAmount, &d.TotalHours, &d.NormalWorkDays,
			&d.OvertimeHours, &d.OvertimePay, &d.BonusAmount, &d.DeductionsAmount, &d.TakeHomePay,
			&d.IsPaid, &d.PaidAt, &d.CreatedAt, &d.UpdatedAt,
			&d.StaffUsername,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payroll detail: %w", err)
		}
		details = append(details, d)
	}

	return details, rows.Err()
}

func (r *payrollDetailRepository) MarkPaid(ctx context.Context, periodID string, tenantID string, paidAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_details
		SET is_paid = true, paid_at = $3, updated_at = NOW()
		WHERE payroll_period_id = $1 AND tenant_id = $2
	`

	if _, err := q.Exec(ctx, query, periodID, tenantID, paidAt); err != nil {
		return fmt.Errorf("failed to mark payroll details paid: %w", err)
	}

	return nil
}
