package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kasirapp/pos-backend-go/internal/domain/payroll"
	"github.com/kasirapp/pos-backend-go/internal/pkg/database"
)

type payrollSettingRepository struct {
	db *database.DB
}

func NewPayrollSettingRepository(db *database.DB) payroll.PayrollSettingRepository {
	return &payrollSettingRepository{db: db}
}

func (r *payrollSettingRepository) GetByTenantID(ctx context.Context, tenantID string) (payroll.PayrollSetting, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, tenant_id, normal_work_hours_per_day, normal_work_hours_per_month,
			   overtime_rate_1, overtime_rate_2,
			   overtime_rate_weekend_1, overtime_rate_weekend_2, overtime_rate_weekend_3,
			   created_at, updated_at
		FROM payroll_settings
		WHERE tenant_id = $1
	`

	var s payroll.PayrollSetting
	err := q.QueryRow(ctx, query, tenantID).Scan(
		&s.ID, &s.TenantID, &s.NormalWorkHoursPerDay, &s.NormalWorkHoursPerMonth,
		&s.OvertimeRate1, &s.OvertimeRate2,
		&s.OvertimeRateWeekend1, &s.OvertimeRateWeekend2, &s.OvertimeRateWeekend3,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollSetting{}, payroll.ErrSettingNotFound
		}
		return payroll.PayrollSetting{}, fmt.Errorf("failed to get payroll setting: %w", err)
	}

	return s, nil
}

func (r *payrollSettingRepository) Upsert(ctx context.Context, setting payroll.PayrollSetting) (payroll.PayrollSetting, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_settings (
			tenant_id, normal_work_hours_per_day, normal_work_hours_per_month,
			overtime_rate_1, overtime_rate_2,
			overtime_rate_weekend_1, overtime_rate_weekend_2, overtime_rate_weekend_3
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (tenant_id) DO UPDATE SET
			normal_work_hours_per_day = EXCLUDED.normal_work_hours_per_day,
			normal_work_hours_per_month = EXCLUDED.normal_work_hours_per_month,
			overtime_rate_1 = EXCLUDED.overtime_rate_1,
			overtime_rate_2 = EXCLUDED.overtime_rate_2,
			overtime_rate_weekend_1 = EXCLUDED.overtime_rate_weekend_1,
			overtime_rate_weekend_2 = EXCLUDED.overtime_rate_weekend_2,
			overtime_rate_weekend_3 = EXCLUDED.overtime_rate_weekend_3,
			updated_at = NOW()
		RETURNING id, tenant_id, normal_work_hours_per_day, normal_work_hours_per_month,
			overtime_rate_1, overtime_rate_2,
			overtime_rate_weekend_1, overtime_rate_weekend_2, overtime_rate_weekend_3,
			created_at, updated_at
	`

	var s payroll.PayrollSetting
	err := q.QueryRow(ctx, query,
		setting.TenantID, setting.NormalWorkHoursPerDay, setting.NormalWorkHoursPerMonth,
		setting.OvertimeRate1, setting.OvertimeRate2,
		setting.OvertimeRateWeekend1, setting.OvertimeRateWeekend2, setting.OvertimeRateWeekend3,
	).Scan(
		&s.ID, &s.TenantID, &s.NormalWorkHoursPerDay, &s.NormalWorkHoursPerMonth,
		&s.OvertimeRate1, &s.OvertimeRate2,
		&s.OvertimeRateWeekend1, &s.OvertimeRateWeekend2, &s.OvertimeRateWeekend3,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return payroll.PayrollSetting{}, fmt.Errorf("failed to upsert payroll setting: %w", err)
	}

	return s, nil
}
