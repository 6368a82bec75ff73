package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kasirapp/pos-backend-go/internal/domain/payroll"
	"github.com/kasirapp/pos-backend-go/internal/pkg/database"
)

type payrollPeriodRepository struct {
	db *database.DB
}

func NewPayrollPeriodRepository(db *database.DB) payroll.PayrollPeriodRepository {
	return &payrollPeriodRepository{db: db}
}

func (r *payrollPeriodRepository) Create(ctx context.Context, period payroll.PayrollPeriod) (payroll.PayrollPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_periods (tenant_id, period_start, period_end, is_finalized)
		VALUES ($1, $2, $3, false)
		RETURNING id, tenant_id, period_start, period_end, is_finalized, finalized_at, created_at, updated_at
	`

	var p payroll.PayrollPeriod
	err := q.QueryRow(ctx, query, period.TenantID, period.PeriodStart, period.PeriodEnd).Scan(
		&p.ID, &p.TenantID, &p.PeriodStart, &p.PeriodEnd, &p.IsFinalized, &p.FinalizedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return payroll.PayrollPeriod{}, fmt.Errorf("failed to create payroll period: %w", err)
	}

	return p, nil
}

func (r *payrollPeriodRepository) GetByID(ctx context.Context, id string, tenantID string) (payroll.PayrollPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, tenant_id, period_start, period_end, is_finalized, finalized_at, created_at, updated_at
		FROM payroll_periods
		WHERE id = $1 AND tenant_id = $2
	`

	var p payroll.PayrollPeriod
	err := q.QueryRow(ctx, query, id, tenantID).Scan(
		&p.ID, &p.TenantID, &p.PeriodStart, &p.PeriodEnd, &p.IsFinalized, &p.FinalizedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollPeriod{}, payroll.ErrPeriodNotFound
		}
		return payroll.PayrollPeriod{}, fmt.Errorf("failed to get payroll period: %w", err)
	}

	return p, nil
}

func (r *payrollPeriodRepository) ListByTenantID(ctx context.Context, tenantID string) ([]payroll.PayrollPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, tenant_id, period_start, period_end, is_finalized, finalized_at, created_at, updated_at
		FROM payroll_periods
		WHERE tenant_id = $1
		ORDER BY period_start DESC
	`

	rows, err := q.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll periods: %w", err)
	}
	defer rows.Close()

	var periods []payroll.PayrollPeriod
	for rows.Next() {
		var p payroll.PayrollPeriod
		if err := rows.Scan(
			&p.ID, &p.TenantID, &p.PeriodStart, &p.PeriodEnd, &p.IsFinalized, &p.FinalizedAt, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payroll period: %w", err)
		}
		periods = append(periods, p)
	}

	return periods, rows.Err()
}

func (r *payrollPeriodRepository) MarkFinalized(ctx context.Context, id string, tenantID string, finalizedAt time.Time) (payroll.PayrollPeriod, error) {
	q := GetQuerier(ctx, r.db)

	// The is_finalized = false predicate makes the OPEN -> FINALIZED
	// transition conditional: of two concurrent finalize calls only one
	// sees a row here.
	query := `
		UPDATE payroll_periods
		SET is_finalized = true, finalized_at = $3, updated_at = NOW()
		WHERE id = $1 AND tenant_id = $2 AND is_finalized = false
		RETURNING id, tenant_id, period_start, period_end, is_finalized, finalized_at, created_at, updated_at
	`

	var p payroll.PayrollPeriod
	err := q.QueryRow(ctx, query, id, tenantID, finalizedAt).Scan(
		&p.ID, &p.TenantID, &p.PeriodStart, &p.PeriodEnd, &p.IsFinalized, &p.FinalizedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Either the period does not exist or it is already
			// finalized; look again to tell the two apart.
			existing, getErr := r.GetByID(ctx, id, tenantID)
			if getErr != nil {
				return payroll.PayrollPeriod{}, getErr
			}
			if existing.IsFinalized {
				return payroll.PayrollPeriod{}, payroll.ErrPeriodFinalized
			}
			return payroll.PayrollPeriod{}, payroll.ErrPeriodNotFound
		}
		return payroll.PayrollPeriod{}, fmt.Errorf("failed to finalize payroll period: %w", err)
	}

	return p, nil
}
