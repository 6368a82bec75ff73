package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kasirapp/pos-backend-go/internal/domain/staff"
	"github.com/kasirapp/pos-backend-go/internal/pkg/database"
)

type salaryRepository struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) staff.SalaryRepository {
	return &salaryRepository{db: db}
}

func (r *salaryRepository) GetByStaffID(ctx context.Context, staffID string, tenantID string) (staff.Salary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.staff_id, s.basic_salary, s.fixed_allowance, s.created_at, s.updated_at
		FROM salaries s
		JOIN staff st ON st.id = s.staff_id
		WHERE s.staff_id = $1 AND st.tenant_id = $2
	`

	var sal staff.Salary
	err := q.QueryRow(ctx, query, staffID, tenantID).Scan(
		&sal.ID, &sal.StaffID, &sal.BasicSalary, &sal.FixedAllowance, &sal.CreatedAt, &sal.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staff.Salary{}, staff.ErrSalaryNotFound
		}
		return staff.Salary{}, fmt.Errorf("failed to get salary: %w", err)
	}

	return sal, nil
}
