package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kasirapp/pos-backend-go/internal/domain/staff"
	"github.com/kasirapp/pos-backend-go/internal/pkg/database"
)

type staffRepository struct {
	db *database.DB
}

func NewStaffRepository(db *database.DB) staff.StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) GetByID(ctx context.Context, id string, tenantID string) (staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, tenant_id, username, full_name, is_active, created_at, updated_at
		FROM staff
		WHERE id = $1 AND tenant_id = $2
	`

	var s staff.Staff
	err := q.QueryRow(ctx, query, id, tenantID).Scan(
		&s.ID, &s.TenantID, &s.Username, &s.FullName, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staff.Staff{}, staff.ErrStaffNotFound
		}
		return staff.Staff{}, fmt.Errorf("failed to get staff: %w", err)
	}

	return s, nil
}
