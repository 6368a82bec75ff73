package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/kasirapp/pos-backend-go/internal/domain/attendance"
	"github.com/kasirapp/pos-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) ListByStaffAndRange(ctx context.Context, staffID string, start, end time.Time, tenantID string) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, tenant_id, staff_id, date, check_in_time, check_out_time, total_hours, created_at, updated_at
		FROM attendances
		WHERE staff_id = $1 AND tenant_id = $2 AND date BETWEEN $3 AND $4
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, staffID, tenantID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.AttendanceRecord
	for rows.Next() {
		var rec attendance.AttendanceRecord
		if err := rows.Scan(
			&rec.ID, &rec.TenantID, &rec.StaffID, &rec.Date, &rec.CheckInTime, &rec.CheckOutTime, &rec.TotalHours, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
