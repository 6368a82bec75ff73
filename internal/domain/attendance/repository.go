package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// All methods include tenantID to prevent cross-tenant data access.
type AttendanceRepository interface {
	// ListByStaffAndRange retrieves the attendance rows of one staff
	// member between start and end, both inclusive.
	ListByStaffAndRange(ctx context.Context, staffID string, start, end time.Time, tenantID string) ([]AttendanceRecord, error)
}
