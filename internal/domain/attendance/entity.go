package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type AttendanceRecord struct {
	ID           string
	TenantID     string
	StaffID      string
	Date         time.Time
	CheckInTime  time.Time
	CheckOutTime *time.Time
	// TotalHours is nil while the staff member has not checked out.
	TotalHours *decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsWeekend reports whether the attendance date falls on Saturday or Sunday.
func (a AttendanceRecord) IsWeekend() bool {
	wd := a.Date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// DayHours is one day of recorded work, the unit the payroll calculator
// consumes.
type DayHours struct {
	Date        time.Time
	WorkedHours decimal.Decimal
	Weekend     bool
}

// AggregateDayHours turns raw attendance rows into per-day worked-hours
// facts. Rows without a recorded total (no checkout yet) are skipped;
// they contribute nothing to overtime. The second return value is the
// number of days with recorded hours.
func AggregateDayHours(records []AttendanceRecord) ([]DayHours, int) {
	days := make([]DayHours, 0, len(records))
	for _, rec := range records {
		if rec.TotalHours == nil {
			continue
		}
		days = append(days, DayHours{
			Date:        rec.Date,
			WorkedHours: *rec.TotalHours,
			Weekend:     rec.IsWeekend(),
		})
	}
	return days, len(days)
}
