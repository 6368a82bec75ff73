package payroll

import (
	"testing"
	"time"

	"github.com/kasirapp/pos-backend-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func day(date string, worked string, weekend bool) attendance.DayHours {
	d, _ := time.Parse("2006-01-02", date)
	return attendance.DayHours{
		Date:        d,
		WorkedHours: decimal.RequireFromString(worked),
		Weekend:     weekend,
	}
}

func TestCalculateFromAttendance(t *testing.T) {
	rs := defaultSchedule()
	basic := decimal.NewFromInt(1500000)
	allowance := decimal.NewFromInt(230000) // hourly rate 10000

	days := []attendance.DayHours{
		day("2026-03-02", "7.5", false), // 0.5h OT -> 15000
		day("2026-03-03", "9", false),   // 2h OT -> 35000
		day("2026-03-04", "6", false),   // no OT
		day("2026-03-07", "10", true),   // 3h weekend OT -> 90000
	}
	bonus := decimal.NewFromInt(50000)
	deductions := decimal.NewFromInt(20000)

	b := CalculateFromAttendance(rs, basic, allowance, days, bonus, deductions)

	assert.True(t, b.HourlyRate.Equal(decimal.NewFromInt(10000)), "hourly rate = %s", b.HourlyRate)
	assert.True(t, b.TotalHours.Equal(decimal.RequireFromString("32.5")), "total hours = %s", b.TotalHours)
	assert.Equal(t, 4, b.NormalWorkDays)
	assert.True(t, b.OvertimeHours.Equal(decimal.RequireFromString("5.5")), "overtime hours = %s", b.OvertimeHours)
	assert.True(t, b.OvertimePay.Equal(decimal.NewFromInt(140000)), "overtime pay = %s", b.OvertimePay)

	wantTakeHome := decimal.NewFromInt(1900000) // 1730000 + 140000 + 50000 - 20000
	assert.True(t, b.TakeHomePay.Equal(wantTakeHome), "take home = %s", b.TakeHomePay)
}

// The per-day pricing must make a multi-day run equal the sum of the
// same days priced one at a time.
func TestCalculateFromAttendance_SumsPerDay(t *testing.T) {
	rs := defaultSchedule()
	basic := decimal.NewFromInt(2000000)
	allowance := decimal.NewFromInt(100000)
	zero := decimal.Zero

	days := []attendance.DayHours{
		day("2026-03-02", "8.25", false),
		day("2026-03-03", "7", false),
		day("2026-03-07", "11.5", true),
		day("2026-03-08", "9", true),
		day("2026-03-09", "12", false),
	}

	whole := CalculateFromAttendance(rs, basic, allowance, days, zero, zero)

	summed := decimal.Zero
	for _, d := range days {
		single := CalculateFromAttendance(rs, basic, allowance, []attendance.DayHours{d}, zero, zero)
		summed = summed.Add(single.OvertimePay)
	}

	assert.True(t, whole.OvertimePay.Equal(summed),
		"whole run overtime pay %s != per-day sum %s", whole.OvertimePay, summed)
}

func TestCalculateFromAttendance_NoDays(t *testing.T) {
	rs := defaultSchedule()
	basic := decimal.NewFromInt(1500000)
	allowance := decimal.Zero

	b := CalculateFromAttendance(rs, basic, allowance, nil, decimal.Zero, decimal.Zero)

	assert.True(t, b.TotalHours.IsZero())
	assert.Equal(t, 0, b.NormalWorkDays)
	assert.True(t, b.OvertimePay.IsZero())
	assert.True(t, b.TakeHomePay.Equal(basic), "base pay is owed even with no attendance, got %s", b.TakeHomePay)
}

func TestCalculateFromTotalHours(t *testing.T) {
	// 160 monthly hours over 8-hour days divides evenly, so the overtime
	// threshold is exact.
	rs := RateSchedule{
		HoursPerDay:   decimal.NewFromInt(8),
		HoursPerMonth: decimal.NewFromInt(160),
		Weekday1:      decimal.NewFromFloat(1.5),
		Weekday2:      decimal.NewFromInt(2),
		Weekend1:      decimal.NewFromInt(2),
		Weekend2:      decimal.NewFromInt(3),
		Weekend3:      decimal.NewFromInt(4),
	}
	basic := decimal.NewFromInt(1600000) // hourly rate 10000
	allowance := decimal.Zero
	zero := decimal.Zero

	cases := []struct {
		name            string
		totalHours      string
		wantOvertime    string
		wantOvertimePay string
	}{
		{"under threshold", "150", "0", "0"},
		{"at threshold", "160", "0", "0"},
		{"half hour over", "160.5", "0.5", "7500"}, // prorated, unlike the per-day flat bonus
		{"one hour over", "161", "1", "15000"},
		{"three hours over", "163", "3", "55000"}, // 15000 + 2h x 10000 x 2
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := CalculateFromTotalHours(rs, basic, allowance, decimal.RequireFromString(c.totalHours), zero, zero)

			assert.Equal(t, 20, b.NormalWorkDays)
			assert.True(t, b.OvertimeHours.Equal(decimal.RequireFromString(c.wantOvertime)),
				"overtime hours = %s, want %s", b.OvertimeHours, c.wantOvertime)
			assert.True(t, b.OvertimePay.Equal(decimal.RequireFromString(c.wantOvertimePay)),
				"overtime pay = %s, want %s", b.OvertimePay, c.wantOvertimePay)
		})
	}
}

// Take-home pay always decomposes into its stored components, in both
// calculation modes.
func TestCalculate_TakeHomeDecomposition(t *testing.T) {
	rs := RateSchedule{
		HoursPerDay:   decimal.NewFromInt(8),
		HoursPerMonth: decimal.NewFromInt(160),
		Weekday1:      decimal.NewFromFloat(1.5),
		Weekday2:      decimal.NewFromInt(2),
		Weekend1:      decimal.NewFromInt(2),
		Weekend2:      decimal.NewFromInt(3),
		Weekend3:      decimal.NewFromInt(4),
	}
	basic := decimal.NewFromInt(2345678)
	allowance := decimal.NewFromInt(123456)
	bonus := decimal.NewFromInt(75000)
	deductions := decimal.NewFromInt(12500)

	fromAttendance := CalculateFromAttendance(rs, basic, allowance, []attendance.DayHours{
		day("2026-03-02", "10.75", false),
		day("2026-03-07", "9.5", true),
	}, bonus, deductions)
	fromHours := CalculateFromTotalHours(rs, basic, allowance, decimal.RequireFromString("171.25"), bonus, deductions)

	for _, b := range []PayBreakdown{fromAttendance, fromHours} {
		want := b.BasicSalary.Add(b.FixedAllowance).Add(b.OvertimePay).Add(b.BonusAmount).Sub(b.DeductionsAmount)
		assert.True(t, b.TakeHomePay.Equal(want), "take home %s != components %s", b.TakeHomePay, want)
	}
}
