package payroll

import (
	"github.com/kasirapp/pos-backend-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

// PayBreakdown is the full result of one payroll calculation. All
// amounts are kept at full precision; rounding happens only when a
// detail row is stored.
type PayBreakdown struct {
	BasicSalary      decimal.Decimal
	FixedAllowance   decimal.Decimal
	HourlyRate       decimal.Decimal
	TotalHours       decimal.Decimal
	NormalWorkDays   int
	OvertimeHours    decimal.Decimal
	OvertimePay      decimal.Decimal
	BonusAmount      decimal.Decimal
	DeductionsAmount decimal.Decimal
	TakeHomePay      decimal.Decimal
}

// CalculateFromAttendance computes a pay breakdown from per-day
// attendance facts. Overtime is priced day by day so that weekday and
// weekend tiers apply to the day they were worked.
func CalculateFromAttendance(rs RateSchedule, basicSalary, fixedAllowance decimal.Decimal, days []attendance.DayHours, bonus, deductions decimal.Decimal) PayBreakdown {
	hourlyRate := rs.HourlyRate(basicSalary, fixedAllowance)

	totalHours := decimal.Zero
	overtimeHours := decimal.Zero
	overtimePay := decimal.Zero

	for _, day := range days {
		totalHours = totalHours.Add(day.WorkedHours)

		dailyOT := rs.DailyOvertimeHours(day.WorkedHours)
		overtimeHours = overtimeHours.Add(dailyOT)
		overtimePay = overtimePay.Add(rs.DailyOvertimePay(hourlyRate, dailyOT, day.Weekend))
	}

	return assemble(basicSalary, fixedAllowance, hourlyRate, totalHours, len(days), overtimeHours, overtimePay, bonus, deductions)
}

// CalculateFromTotalHours computes a pay breakdown from a manually
// supplied hour count, used when no attendance exists for the period.
// Overtime uses weekday tiers only, and unlike the per-day path the
// first tier is prorated by min(overtimeHours, 1) instead of being a
// flat threshold bonus. The two behaviors are intentionally different.
func CalculateFromTotalHours(rs RateSchedule, basicSalary, fixedAllowance, totalHours, bonus, deductions decimal.Decimal) PayBreakdown {
	hourlyRate := rs.HourlyRate(basicSalary, fixedAllowance)

	normalWorkDays := rs.HoursPerMonth.Div(rs.HoursPerDay)
	threshold := rs.HoursPerDay.Mul(normalWorkDays)

	overtimeHours := totalHours.Sub(threshold)
	if overtimeHours.IsNegative() {
		overtimeHours = decimal.Zero
	}

	firstTier := decimal.Min(overtimeHours, one)
	overtimePay := hourlyRate.Mul(firstTier).Mul(rs.Weekday1)
	if overtimeHours.GreaterThan(one) {
		overtimePay = overtimePay.Add(hourlyRate.Mul(overtimeHours.Sub(one)).Mul(rs.Weekday2))
	}

	return assemble(basicSalary, fixedAllowance, hourlyRate, totalHours, int(normalWorkDays.IntPart()), overtimeHours, overtimePay, bonus, deductions)
}

func assemble(basicSalary, fixedAllowance, hourlyRate, totalHours decimal.Decimal, workDays int, overtimeHours, overtimePay, bonus, deductions decimal.Decimal) PayBreakdown {
	takeHome := basicSalary.Add(fixedAllowance).Add(overtimePay).Add(bonus).Sub(deductions)

	return PayBreakdown{
		BasicSalary:      basicSalary,
		FixedAllowance:   fixedAllowance,
		HourlyRate:       hourlyRate,
		TotalHours:       totalHours,
		NormalWorkDays:   workDays,
		OvertimeHours:    overtimeHours,
		OvertimePay:      overtimePay,
		BonusAmount:      bonus,
		DeductionsAmount: deductions,
		TakeHomePay:      takeHome,
	}
}
