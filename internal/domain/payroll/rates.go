package payroll

import "github.com/shopspring/decimal"

var (
	one = decimal.NewFromInt(1)
	two = decimal.NewFromInt(2)
)

// RateSchedule is the resolved set of pay rules used by the calculator:
// normal-hour thresholds plus the tier multipliers for weekday and
// weekend overtime.
type RateSchedule struct {
	HoursPerDay   decimal.Decimal
	HoursPerMonth decimal.Decimal
	Weekday1      decimal.Decimal
	Weekday2      decimal.Decimal
	Weekend1      decimal.Decimal
	Weekend2      decimal.Decimal
	Weekend3      decimal.Decimal
}

func NewRateSchedule(s PayrollSetting) RateSchedule {
	return RateSchedule{
		HoursPerDay:   s.NormalWorkHoursPerDay,
		HoursPerMonth: s.NormalWorkHoursPerMonth,
		Weekday1:      s.OvertimeRate1,
		Weekday2:      s.OvertimeRate2,
		Weekend1:      s.OvertimeRateWeekend1,
		Weekend2:      s.OvertimeRateWeekend2,
		Weekend3:      s.OvertimeRateWeekend3,
	}
}

// HourlyRate normalizes a staff member's fixed monthly pay to an hourly
// rate. The monthly divisor is used even when attendance is evaluated
// per day.
func (rs RateSchedule) HourlyRate(basicSalary, fixedAllowance decimal.Decimal) decimal.Decimal {
	return basicSalary.Add(fixedAllowance).Div(rs.HoursPerMonth)
}

// DailyOvertimeHours is the part of one day's worked hours beyond the
// normal workday, never negative.
func (rs RateSchedule) DailyOvertimeHours(workedHours decimal.Decimal) decimal.Decimal {
	ot := workedHours.Sub(rs.HoursPerDay)
	if ot.IsNegative() {
		return decimal.Zero
	}
	return ot
}

// DailyOvertimePay prices one day's overtime hours with the tiered,
// threshold-triggered rules.
//
// Weekday: any overtime at all earns a flat hourlyRate×Weekday1 bonus;
// everything beyond the first hour is paid per hour at Weekday2.
// Weekend: the first tier bonus (Weekend1) applies to any overtime and
// a second flat bonus (Weekend2) once two hours are reached; hours
// beyond the second are paid per hour at Weekend3. The first tiers are
// deliberately flat, not rate×hours.
func (rs RateSchedule) DailyOvertimePay(hourlyRate, overtimeHours decimal.Decimal, weekend bool) decimal.Decimal {
	pay := decimal.Zero

	if weekend {
		if overtimeHours.IsPositive() {
			pay = pay.Add(hourlyRate.Mul(rs.Weekend1))
		}
		if overtimeHours.GreaterThanOrEqual(two) {
			pay = pay.Add(hourlyRate.Mul(rs.Weekend2))
		}
		if overtimeHours.GreaterThan(two) {
			remaining := overtimeHours.Sub(two)
			pay = pay.Add(hourlyRate.Mul(remaining).Mul(rs.Weekend3))
		}
		return pay
	}

	if overtimeHours.IsPositive() {
		pay = pay.Add(hourlyRate.Mul(rs.Weekday1))
	}
	if overtimeHours.GreaterThan(one) {
		remaining := overtimeHours.Sub(one)
		pay = pay.Add(hourlyRate.Mul(remaining).Mul(rs.Weekday2))
	}
	return pay
}
