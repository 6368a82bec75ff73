package payroll

import "errors"

var (
	ErrSettingNotFound = errors.New("payroll setting not found")
	ErrPeriodNotFound  = errors.New("payroll period not found")
	ErrPeriodFinalized = errors.New("payroll period already finalized")
	ErrDetailNotFound  = errors.New("payroll detail not found")
	ErrNoDetails       = errors.New("no payroll details for this period")
	ErrInvalidPeriod   = errors.New("invalid payroll period range")
)
