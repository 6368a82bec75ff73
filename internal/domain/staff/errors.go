package staff

import "errors"

var (
	ErrStaffNotFound  = errors.New("staff not found")
	ErrSalaryNotFound = errors.New("salary record not found")
)
