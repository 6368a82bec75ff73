package response

import (
	"errors"
	"net/http"

	"github.com/kasirapp/pos-backend-go/internal/domain/expense"
	"github.com/kasirapp/pos-backend-go/internal/domain/payroll"
	"github.com/kasirapp/pos-backend-go/internal/domain/staff"
	"github.com/kasirapp/pos-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Staff domain errors
	case errors.Is(err, staff.ErrStaffNotFound):
		NotFound(w, "Staff not found")
	case errors.Is(err, staff.ErrSalaryNotFound):
		NotFound(w, "Salary record not found")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPeriodNotFound):
		NotFound(w, "Payroll period not found")
	case errors.Is(err, payroll.ErrDetailNotFound):
		NotFound(w, "Payroll detail not found")
	case errors.Is(err, payroll.ErrNoDetails):
		NotFound(w, "No payroll details for this period")
	case errors.Is(err, payroll.ErrPeriodFinalized):
		Conflict(w, "Payroll period already finalized")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period range", nil)

	// Expense domain errors
	case errors.Is(err, expense.ErrCategoryNotFound):
		NotFound(w, "Expense category not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
