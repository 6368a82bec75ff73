package staff

import "context"

// StaffRepository defines data access methods for staff members.
// All methods include tenantID to prevent cross-tenant data access.
type StaffRepository interface {
	GetByID(ctx context.Context, id string, tenantID string) (Staff, error)
}

type SalaryRepository interface {
	GetByStaffID(ctx context.Context, staffID string, tenantID string) (Salary, error)
}
