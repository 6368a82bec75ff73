package expense

import "errors"

var ErrCategoryNotFound = errors.New("expense category not found")
