package get_available_slots

import (
	"fmt"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	if req.BranchID <= 0 {
		return fmt.Errorf("%w: branchID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.EmployeeID != nil && *req.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}

	if req.IntervalMinutes < 0 ||
		(req.IntervalMinutes > 0 && req.IntervalMinutes < domain.MinSlotIntervalMinutes) ||
		req.IntervalMinutes > domain.MaxSlotIntervalMinutes {
		return fmt.Errorf("%w: interval must be in %d..%d minutes",
			ErrInvalidInput, domain.MinSlotIntervalMinutes, domain.MaxSlotIntervalMinutes)
	}

	return nil
}
