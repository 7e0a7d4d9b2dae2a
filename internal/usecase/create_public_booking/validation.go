package create_public_booking

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

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}

	if req.EmployeeID != nil && *req.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}

	if req.ClientName == "" {
		return fmt.Errorf("%w: client name is required", ErrInvalidInput)
	}
	if len(req.ClientName) > domain.MaxNameLength {
		return fmt.Errorf("%w: client name is too long", ErrInvalidInput)
	}

	if req.ClientPhone == "" {
		return fmt.Errorf("%w: client phone is required", ErrInvalidInput)
	}

	return nil
}

// checkServices проверяет, что все услуги существуют и доступны в филиале
func checkServices(found []*domain.Service, requested []int64, branchID int64) error {
	byID := make(map[int64]*domain.Service, len(found))
	for _, svc := range found {
		byID[svc.ID] = svc
	}

	for _, id := range requested {
		svc, ok := byID[id]
		if !ok {
			return fmt.Errorf("%w: service id=%d", ErrServiceNotFound, id)
		}
		if !svc.AvailableAt(branchID) {
			return fmt.Errorf("%w: service id=%d", ErrServiceNotAvailableAtBranch, id)
		}
	}

	return nil
}
