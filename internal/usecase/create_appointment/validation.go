package create_appointment

import (
	"fmt"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
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

	if req.EmployeeID != nil && *req.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}

	// Клиент указывается ровно одним способом
	if req.ClientID != nil && req.ManualClientName != nil {
		return fmt.Errorf("%w: clientID and manualClientName are mutually exclusive", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// resolveStatus определяет начальный статус записи
func resolveStatus(raw *string) (domain.AppointmentStatus, error) {
	if raw == nil {
		return domain.StatusConfirmed, nil
	}

	status := domain.AppointmentStatus(*raw)
	switch status {
	case domain.StatusPending, domain.StatusConfirmed:
		return status, nil
	default:
		return "", fmt.Errorf("%w: initial status must be pending or confirmed", ErrInvalidInput)
	}
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
