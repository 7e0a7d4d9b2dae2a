package get_available_slots

import (
	"time"

	"github.com/kyros-barber/KB-BookingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	BusinessID      int64      // ID бизнеса
	BranchID        int64      // ID филиала
	Date            time.Time  // Дата для получения слотов (без времени)
	EmployeeID      *int64     // ID сотрудника (опционально: сужает проверку занятости)
	IntervalMinutes int        // Шаг сетки слотов; 0 означает шаг по умолчанию
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time // Дата, на которую запрашивались слоты
	BranchID        int64     // ID филиала
	EmployeeID      *int64    // ID сотрудника, если проверка сужалась
	IntervalMinutes int       // Шаг сетки слотов
	Slots           []Slot    // Список доступных слотов
}

// Slot модель доступного временного слота
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	DurationMinutes int              // Длительность слота в минутах
}
