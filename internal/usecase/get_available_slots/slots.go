package get_available_slots

import (
	"github.com/kyros-barber/KB-BookingService/internal/domain"
	"github.com/kyros-barber/KB-BookingService/pkg/types"
)

// generateGrid генерирует сетку слотов дня с фиксированным шагом
// Слоты идут от открытия (включительно) до закрытия (не включая его);
// слоты, начинающиеся внутри окна перерыва, исключаются
func generateGrid(sched *domain.DaySchedule, intervalMinutes int) []types.TimeString {
	if sched == nil {
		return []types.TimeString{}
	}

	openMin := sched.OpenTime.Minutes()
	closeMin := sched.CloseTime.Minutes()
	breakStart, breakEnd, hasBreak := sched.BreakWindow()

	grid := make([]types.TimeString, 0)
	for minute := openMin; minute < closeMin; minute += intervalMinutes {
		// Начало слота в перерыве — слот недоступен
		if hasBreak && minute >= breakStart && minute < breakEnd {
			continue
		}
		grid = append(grid, types.FromMinutes(minute))
	}

	return grid
}

// isSlotTaken проверяет, занят ли слот активной записью
// Слот занят, если его начало попадает в полуоткрытый интервал
// [начало записи, конец записи); запись, заканчивающаяся ровно в начале
// слота, его НЕ занимает
func isSlotTaken(slotStart types.TimeString, appts []*domain.Appointment) bool {
	slotMin := slotStart.Minutes()

	for _, appt := range appts {
		if !appt.IsActive() {
			continue
		}

		startMin := appt.StartsAt.Hour()*60 + appt.StartsAt.Minute()
		endMin := appt.EndsAt.Hour()*60 + appt.EndsAt.Minute()

		if slotMin >= startMin && slotMin < endMin {
			return true
		}
	}

	return false
}

// availableSlots фильтрует сетку, оставляя только свободные слоты
func availableSlots(grid []types.TimeString, appts []*domain.Appointment, intervalMinutes int) []Slot {
	slots := make([]Slot, 0, len(grid))
	for _, start := range grid {
		if isSlotTaken(start, appts) {
			continue
		}
		slots = append(slots, Slot{
			StartTime:       start,
			DurationMinutes: intervalMinutes,
		})
	}
	return slots
}
