package models

import (
	"fmt"

	"github.com/kyros-barber/KB-BookingService/internal/domain"
	"github.com/kyros-barber/KB-BookingService/pkg/types"
)

// Request модели

// UpsertDayRequest запрос на создание/обновление расписания дня
type UpsertDayRequest struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0=воскресенье .. 6=суббота
	OpenTime  string `json:"openTime"`  // "09:00"
	CloseTime string `json:"closeTime"` // "18:00"

	BreakStart           *string `json:"breakStart,omitempty"` // "13:00"
	BreakDurationMinutes *int    `json:"breakDurationMinutes,omitempty"`
}

// ToDomain конвертирует request в domain модель, проверяя форматы времени
func (r *UpsertDayRequest) ToDomain(branchID int64) (*domain.DaySchedule, error) {
	openTime, err := types.NewTimeStringFromString(r.OpenTime)
	if err != nil {
		return nil, fmt.Errorf("open time: %w", err)
	}
	closeTime, err := types.NewTimeStringFromString(r.CloseTime)
	if err != nil {
		return nil, fmt.Errorf("close time: %w", err)
	}

	sched := &domain.DaySchedule{
		BranchID:             branchID,
		DayOfWeek:            r.DayOfWeek,
		OpenTime:             openTime,
		CloseTime:            closeTime,
		BreakDurationMinutes: r.BreakDurationMinutes,
	}

	if r.BreakStart != nil {
		breakStart, err := types.NewTimeStringFromString(*r.BreakStart)
		if err != nil {
			return nil, fmt.Errorf("break start: %w", err)
		}
		sched.BreakStart = &breakStart
	}

	return sched, nil
}

// Response модели

// DayScheduleResponse расписание одного дня недели
type DayScheduleResponse struct {
	DayOfWeek int    `json:"dayOfWeek"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`

	BreakStart           *string `json:"breakStart,omitempty"`
	BreakDurationMinutes *int    `json:"breakDurationMinutes,omitempty"`
}

// BranchScheduleResponse расписание филиала на неделю
type BranchScheduleResponse struct {
	BranchID int64                 `json:"branchId"`
	Days     []DayScheduleResponse `json:"days"`
}

// OpenDaysResponse дни недели, в которые филиал работает
type OpenDaysResponse struct {
	BranchID int64 `json:"branchId"`
	Days     []int `json:"days"`
}

// Методы конвертации

// FromDomainDay конвертирует domain модель в DTO
func FromDomainDay(s *domain.DaySchedule) *DayScheduleResponse {
	if s == nil {
		return nil
	}

	resp := &DayScheduleResponse{
		DayOfWeek:            s.DayOfWeek,
		OpenTime:             s.OpenTime.String(),
		CloseTime:            s.CloseTime.String(),
		BreakDurationMinutes: s.BreakDurationMinutes,
	}
	if s.BreakStart != nil {
		breakStart := s.BreakStart.String()
		resp.BreakStart = &breakStart
	}
	return resp
}

// FromDomainWeek конвертирует список дней в расписание недели
func FromDomainWeek(branchID int64, days []*domain.DaySchedule) *BranchScheduleResponse {
	resp := &BranchScheduleResponse{
		BranchID: branchID,
		Days:     make([]DayScheduleResponse, 0, len(days)),
	}
	for _, d := range days {
		resp.Days = append(resp.Days, *FromDomainDay(d))
	}
	return resp
}
