package domain

import (
	"fmt"
	"time"

	"github.com/kyros-barber/KB-BookingService/pkg/types"
)

// DaySchedule is a branch's working hours for one day of week (0=Sunday..6=Saturday).
// An absent row means the branch is closed that day.
// At most one row exists per (branch, day): enforced by a unique constraint,
// writes are upserts.
type DaySchedule struct {
	ID       int64
	BranchID int64
	// DayOfWeek uses 0=Sunday .. 6=Saturday
	DayOfWeek int

	OpenTime  types.TimeString
	CloseTime types.TimeString

	// Optional break window: start time plus duration in minutes
	BreakStart           *types.TimeString
	BreakDurationMinutes *int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasBreak returns true when a break window is configured
func (s *DaySchedule) HasBreak() bool {
	return s != nil && s.BreakStart != nil && s.BreakDurationMinutes != nil && *s.BreakDurationMinutes > 0
}

// BreakWindow returns the break window in minutes since midnight, half-open
func (s *DaySchedule) BreakWindow() (start, end int, ok bool) {
	if !s.HasBreak() {
		return 0, 0, false
	}
	start = s.BreakStart.Minutes()
	return start, start + *s.BreakDurationMinutes, true
}

// Validate checks internal consistency of a schedule entry
func (s *DaySchedule) Validate() error {
	if s.DayOfWeek < 0 || s.DayOfWeek > 6 {
		return fmt.Errorf("day of week must be in 0..6, got %d", s.DayOfWeek)
	}
	if err := s.OpenTime.Validate(); err != nil {
		return fmt.Errorf("open time: %w", err)
	}
	if err := s.CloseTime.Validate(); err != nil {
		return fmt.Errorf("close time: %w", err)
	}
	if !s.OpenTime.IsBefore(s.CloseTime) {
		return fmt.Errorf("open time %s must be before close time %s", s.OpenTime, s.CloseTime)
	}
	if s.HasBreak() {
		if err := s.BreakStart.Validate(); err != nil {
			return fmt.Errorf("break start: %w", err)
		}
		bStart, bEnd, _ := s.BreakWindow()
		if bStart < s.OpenTime.Minutes() || bEnd > s.CloseTime.Minutes() {
			return fmt.Errorf("break window %s-%s must lie within working hours %s-%s",
				types.FromMinutes(bStart), types.FromMinutes(bEnd), s.OpenTime, s.CloseTime)
		}
	}
	return nil
}

// RangesOverlap reports whether two half-open minute ranges [s1,e1) and
// [s2,e2) share any instant. A range ending exactly where another starts
// does not overlap.
func RangesOverlap(s1, e1, s2, e2 int) bool {
	return s1 < e2 && e1 > s2
}

// HoursValidation is the result of checking a candidate appointment
// against a day's working hours. Message names the concrete constraint
// violated and is safe to show to the user.
type HoursValidation struct {
	Valid   bool
	Message string
}

// ValidateWithinHours checks whether an appointment starting at start and
// lasting durationMinutes fits the given day schedule. A nil schedule
// means the branch is closed that day. All arithmetic uses minutes since
// midnight; the result depends only on the inputs.
func ValidateWithinHours(sched *DaySchedule, start types.TimeString, durationMinutes int) HoursValidation {
	if sched == nil {
		return HoursValidation{Valid: false, Message: "the branch is closed this day"}
	}

	startMin := start.Minutes()
	endMin := startMin + durationMinutes

	openMin := sched.OpenTime.Minutes()
	closeMin := sched.CloseTime.Minutes()

	if startMin < openMin {
		return HoursValidation{
			Valid:   false,
			Message: fmt.Sprintf("the branch opens at %s", sched.OpenTime),
		}
	}

	if endMin > closeMin {
		return HoursValidation{
			Valid:   false,
			Message: fmt.Sprintf("the appointment ends after close (%s)", sched.CloseTime),
		}
	}

	if bStart, bEnd, ok := sched.BreakWindow(); ok {
		if RangesOverlap(startMin, endMin, bStart, bEnd) {
			return HoursValidation{
				Valid: false,
				Message: fmt.Sprintf("the appointment falls within break time (%s - %s)",
					types.FromMinutes(bStart), types.FromMinutes(bEnd)),
			}
		}
	}

	return HoursValidation{Valid: true}
}

// DayOfWeek maps a date to the schedule day index (0=Sunday..6=Saturday)
func DayOfWeek(date time.Time) int {
	return int(date.Weekday())
}
