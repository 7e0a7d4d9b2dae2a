package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyros-barber/KB-BookingService/pkg/ptr"
	"github.com/kyros-barber/KB-BookingService/pkg/types"
)

func TestRangesOverlap(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 int
		want           bool
	}{
		{"identical ranges", 600, 660, 600, 660, true},
		{"partial overlap", 600, 660, 630, 690, true},
		{"containment", 600, 720, 630, 660, true},
		{"touching boundaries do not overlap", 600, 660, 660, 720, false},
		{"disjoint", 600, 660, 720, 780, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RangesOverlap(tt.s1, tt.e1, tt.s2, tt.e2))
			// overlap is symmetric
			assert.Equal(t, tt.want, RangesOverlap(tt.s2, tt.e2, tt.s1, tt.e1))
		})
	}
}

func testSchedule(breakStart string, breakMinutes int) *DaySchedule {
	s := &DaySchedule{
		BranchID:  1,
		DayOfWeek: 2,
		OpenTime:  types.MustTimeString("09:00"),
		CloseTime: types.MustTimeString("20:00"),
	}
	if breakStart != "" {
		bs := types.MustTimeString(breakStart)
		s.BreakStart = &bs
		s.BreakDurationMinutes = ptr.Ptr(breakMinutes)
	}
	return s
}

func TestValidateWithinHours(t *testing.T) {
	tests := []struct {
		name        string
		sched       *DaySchedule
		start       string
		duration    int
		wantValid   bool
		wantMessage string
	}{
		{
			name:        "closed day",
			sched:       nil,
			start:       "10:00",
			duration:    30,
			wantValid:   false,
			wantMessage: "closed",
		},
		{
			name:        "before opening",
			sched:       testSchedule("", 0),
			start:       "08:30",
			duration:    30,
			wantValid:   false,
			wantMessage: "opens at 09:00",
		},
		{
			name:        "ends after close",
			sched:       testSchedule("", 0),
			start:       "19:45",
			duration:    30,
			wantValid:   false,
			wantMessage: "after close (20:00)",
		},
		{
			name:        "falls on break",
			sched:       testSchedule("15:00", 60),
			start:       "14:45",
			duration:    30,
			wantValid:   false,
			wantMessage: "break time (15:00 - 16:00)",
		},
		{
			name:        "starts inside hour-long afternoon break",
			sched:       testSchedule("14:00", 60),
			start:       "14:30",
			duration:    30,
			wantValid:   false,
			wantMessage: "break time (14:00 - 15:00)",
		},
		{
			name:      "ends exactly at break start",
			sched:     testSchedule("15:00", 60),
			start:     "14:30",
			duration:  30,
			wantValid: true,
		},
		{
			name:      "starts exactly at break end",
			sched:     testSchedule("15:00", 60),
			start:     "16:00",
			duration:  30,
			wantValid: true,
		},
		{
			name:      "ends exactly at close",
			sched:     testSchedule("", 0),
			start:     "19:30",
			duration:  30,
			wantValid: true,
		},
		{
			name:      "fits inside working hours",
			sched:     testSchedule("15:00", 60),
			start:     "10:00",
			duration:  90,
			wantValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateWithinHours(tt.sched, types.MustTimeString(tt.start), tt.duration)
			assert.Equal(t, tt.wantValid, got.Valid)
			if tt.wantMessage != "" {
				assert.Contains(t, got.Message, tt.wantMessage)
			}
		})
	}
}

func TestDayScheduleValidate(t *testing.T) {
	t.Run("valid without break", func(t *testing.T) {
		require.NoError(t, testSchedule("", 0).Validate())
	})

	t.Run("valid with break", func(t *testing.T) {
		require.NoError(t, testSchedule("13:00", 60).Validate())
	})

	t.Run("day of week out of range", func(t *testing.T) {
		s := testSchedule("", 0)
		s.DayOfWeek = 7
		require.Error(t, s.Validate())
	})

	t.Run("open after close", func(t *testing.T) {
		s := testSchedule("", 0)
		s.OpenTime = types.MustTimeString("21:00")
		require.Error(t, s.Validate())
	})

	t.Run("break outside working hours", func(t *testing.T) {
		s := testSchedule("19:30", 60)
		require.Error(t, s.Validate())
	})
}

func TestDayScheduleBreakWindow(t *testing.T) {
	t.Run("no break configured", func(t *testing.T) {
		_, _, ok := testSchedule("", 0).BreakWindow()
		assert.False(t, ok)
	})

	t.Run("zero duration means no break", func(t *testing.T) {
		_, _, ok := testSchedule("13:00", 0).BreakWindow()
		assert.False(t, ok)
	})

	t.Run("break window in minutes", func(t *testing.T) {
		start, end, ok := testSchedule("13:00", 45).BreakWindow()
		require.True(t, ok)
		assert.Equal(t, 13*60, start)
		assert.Equal(t, 13*60+45, end)
	})
}

func TestDayOfWeek(t *testing.T) {
	// 2026-09-06 is a Sunday
	sunday := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, DayOfWeek(sunday))
	assert.Equal(t, 1, DayOfWeek(sunday.AddDate(0, 0, 1)))
	assert.Equal(t, 6, DayOfWeek(sunday.AddDate(0, 0, 6)))
}
