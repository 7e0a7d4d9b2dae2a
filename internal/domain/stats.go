package domain

import "time"

// RevenuePeriod selects the revenue grouping window
type RevenuePeriod string

const (
	PeriodDay   RevenuePeriod = "day"
	PeriodWeek  RevenuePeriod = "week"
	PeriodMonth RevenuePeriod = "month"
)

// IsValid reports whether the period is one of the supported windows
func (p RevenuePeriod) IsValid() bool {
	return p == PeriodDay || p == PeriodWeek || p == PeriodMonth
}

// BranchCount is a per-branch appointment count
type BranchCount struct {
	BranchID   int64
	BranchName string
	Count      int64
}

// ServiceCount is a per-service booking count
type ServiceCount struct {
	ServiceID   int64
	ServiceName string
	Count       int64
}

// RevenueRow is one completed appointment's contribution to revenue
type RevenueRow struct {
	AppointmentID int64
	StartsAt      time.Time
	TotalPaid     float64
}

// RevenueBucket is a grouped revenue figure. For a day period the label is
// the hour ("09:00"), for a week the weekday name, for a month the day of
// month ("15").
type RevenueBucket struct {
	Label   string
	Revenue float64
	Count   int64
}
