package domain

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending    AppointmentStatus = "pending"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCanceled   AppointmentStatus = "canceled"
)

// Appointment represents a booked visit at a branch.
// EmployeeID is nullable ("no preference"); ClientID is nullable for
// walk-ins identified only by ManualClientName.
type Appointment struct {
	ID         int64
	BusinessID int64
	BranchID   int64
	EmployeeID *int64
	ClientID   *int64

	StartsAt time.Time
	EndsAt   time.Time
	Status   AppointmentStatus

	ManualClientName *string
	Notes            *string

	TotalPaid   *float64
	CompletedAt *time.Time

	// Line items: the services booked, with the price captured at booking time
	Services []AppointmentService

	// Joined data, filled by read paths
	ClientName   *string
	EmployeeName *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AppointmentService is one service line item attached to an appointment,
// capturing the price charged at booking time.
type AppointmentService struct {
	AppointmentID  int64
	ServiceID      int64
	ServiceName    string
	PriceAtBooking float64
}

// IsActive returns true if the appointment still occupies its time range
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCanceled
}

// CanBeCanceled returns true if the appointment can still be canceled
func (a *Appointment) CanBeCanceled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed || a.Status == StatusInProgress
}

// CanBeUpdated returns true if the appointment can still be edited
func (a *Appointment) CanBeUpdated() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// CanTransitionTo reports whether the status change is legal.
// Flow: pending -> confirmed -> in_progress -> completed; any active
// status may move to canceled. Completed and canceled are terminal.
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	if a.Status == StatusCompleted || a.Status == StatusCanceled {
		return false
	}
	switch next {
	case StatusCanceled:
		return true
	case StatusConfirmed:
		return a.Status == StatusPending
	case StatusInProgress:
		return a.Status == StatusPending || a.Status == StatusConfirmed
	case StatusCompleted:
		return a.Status == StatusConfirmed || a.Status == StatusInProgress || a.Status == StatusPending
	default:
		return false
	}
}

// ServicesTotal sums the line-item prices captured at booking time
func (a *Appointment) ServicesTotal() float64 {
	var total float64
	for _, s := range a.Services {
		total += s.PriceAtBooking
	}
	return total
}

// ClientRefKind tags the source an appointment's client name was resolved from
type ClientRefKind string

const (
	ClientRefRegistered ClientRefKind = "registered"
	ClientRefWalkIn     ClientRefKind = "walk_in"
	ClientRefUnknown    ClientRefKind = "unknown"
)

// ClientRef resolves an appointment's display name from whichever client
// reference is present, with defined precedence: registered client record,
// then the manually entered walk-in name, then unknown.
type ClientRef struct {
	Kind ClientRefKind
	Name string
}

// ResolveClientRef applies the precedence once at read time
func (a *Appointment) ResolveClientRef() ClientRef {
	if a.ClientID != nil && a.ClientName != nil && *a.ClientName != "" {
		return ClientRef{Kind: ClientRefRegistered, Name: *a.ClientName}
	}
	if a.ManualClientName != nil && *a.ManualClientName != "" {
		return ClientRef{Kind: ClientRefWalkIn, Name: *a.ManualClientName}
	}
	return ClientRef{Kind: ClientRefUnknown, Name: "Unknown"}
}

// BranchAppointmentsFilter filters appointment reads for a branch
type BranchAppointmentsFilter struct {
	BusinessID      int64
	BranchID        *int64
	EmployeeID      *int64
	Date            *time.Time // single day, local
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *AppointmentStatus
	IncludeCanceled bool
}

// OverlapFilter selects the appointments that conflict with a candidate
// time range, using half-open interval semantics
type OverlapFilter struct {
	BusinessID           int64
	EmployeeID           int64
	StartsAt             time.Time
	EndsAt               time.Time
	ExcludeAppointmentID *int64
}
