package domain

import "time"

// Business is the tenant root entity; everything below it is scoped by its id
type Business struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Branch is a physical location of a business
type Branch struct {
	ID         int64
	BusinessID int64
	Name       string
	Address    string
	Phone      *string

	// Optional login account for branch-level staff, managed through the
	// external auth administrative service
	AccountEmail *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Service is a bookable service. BranchID == nil means the service is
// global: available at every branch of the business.
type Service struct {
	ID         int64
	BusinessID int64
	BranchID   *int64
	Name       string
	BasePrice  float64
	// Approximate duration in minutes; zero falls back to the default
	DurationMinutes int
	Description     *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AvailableAt reports whether the service can be booked at the branch
func (s *Service) AvailableAt(branchID int64) bool {
	return s.BranchID == nil || *s.BranchID == branchID
}

// Employee is a staff member assigned to a branch
type Employee struct {
	ID         int64
	BusinessID int64
	BranchID   int64
	Name       string
	Specialty  string

	// IDs of the services the employee performs (many-to-many)
	ServiceIDs []int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PerformsAll reports whether the employee performs every given service
func (e *Employee) PerformsAll(serviceIDs []int64) bool {
	if len(serviceIDs) == 0 {
		return true
	}
	performed := make(map[int64]struct{}, len(e.ServiceIDs))
	for _, id := range e.ServiceIDs {
		performed[id] = struct{}{}
	}
	for _, id := range serviceIDs {
		if _, ok := performed[id]; !ok {
			return false
		}
	}
	return true
}

// Client is a customer record, created by staff or by the public chat flow
type Client struct {
	ID         int64
	BusinessID int64
	BranchID   *int64
	Name       string
	Phone      *string
	// Platform the client came from ("web_chat", "whatsapp", ...)
	Platform  string
	ChatID    *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
