package domain

import "fmt"

// Role of the authenticated actor
type Role string

const (
	// RoleOwner is the business owner: full access across branches
	RoleOwner Role = "owner"
	// RoleBranch is a branch account: confined to its own branch
	RoleBranch Role = "branch"
)

// ActorContext identifies the authenticated actor for a request. It is
// threaded explicitly through every operation so no data access depends
// on ambient session state. BranchID is set for branch-role actors and
// confines reads and writes to that branch.
type ActorContext struct {
	BusinessID int64
	BranchID   *int64
	Role       Role
}

// CanAccessBranch reports whether the actor may touch the given branch
func (a ActorContext) CanAccessBranch(branchID int64) bool {
	if a.Role == RoleOwner {
		return true
	}
	return a.BranchID != nil && *a.BranchID == branchID
}

// Validate checks the context is internally consistent
func (a ActorContext) Validate() error {
	if a.BusinessID <= 0 {
		return fmt.Errorf("businessID must be positive")
	}
	switch a.Role {
	case RoleOwner:
		return nil
	case RoleBranch:
		if a.BranchID == nil || *a.BranchID <= 0 {
			return fmt.Errorf("branch role requires a branch id")
		}
		return nil
	default:
		return fmt.Errorf("unknown role %q", a.Role)
	}
}
