package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyros-barber/KB-BookingService/pkg/ptr"
)

func TestActorContextValidate(t *testing.T) {
	t.Run("owner without branch", func(t *testing.T) {
		a := ActorContext{BusinessID: 1, Role: RoleOwner}
		require.NoError(t, a.Validate())
	})

	t.Run("branch role requires branch id", func(t *testing.T) {
		a := ActorContext{BusinessID: 1, Role: RoleBranch}
		require.Error(t, a.Validate())

		a.BranchID = ptr.Ptr(int64(3))
		require.NoError(t, a.Validate())
	})

	t.Run("missing business", func(t *testing.T) {
		a := ActorContext{Role: RoleOwner}
		require.Error(t, a.Validate())
	})

	t.Run("unknown role", func(t *testing.T) {
		a := ActorContext{BusinessID: 1, Role: Role("admin")}
		require.Error(t, a.Validate())
	})
}

func TestActorContextCanAccessBranch(t *testing.T) {
	owner := ActorContext{BusinessID: 1, Role: RoleOwner}
	assert.True(t, owner.CanAccessBranch(1))
	assert.True(t, owner.CanAccessBranch(99))

	branch := ActorContext{BusinessID: 1, Role: RoleBranch, BranchID: ptr.Ptr(int64(3))}
	assert.True(t, branch.CanAccessBranch(3))
	assert.False(t, branch.CanAccessBranch(4))
}
