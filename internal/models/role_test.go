package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoleRankOrder(t *testing.T) {
	require.Greater(t, RoleMaster.Rank(), RoleAgency.Rank())
	require.Greater(t, RoleAgency.Rank(), RoleAdvertiser.Rank())
	require.Less(t, Role("bogus").Rank(), RoleAdvertiser.Rank())
}

func TestCanCreateRole(t *testing.T) {
	require.True(t, RoleMaster.CanCreateRole(RoleMaster))
	require.True(t, RoleMaster.CanCreateRole(RoleAgency))
	require.True(t, RoleMaster.CanCreateRole(RoleAdvertiser))

	require.False(t, RoleAgency.CanCreateRole(RoleMaster))
	require.False(t, RoleAgency.CanCreateRole(RoleAgency))
	require.True(t, RoleAgency.CanCreateRole(RoleAdvertiser))

	require.False(t, RoleAdvertiser.CanCreateRole(RoleAdvertiser))
	require.False(t, RoleAdvertiser.CanCreateRole(RoleMaster))

	require.False(t, RoleMaster.CanCreateRole(Role("bogus")))
}

func TestCapabilities(t *testing.T) {
	require.True(t, RoleMaster.CanManageAccounts())
	require.True(t, RoleAgency.CanManageAccounts())
	require.False(t, RoleAdvertiser.CanManageAccounts())

	require.True(t, RoleMaster.CanManageNotices())
	require.False(t, RoleAgency.CanManageNotices())
	require.False(t, RoleAdvertiser.CanManageNotices())

	require.True(t, RoleMaster.CanViewNotices())
	require.True(t, RoleAgency.CanViewNotices())
	require.True(t, RoleAdvertiser.CanViewNotices())
	require.False(t, Role("bogus").CanViewNotices())
}
