package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adstack/admin-backend/internal/models"
)

func ptr(v int64) *int64 { return &v }

func master(id int64) models.Actor {
	return models.Actor{ID: id, Role: models.RoleMaster}
}

func agency(id, orgID int64) models.Actor {
	return models.Actor{ID: id, Role: models.RoleAgency, OrganizationID: &orgID}
}

func advertiser(id, orgID int64) models.Actor {
	return models.Actor{ID: id, Role: models.RoleAdvertiser, OrganizationID: &orgID}
}

func TestResolveOrganizationScopeMaster(t *testing.T) {
	// No filter: platform-wide read.
	f := ResolveOrganizationScope(master(1), nil)
	require.Equal(t, OrganizationFilter{}, f)

	// Explicit masterId filter narrows.
	f = ResolveOrganizationScope(master(1), ptr(7))
	require.Equal(t, OrganizationFilter{MasterID: ptr(7)}, f)
}

func TestResolveOrganizationScopeLowerTiersPinned(t *testing.T) {
	// Caller-supplied filters never widen an agency's or advertiser's scope.
	f := ResolveOrganizationScope(agency(10, 3), ptr(99))
	require.Equal(t, OrganizationFilter{ID: ptr(3)}, f)

	f = ResolveOrganizationScope(advertiser(20, 5), ptr(99))
	require.Equal(t, OrganizationFilter{ID: ptr(5)}, f)
}

func TestResolveOrganizationScopeNoMembership(t *testing.T) {
	// An agency without an organization gets an empty scope, not platform-wide.
	f := ResolveOrganizationScope(models.Actor{ID: 10, Role: models.RoleAgency}, nil)
	require.True(t, f.None)
}

func TestResolveAdvertiserScopeMaster(t *testing.T) {
	f := ResolveAdvertiserScope(master(1), nil, nil)
	require.Equal(t, UserFilter{}, f)

	f = ResolveAdvertiserScope(master(1), ptr(3), nil)
	require.Equal(t, UserFilter{OrganizationID: ptr(3)}, f)

	f = ResolveAdvertiserScope(master(1), nil, ptr(7))
	require.Equal(t, UserFilter{MasterID: ptr(7)}, f)

	// Both filters supplied: organizationId wins, narrower scope.
	f = ResolveAdvertiserScope(master(1), ptr(3), ptr(7))
	require.Equal(t, UserFilter{OrganizationID: ptr(3)}, f)
}

func TestResolveAdvertiserScopeAgencyContainment(t *testing.T) {
	// Whatever filters are supplied, an agency's scope is its own organization.
	filters := [][2]*int64{
		{nil, nil},
		{ptr(99), nil},
		{nil, ptr(99)},
		{ptr(99), ptr(42)},
	}
	for _, pair := range filters {
		f := ResolveAdvertiserScope(agency(10, 3), pair[0], pair[1])
		require.Equal(t, UserFilter{OrganizationID: ptr(3)}, f)
	}
}

func TestResolveAdvertiserScopeAdvertiserSelfOnly(t *testing.T) {
	f := ResolveAdvertiserScope(advertiser(20, 5), ptr(99), ptr(99))
	require.Equal(t, UserFilter{ID: ptr(20)}, f)
}
