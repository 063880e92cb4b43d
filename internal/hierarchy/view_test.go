package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adstack/admin-backend/internal/models"
)

func memo(s string) *string { return &s }

func sampleOrgs() []OrganizationUsers {
	return []OrganizationUsers{
		{
			ID: 2, Name: "Zenith", MasterID: 1,
			Users: []UserRow{
				{ID: 12, Username: "zagent", Nickname: "Z Agent", Role: models.RoleAgency},
				{ID: 15, Username: "zadv", Nickname: "Z Adv", Role: models.RoleAdvertiser},
			},
		},
		{
			ID: 3, Name: "Acme", MasterID: 1,
			Users: []UserRow{
				{ID: 31, Username: "adv1", Nickname: "Adv One", Role: models.RoleAdvertiser},
				{ID: 22, Username: "agent1", Nickname: "Agent One", Memo: memo("lead"), Role: models.RoleAgency},
				{ID: 25, Username: "adv2", Nickname: "Adv Two", Role: models.RoleAdvertiser},
				{ID: 21, Username: "agent2", Nickname: "Agent Two", Role: models.RoleAgency},
			},
		},
	}
}

func TestBuildAgencyViewsSplitsAndSorts(t *testing.T) {
	views := BuildAgencyViews(master(1), sampleOrgs())
	require.Len(t, views, 2)

	// Organizations ordered by name.
	require.Equal(t, "Acme", views[0].Name)
	require.Equal(t, "Zenith", views[1].Name)

	acme := views[0]
	require.Equal(t, 4, acme.UserCount)
	require.Equal(t, []int64{21, 22}, rowIDs(acme.AgencyUsers))
	require.Equal(t, []int64{25, 31}, rowIDs(acme.Advertisers))
}

func TestBuildAgencyViewsAgencySeesEverything(t *testing.T) {
	views := BuildAgencyViews(agency(22, 3), sampleOrgs()[1:])
	require.Len(t, views, 1)
	require.Len(t, views[0].AgencyUsers, 2)
	require.Len(t, views[0].Advertisers, 2)
}

func TestBuildAgencyViewsAdvertiserRedaction(t *testing.T) {
	views := BuildAgencyViews(advertiser(25, 3), sampleOrgs()[1:])
	require.Len(t, views, 1)

	v := views[0]
	// Advertiser list redacted to the viewer's own row.
	require.Equal(t, []int64{25}, rowIDs(v.Advertisers))
	// Agency staff stay fully visible.
	require.Equal(t, []int64{21, 22}, rowIDs(v.AgencyUsers))
	// Count reflects actual membership, not the redacted view.
	require.Equal(t, 4, v.UserCount)
}

func TestBuildAgencyViewsEmptyListsNotNil(t *testing.T) {
	views := BuildAgencyViews(master(1), []OrganizationUsers{{ID: 9, Name: "Empty", MasterID: 1}})
	require.Len(t, views, 1)
	require.NotNil(t, views[0].AgencyUsers)
	require.NotNil(t, views[0].Advertisers)
	require.Empty(t, views[0].AgencyUsers)
}

func rowIDs(rows []UserRow) []int64 {
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	return ids
}
