package hierarchy

import (
	"sort"
	"time"

	"github.com/adstack/admin-backend/internal/models"
)

// MasterView is one row of the masters listing.
type MasterView struct {
	ID                int64     `json:"id"`
	Username          string    `json:"username"`
	Nickname          string    `json:"nickname"`
	CreatedAt         time.Time `json:"createdAt"`
	OrganizationCount int       `json:"organizationCount"`
}

// UserRow is a member row inside an organization view.
type UserRow struct {
	ID       int64       `json:"id"`
	Username string      `json:"username"`
	Nickname string      `json:"nickname"`
	Memo     *string     `json:"memo"`
	Role     models.Role `json:"role"`
}

// OrganizationUsers is an organization with its member rows as loaded from
// the store, before per-viewer redaction.
type OrganizationUsers struct {
	ID             int64
	Name           string
	MasterID       int64
	MasterNickname *string
	Users          []UserRow
}

// AgencyView is one organization of the agencies listing: the organization
// with its agency-role and advertiser-role members split into two lists.
type AgencyView struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	MasterID       int64     `json:"masterId"`
	MasterNickname *string   `json:"masterNickname"`
	UserCount      int       `json:"userCount"`
	AgencyUsers    []UserRow `json:"agencyUsers"`
	Advertisers    []UserRow `json:"advertisers"`
}

// BuildAgencyViews shapes store rows into the nested view consumed by
// hierarchy UIs, applying per-viewer redaction: an advertiser viewer sees
// only their own row in the advertiser list, while agency staff stay fully
// visible to everyone in scope. Organizations are ordered by name, member
// sub-lists by id.
func BuildAgencyViews(viewer models.Actor, orgs []OrganizationUsers) []AgencyView {
	views := make([]AgencyView, 0, len(orgs))
	for _, org := range orgs {
		v := AgencyView{
			ID:             org.ID,
			Name:           org.Name,
			MasterID:       org.MasterID,
			MasterNickname: org.MasterNickname,
			UserCount:      len(org.Users),
			AgencyUsers:    []UserRow{},
			Advertisers:    []UserRow{},
		}
		for _, u := range org.Users {
			switch u.Role {
			case models.RoleAgency:
				v.AgencyUsers = append(v.AgencyUsers, u)
			case models.RoleAdvertiser:
				if viewer.Role == models.RoleAdvertiser && u.ID != viewer.ID {
					continue
				}
				v.Advertisers = append(v.Advertisers, u)
			}
		}
		sortUserRows(v.AgencyUsers)
		sortUserRows(v.Advertisers)
		views = append(views, v)
	}
	sort.Slice(views, func(i, j int) bool { return views[i].Name < views[j].Name })
	return views
}

func sortUserRows(rows []UserRow) {
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
}
