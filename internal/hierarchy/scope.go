// Package hierarchy implements the access-scoping engine for the
// MASTER → AGENCY → ADVERTISER tiers: scope resolution for listing queries,
// the persistence layer those queries run against, and the aggregation views
// returned to callers.
package hierarchy

import "github.com/adstack/admin-backend/internal/models"

// OrganizationFilter is the narrowed predicate an organization listing runs
// with. A zero filter means platform-wide.
type OrganizationFilter struct {
	// None marks an empty scope: the query must match nothing.
	None bool
	// ID restricts to exactly one organization.
	ID *int64
	// MasterID restricts to organizations owned by one master.
	MasterID *int64
}

// UserFilter is the narrowed predicate an advertiser listing runs with.
// A zero filter means platform-wide.
type UserFilter struct {
	None bool
	// ID restricts to exactly one user.
	ID *int64
	// OrganizationID restricts to advertisers of one organization.
	OrganizationID *int64
	// MasterID restricts to advertisers in any organization owned by one
	// master; the store resolves the owned-organization set.
	MasterID *int64
}

// ResolveOrganizationScope computes the organization id-set the actor may
// read. Masters read platform-wide and may narrow by masterID; lower tiers
// are pinned to their own organization and caller-supplied filters are
// ignored, so forged query parameters can never widen scope.
func ResolveOrganizationScope(actor models.Actor, masterID *int64) OrganizationFilter {
	if actor.Role == models.RoleMaster {
		return OrganizationFilter{MasterID: masterID}
	}
	if actor.OrganizationID == nil {
		return OrganizationFilter{None: true}
	}
	return OrganizationFilter{ID: actor.OrganizationID}
}

// ResolveAdvertiserScope computes the advertiser id-set the actor may read.
// For masters an explicit organizationID beats masterID (narrower scope
// wins). Agencies see only their own organization, advertisers only
// themselves; their filters are ignored.
func ResolveAdvertiserScope(actor models.Actor, organizationID, masterID *int64) UserFilter {
	switch actor.Role {
	case models.RoleMaster:
		if organizationID != nil {
			return UserFilter{OrganizationID: organizationID}
		}
		if masterID != nil {
			return UserFilter{MasterID: masterID}
		}
		return UserFilter{}
	case models.RoleAgency:
		if actor.OrganizationID == nil {
			return UserFilter{None: true}
		}
		return UserFilter{OrganizationID: actor.OrganizationID}
	default:
		id := actor.ID
		return UserFilter{ID: &id}
	}
}
