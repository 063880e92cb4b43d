package models

// Actor is the authenticated caller of a request. It is resolved once by the
// auth middleware and passed explicitly into every core operation; the core
// never consults ambient session state.
type Actor struct {
	ID             int64
	Role           Role
	OrganizationID *int64
}

// InOrganization reports whether the actor belongs to the given organization.
// Masters belong to no organization and always report false.
func (a Actor) InOrganization(orgID int64) bool {
	return a.OrganizationID != nil && *a.OrganizationID == orgID
}
