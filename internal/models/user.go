package models

import "time"

// User represents a platform account.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Password       string    `json:"-"`
	Role           Role      `json:"role"`
	OrganizationID *int64    `json:"organizationId"`
	Nickname       string    `json:"nickname"`
	Memo           *string   `json:"memo"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Account is the public projection of a created user returned by the API.
// The password hash is never part of it.
type Account struct {
	ID               int64     `json:"id"`
	Username         string    `json:"username"`
	Nickname         string    `json:"nickname"`
	Role             Role      `json:"role"`
	OrganizationID   *int64    `json:"organizationId"`
	OrganizationName *string   `json:"organizationName"`
	Memo             *string   `json:"memo"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Actor returns the user's identity for request scoping.
func (u *User) Actor() Actor {
	return Actor{ID: u.ID, Role: u.Role, OrganizationID: u.OrganizationID}
}
