package models

import "time"

// Organization is a tenant grouping owned by exactly one MASTER and
// containing AGENCY and ADVERTISER users.
type Organization struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	MasterID  int64     `json:"masterId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
