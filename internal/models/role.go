package models

// Role represents a user's tier in the platform hierarchy.
type Role string

const (
	RoleMaster     Role = "MASTER"
	RoleAgency     Role = "AGENCY"
	RoleAdvertiser Role = "ADVERTISER"
)

// Rank returns the privilege rank of a role: MASTER(2) > AGENCY(1) > ADVERTISER(0).
// Unknown roles rank below ADVERTISER.
func (r Role) Rank() int {
	switch r {
	case RoleMaster:
		return 2
	case RoleAgency:
		return 1
	case RoleAdvertiser:
		return 0
	}
	return -1
}

// Valid reports whether r is one of the three platform roles.
func (r Role) Valid() bool {
	return r == RoleMaster || r == RoleAgency || r == RoleAdvertiser
}

// CanManageAccounts reports whether the role may create or delete accounts.
func (r Role) CanManageAccounts() bool {
	return r == RoleMaster || r == RoleAgency
}

// CanCreateRole reports whether an actor with role r may create an account
// with the target role. MASTER creates any tier; AGENCY creates only
// ADVERTISER; ADVERTISER creates nothing.
func (r Role) CanCreateRole(target Role) bool {
	switch r {
	case RoleMaster:
		return target.Valid()
	case RoleAgency:
		return target == RoleAdvertiser
	}
	return false
}

// CanManageNotices reports whether the role may write to the notice board.
func (r Role) CanManageNotices() bool {
	return r == RoleMaster
}

// CanViewNotices reports whether the role may read the notice board.
func (r Role) CanViewNotices() bool {
	return r.Valid()
}
