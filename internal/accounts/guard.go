// Package accounts implements the mutation guard: every create/delete on
// users and organizations is authorized and rewritten into a fully-scoped
// store operation here before it touches persistence.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/adstack/admin-backend/internal/models"
	"github.com/adstack/admin-backend/pkg/utils"
	"github.com/adstack/admin-backend/pkg/validation"
)

// ErrForbidden marks operations denied by a role or ownership rule.
var ErrForbidden = errors.New("forbidden")

// ErrDuplicate is surfaced by the store when a unique index rejects a write.
// The store's uniqueness enforcement is the source of truth; the guard's
// pre-checks are a second validation layer, not a replacement.
var ErrDuplicate = errors.New("duplicate value")

// ValidationError marks malformed or conflicting input. It is never
// partially applied.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErr(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// NewUser is the persistence-ready shape of an account to create.
type NewUser struct {
	Username       string
	PasswordHash   string
	Role           models.Role
	OrganizationID *int64
	Nickname       string
	Memo           *string
}

// DeleteScope narrows a bulk delete server-side: only rows with this role
// inside this organization are touched.
type DeleteScope struct {
	OrganizationID int64
	Role           models.Role
}

// Store is the persistence surface the guard mutates through.
type Store interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetMaster(ctx context.Context, id int64) (*models.User, error)
	GetOrganization(ctx context.Context, id int64) (*models.Organization, error)
	GetOrganizationByName(ctx context.Context, name string) (*models.Organization, error)
	CreateUser(ctx context.Context, nu NewUser) (*models.User, error)
	// CreateUserInNewOrganization creates the organization and the user as a
	// single transaction; a failed user insert leaves no orphaned
	// organization behind.
	CreateUserInNewOrganization(ctx context.Context, nu NewUser, orgName string, masterID int64) (*models.User, *models.Organization, error)
	CreateOrganization(ctx context.Context, name string, masterID int64) (*models.Organization, error)
	DeleteUsers(ctx context.Context, ids []int64, scope *DeleteScope) (int64, error)
}

// Guard authorizes and routes account/organization mutations.
type Guard struct {
	store Store
	hash  func(string) (string, error)
}

// NewGuard creates a mutation guard backed by the given store.
func NewGuard(store Store) *Guard {
	return &Guard{store: store, hash: utils.HashPassword}
}

// CreateAccountInput is the request to create an account.
type CreateAccountInput struct {
	Username         string
	Password         string
	Role             models.Role
	OrganizationID   *int64
	OrganizationName string
	Nickname         string
	Memo             *string
}

// CreateAccount authorizes and performs account creation for the actor.
// Precondition order: role gate, required fields, username format, password
// strength, tier rule, username uniqueness, organization placement.
func (g *Guard) CreateAccount(ctx context.Context, actor models.Actor, in CreateAccountInput) (*models.Account, error) {
	if !actor.Role.CanManageAccounts() {
		return nil, fmt.Errorf("%w: role %s may not register accounts", ErrForbidden, actor.Role)
	}

	nickname := strings.TrimSpace(in.Nickname)
	if in.Username == "" || in.Password == "" || nickname == "" || in.Role == "" {
		return nil, validationErr("username, password, nickname and role are required")
	}
	if !in.Role.Valid() {
		return nil, validationErr("unknown role %q", in.Role)
	}
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, &ValidationError{msg: err.Error()}
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, &ValidationError{msg: err.Error()}
	}
	if !actor.Role.CanCreateRole(in.Role) {
		return nil, fmt.Errorf("%w: role %s may not create %s accounts", ErrForbidden, actor.Role, in.Role)
	}

	if existing, err := g.store.GetUserByUsername(ctx, in.Username); err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	} else if existing != nil {
		return nil, validationErr("username %q is already taken", in.Username)
	}

	hash, err := g.hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	nu := NewUser{
		Username:     in.Username,
		PasswordHash: hash,
		Role:         in.Role,
		Nickname:     nickname,
		Memo:         in.Memo,
	}

	account, err := g.placeAndCreate(ctx, actor, in, nu)
	if errors.Is(err, ErrDuplicate) {
		// Lost a race on the unique index; same outcome as the pre-check.
		return nil, validationErr("username or organization name is already taken")
	}
	return account, err
}

// placeAndCreate resolves which organization the new account lands in and
// persists it. Agencies always place into their own organization; masters
// choose an existing organization or spawn a new one they own.
func (g *Guard) placeAndCreate(ctx context.Context, actor models.Actor, in CreateAccountInput, nu NewUser) (*models.Account, error) {
	if nu.Role == models.RoleMaster {
		// Masters belong to no organization, whatever the input said.
		user, err := g.store.CreateUser(ctx, nu)
		if err != nil {
			return nil, err
		}
		return accountOf(user, nil), nil
	}

	if actor.Role == models.RoleAgency {
		if actor.OrganizationID == nil {
			return nil, validationErr("acting agency has no organization")
		}
		nu.OrganizationID = actor.OrganizationID
		org, err := g.store.GetOrganization(ctx, *actor.OrganizationID)
		if err != nil {
			return nil, fmt.Errorf("load organization: %w", err)
		}
		user, err := g.store.CreateUser(ctx, nu)
		if err != nil {
			return nil, err
		}
		return accountOf(user, org), nil
	}

	// MASTER actor creating an AGENCY or ADVERTISER.
	if name := strings.TrimSpace(in.OrganizationName); name != "" {
		if existing, err := g.store.GetOrganizationByName(ctx, name); err != nil {
			return nil, fmt.Errorf("check organization name: %w", err)
		} else if existing != nil {
			return nil, validationErr("organization %q already exists", name)
		}
		user, org, err := g.store.CreateUserInNewOrganization(ctx, nu, name, actor.ID)
		if err != nil {
			return nil, err
		}
		return accountOf(user, org), nil
	}
	if in.OrganizationID != nil {
		org, err := g.store.GetOrganization(ctx, *in.OrganizationID)
		if err != nil {
			return nil, fmt.Errorf("load organization: %w", err)
		}
		if org == nil {
			return nil, validationErr("organization %d does not exist", *in.OrganizationID)
		}
		nu.OrganizationID = &org.ID
		user, err := g.store.CreateUser(ctx, nu)
		if err != nil {
			return nil, err
		}
		return accountOf(user, org), nil
	}
	return nil, validationErr("an organization must be selected")
}

// DeleteAccounts authorizes and performs a bulk account delete, returning
// the number of rows actually removed. A batch containing the caller's own
// id is rejected whole. Agencies are narrowed server-side to advertisers of
// their own organization; out-of-scope ids are silently excluded.
func (g *Guard) DeleteAccounts(ctx context.Context, actor models.Actor, ids []int64) (int64, error) {
	if !actor.Role.CanManageAccounts() {
		return 0, fmt.Errorf("%w: role %s may not delete accounts", ErrForbidden, actor.Role)
	}
	if len(ids) == 0 {
		return 0, validationErr("no accounts selected")
	}
	for _, id := range ids {
		if id == actor.ID {
			return 0, fmt.Errorf("%w: you cannot delete your own account", ErrForbidden)
		}
	}

	var scope *DeleteScope
	if actor.Role == models.RoleAgency {
		if actor.OrganizationID == nil {
			return 0, nil
		}
		scope = &DeleteScope{OrganizationID: *actor.OrganizationID, Role: models.RoleAdvertiser}
	}
	count, err := g.store.DeleteUsers(ctx, ids, scope)
	if err != nil {
		return 0, fmt.Errorf("delete users: %w", err)
	}
	return count, nil
}

// OrganizationResult is the public projection of a created organization.
type OrganizationResult struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	MasterID       int64   `json:"masterId"`
	MasterNickname *string `json:"masterNickname"`
}

// CreateOrganization authorizes explicit organization creation. Only a
// MASTER may create organizations; omitting masterID assigns ownership to
// the acting master.
func (g *Guard) CreateOrganization(ctx context.Context, actor models.Actor, name string, masterID *int64) (*OrganizationResult, error) {
	if actor.Role != models.RoleMaster {
		return nil, fmt.Errorf("%w: role %s may not create organizations", ErrForbidden, actor.Role)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationErr("organization name is required")
	}
	if existing, err := g.store.GetOrganizationByName(ctx, name); err != nil {
		return nil, fmt.Errorf("check organization name: %w", err)
	} else if existing != nil {
		return nil, validationErr("organization %q already exists", name)
	}

	owner := actor.ID
	if masterID != nil {
		owner = *masterID
	}
	master, err := g.store.GetMaster(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("load master: %w", err)
	}
	if master == nil {
		return nil, validationErr("master %d does not exist", owner)
	}

	org, err := g.store.CreateOrganization(ctx, name, owner)
	if errors.Is(err, ErrDuplicate) {
		return nil, validationErr("organization %q already exists", name)
	}
	if err != nil {
		return nil, err
	}
	nickname := master.Nickname
	if nickname == "" {
		nickname = master.Username
	}
	return &OrganizationResult{
		ID:             org.ID,
		Name:           org.Name,
		MasterID:       org.MasterID,
		MasterNickname: &nickname,
	}, nil
}

func accountOf(user *models.User, org *models.Organization) *models.Account {
	a := &models.Account{
		ID:             user.ID,
		Username:       user.Username,
		Nickname:       user.Nickname,
		Role:           user.Role,
		OrganizationID: user.OrganizationID,
		Memo:           user.Memo,
		CreatedAt:      user.CreatedAt,
	}
	if org != nil {
		a.OrganizationName = &org.Name
	}
	return a
}
