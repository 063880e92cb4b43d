package hierarchy

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adstack/admin-backend/internal/models"
)

// AdvertiserView is one row of the advertisers listing.
type AdvertiserView struct {
	ID               int64   `json:"id"`
	Username         string  `json:"username"`
	Nickname         string  `json:"nickname"`
	OrganizationID   *int64  `json:"organizationId"`
	OrganizationName *string `json:"organizationName"`
	AdCount          int     `json:"adCount"`
}

// Repository is the pgx-backed hierarchy store for listing queries. It only
// ever executes queries already narrowed by the scope resolver.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a hierarchy repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListMasters returns every platform master with its owned-organization
// count, ordered by id.
func (r *Repository) ListMasters(ctx context.Context) ([]MasterView, error) {
	const q = `SELECT u.id, u.username, u.nickname, u.created_at, COUNT(o.id)
		FROM users u
		LEFT JOIN organizations o ON o.master_id = u.id
		WHERE u.role = 'MASTER'
		GROUP BY u.id
		ORDER BY u.id ASC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list masters: %w", err)
	}
	defer rows.Close()
	list := []MasterView{}
	for rows.Next() {
		var m MasterView
		if err := rows.Scan(&m.ID, &m.Username, &m.Nickname, &m.CreatedAt, &m.OrganizationCount); err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// GetMasterForOrganization returns the master owning the given organization,
// or nil when the organization does not exist.
func (r *Repository) GetMasterForOrganization(ctx context.Context, orgID int64) (*MasterView, error) {
	const q = `SELECT u.id, u.username, u.nickname, u.created_at,
			(SELECT COUNT(*) FROM organizations oc WHERE oc.master_id = u.id)
		FROM organizations o
		INNER JOIN users u ON u.id = o.master_id
		WHERE o.id = $1`
	var m MasterView
	err := r.pool.QueryRow(ctx, q, orgID).Scan(&m.ID, &m.Username, &m.Nickname, &m.CreatedAt, &m.OrganizationCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("master for organization %d: %w", orgID, err)
	}
	return &m, nil
}

// ListOrganizations returns the organizations matching the narrowed filter,
// each with its member rows, ordered by name. An empty scope returns an
// empty slice, never an error.
func (r *Repository) ListOrganizations(ctx context.Context, filter OrganizationFilter) ([]OrganizationUsers, error) {
	if filter.None {
		return []OrganizationUsers{}, nil
	}
	q := `SELECT o.id, o.name, o.master_id, COALESCE(NULLIF(m.nickname, ''), m.username)
		FROM organizations o
		LEFT JOIN users m ON m.id = o.master_id`
	args := []any{}
	switch {
	case filter.ID != nil:
		q += ` WHERE o.id = $1`
		args = append(args, *filter.ID)
	case filter.MasterID != nil:
		q += ` WHERE o.master_id = $1`
		args = append(args, *filter.MasterID)
	}
	q += ` ORDER BY o.name ASC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	defer rows.Close()

	orgs := []OrganizationUsers{}
	index := map[int64]int{}
	ids := []int64{}
	for rows.Next() {
		var o OrganizationUsers
		if err := rows.Scan(&o.ID, &o.Name, &o.MasterID, &o.MasterNickname); err != nil {
			return nil, err
		}
		index[o.ID] = len(orgs)
		ids = append(ids, o.ID)
		orgs = append(orgs, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orgs) == 0 {
		return orgs, nil
	}

	const uq = `SELECT id, username, nickname, memo, role, organization_id
		FROM users WHERE organization_id = ANY($1) ORDER BY id ASC`
	urows, err := r.pool.Query(ctx, uq, ids)
	if err != nil {
		return nil, fmt.Errorf("list organization members: %w", err)
	}
	defer urows.Close()
	for urows.Next() {
		var u UserRow
		var orgID int64
		if err := urows.Scan(&u.ID, &u.Username, &u.Nickname, &u.Memo, &u.Role, &orgID); err != nil {
			return nil, err
		}
		if i, ok := index[orgID]; ok {
			orgs[i].Users = append(orgs[i].Users, u)
		}
	}
	return orgs, urows.Err()
}

// ListAdvertisers returns the advertiser accounts matching the narrowed
// filter with their organization name and ad count, newest first. An empty
// scope returns an empty slice.
func (r *Repository) ListAdvertisers(ctx context.Context, filter UserFilter) ([]AdvertiserView, error) {
	if filter.None {
		return []AdvertiserView{}, nil
	}
	q := `SELECT u.id, u.username, u.nickname, u.organization_id, o.name, COUNT(a.id)
		FROM users u
		LEFT JOIN organizations o ON o.id = u.organization_id
		LEFT JOIN ads a ON a.advertiser_id = u.id
		WHERE u.role = $1`
	args := []any{string(models.RoleAdvertiser)}
	switch {
	case filter.ID != nil:
		q += fmt.Sprintf(` AND u.id = $%d`, len(args)+1)
		args = append(args, *filter.ID)
	case filter.OrganizationID != nil:
		q += fmt.Sprintf(` AND u.organization_id = $%d`, len(args)+1)
		args = append(args, *filter.OrganizationID)
	case filter.MasterID != nil:
		q += fmt.Sprintf(` AND u.organization_id IN (SELECT id FROM organizations WHERE master_id = $%d)`, len(args)+1)
		args = append(args, *filter.MasterID)
	}
	q += ` GROUP BY u.id, o.name ORDER BY u.id DESC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list advertisers: %w", err)
	}
	defer rows.Close()
	list := []AdvertiserView{}
	for rows.Next() {
		var a AdvertiserView
		if err := rows.Scan(&a.ID, &a.Username, &a.Nickname, &a.OrganizationID, &a.OrganizationName, &a.AdCount); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
