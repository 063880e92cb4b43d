package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adstack/admin-backend/internal/models"
)

// uniqueViolation is the PostgreSQL error code for unique index violations.
const uniqueViolation = "23505"

// Repository is the pgx-backed store behind the mutation guard.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an accounts repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetUserByUsername returns a user by username, or nil when not found.
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const q = `SELECT id, username, password_hash, role, organization_id, nickname, memo, created_at, updated_at
		FROM users WHERE username = $1`
	var u models.User
	err := r.pool.QueryRow(ctx, q, username).Scan(&u.ID, &u.Username, &u.Password, &u.Role,
		&u.OrganizationID, &u.Nickname, &u.Memo, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetMaster returns the MASTER user with the given id, or nil when no such
// master exists.
func (r *Repository) GetMaster(ctx context.Context, id int64) (*models.User, error) {
	const q = `SELECT id, username, password_hash, role, organization_id, nickname, memo, created_at, updated_at
		FROM users WHERE id = $1 AND role = $2`
	var u models.User
	err := r.pool.QueryRow(ctx, q, id, string(models.RoleMaster)).Scan(&u.ID, &u.Username, &u.Password, &u.Role,
		&u.OrganizationID, &u.Nickname, &u.Memo, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetOrganization returns an organization by id, or nil when not found.
func (r *Repository) GetOrganization(ctx context.Context, id int64) (*models.Organization, error) {
	const q = `SELECT id, name, master_id, created_at, updated_at FROM organizations WHERE id = $1`
	var o models.Organization
	err := r.pool.QueryRow(ctx, q, id).Scan(&o.ID, &o.Name, &o.MasterID, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// GetOrganizationByName returns an organization by name, or nil when not found.
func (r *Repository) GetOrganizationByName(ctx context.Context, name string) (*models.Organization, error) {
	const q = `SELECT id, name, master_id, created_at, updated_at FROM organizations WHERE name = $1`
	var o models.Organization
	err := r.pool.QueryRow(ctx, q, name).Scan(&o.ID, &o.Name, &o.MasterID, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

const insertUserSQL = `INSERT INTO users (username, password_hash, role, organization_id, nickname, memo)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, username, password_hash, role, organization_id, nickname, memo, created_at, updated_at`

// CreateUser inserts a new user.
func (r *Repository) CreateUser(ctx context.Context, nu NewUser) (*models.User, error) {
	var u models.User
	err := r.pool.QueryRow(ctx, insertUserSQL,
		nu.Username, nu.PasswordHash, string(nu.Role), nu.OrganizationID, nu.Nickname, nu.Memo).
		Scan(&u.ID, &u.Username, &u.Password, &u.Role, &u.OrganizationID, &u.Nickname, &u.Memo, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, mapUnique(fmt.Errorf("create user: %w", err))
	}
	return &u, nil
}

// CreateUserInNewOrganization creates the organization owned by masterID and
// the user inside it as one transaction. Either both rows exist afterwards
// or neither does.
func (r *Repository) CreateUserInNewOrganization(ctx context.Context, nu NewUser, orgName string, masterID int64) (*models.User, *models.Organization, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	const orgSQL = `INSERT INTO organizations (name, master_id)
		VALUES ($1, $2)
		RETURNING id, name, master_id, created_at, updated_at`
	var o models.Organization
	if err := tx.QueryRow(ctx, orgSQL, orgName, masterID).
		Scan(&o.ID, &o.Name, &o.MasterID, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, nil, mapUnique(fmt.Errorf("create organization: %w", err))
	}

	var u models.User
	if err := tx.QueryRow(ctx, insertUserSQL,
		nu.Username, nu.PasswordHash, string(nu.Role), &o.ID, nu.Nickname, nu.Memo).
		Scan(&u.ID, &u.Username, &u.Password, &u.Role, &u.OrganizationID, &u.Nickname, &u.Memo, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, nil, mapUnique(fmt.Errorf("create user: %w", err))
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("commit: %w", err)
	}
	return &u, &o, nil
}

// CreateOrganization inserts a new organization owned by masterID.
func (r *Repository) CreateOrganization(ctx context.Context, name string, masterID int64) (*models.Organization, error) {
	const q = `INSERT INTO organizations (name, master_id)
		VALUES ($1, $2)
		RETURNING id, name, master_id, created_at, updated_at`
	var o models.Organization
	err := r.pool.QueryRow(ctx, q, name, masterID).
		Scan(&o.ID, &o.Name, &o.MasterID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, mapUnique(fmt.Errorf("create organization: %w", err))
	}
	return &o, nil
}

// DeleteUsers removes the given ids as one statement. A non-nil scope
// narrows the batch to rows with the scoped role inside the scoped
// organization; ids outside it are simply not matched.
func (r *Repository) DeleteUsers(ctx context.Context, ids []int64, scope *DeleteScope) (int64, error) {
	q := `DELETE FROM users WHERE id = ANY($1)`
	args := []any{ids}
	if scope != nil {
		q += ` AND organization_id = $2 AND role = $3`
		args = append(args, scope.OrganizationID, string(scope.Role))
	}
	tag, err := r.pool.Exec(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// mapUnique folds PostgreSQL unique violations into ErrDuplicate so the
// guard can treat a lost race like a failed pre-check.
func mapUnique(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
	}
	return err
}
