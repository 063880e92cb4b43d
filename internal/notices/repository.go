// Package notices implements the platform notice board. Access is gated by
// the role capability predicates only; the organization hierarchy does not
// apply here.
package notices

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adstack/admin-backend/internal/models"
)

// Summary is a notice list row without the body.
type Summary struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	ViewCount int       `json:"viewCount"`
	CreatedAt time.Time `json:"createdAt"`
}

// Repository handles notice persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a notices repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns all notices, newest first.
func (r *Repository) List(ctx context.Context) ([]Summary, error) {
	const q = `SELECT id, title, view_count, created_at FROM notices ORDER BY id DESC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := []Summary{}
	for rows.Next() {
		var n Summary
		if err := rows.Scan(&n.ID, &n.Title, &n.ViewCount, &n.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

// Create inserts a notice.
func (r *Repository) Create(ctx context.Context, title, content string) (*models.Notice, error) {
	const q = `INSERT INTO notices (title, content)
		VALUES ($1, $2)
		RETURNING id, title, content, view_count, created_at, updated_at`
	var n models.Notice
	err := r.pool.QueryRow(ctx, q, title, content).
		Scan(&n.ID, &n.Title, &n.Content, &n.ViewCount, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// GetAndCountView returns a notice and increments its view counter in the
// same statement. Returns nil when the notice does not exist.
func (r *Repository) GetAndCountView(ctx context.Context, id int64) (*models.Notice, error) {
	const q = `UPDATE notices SET view_count = view_count + 1
		WHERE id = $1
		RETURNING id, title, content, view_count, created_at, updated_at`
	var n models.Notice
	err := r.pool.QueryRow(ctx, q, id).
		Scan(&n.ID, &n.Title, &n.Content, &n.ViewCount, &n.CreatedAt, &n.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Update rewrites a notice's title and content. Returns nil when the notice
// does not exist.
func (r *Repository) Update(ctx context.Context, id int64, title, content string) (*models.Notice, error) {
	const q = `UPDATE notices SET title = $2, content = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING id, title, content, view_count, created_at, updated_at`
	var n models.Notice
	err := r.pool.QueryRow(ctx, q, id, title, content).
		Scan(&n.ID, &n.Title, &n.Content, &n.ViewCount, &n.CreatedAt, &n.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Delete removes a notice; reports whether a row was deleted.
func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM notices WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
