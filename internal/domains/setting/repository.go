package setting

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	List(ctx context.Context) ([]Setting, error)
	PublicMap(ctx context.Context) (map[string]string, error)
	Get(ctx context.Context, key string) (*Setting, error)
	Upsert(ctx context.Context, key string, req UpsertRequest) (*Setting, error)
	Delete(ctx context.Context, key string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const selectColumns = `key, value, is_public, updated_at`

func scanRow(row pgx.Row) (*Setting, error) {
	s := &Setting{}
	if err := row.Scan(&s.Key, &s.Value, &s.IsPublic, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *pgxRepository) List(ctx context.Context) ([]Setting, error) {
	query := fmt.Sprintf("SELECT %s FROM settings ORDER BY key ASC", selectColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list settings failed: %w", err)
	}
	defer rows.Close()

	var items []Setting
	for rows.Next() {
		s, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan setting failed: %w", err)
		}
		items = append(items, *s)
	}
	return items, rows.Err()
}

func (r *pgxRepository) PublicMap(ctx context.Context) (map[string]string, error) {
	rows, err := r.pool.Query(ctx, "SELECT key, value FROM settings WHERE is_public ORDER BY key ASC")
	if err != nil {
		return nil, fmt.Errorf("list public settings failed: %w", err)
	}
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan setting failed: %w", err)
		}
		out[key] = value
	}
	return out, rows.Err()
}

func (r *pgxRepository) Get(ctx context.Context, key string) (*Setting, error) {
	query := fmt.Sprintf("SELECT %s FROM settings WHERE key = $1", selectColumns)

	s, err := scanRow(r.pool.QueryRow(ctx, query, key))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get setting failed: %w", err)
	}
	return s, nil
}

// Upsert inserts or overwrites. A nil IsPublic keeps the existing flag
// on update and defaults to false on insert.
func (r *pgxRepository) Upsert(ctx context.Context, key string, req UpsertRequest) (*Setting, error) {
	query := fmt.Sprintf(`
		INSERT INTO settings (key, value, is_public, updated_at)
		VALUES ($1, $2, COALESCE($3, FALSE), NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value,
		    is_public = COALESCE($3, settings.is_public),
		    updated_at = NOW()
		RETURNING %s`, selectColumns)

	s, err := scanRow(r.pool.QueryRow(ctx, query, key, req.Value, req.IsPublic))
	if err != nil {
		return nil, fmt.Errorf("upsert setting failed: %w", err)
	}
	return s, nil
}

func (r *pgxRepository) Delete(ctx context.Context, key string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM settings WHERE key = $1", key)
	if err != nil {
		return fmt.Errorf("delete setting failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
