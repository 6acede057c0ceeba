package asset

import (
	"context"
	"errors"
	"fmt"

	"monument-backend/internal/shared/listing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Record struct {
	Bucket      string
	Path        string
	URL         *string
	ContentType *string
	SizeBytes   int64
}

type Repository interface {
	List(ctx context.Context, f Filter) ([]Asset, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Asset, error)
	Create(ctx context.Context, rec Record) (*Asset, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const selectColumns = `id, bucket, path, url, content_type, size_bytes, created_at`

func scanRow(row pgx.Row) (*Asset, error) {
	a := &Asset{}
	err := row.Scan(&a.ID, &a.Bucket, &a.Path, &a.URL, &a.ContentType, &a.SizeBytes, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *pgxRepository) List(ctx context.Context, f Filter) ([]Asset, int, error) {
	b := &listing.Builder{}
	if f.Bucket != "" {
		b.Eq("bucket", f.Bucket)
	}
	b.Search(f.Search, "path")

	total, err := listing.Count(ctx, r.pool, "storage_assets", b)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		"SELECT %s FROM storage_assets %s %s LIMIT $%d OFFSET $%d",
		selectColumns, b.Where(),
		sortable.OrderBy(f.Sort, f.Order, "created_at DESC, id ASC", "id ASC"),
		b.Bind(f.Limit), b.Bind(f.Offset),
	)

	rows, err := r.pool.Query(ctx, query, b.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("list assets failed: %w", err)
	}
	defer rows.Close()

	items := make([]Asset, 0, f.Limit)
	for rows.Next() {
		a, err := scanRow(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan asset failed: %w", err)
		}
		items = append(items, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id uuid.UUID) (*Asset, error) {
	query := fmt.Sprintf("SELECT %s FROM storage_assets WHERE id = $1", selectColumns)

	a, err := scanRow(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get asset failed: %w", err)
	}
	return a, nil
}

func (r *pgxRepository) Create(ctx context.Context, rec Record) (*Asset, error) {
	query := fmt.Sprintf(`
		INSERT INTO storage_assets (id, bucket, path, url, content_type, size_bytes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s`, selectColumns)

	a, err := scanRow(r.pool.QueryRow(ctx, query,
		uuid.New(), rec.Bucket, rec.Path, rec.URL, rec.ContentType, rec.SizeBytes,
	))
	if err != nil {
		return nil, fmt.Errorf("create asset failed: %w", err)
	}
	return a, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM storage_assets WHERE id = $1", id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrInUse
		}
		return fmt.Errorf("delete asset failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
