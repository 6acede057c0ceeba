package accessory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"monument-backend/internal/shared/listing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	List(ctx context.Context, f Filter) ([]Accessory, int, error)
	GetByID(ctx context.Context, id int64) (*Accessory, error)
	GetBySlug(ctx context.Context, slug string) (*Accessory, error)
	Create(ctx context.Context, req CreateRequest, slug string) (*Accessory, error)
	Update(ctx context.Context, id int64, req UpdateRequest) (*Accessory, error)
	Delete(ctx context.Context, id int64) error
	Reorder(ctx context.Context, ids []int64) error
	SetImage(ctx context.Context, id int64, assetID *uuid.UUID) (*Accessory, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const selectColumns = `
	a.id, a.name, a.slug, a.description, a.category,
	a.image_url, a.storage_asset_id, a.display_order, a.is_active,
	a.created_at, a.updated_at,
	s.url, s.bucket, s.path`

const fromJoined = `accessories a LEFT JOIN storage_assets s ON a.storage_asset_id = s.id`

func scanRow(row pgx.Row) (*Accessory, error) {
	a := &Accessory{}
	err := row.Scan(
		&a.ID, &a.Name, &a.Slug, &a.Description, &a.Category,
		&a.ImageURL, &a.StorageAssetID, &a.DisplayOrder, &a.IsActive,
		&a.CreatedAt, &a.UpdatedAt,
		&a.AssetURL, &a.AssetBucket, &a.AssetPath,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// List runs the count query and the page query over one predicate so the
// x-total-count header can never disagree with the rows.
func (r *pgxRepository) List(ctx context.Context, f Filter) ([]Accessory, int, error) {
	b := &listing.Builder{}
	b.Bool("a.is_active", f.IsActive)
	if f.Category != "" {
		b.Eq("a.category", f.Category)
	}
	b.Search(f.Search, "a.name", "a.description")

	total, err := listing.Count(ctx, r.pool, fromJoined, b)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		"SELECT %s FROM %s %s %s LIMIT $%d OFFSET $%d",
		selectColumns, fromJoined, b.Where(),
		sortable.OrderBy(f.Sort, f.Order, "a.display_order ASC, a.id ASC", "a.id ASC"),
		b.Bind(f.Limit), b.Bind(f.Offset),
	)

	rows, err := r.pool.Query(ctx, query, b.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("list accessories failed: %w", err)
	}
	defer rows.Close()

	items := make([]Accessory, 0, f.Limit)
	for rows.Next() {
		a, err := scanRow(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan accessory failed: %w", err)
		}
		items = append(items, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Accessory, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE a.id = $1", selectColumns, fromJoined)
	return r.getOne(ctx, query, id)
}

func (r *pgxRepository) GetBySlug(ctx context.Context, slug string) (*Accessory, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE a.slug = $1", selectColumns, fromJoined)
	return r.getOne(ctx, query, slug)
}

func (r *pgxRepository) getOne(ctx context.Context, query string, arg any) (*Accessory, error) {
	a, err := scanRow(r.pool.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get accessory failed: %w", err)
	}
	return a, nil
}

// Create assigns display order inside the INSERT (max+1 when the caller
// did not pick one), so there is no read-modify-write window.
func (r *pgxRepository) Create(ctx context.Context, req CreateRequest, slug string) (*Accessory, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	query := fmt.Sprintf(`
		INSERT INTO accessories (name, slug, description, category, image_url, is_active, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, %s))
		RETURNING id`,
		listing.NextDisplayOrder("accessories"),
	)

	var id int64
	err := r.pool.QueryRow(ctx, query,
		req.Name, slug, req.Description, req.Category, req.ImageURL, isActive, req.DisplayOrder,
	).Scan(&id)
	if err != nil {
		return nil, translateError(err)
	}

	return r.GetByID(ctx, id)
}

func (r *pgxRepository) Update(ctx context.Context, id int64, req UpdateRequest) (*Accessory, error) {
	sets := []string{"updated_at = NOW()"}
	args := []any{}

	add := func(column string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.Name != nil {
		add("name", *req.Name)
	}
	if req.Slug != nil {
		add("slug", *req.Slug)
	}
	if req.Description != nil {
		add("description", *req.Description)
	}
	if req.Category != nil {
		add("category", *req.Category)
	}
	if req.ImageURL != nil {
		add("image_url", *req.ImageURL)
	}
	if req.IsActive != nil {
		add("is_active", *req.IsActive)
	}
	if req.DisplayOrder != nil {
		add("display_order", *req.DisplayOrder)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE accessories SET %s WHERE id = $%d",
		strings.Join(sets, ", "), len(args))

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *pgxRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM accessories WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete accessory failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Reorder(ctx context.Context, ids []int64) error {
	return listing.Reorder(ctx, r.pool, "accessories", "id", ids)
}

func (r *pgxRepository) SetImage(ctx context.Context, id int64, assetID *uuid.UUID) (*Accessory, error) {
	tag, err := r.pool.Exec(ctx,
		"UPDATE accessories SET storage_asset_id = $1, updated_at = NOW() WHERE id = $2",
		assetID, id,
	)
	if err != nil {
		return nil, translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}

	return r.GetByID(ctx, id)
}

// translateError turns constraint violations into domain errors instead
// of leaking raw store errors to clients.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			if strings.Contains(pgErr.ConstraintName, "slug") {
				return ErrDuplicateSlug
			}
		case "23503":
			if strings.Contains(pgErr.ConstraintName, "storage_asset") {
				return ErrAssetNotFound
			}
		}
	}
	return fmt.Errorf("accessory query failed: %w", err)
}
