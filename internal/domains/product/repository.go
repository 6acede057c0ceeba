package product

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
	List(ctx context.Context, f Filter) ([]Product, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	Create(ctx context.Context, req CreateRequest, slug string) (*Product, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, ids []uuid.UUID) error
	SetImage(ctx context.Context, id uuid.UUID, assetID *uuid.UUID) (*Product, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const selectColumns = `
	p.id, p.name, p.slug, p.description, p.category, p.material, p.price,
	p.image_url, p.storage_asset_id, p.display_order, p.is_active,
	p.created_at, p.updated_at,
	s.url, s.bucket, s.path`

const fromJoined = `products p LEFT JOIN storage_assets s ON p.storage_asset_id = s.id`

func scanRow(row pgx.Row) (*Product, error) {
	p := &Product{}
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.Category, &p.Material, &p.Price,
		&p.ImageURL, &p.StorageAssetID, &p.DisplayOrder, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt,
		&p.AssetURL, &p.AssetBucket, &p.AssetPath,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *pgxRepository) List(ctx context.Context, f Filter) ([]Product, int, error) {
	b := &listing.Builder{}
	b.Bool("p.is_active", f.IsActive)
	if f.Category != "" {
		b.Eq("p.category", f.Category)
	}
	if f.Material != "" {
		b.Eq("p.material", f.Material)
	}
	b.Search(f.Search, "p.name", "p.description")

	total, err := listing.Count(ctx, r.pool, fromJoined, b)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		"SELECT %s FROM %s %s %s LIMIT $%d OFFSET $%d",
		selectColumns, fromJoined, b.Where(),
		sortable.OrderBy(f.Sort, f.Order, "p.display_order ASC, p.id ASC", "p.id ASC"),
		b.Bind(f.Limit), b.Bind(f.Offset),
	)

	rows, err := r.pool.Query(ctx, query, b.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products failed: %w", err)
	}
	defer rows.Close()

	items := make([]Product, 0, f.Limit)
	for rows.Next() {
		p, err := scanRow(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product failed: %w", err)
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE p.id = $1", selectColumns, fromJoined)
	return r.getOne(ctx, query, id)
}

func (r *pgxRepository) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE p.slug = $1", selectColumns, fromJoined)
	return r.getOne(ctx, query, slug)
}

func (r *pgxRepository) getOne(ctx context.Context, query string, arg any) (*Product, error) {
	p, err := scanRow(r.pool.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product failed: %w", err)
	}
	return p, nil
}

func (r *pgxRepository) Create(ctx context.Context, req CreateRequest, slug string) (*Product, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	query := fmt.Sprintf(`
		INSERT INTO products (id, name, slug, description, category, material, price, image_url, is_active, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, COALESCE($10, %s))
		RETURNING id`,
		listing.NextDisplayOrder("products"),
	)

	id := uuid.New()
	var created uuid.UUID
	err := r.pool.QueryRow(ctx, query,
		id, req.Name, slug, req.Description, req.Category, req.Material, req.Price, req.ImageURL, isActive, req.DisplayOrder,
	).Scan(&created)
	if err != nil {
		return nil, translateError(err)
	}

	return r.GetByID(ctx, created)
}

func (r *pgxRepository) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*Product, error) {
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
	if req.Material != nil {
		add("material", *req.Material)
	}
	if req.Price != nil {
		add("price", *req.Price)
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
	query := fmt.Sprintf("UPDATE products SET %s WHERE id = $%d",
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

func (r *pgxRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete product failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Reorder(ctx context.Context, ids []uuid.UUID) error {
	return listing.Reorder(ctx, r.pool, "products", "id", ids)
}

func (r *pgxRepository) SetImage(ctx context.Context, id uuid.UUID, assetID *uuid.UUID) (*Product, error) {
	tag, err := r.pool.Exec(ctx,
		"UPDATE products SET storage_asset_id = $1, updated_at = NOW() WHERE id = $2",
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
	return fmt.Errorf("product query failed: %w", err)
}
