package campaign

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
	List(ctx context.Context, f Filter) ([]Campaign, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Campaign, error)
	GetBySlug(ctx context.Context, slug string) (*Campaign, error)
	Create(ctx context.Context, req CreateRequest, slug string) (*Campaign, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*Campaign, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, ids []uuid.UUID) error
	SetImage(ctx context.Context, id uuid.UUID, assetID *uuid.UUID) (*Campaign, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const selectColumns = `
	cp.id, cp.title, cp.slug, cp.description,
	cp.image_url, cp.storage_asset_id, cp.starts_at, cp.expires_at,
	cp.display_order, cp.is_active, cp.created_at, cp.updated_at,
	s.url, s.bucket, s.path`

const fromJoined = `campaigns cp LEFT JOIN storage_assets s ON cp.storage_asset_id = s.id`

func scanRow(row pgx.Row) (*Campaign, error) {
	cp := &Campaign{}
	err := row.Scan(
		&cp.ID, &cp.Title, &cp.Slug, &cp.Description,
		&cp.ImageURL, &cp.StorageAssetID, &cp.StartsAt, &cp.ExpiresAt,
		&cp.DisplayOrder, &cp.IsActive, &cp.CreatedAt, &cp.UpdatedAt,
		&cp.AssetURL, &cp.AssetBucket, &cp.AssetPath,
	)
	if err != nil {
		return nil, err
	}
	return cp, nil
}

func (r *pgxRepository) List(ctx context.Context, f Filter) ([]Campaign, int, error) {
	b := &listing.Builder{}
	b.Bool("cp.is_active", f.IsActive)
	if f.OnlyRunning {
		b.Started("cp.starts_at")
		b.Unexpired("cp.expires_at")
	}
	b.Search(f.Search, "cp.title", "cp.description")

	total, err := listing.Count(ctx, r.pool, fromJoined, b)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		"SELECT %s FROM %s %s %s LIMIT $%d OFFSET $%d",
		selectColumns, fromJoined, b.Where(),
		sortable.OrderBy(f.Sort, f.Order, "cp.display_order ASC, cp.id ASC", "cp.id ASC"),
		b.Bind(f.Limit), b.Bind(f.Offset),
	)

	rows, err := r.pool.Query(ctx, query, b.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("list campaigns failed: %w", err)
	}
	defer rows.Close()

	items := make([]Campaign, 0, f.Limit)
	for rows.Next() {
		cp, err := scanRow(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan campaign failed: %w", err)
		}
		items = append(items, *cp)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id uuid.UUID) (*Campaign, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE cp.id = $1", selectColumns, fromJoined)
	return r.getOne(ctx, query, id)
}

func (r *pgxRepository) GetBySlug(ctx context.Context, slug string) (*Campaign, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE cp.slug = $1", selectColumns, fromJoined)
	return r.getOne(ctx, query, slug)
}

func (r *pgxRepository) getOne(ctx context.Context, query string, arg any) (*Campaign, error) {
	cp, err := scanRow(r.pool.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get campaign failed: %w", err)
	}
	return cp, nil
}

func (r *pgxRepository) Create(ctx context.Context, req CreateRequest, slug string) (*Campaign, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	query := fmt.Sprintf(`
		INSERT INTO campaigns (id, title, slug, description, image_url, starts_at, expires_at, is_active, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE($9, %s))
		RETURNING id`,
		listing.NextDisplayOrder("campaigns"),
	)

	id := uuid.New()
	var created uuid.UUID
	err := r.pool.QueryRow(ctx, query,
		id, req.Title, slug, req.Description, req.ImageURL, req.StartsAt, req.ExpiresAt, isActive, req.DisplayOrder,
	).Scan(&created)
	if err != nil {
		return nil, translateError(err)
	}

	return r.GetByID(ctx, created)
}

func (r *pgxRepository) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*Campaign, error) {
	sets := []string{"updated_at = NOW()"}
	args := []any{}

	add := func(column string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.Title != nil {
		add("title", *req.Title)
	}
	if req.Slug != nil {
		add("slug", *req.Slug)
	}
	if req.Description != nil {
		add("description", *req.Description)
	}
	if req.ImageURL != nil {
		add("image_url", *req.ImageURL)
	}
	if req.StartsAt != nil {
		add("starts_at", *req.StartsAt)
	}
	if req.ExpiresAt != nil {
		add("expires_at", *req.ExpiresAt)
	}
	if req.IsActive != nil {
		add("is_active", *req.IsActive)
	}
	if req.DisplayOrder != nil {
		add("display_order", *req.DisplayOrder)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE campaigns SET %s WHERE id = $%d",
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
	tag, err := r.pool.Exec(ctx, "DELETE FROM campaigns WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete campaign failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Reorder(ctx context.Context, ids []uuid.UUID) error {
	return listing.Reorder(ctx, r.pool, "campaigns", "id", ids)
}

func (r *pgxRepository) SetImage(ctx context.Context, id uuid.UUID, assetID *uuid.UUID) (*Campaign, error) {
	tag, err := r.pool.Exec(ctx,
		"UPDATE campaigns SET storage_asset_id = $1, updated_at = NOW() WHERE id = $2",
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
	return fmt.Errorf("campaign query failed: %w", err)
}
