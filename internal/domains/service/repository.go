package service

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
	List(ctx context.Context, f Filter) ([]Service, int, error)
	GetByID(ctx context.Context, id int64) (*Service, error)
	GetBySlug(ctx context.Context, slug string) (*Service, error)
	Create(ctx context.Context, req CreateRequest, slug string) (*Service, error)
	Update(ctx context.Context, id int64, req UpdateRequest) (*Service, error)
	Delete(ctx context.Context, id int64) error
	Reorder(ctx context.Context, ids []int64) error
	SetImage(ctx context.Context, id int64, assetID *uuid.UUID) (*Service, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const selectColumns = `
	sv.id, sv.name, sv.slug, sv.description,
	sv.image_url, sv.storage_asset_id, sv.display_order, sv.is_active,
	sv.created_at, sv.updated_at,
	s.url, s.bucket, s.path`

const fromJoined = `services sv LEFT JOIN storage_assets s ON sv.storage_asset_id = s.id`

func scanRow(row pgx.Row) (*Service, error) {
	s := &Service{}
	err := row.Scan(
		&s.ID, &s.Name, &s.Slug, &s.Description,
		&s.ImageURL, &s.StorageAssetID, &s.DisplayOrder, &s.IsActive,
		&s.CreatedAt, &s.UpdatedAt,
		&s.AssetURL, &s.AssetBucket, &s.AssetPath,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *pgxRepository) List(ctx context.Context, f Filter) ([]Service, int, error) {
	b := &listing.Builder{}
	b.Bool("sv.is_active", f.IsActive)
	b.Search(f.Search, "sv.name", "sv.description")

	total, err := listing.Count(ctx, r.pool, fromJoined, b)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		"SELECT %s FROM %s %s %s LIMIT $%d OFFSET $%d",
		selectColumns, fromJoined, b.Where(),
		sortable.OrderBy(f.Sort, f.Order, "sv.display_order ASC, sv.id ASC", "sv.id ASC"),
		b.Bind(f.Limit), b.Bind(f.Offset),
	)

	rows, err := r.pool.Query(ctx, query, b.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("list services failed: %w", err)
	}
	defer rows.Close()

	items := make([]Service, 0, f.Limit)
	for rows.Next() {
		s, err := scanRow(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan service failed: %w", err)
		}
		items = append(items, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Service, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE sv.id = $1", selectColumns, fromJoined)
	return r.getOne(ctx, query, id)
}

func (r *pgxRepository) GetBySlug(ctx context.Context, slug string) (*Service, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE sv.slug = $1", selectColumns, fromJoined)
	return r.getOne(ctx, query, slug)
}

func (r *pgxRepository) getOne(ctx context.Context, query string, arg any) (*Service, error) {
	s, err := scanRow(r.pool.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get service failed: %w", err)
	}
	return s, nil
}

func (r *pgxRepository) Create(ctx context.Context, req CreateRequest, slug string) (*Service, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	query := fmt.Sprintf(`
		INSERT INTO services (name, slug, description, image_url, is_active, display_order)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6, %s))
		RETURNING id`,
		listing.NextDisplayOrder("services"),
	)

	var id int64
	err := r.pool.QueryRow(ctx, query,
		req.Name, slug, req.Description, req.ImageURL, isActive, req.DisplayOrder,
	).Scan(&id)
	if err != nil {
		return nil, translateError(err)
	}

	return r.GetByID(ctx, id)
}

func (r *pgxRepository) Update(ctx context.Context, id int64, req UpdateRequest) (*Service, error) {
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
	query := fmt.Sprintf("UPDATE services SET %s WHERE id = $%d",
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
	tag, err := r.pool.Exec(ctx, "DELETE FROM services WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete service failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Reorder(ctx context.Context, ids []int64) error {
	return listing.Reorder(ctx, r.pool, "services", "id", ids)
}

func (r *pgxRepository) SetImage(ctx context.Context, id int64, assetID *uuid.UUID) (*Service, error) {
	tag, err := r.pool.Exec(ctx,
		"UPDATE services SET storage_asset_id = $1, updated_at = NOW() WHERE id = $2",
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
	return fmt.Errorf("service query failed: %w", err)
}
