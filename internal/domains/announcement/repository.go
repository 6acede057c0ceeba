package announcement

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
	List(ctx context.Context, f Filter) ([]Announcement, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Announcement, error)
	GetBySlug(ctx context.Context, slug string) (*Announcement, error)
	Create(ctx context.Context, req CreateRequest, slug string) (*Announcement, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*Announcement, error)
	SetPublished(ctx context.Context, id uuid.UUID, published bool) (*Announcement, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, ids []uuid.UUID) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const selectColumns = `id, title, slug, body, is_active, is_published,
	published_at, expires_at, display_order, created_at, updated_at`

func scanRow(row pgx.Row) (*Announcement, error) {
	a := &Announcement{}
	err := row.Scan(
		&a.ID, &a.Title, &a.Slug, &a.Body, &a.IsActive, &a.IsPublished,
		&a.PublishedAt, &a.ExpiresAt, &a.DisplayOrder, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *pgxRepository) List(ctx context.Context, f Filter) ([]Announcement, int, error) {
	b := &listing.Builder{}
	b.Bool("is_active", f.IsActive)
	b.Bool("is_published", f.IsPublished)
	if f.OnlyUnexpired {
		b.Unexpired("expires_at")
	}
	b.Search(f.Search, "title", "body")

	total, err := listing.Count(ctx, r.pool, "announcements", b)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		"SELECT %s FROM announcements %s %s LIMIT $%d OFFSET $%d",
		selectColumns, b.Where(),
		sortable.OrderBy(f.Sort, f.Order, "display_order ASC, id ASC", "id ASC"),
		b.Bind(f.Limit), b.Bind(f.Offset),
	)

	rows, err := r.pool.Query(ctx, query, b.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("list announcements failed: %w", err)
	}
	defer rows.Close()

	items := make([]Announcement, 0, f.Limit)
	for rows.Next() {
		item, err := scanRow(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan announcement failed: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id uuid.UUID) (*Announcement, error) {
	query := fmt.Sprintf("SELECT %s FROM announcements WHERE id = $1", selectColumns)
	return r.getOne(ctx, query, id)
}

func (r *pgxRepository) GetBySlug(ctx context.Context, slug string) (*Announcement, error) {
	query := fmt.Sprintf("SELECT %s FROM announcements WHERE slug = $1", selectColumns)
	return r.getOne(ctx, query, slug)
}

func (r *pgxRepository) getOne(ctx context.Context, query string, arg any) (*Announcement, error) {
	a, err := scanRow(r.pool.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get announcement failed: %w", err)
	}
	return a, nil
}

func (r *pgxRepository) Create(ctx context.Context, req CreateRequest, slug string) (*Announcement, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	isPublished := false
	if req.IsPublished != nil {
		isPublished = *req.IsPublished
	}

	query := fmt.Sprintf(`
		INSERT INTO announcements (id, title, slug, body, is_active, is_published, published_at, expires_at, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, CASE WHEN $6 THEN NOW() END, $7, COALESCE($8, %s))
		RETURNING %s`,
		listing.NextDisplayOrder("announcements"), selectColumns,
	)

	a, err := scanRow(r.pool.QueryRow(ctx, query,
		uuid.New(), req.Title, slug, req.Body, isActive, isPublished, req.ExpiresAt, req.DisplayOrder,
	))
	if err != nil {
		return nil, translateError(err)
	}
	return a, nil
}

func (r *pgxRepository) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*Announcement, error) {
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
	if req.Body != nil {
		add("body", *req.Body)
	}
	if req.IsActive != nil {
		add("is_active", *req.IsActive)
	}
	if req.IsPublished != nil {
		add("is_published", *req.IsPublished)
	}
	if req.ExpiresAt != nil {
		add("expires_at", *req.ExpiresAt)
	}
	if req.DisplayOrder != nil {
		add("display_order", *req.DisplayOrder)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE announcements SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), selectColumns)

	a, err := scanRow(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, translateError(err)
	}
	return a, nil
}

// SetPublished flips the publish flag; publishing stamps published_at,
// unpublishing clears it.
func (r *pgxRepository) SetPublished(ctx context.Context, id uuid.UUID, published bool) (*Announcement, error) {
	query := fmt.Sprintf(`
		UPDATE announcements
		SET is_published = $1,
		    published_at = CASE WHEN $1 THEN NOW() END,
		    updated_at = NOW()
		WHERE id = $2
		RETURNING %s`, selectColumns)

	a, err := scanRow(r.pool.QueryRow(ctx, query, published, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("set announcement published failed: %w", err)
	}
	return a, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM announcements WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete announcement failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Reorder(ctx context.Context, ids []uuid.UUID) error {
	return listing.Reorder(ctx, r.pool, "announcements", "id", ids)
}

func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, "slug") {
		return ErrDuplicateSlug
	}
	return fmt.Errorf("announcement query failed: %w", err)
}
