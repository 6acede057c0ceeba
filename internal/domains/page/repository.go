package page

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
	List(ctx context.Context, f Filter) ([]Page, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Page, error)
	GetBySlug(ctx context.Context, slug string) (*Page, error)
	Create(ctx context.Context, req CreateRequest, slug string) (*Page, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*Page, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, ids []uuid.UUID) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const selectColumns = `id, title, slug, content, meta_title, meta_description,
	display_order, is_active, created_at, updated_at`

func scanRow(row pgx.Row) (*Page, error) {
	p := &Page{}
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Content, &p.MetaTitle, &p.MetaDescription,
		&p.DisplayOrder, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *pgxRepository) List(ctx context.Context, f Filter) ([]Page, int, error) {
	b := &listing.Builder{}
	b.Bool("is_active", f.IsActive)
	b.Search(f.Search, "title", "content")

	total, err := listing.Count(ctx, r.pool, "pages", b)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		"SELECT %s FROM pages %s %s LIMIT $%d OFFSET $%d",
		selectColumns, b.Where(),
		sortable.OrderBy(f.Sort, f.Order, "display_order ASC, id ASC", "id ASC"),
		b.Bind(f.Limit), b.Bind(f.Offset),
	)

	rows, err := r.pool.Query(ctx, query, b.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("list pages failed: %w", err)
	}
	defer rows.Close()

	items := make([]Page, 0, f.Limit)
	for rows.Next() {
		p, err := scanRow(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan page failed: %w", err)
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id uuid.UUID) (*Page, error) {
	query := fmt.Sprintf("SELECT %s FROM pages WHERE id = $1", selectColumns)
	return r.getOne(ctx, query, id)
}

func (r *pgxRepository) GetBySlug(ctx context.Context, slug string) (*Page, error) {
	query := fmt.Sprintf("SELECT %s FROM pages WHERE slug = $1", selectColumns)
	return r.getOne(ctx, query, slug)
}

func (r *pgxRepository) getOne(ctx context.Context, query string, arg any) (*Page, error) {
	p, err := scanRow(r.pool.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get page failed: %w", err)
	}
	return p, nil
}

func (r *pgxRepository) Create(ctx context.Context, req CreateRequest, slug string) (*Page, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	query := fmt.Sprintf(`
		INSERT INTO pages (id, title, slug, content, meta_title, meta_description, is_active, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE($8, %s))
		RETURNING %s`,
		listing.NextDisplayOrder("pages"), selectColumns,
	)

	p, err := scanRow(r.pool.QueryRow(ctx, query,
		uuid.New(), req.Title, slug, req.Content, req.MetaTitle, req.MetaDescription, isActive, req.DisplayOrder,
	))
	if err != nil {
		return nil, translateError(err)
	}
	return p, nil
}

func (r *pgxRepository) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*Page, error) {
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
	if req.Content != nil {
		add("content", *req.Content)
	}
	if req.MetaTitle != nil {
		add("meta_title", *req.MetaTitle)
	}
	if req.MetaDescription != nil {
		add("meta_description", *req.MetaDescription)
	}
	if req.IsActive != nil {
		add("is_active", *req.IsActive)
	}
	if req.DisplayOrder != nil {
		add("display_order", *req.DisplayOrder)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE pages SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), selectColumns)

	p, err := scanRow(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, translateError(err)
	}
	return p, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM pages WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete page failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Reorder(ctx context.Context, ids []uuid.UUID) error {
	return listing.Reorder(ctx, r.pool, "pages", "id", ids)
}

func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, "slug") {
		return ErrDuplicateSlug
	}
	return fmt.Errorf("page query failed: %w", err)
}
