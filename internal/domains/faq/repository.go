package faq

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"monument-backend/internal/shared/listing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	List(ctx context.Context, f Filter) ([]FAQ, int, error)
	GetByID(ctx context.Context, id int64) (*FAQ, error)
	GetBySlug(ctx context.Context, slug string) (*FAQ, error)
	Create(ctx context.Context, req CreateRequest, slug string) (*FAQ, error)
	Update(ctx context.Context, id int64, req UpdateRequest) (*FAQ, error)
	Delete(ctx context.Context, id int64) error
	Reorder(ctx context.Context, ids []int64) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const selectColumns = `id, question, slug, answer, display_order, is_active, created_at, updated_at`

func scanRow(row pgx.Row) (*FAQ, error) {
	f := &FAQ{}
	err := row.Scan(
		&f.ID, &f.Question, &f.Slug, &f.Answer,
		&f.DisplayOrder, &f.IsActive, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *pgxRepository) List(ctx context.Context, f Filter) ([]FAQ, int, error) {
	b := &listing.Builder{}
	b.Bool("is_active", f.IsActive)
	b.Search(f.Search, "question", "answer")

	total, err := listing.Count(ctx, r.pool, "faqs", b)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		"SELECT %s FROM faqs %s %s LIMIT $%d OFFSET $%d",
		selectColumns, b.Where(),
		sortable.OrderBy(f.Sort, f.Order, "display_order ASC, id ASC", "id ASC"),
		b.Bind(f.Limit), b.Bind(f.Offset),
	)

	rows, err := r.pool.Query(ctx, query, b.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("list faqs failed: %w", err)
	}
	defer rows.Close()

	items := make([]FAQ, 0, f.Limit)
	for rows.Next() {
		item, err := scanRow(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan faq failed: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*FAQ, error) {
	query := fmt.Sprintf("SELECT %s FROM faqs WHERE id = $1", selectColumns)
	return r.getOne(ctx, query, id)
}

func (r *pgxRepository) GetBySlug(ctx context.Context, slug string) (*FAQ, error) {
	query := fmt.Sprintf("SELECT %s FROM faqs WHERE slug = $1", selectColumns)
	return r.getOne(ctx, query, slug)
}

func (r *pgxRepository) getOne(ctx context.Context, query string, arg any) (*FAQ, error) {
	f, err := scanRow(r.pool.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get faq failed: %w", err)
	}
	return f, nil
}

func (r *pgxRepository) Create(ctx context.Context, req CreateRequest, slug string) (*FAQ, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	query := fmt.Sprintf(`
		INSERT INTO faqs (question, slug, answer, is_active, display_order)
		VALUES ($1, $2, $3, $4, COALESCE($5, %s))
		RETURNING %s`,
		listing.NextDisplayOrder("faqs"), selectColumns,
	)

	f, err := scanRow(r.pool.QueryRow(ctx, query,
		req.Question, slug, req.Answer, isActive, req.DisplayOrder,
	))
	if err != nil {
		return nil, translateError(err)
	}
	return f, nil
}

func (r *pgxRepository) Update(ctx context.Context, id int64, req UpdateRequest) (*FAQ, error) {
	sets := []string{"updated_at = NOW()"}
	args := []any{}

	add := func(column string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.Question != nil {
		add("question", *req.Question)
	}
	if req.Slug != nil {
		add("slug", *req.Slug)
	}
	if req.Answer != nil {
		add("answer", *req.Answer)
	}
	if req.IsActive != nil {
		add("is_active", *req.IsActive)
	}
	if req.DisplayOrder != nil {
		add("display_order", *req.DisplayOrder)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE faqs SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), selectColumns)

	f, err := scanRow(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, translateError(err)
	}
	return f, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM faqs WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete faq failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Reorder(ctx context.Context, ids []int64) error {
	return listing.Reorder(ctx, r.pool, "faqs", "id", ids)
}

func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, "slug") {
		return ErrDuplicateSlug
	}
	return fmt.Errorf("faq query failed: %w", err)
}
