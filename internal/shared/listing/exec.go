package listing

import (
	"context"
	"fmt"

	"monument-backend/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is satisfied by *pgxpool.Pool and pgx.Tx.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Count runs the count query over the same predicate as the page query.
// Call it before binding limit/offset into the builder so both queries
// see identical args.
func Count(ctx context.Context, q Querier, from string, b *Builder) (int, error) {
	sql := fmt.Sprintf("SELECT COUNT(*) FROM %s %s", from, b.Where())

	var total int
	if err := q.QueryRow(ctx, sql, b.Args()...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count query failed: %w", err)
	}
	return total, nil
}

// Reorder assigns each id its 1-based position in ids as the new display
// order. The whole batch runs in one transaction: a failed update rolls
// everything back instead of leaving a half-renumbered table. Ids that no
// longer exist match zero rows and are skipped; rows omitted from ids
// keep their prior value.
func Reorder[ID any](ctx context.Context, pool *pgxpool.Pool, table, idColumn string, ids []ID) error {
	sql := fmt.Sprintf("UPDATE %s SET display_order = $1, updated_at = NOW() WHERE %s = $2", table, idColumn)

	return database.WithTransaction(ctx, pool, func(tx pgx.Tx) error {
		for i, id := range ids {
			if _, err := tx.Exec(ctx, sql, i+1, id); err != nil {
				return fmt.Errorf("failed to reorder %s row %v: %w", table, id, err)
			}
		}
		return nil
	})
}

// NextDisplayOrder is the insert-time default for display order: the
// current max plus one, computed inside the INSERT itself.
func NextDisplayOrder(table string) string {
	return fmt.Sprintf("(SELECT COALESCE(MAX(display_order), 0) + 1 FROM %s)", table)
}
