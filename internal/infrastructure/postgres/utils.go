package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/garage-valuation/internal/domain/entity"
)

// maxIDsPerQuery límite de IDs en una lista IN (...) por consulta.
const maxIDsPerQuery = 1000

// Querier lo que necesitan los repositorios: lo cumplen *pgxpool.Pool y pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// psql builder con placeholders $1, $2...
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// chunkPartIDs divide ids en lotes de a lo sumo size elementos, como strings para pgx.
func chunkPartIDs(ids []entity.PartID, size int) [][]string {
	if size <= 0 {
		size = maxIDsPerQuery
	}
	var chunks [][]string
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunk := make([]string, 0, end-start)
		for _, id := range ids[start:end] {
			chunk = append(chunk, string(id))
		}
		chunks = append(chunks, chunk)
	}
	return chunks
}

// escapeLike escapa los comodines de LIKE/ILIKE (\ % _) para buscar texto literal.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// isQueryCanceled verifica si la consulta fue cancelada por statement_timeout (57014).
func isQueryCanceled(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "57014" // query_canceled
	}
	return false
}

// wrapQueryErr antepone op al error y traduce el timeout de sentencia a context.DeadlineExceeded.
func wrapQueryErr(op string, err error) error {
	if isQueryCanceled(err) {
		return fmt.Errorf("%s: %w (%v)", op, context.DeadlineExceeded, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
