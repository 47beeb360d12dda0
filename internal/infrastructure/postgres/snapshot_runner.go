package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	appvaluation "github.com/jhoicas/garage-valuation/internal/application/valuation"
	"github.com/jhoicas/garage-valuation/internal/domain/repository"
)

var _ appvaluation.SnapshotRunner = (*SnapshotRunner)(nil)

var tracer = otel.Tracer("garage-valuation/postgres")

// SnapshotRunner ejecuta lecturas dentro de una transacción REPEATABLE READ, READ ONLY:
// todas las consultas de un reporte ven la misma instantánea de la base.
type SnapshotRunner struct {
	pool             *pgxpool.Pool
	statementTimeout time.Duration
}

// NewSnapshotRunner construye el runner. statementTimeout 0 deja el límite de la sesión.
func NewSnapshotRunner(pool *pgxpool.Pool, statementTimeout time.Duration) *SnapshotRunner {
	return &SnapshotRunner{pool: pool, statementTimeout: statementTimeout}
}

// ReadOnly inicia la transacción, ejecuta fn con lectores atados a ella y hace Commit
// (o Rollback si fn falla o el contexto se cancela).
func (r *SnapshotRunner) ReadOnly(ctx context.Context, fn func(readers repository.SnapshotReaders) error) (err error) {
	ctx, span := tracer.Start(ctx, "snapshot",
		trace.WithAttributes(
			attribute.String("tx.isolation", string(pgx.RepeatableRead)),
			attribute.String("tx.access_mode", string(pgx.ReadOnly)),
		))
	defer span.End()

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("begin snapshot: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
		}
	}()

	if r.statementTimeout > 0 {
		if _, err = tx.Exec(ctx, fmt.Sprintf("SET LOCAL statement_timeout = '%dms'", r.statementTimeout.Milliseconds())); err != nil {
			return fmt.Errorf("set statement_timeout: %w", err)
		}
	}

	if err = fn(readersFor(tx)); err != nil {
		span.RecordError(err)
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

func readersFor(q Querier) repository.SnapshotReaders {
	return repository.SnapshotReaders{
		Garages:   NewGarageRepository(q),
		Parts:     NewPartRepository(q),
		Movements: NewMovementReader(q),
		Lots:      NewPurchaseLotReader(q),
	}
}
