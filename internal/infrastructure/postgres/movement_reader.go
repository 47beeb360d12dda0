package postgres

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/garage-valuation/internal/domain/entity"
	"github.com/jhoicas/garage-valuation/internal/domain/repository"
)

var _ repository.MovementReader = (*MovementReader)(nil)

// netDeltaExpr efecto con signo de cada movimiento sobre el stock.
const netDeltaExpr = `SUM(CASE m.kind
	WHEN 'receipt' THEN ABS(m.quantity)
	WHEN 'issue'   THEN -ABS(m.quantity)
	ELSE m.quantity END)`

// MovementReader sumas agregadas sobre inventory_movements.
type MovementReader struct {
	db Querier
}

// NewMovementReader construye el lector.
func NewMovementReader(db Querier) *MovementReader {
	return &MovementReader{db: db}
}

type partQuantityRow struct {
	PartID   string          `db:"part_id"`
	Quantity decimal.Decimal `db:"quantity"`
}

// movementsBase FROM/JOIN/WHERE comunes: repuestos pedidos, talleres del alcance,
// ambos activos, movimientos anteriores al instante exclusivo del corte.
func movementsBase(sel squirrel.SelectBuilder, partIDs []string, scope entity.ScopeFilter, cutoff entity.Cutoff) squirrel.SelectBuilder {
	return sel.
		From("inventory_movements m").
		Join("parts p ON p.id = m.part_id").
		Join("garages g ON g.id = m.garage_id").
		Where(squirrel.Eq{"m.part_id": partIDs}).
		Where(squirrel.Eq{"m.garage_id": scope.Strings()}).
		Where("p.is_active = TRUE").
		Where("g.is_active = TRUE").
		Where(squirrel.Lt{"m.created_at": cutoff.Until}).
		GroupBy("m.part_id")
}

func netStockQuery(partIDs []string, scope entity.ScopeFilter, cutoff entity.Cutoff) squirrel.SelectBuilder {
	return movementsBase(psql.Select("m.part_id::text AS part_id", netDeltaExpr+" AS quantity"), partIDs, scope, cutoff).
		Having(netDeltaExpr + " <> 0")
}

func outboundQuery(partIDs []string, scope entity.ScopeFilter, cutoff entity.Cutoff) squirrel.SelectBuilder {
	return movementsBase(psql.Select("m.part_id::text AS part_id", "SUM(ABS(m.quantity)) AS quantity"), partIDs, scope, cutoff).
		Where(squirrel.Eq{"m.kind": string(entity.MovementIssue)})
}

// SumNetByPart devuelve el stock neto por repuesto (omite ceros).
func (r *MovementReader) SumNetByPart(ctx context.Context, partIDs []entity.PartID, scope entity.ScopeFilter, cutoff entity.Cutoff) ([]repository.PartQuantity, error) {
	return r.sum(ctx, "movement.SumNetByPart", partIDs, scope, cutoff, netStockQuery)
}

// SumOutboundByPart devuelve lo despachado (issue) por repuesto, sin signo.
func (r *MovementReader) SumOutboundByPart(ctx context.Context, partIDs []entity.PartID, scope entity.ScopeFilter, cutoff entity.Cutoff) ([]repository.PartQuantity, error) {
	return r.sum(ctx, "movement.SumOutboundByPart", partIDs, scope, cutoff, outboundQuery)
}

func (r *MovementReader) sum(
	ctx context.Context,
	op string,
	partIDs []entity.PartID,
	scope entity.ScopeFilter,
	cutoff entity.Cutoff,
	build func([]string, entity.ScopeFilter, entity.Cutoff) squirrel.SelectBuilder,
) ([]repository.PartQuantity, error) {
	if len(partIDs) == 0 || scope.IsEmpty() {
		return nil, nil
	}
	var out []repository.PartQuantity
	for _, chunk := range chunkPartIDs(partIDs, maxIDsPerQuery) {
		query, args, err := build(chunk, scope, cutoff).ToSql()
		if err != nil {
			return nil, wrapQueryErr(op+" build", err)
		}
		var rows []partQuantityRow
		if err := pgxscan.Select(ctx, r.db, &rows, query, args...); err != nil {
			return nil, wrapQueryErr(op, err)
		}
		for _, row := range rows {
			out = append(out, repository.PartQuantity{PartID: entity.PartID(row.PartID), Quantity: row.Quantity})
		}
	}
	return out, nil
}
