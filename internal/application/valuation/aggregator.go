package valuation

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/garage-valuation/internal/domain/entity"
	"github.com/jhoicas/garage-valuation/internal/domain/repository"
	"github.com/jhoicas/garage-valuation/internal/domain/valuation"
)

// MovementAggregator convierte las sumas del lector de movimientos en mapas por repuesto.
type MovementAggregator struct{}

// NetStock devuelve el stock neto por repuesto a la fecha de corte, a 2 decimales.
// Los repuestos con resultado cero se omiten.
func (MovementAggregator) NetStock(
	ctx context.Context,
	reader repository.MovementReader,
	partIDs []entity.PartID,
	scope entity.ScopeFilter,
	cutoff entity.Cutoff,
) (map[entity.PartID]decimal.Decimal, error) {
	if len(partIDs) == 0 || scope.IsEmpty() {
		return map[entity.PartID]decimal.Decimal{}, nil
	}
	rows, err := reader.SumNetByPart(ctx, partIDs, scope, cutoff)
	if err != nil {
		return nil, fmt.Errorf("aggregator.NetStock: %w", err)
	}
	return collect(rows, partIDs), nil
}

// OutboundIssued devuelve, por repuesto, la cantidad total despachada (issue) sin signo.
func (MovementAggregator) OutboundIssued(
	ctx context.Context,
	reader repository.MovementReader,
	partIDs []entity.PartID,
	scope entity.ScopeFilter,
	cutoff entity.Cutoff,
) (map[entity.PartID]decimal.Decimal, error) {
	if len(partIDs) == 0 || scope.IsEmpty() {
		return map[entity.PartID]decimal.Decimal{}, nil
	}
	rows, err := reader.SumOutboundByPart(ctx, partIDs, scope, cutoff)
	if err != nil {
		return nil, fmt.Errorf("aggregator.OutboundIssued: %w", err)
	}
	out := collect(rows, partIDs)
	for id, q := range out {
		out[id] = q.Abs()
	}
	return out, nil
}

// collect suma por repuesto (el lector podría devolver un repuesto en varias filas),
// descarta repuestos no pedidos y omite los ceros tras redondear.
func collect(rows []repository.PartQuantity, partIDs []entity.PartID) map[entity.PartID]decimal.Decimal {
	wanted := make(map[entity.PartID]struct{}, len(partIDs))
	for _, id := range partIDs {
		wanted[id] = struct{}{}
	}
	sums := make(map[entity.PartID]decimal.Decimal, len(rows))
	for _, r := range rows {
		if _, ok := wanted[r.PartID]; !ok {
			continue
		}
		sums[r.PartID] = sums[r.PartID].Add(r.Quantity)
	}
	out := make(map[entity.PartID]decimal.Decimal, len(sums))
	for id, q := range sums {
		q = valuation.RoundQuantity(q)
		if q.IsZero() {
			continue
		}
		out[id] = q
	}
	return out
}
