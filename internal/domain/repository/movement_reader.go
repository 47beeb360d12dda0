package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/garage-valuation/internal/domain/entity"
)

// PartQuantity cantidad agregada por repuesto.
type PartQuantity struct {
	PartID   entity.PartID
	Quantity decimal.Decimal
}

// MovementReader consultas agregadas (read-only) sobre los movimientos de stock.
// Ambas consultas consideran solo repuestos activos y talleres activos dentro del alcance,
// con movimientos anteriores a cutoff.Until.
type MovementReader interface {
	// SumNetByPart suma el efecto con signo de recepciones, salidas y ajustes.
	SumNetByPart(ctx context.Context, partIDs []entity.PartID, scope entity.ScopeFilter, cutoff entity.Cutoff) ([]PartQuantity, error)

	// SumOutboundByPart suma, sin signo, únicamente las salidas (issue).
	SumOutboundByPart(ctx context.Context, partIDs []entity.PartID, scope entity.ScopeFilter, cutoff entity.Cutoff) ([]PartQuantity, error)
}
