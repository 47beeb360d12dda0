package valuation

import (
	"context"
	"fmt"

	"github.com/jhoicas/garage-valuation/internal/domain/entity"
	"github.com/jhoicas/garage-valuation/internal/domain/repository"
	"github.com/jhoicas/garage-valuation/internal/domain/valuation"
)

// PurchaseLotLoader agrupa los lotes finalizados por repuesto en LotBooks ordenados.
type PurchaseLotLoader struct{}

// Load devuelve un LotBook por cada repuesto pedido. Un repuesto sin compras
// tiene un libro vacío con totales en cero.
func (PurchaseLotLoader) Load(
	ctx context.Context,
	reader repository.PurchaseLotReader,
	partIDs []entity.PartID,
	scope entity.ScopeFilter,
	cutoff entity.Cutoff,
) (map[entity.PartID]valuation.LotBook, error) {
	books := make(map[entity.PartID]valuation.LotBook, len(partIDs))
	if len(partIDs) == 0 {
		return books, nil
	}

	var lots []entity.PurchaseLot
	if !scope.IsEmpty() {
		var err error
		lots, err = reader.ListFinalized(ctx, partIDs, scope, cutoff)
		if err != nil {
			return nil, fmt.Errorf("lotLoader.Load: %w", err)
		}
	}

	byPart := make(map[entity.PartID][]entity.PurchaseLot, len(partIDs))
	for _, id := range partIDs {
		byPart[id] = nil
	}
	for _, l := range lots {
		if _, ok := byPart[l.PartID]; !ok {
			continue
		}
		if !scope.Contains(l.GarageID) || !cutoff.IncludesPurchase(l.Date) {
			continue
		}
		byPart[l.PartID] = append(byPart[l.PartID], l)
	}
	for id, pl := range byPart {
		books[id] = valuation.NewLotBook(pl)
	}
	return books, nil
}
