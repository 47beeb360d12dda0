package repository

import (
	"context"

	"github.com/jhoicas/garage-valuation/internal/domain/entity"
)

// PurchaseLotReader lectura de lotes de compra (líneas de compras finalizadas).
type PurchaseLotReader interface {
	// ListFinalized devuelve los lotes de compras finalizadas con fecha <= cutoff.Date,
	// dentro del alcance, ordenados por (repuesto, fecha, secuencia).
	ListFinalized(ctx context.Context, partIDs []entity.PartID, scope entity.ScopeFilter, cutoff entity.Cutoff) ([]entity.PurchaseLot, error)
}

// SnapshotReaders agrupa los lectores atados a una misma instantánea de lectura
// (misma transacción read-only).
type SnapshotReaders struct {
	Garages   GarageRepository
	Parts     PartRepository
	Movements MovementReader
	Lots      PurchaseLotReader
}
