package repository

import (
	"context"

	"github.com/jhoicas/garage-valuation/internal/domain/entity"
)

// PartRepository puerto de lectura del maestro de repuestos.
type PartRepository interface {
	// ListActive devuelve los repuestos activos del tenant. search filtra por nombre o SKU
	// (sin distinguir mayúsculas); vacío no filtra.
	ListActive(ctx context.Context, tenantID, search string) ([]*entity.Part, error)
}
