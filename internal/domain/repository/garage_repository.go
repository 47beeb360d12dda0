package repository

import (
	"context"

	"github.com/jhoicas/garage-valuation/internal/domain/entity"
)

// GarageRepository puerto de lectura de talleres del tenant (lo usa la resolución de alcance).
type GarageRepository interface {
	// ListActiveByTenant devuelve los talleres activos del tenant ordenados por nombre.
	ListActiveByTenant(ctx context.Context, tenantID string) ([]*entity.Garage, error)
}
