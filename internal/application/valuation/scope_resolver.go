package valuation

import (
	"context"
	"fmt"

	"github.com/jhoicas/garage-valuation/internal/domain/entity"
	"github.com/jhoicas/garage-valuation/internal/domain/repository"
)

// ScopeResolver traduce el principal y el override de taller en un ScopeFilter.
type ScopeResolver struct {
	garages repository.GarageRepository
}

// NewScopeResolver construye el resolvedor.
func NewScopeResolver(garages repository.GarageRepository) *ScopeResolver {
	return &ScopeResolver{garages: garages}
}

// Resolve calcula los talleres visibles: activos del tenant, intersectados con los del token
// si el token los restringe. Un override fuera de ese conjunto produce un alcance vacío.
func (r *ScopeResolver) Resolve(ctx context.Context, p Principal, requested entity.GarageID) (entity.ScopeFilter, error) {
	if p.TenantID == "" {
		return entity.ScopeFilter{}, nil
	}
	active, err := r.garages.ListActiveByTenant(ctx, p.TenantID)
	if err != nil {
		return entity.ScopeFilter{}, fmt.Errorf("scope.Resolve: %w", err)
	}

	allowed := entity.NewGarageSetScope(p.GarageIDs)
	visible := make([]entity.GarageID, 0, len(active))
	for _, g := range active {
		if !g.Active || g.TenantID != p.TenantID {
			continue
		}
		if !allowed.IsEmpty() && !allowed.Contains(g.ID) {
			continue
		}
		visible = append(visible, g.ID)
	}
	scope := entity.NewGarageSetScope(visible)

	if requested == "" {
		return scope, nil
	}
	if !scope.Contains(requested) {
		return entity.ScopeFilter{}, nil
	}
	return entity.NewSingleGarageScope(requested), nil
}
