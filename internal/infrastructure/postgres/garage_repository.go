package postgres

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/garage-valuation/internal/domain/entity"
	"github.com/jhoicas/garage-valuation/internal/domain/repository"
)

var _ repository.GarageRepository = (*GarageRepo)(nil)

// GarageRepo implementación de GarageRepository para PostgreSQL.
type GarageRepo struct {
	db Querier
}

// NewGarageRepository construye el adaptador sobre el pool (o una tx).
func NewGarageRepository(db Querier) *GarageRepo {
	return &GarageRepo{db: db}
}

type garageRow struct {
	ID       string `db:"id"`
	TenantID string `db:"tenant_id"`
	Name     string `db:"name"`
	Active   bool   `db:"is_active"`
}

func activeGaragesQuery(tenantID string) squirrel.SelectBuilder {
	return psql.
		Select("g.id::text AS id", "g.tenant_id::text AS tenant_id", "g.name", "g.is_active").
		From("garages g").
		Where(squirrel.Eq{"g.tenant_id": tenantID}).
		Where("g.is_active = TRUE").
		OrderBy("g.name", "g.id")
}

// ListActiveByTenant devuelve los talleres activos del tenant ordenados por nombre.
func (r *GarageRepo) ListActiveByTenant(ctx context.Context, tenantID string) ([]*entity.Garage, error) {
	query, args, err := activeGaragesQuery(tenantID).ToSql()
	if err != nil {
		return nil, wrapQueryErr("garage.ListActiveByTenant build", err)
	}
	var rows []garageRow
	if err := pgxscan.Select(ctx, r.db, &rows, query, args...); err != nil {
		return nil, wrapQueryErr("garage.ListActiveByTenant", err)
	}
	out := make([]*entity.Garage, 0, len(rows))
	for _, g := range rows {
		out = append(out, &entity.Garage{
			ID:       entity.GarageID(g.ID),
			TenantID: g.TenantID,
			Name:     g.Name,
			Active:   g.Active,
		})
	}
	return out, nil
}
