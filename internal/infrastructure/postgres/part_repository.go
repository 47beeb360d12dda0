package postgres

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/garage-valuation/internal/domain/entity"
	"github.com/jhoicas/garage-valuation/internal/domain/repository"
)

var _ repository.PartRepository = (*PartRepo)(nil)

// PartRepo lectura del maestro de repuestos.
type PartRepo struct {
	db Querier
}

// NewPartRepository construye el adaptador.
func NewPartRepository(db Querier) *PartRepo {
	return &PartRepo{db: db}
}

type partRow struct {
	ID           string          `db:"id"`
	TenantID     string          `db:"tenant_id"`
	Name         string          `db:"name"`
	SKU          string          `db:"sku"`
	Unit         string          `db:"unit"`
	Category     string          `db:"category"`
	StandardCost decimal.Decimal `db:"standard_cost"`
	Active       bool            `db:"is_active"`
}

func activePartsQuery(tenantID, search string) squirrel.SelectBuilder {
	q := psql.
		Select(
			"p.id::text AS id",
			"p.tenant_id::text AS tenant_id",
			"p.name",
			"COALESCE(p.sku, '') AS sku",
			"COALESCE(p.unit, '') AS unit",
			"COALESCE(c.name, '') AS category",
			"COALESCE(p.standard_cost, 0) AS standard_cost",
			"p.is_active",
		).
		From("parts p").
		LeftJoin("part_categories c ON c.id = p.category_id").
		Where(squirrel.Eq{"p.tenant_id": tenantID}).
		Where("p.is_active = TRUE")

	if search = strings.TrimSpace(search); search != "" {
		pattern := "%" + escapeLike(search) + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"p.name": pattern},
			squirrel.ILike{"p.sku": pattern},
		})
	}
	return q.OrderBy("p.name", "p.sku", "p.id")
}

// ListActive devuelve los repuestos activos del tenant, filtrados opcionalmente por nombre o SKU.
func (r *PartRepo) ListActive(ctx context.Context, tenantID, search string) ([]*entity.Part, error) {
	query, args, err := activePartsQuery(tenantID, search).ToSql()
	if err != nil {
		return nil, wrapQueryErr("part.ListActive build", err)
	}
	var rows []partRow
	if err := pgxscan.Select(ctx, r.db, &rows, query, args...); err != nil {
		return nil, wrapQueryErr("part.ListActive", err)
	}
	out := make([]*entity.Part, 0, len(rows))
	for _, p := range rows {
		out = append(out, &entity.Part{
			ID:           entity.PartID(p.ID),
			TenantID:     p.TenantID,
			Name:         p.Name,
			SKU:          p.SKU,
			Unit:         p.Unit,
			Category:     p.Category,
			StandardCost: p.StandardCost,
			Active:       p.Active,
		})
	}
	return out, nil
}
