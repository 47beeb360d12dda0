package postgres

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/garage-valuation/internal/domain/entity"
	"github.com/jhoicas/garage-valuation/internal/domain/repository"
)

var _ repository.PurchaseLotReader = (*PurchaseLotReader)(nil)

// PurchaseLotReader lee las líneas de compras finalizadas como lotes.
type PurchaseLotReader struct {
	db Querier
}

// NewPurchaseLotReader construye el lector.
func NewPurchaseLotReader(db Querier) *PurchaseLotReader {
	return &PurchaseLotReader{db: db}
}

type lotRow struct {
	PartID     string          `db:"part_id"`
	GarageID   string          `db:"garage_id"`
	PurchaseID string          `db:"purchase_id"`
	Date       time.Time       `db:"purchase_date"`
	Sequence   int64           `db:"line_seq"`
	Quantity   decimal.Decimal `db:"quantity"`
	UnitCost   decimal.Decimal `db:"unit_cost"`
}

// finalizedLotsQuery la fecha de corte se pasa como texto y se castea a date
// para comparar día contra día sin depender de la zona de la sesión.
func finalizedLotsQuery(partIDs []string, scope entity.ScopeFilter, cutoff entity.Cutoff) squirrel.SelectBuilder {
	return psql.
		Select(
			"pi.part_id::text AS part_id",
			"pu.garage_id::text AS garage_id",
			"pu.id::text AS purchase_id",
			"pu.purchase_date",
			"pi.line_seq",
			"pi.quantity",
			"pi.unit_cost",
		).
		From("purchase_items pi").
		Join("purchases pu ON pu.id = pi.purchase_id").
		Join("parts p ON p.id = pi.part_id").
		Join("garages g ON g.id = pu.garage_id").
		Where(squirrel.Eq{"pu.status": string(entity.PurchaseFinalized)}).
		Where(squirrel.Eq{"pi.part_id": partIDs}).
		Where(squirrel.Eq{"pu.garage_id": scope.Strings()}).
		Where("p.is_active = TRUE").
		Where("g.is_active = TRUE").
		Where("pu.purchase_date <= ?::date", cutoff.DateString()).
		OrderBy("pi.part_id", "pu.purchase_date", "pi.line_seq", "pu.id")
}

// ListFinalized devuelve los lotes ordenados por (repuesto, fecha, secuencia).
func (r *PurchaseLotReader) ListFinalized(ctx context.Context, partIDs []entity.PartID, scope entity.ScopeFilter, cutoff entity.Cutoff) ([]entity.PurchaseLot, error) {
	if len(partIDs) == 0 || scope.IsEmpty() {
		return nil, nil
	}
	var out []entity.PurchaseLot
	for _, chunk := range chunkPartIDs(partIDs, maxIDsPerQuery) {
		query, args, err := finalizedLotsQuery(chunk, scope, cutoff).ToSql()
		if err != nil {
			return nil, wrapQueryErr("lots.ListFinalized build", err)
		}
		var rows []lotRow
		if err := pgxscan.Select(ctx, r.db, &rows, query, args...); err != nil {
			return nil, wrapQueryErr("lots.ListFinalized", err)
		}
		for _, l := range rows {
			out = append(out, entity.PurchaseLot{
				PartID:     entity.PartID(l.PartID),
				GarageID:   entity.GarageID(l.GarageID),
				PurchaseID: l.PurchaseID,
				Date:       l.Date,
				Sequence:   l.Sequence,
				Quantity:   l.Quantity,
				UnitCost:   l.UnitCost,
			})
		}
	}
	return out, nil
}
