package valuation

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/garage-valuation/internal/domain/entity"
)

// Row es una fila del reporte de valoración. Se recalcula en cada solicitud.
type Row struct {
	PartID            entity.PartID
	PartName          string
	SKU               string
	Unit              string
	Category          string
	StockQty          decimal.Decimal
	AvgCost           decimal.Decimal
	WeightedValue     decimal.Decimal
	FIFOValue         decimal.Decimal
	TotalPurchasedQty decimal.Decimal
	History           string
}

// Totals sumas del portafolio sobre las mismas filas devueltas.
type Totals struct {
	ProductCount       int
	TotalStockQty      decimal.Decimal
	TotalFIFOValue     decimal.Decimal
	TotalWeightedValue decimal.Decimal
}

// Report filas ordenadas más totales.
type Report struct {
	Rows   []Row
	Totals Totals
}

// DriftEvent describe un repuesto cuyo stock no coincide con los lotes registrados.
type DriftEvent struct {
	PartID     entity.PartID
	SKU        string
	StockQty   decimal.Decimal
	LotQty     decimal.Decimal
	GapQty     decimal.Decimal
	GapValue   decimal.Decimal
	ExcessQty  decimal.Decimal
	Policy     string
}

// DriftObserver recibe los eventos de deriva. No puede alterar el reporte.
type DriftObserver interface {
	ObserveDrift(ev DriftEvent)
}

// Inputs mapas por repuesto ya poblados por los cargadores. El ensamblador no los modifica.
type Inputs struct {
	Parts    []*entity.Part
	Stock    map[entity.PartID]decimal.Decimal
	Outbound map[entity.PartID]decimal.Decimal
	Books    map[entity.PartID]LotBook
}

// Assembler une stock, lotes y costos en filas del reporte.
type Assembler struct {
	policy      GapFillPolicy
	historySize int
}

// NewAssembler crea un ensamblador. policy nil usa la política por defecto;
// historySize negativo se toma como cero.
func NewAssembler(policy GapFillPolicy, historySize int) *Assembler {
	if policy == nil {
		policy = DefaultGapFillPolicy()
	}
	if historySize < 0 {
		historySize = 0
	}
	return &Assembler{policy: policy, historySize: historySize}
}

// Policy devuelve la política de relleno en uso.
func (a *Assembler) Policy() GapFillPolicy { return a.policy }

// Assemble produce una fila por cada repuesto con stock > 0, ordenadas por nombre, SKU e ID.
// observer puede ser nil.
func (a *Assembler) Assemble(in Inputs, observer DriftObserver) Report {
	rows := make([]Row, 0, len(in.Parts))
	seen := make(map[entity.PartID]struct{}, len(in.Parts))

	for _, p := range in.Parts {
		if p == nil {
			continue
		}
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}

		stock := RoundQuantity(in.Stock[p.ID])
		if !stock.IsPositive() {
			continue
		}
		book := in.Books[p.ID]
		avg := AverageCost(book, p.StandardCost)
		fifo := FIFOValue(FIFOInput{
			Book:         book,
			StockQty:     stock,
			OutboundQty:  in.Outbound[p.ID],
			AvgCost:      avg,
			StandardCost: p.StandardCost,
		}, a.policy)

		if observer != nil && (fifo.HasGap() || fifo.ExcessLotQty.IsPositive()) {
			observer.ObserveDrift(DriftEvent{
				PartID:     p.ID,
				SKU:        p.SKU,
				StockQty:   stock,
				LotQty:     fifo.RemainingLotQty,
				GapQty:     fifo.GapQty,
				GapValue:   RoundMoney(fifo.GapValue),
				ExcessQty:  fifo.ExcessLotQty,
				Policy:     a.policy.Name(),
			})
		}

		rows = append(rows, Row{
			PartID:            p.ID,
			PartName:          p.Name,
			SKU:               p.SKU,
			Unit:              p.Unit,
			Category:          p.CategoryLabel(),
			StockQty:          stock,
			AvgCost:           avg,
			WeightedValue:     WeightedValue(stock, avg),
			FIFOValue:         fifo.Value,
			TotalPurchasedQty: RoundQuantity(book.TotalQty),
			History:           HistorySummary(book, a.historySize),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].PartName != rows[j].PartName {
			return rows[i].PartName < rows[j].PartName
		}
		if rows[i].SKU != rows[j].SKU {
			return rows[i].SKU < rows[j].SKU
		}
		return rows[i].PartID < rows[j].PartID
	})

	return Report{Rows: rows, Totals: SumTotals(rows)}
}

// SumTotals acumula los totales sobre exactamente las filas recibidas.
func SumTotals(rows []Row) Totals {
	t := Totals{
		ProductCount:       len(rows),
		TotalStockQty:      decimal.Zero,
		TotalFIFOValue:     decimal.Zero,
		TotalWeightedValue: decimal.Zero,
	}
	for _, r := range rows {
		t.TotalStockQty = t.TotalStockQty.Add(r.StockQty)
		t.TotalFIFOValue = t.TotalFIFOValue.Add(r.FIFOValue)
		t.TotalWeightedValue = t.TotalWeightedValue.Add(r.WeightedValue)
	}
	return t
}
