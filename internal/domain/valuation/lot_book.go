package valuation

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/garage-valuation/internal/domain/entity"
)

// LotBook es la secuencia de lotes de un repuesto ordenada de más antiguo a más reciente,
// con los totales comprados sobre ese mismo conjunto.
type LotBook struct {
	Lots       []entity.PurchaseLot
	TotalQty   decimal.Decimal
	TotalValue decimal.Decimal
}

// NewLotBook copia y ordena los lotes por (fecha, secuencia). Cantidades y costos negativos
// (errores aguas arriba) se toman como cero antes de sumar.
func NewLotBook(lots []entity.PurchaseLot) LotBook {
	sorted := make([]entity.PurchaseLot, 0, len(lots))
	for _, l := range lots {
		l.Quantity = clampZero(l.Quantity)
		l.UnitCost = clampZero(l.UnitCost)
		sorted = append(sorted, l)
	}
	slices.SortStableFunc(sorted, entity.CompareLots)

	book := LotBook{Lots: sorted, TotalQty: decimal.Zero, TotalValue: decimal.Zero}
	for _, l := range sorted {
		book.TotalQty = book.TotalQty.Add(l.Quantity)
		book.TotalValue = book.TotalValue.Add(l.Value())
	}
	return book
}

// IsEmpty indica que el repuesto no tiene historial de compras en el alcance/corte.
func (b LotBook) IsEmpty() bool { return len(b.Lots) == 0 }

// LastCost devuelve el costo unitario del lote más reciente con cantidad, y false si no hay.
func (b LotBook) LastCost() (decimal.Decimal, bool) {
	for i := len(b.Lots) - 1; i >= 0; i-- {
		if b.Lots[i].Quantity.IsPositive() {
			return b.Lots[i].UnitCost, true
		}
	}
	return decimal.Zero, false
}
